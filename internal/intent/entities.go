package intent

import (
	"regexp"
	"strings"
)

// Entity extraction is best-effort secondary capture. An entity key is
// only present when its pattern actually matched; there are no nil-valued
// entries.
var entityPatterns = map[string]*regexp.Regexp{
	"date":       regexp.MustCompile(`(?i)\b(tomorrow|today|tonight|yesterday)\b|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}`),
	"time":       regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(am|pm)?|\d{1,2}\s*(am|pm)\b|in \d+ (minutes|hours|days)`),
	"number":     regexp.MustCompile(`\d+(?:\.\d+)?`),
	"url":        regexp.MustCompile(`https?://\S+`),
	"quoted":     regexp.MustCompile(`"[^"]+"|'[^']+'`),
	"expression": regexp.MustCompile(`\d+(?:\.\d+)?(?:\s*[\+\-\*\/\^]\s*\(?\s*\d+(?:\.\d+)?\s*\)?)+`),
}

// Entities matched case-insensitively against the lowered text; the rest
// keep the original casing of the input.
var lowerCased = map[string]bool{
	"date":   true,
	"time":   true,
	"number": true,
}

func extractEntities(text string) map[string]string {
	entities := make(map[string]string)
	lower := strings.ToLower(text)

	for name, re := range entityPatterns {
		src := text
		if lowerCased[name] {
			src = lower
		}
		match := re.FindString(src)
		if match == "" {
			continue
		}
		if name == "quoted" {
			match = strings.Trim(match, `"'`)
		}
		entities[name] = strings.TrimSpace(match)
	}

	return entities
}
