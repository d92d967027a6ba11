package intent

import (
	"regexp"
	"strings"

	"github.com/sandevgo/jarvis/internal/core"
)

// Intent labels, in dispatch priority order.
const (
	Schedule    = "schedule"
	MemoryWrite = "memory_write"
	MemoryRead  = "memory_read"
	Calculate   = "calculate"
	Datetime    = "datetime"
	Weather     = "weather"
	News        = "news"
	Image       = "image"
	File        = "file"
	Search      = "search"
)

// priority is the fixed total order used to pick the primary intent when
// several labels match. Earlier wins. Chosen once so behavior is
// reproducible regardless of pattern registration order.
var priority = []string{
	Schedule,
	MemoryWrite,
	MemoryRead,
	Calculate,
	Datetime,
	Weather,
	News,
	Image,
	File,
	Search,
}

var patterns = map[string][]*regexp.Regexp{
	Schedule: compileAll(
		`remind me`,
		`set (a|an) (reminder|alarm)`,
		`(cancel|delete|remove) (my |the )?reminder`,
		`\bschedule\b`,
		`\bat \d+`,
		`in \d+ (minutes|hours|days)`,
	),
	MemoryWrite: compileAll(
		`remember (that|this)`,
		`save (this|that)`,
		`store (this|that)`,
		`keep in mind`,
		`don'?t forget`,
		`note (that|this)`,
		`my .* is`,
	),
	MemoryRead: compileAll(
		`what (do you|did you) (know|remember)`,
		`\brecall\b`,
		`what did i (say|tell)`,
		`do you remember`,
		`what'?s my`,
		`what is my`,
	),
	Calculate: compileAll(
		`\bcalculate\b`,
		`\bcompute\b`,
		`what is \d+`,
		`\d+\s*[\+\-\*\/]\s*\d+`,
	),
	Datetime: compileAll(
		`what time is it`,
		`current time`,
		`what day is (it|today)`,
		`what'?s the date`,
		`what is the date`,
		`today'?s date`,
	),
	Weather: compileAll(
		`\bweather\b`,
		`\btemperature\b`,
		`\bforecast\b`,
		`how (hot|cold|warm)`,
	),
	News: compileAll(
		`\bnews\b`,
		`\bheadlines\b`,
		`what'?s happening`,
		`latest (on|about)`,
	),
	Image: compileAll(
		`generate (an|a) image`,
		`create (an|a) (picture|image|photo)`,
		`\bdraw\b`,
		`show me (a|an) image`,
	),
	File: compileAll(
		`create (a|an) (file|document|pdf)`,
		`save (to|as) (file|document)`,
		`write to file`,
	),
	Search: compileAll(
		`search (for|about|on)`,
		`look up`,
		`find (out|information|info)`,
		`what (is|are|was|were)`,
		`who (is|are|was|were)`,
		`when (is|are|was|were|did)`,
		`where (is|are|was|were)`,
		`how (to|do|does|did)`,
		`tell me about`,
	),
}

var (
	highUrgency   = []string{"urgent", "asap", "immediately", "now", "emergency", "critical"}
	mediumUrgency = []string{"soon", "today", "tonight", "quickly"}

	whitespaceRe = regexp.MustCompile(`\s+`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(e))
	}
	return res
}

// Detector classifies free text into intent labels. It holds no mutable
// state; Detect is a pure function of its input.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect classifies text. Identical input always yields an identical
// result. When nothing matches, the primary intent is "unknown" and
// RequiresAction is false.
func (d *Detector) Detect(text string) core.IntentResult {
	normalized := normalize(text)

	var matched []string
	for _, label := range priority {
		for _, re := range patterns[label] {
			if re.MatchString(normalized) {
				matched = append(matched, label)
				break
			}
		}
	}

	result := core.IntentResult{
		Entities: extractEntities(text),
		Urgency:  detectUrgency(normalized),
	}

	if len(matched) == 0 {
		result.Primary = core.IntentUnknown
		result.All = []string{core.IntentUnknown}
		return result
	}

	// matched is already in priority order
	result.Primary = matched[0]
	result.All = matched
	result.RequiresAction = true
	return result
}

func normalize(text string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

func detectUrgency(text string) string {
	for _, w := range highUrgency {
		if strings.Contains(text, w) {
			return core.UrgencyHigh
		}
	}
	for _, w := range mediumUrgency {
		if strings.Contains(text, w) {
			return core.UrgencyMedium
		}
	}
	return core.UrgencyLow
}
