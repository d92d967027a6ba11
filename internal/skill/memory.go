package skill

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/sandevgo/jarvis/internal/memory"
)

// MemorySkill handles explicit remember/recall requests against the
// long-term memory store.
type MemorySkill struct {
	store *memory.Store
}

func NewMemorySkill(store *memory.Store) *MemorySkill {
	return &MemorySkill{store: store}
}

func (s *MemorySkill) Name() string { return "memory" }

func (s *MemorySkill) CanHandle(res core.IntentResult) bool {
	return res.Has(intent.MemoryWrite) || res.Has(intent.MemoryRead)
}

func (s *MemorySkill) Execute(ctx context.Context, req Request) Response {
	if req.Intent.Has(intent.MemoryWrite) {
		return s.remember(ctx, req)
	}
	return s.recall(ctx, req)
}

var rememberPrefixRe = regexp.MustCompile(`(?i)^(please\s+)?(remember that|remember this|remember|keep in mind that|keep in mind|note that|note this|don't forget that|don't forget)\s+`)

// preferenceRe marks statements like "my favorite color is blue"; those
// are stored as preferences, everything else as facts.
var preferenceRe = regexp.MustCompile(`(?i)\bmy\s+(.+?)\s+is\s+`)

func (s *MemorySkill) remember(ctx context.Context, req Request) Response {
	content := rememberPrefixRe.ReplaceAllString(strings.TrimSpace(req.Text), "")
	content = strings.TrimRight(content, ".! ")
	if content == "" {
		return Fail(s.Name(), "nothing to remember")
	}

	var (
		id  string
		err error
	)
	if m := preferenceRe.FindStringSubmatch(content); m != nil {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		id, err = s.store.SavePreference(ctx, content, key)
	} else {
		id, err = s.store.SaveFact(ctx, content, "")
	}
	if err != nil {
		return Fail(s.Name(), fmt.Sprintf("failed to store memory: %v", err))
	}

	return Ok(s.Name(),
		fmt.Sprintf("Got it, I'll remember that %s.", content),
		map[string]any{"memory_id": id, "content": content},
	)
}

func (s *MemorySkill) recall(ctx context.Context, req Request) Response {
	query := strings.TrimSpace(req.Text)

	// Preferences and facts first; conversation records only pad the
	// tail when nothing better exists.
	records, err := s.store.Retrieve(ctx, query, 5, core.MemoryPreference)
	if err != nil {
		return Fail(s.Name(), fmt.Sprintf("failed to search memory: %v", err))
	}
	if len(records) == 0 {
		if records, err = s.store.Retrieve(ctx, query, 5, core.MemoryFact); err != nil {
			return Fail(s.Name(), fmt.Sprintf("failed to search memory: %v", err))
		}
	}
	if len(records) == 0 {
		if records, err = s.store.Retrieve(ctx, query, 5, ""); err != nil {
			return Fail(s.Name(), fmt.Sprintf("failed to search memory: %v", err))
		}
	}

	if len(records) == 0 {
		return Ok(s.Name(), "I don't have any memories about that yet.", map[string]any{"count": 0})
	}

	var found []string
	for _, rec := range records {
		found = append(found, rec.Content)
	}

	return Ok(s.Name(),
		fmt.Sprintf("Here's what I remember: %s", strings.Join(found, "; ")),
		map[string]any{
			"count":    len(records),
			"memories": found,
			"top_id":   records[0].ID,
		},
	)
}
