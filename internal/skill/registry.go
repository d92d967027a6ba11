package skill

import (
	"context"
	"fmt"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/pkg/log"
)

// Registry dispatches intents to skills. Registration order is the
// tie-break priority: the first registered skill whose CanHandle accepts
// the intent wins, and at most one skill executes per turn.
type Registry struct {
	skills []Skill
}

func NewRegistry(skills ...Skill) *Registry {
	return &Registry{skills: skills}
}

func (r *Registry) Register(s Skill) {
	r.skills = append(r.skills, s)
}

// Skills returns the registered skills in priority order.
func (r *Registry) Skills() []Skill {
	out := make([]Skill, len(r.skills))
	copy(out, r.skills)
	return out
}

// Match returns the first skill that can handle the intent, or nil when
// none match and the caller should fall back to direct generation.
func (r *Registry) Match(intent core.IntentResult) Skill {
	for _, s := range r.skills {
		if s.CanHandle(intent) {
			return s
		}
	}
	return nil
}

// Dispatch finds and executes the matching skill. The second return is
// false when no skill matched. A panicking or failing skill is converted
// into a failure Response; a skill can never crash the turn.
func (r *Registry) Dispatch(ctx context.Context, req Request) (resp Response, handled bool) {
	s := r.Match(req.Intent)
	if s == nil {
		return Response{}, false
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.FromCtx(ctx).Error().
				Str("skill", s.Name()).
				Interface("panic", rec).
				Msg("skill panicked")
			resp = Fail(s.Name(), fmt.Sprintf("skill %s failed: %v", s.Name(), rec))
			handled = true
		}
	}()

	resp = s.Execute(ctx, req)
	if resp.Skill == "" {
		resp.Skill = s.Name()
	}
	return resp, true
}
