package skill

import (
	"context"
	"testing"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSkill struct {
	name    string
	handles []string
	execute func(ctx context.Context, req Request) Response
}

func (s *stubSkill) Name() string { return s.name }

func (s *stubSkill) CanHandle(res core.IntentResult) bool {
	for _, label := range s.handles {
		if res.Has(label) {
			return true
		}
	}
	return false
}

func (s *stubSkill) Execute(ctx context.Context, req Request) Response {
	if s.execute != nil {
		return s.execute(ctx, req)
	}
	return Ok(s.name, "ok", nil)
}

func intentWith(labels ...string) core.IntentResult {
	return core.IntentResult{Primary: labels[0], All: labels, RequiresAction: true}
}

func TestRegistry_RegistrationOrderWins(t *testing.T) {
	first := &stubSkill{name: "first", handles: []string{"x"}}
	second := &stubSkill{name: "second", handles: []string{"x"}}
	r := NewRegistry(first, second)

	resp, handled := r.Dispatch(context.Background(), Request{Intent: intentWith("x")})
	require.True(t, handled)
	assert.Equal(t, "first", resp.Skill)
}

func TestRegistry_MatchesAnyLabel(t *testing.T) {
	s := &stubSkill{name: "only", handles: []string{"b"}}
	r := NewRegistry(s)

	// Primary is "a" but the skill handles the secondary label "b".
	resp, handled := r.Dispatch(context.Background(), Request{Intent: intentWith("a", "b")})
	require.True(t, handled)
	assert.Equal(t, "only", resp.Skill)
}

func TestRegistry_NoMatchFallsThrough(t *testing.T) {
	r := NewRegistry(&stubSkill{name: "s", handles: []string{"x"}})

	_, handled := r.Dispatch(context.Background(), Request{Intent: intentWith(core.IntentUnknown)})
	assert.False(t, handled, "unmatched intent returns control for LLM fallback")
}

func TestRegistry_PanicConvertedToFailure(t *testing.T) {
	s := &stubSkill{
		name:    "exploding",
		handles: []string{"x"},
		execute: func(ctx context.Context, req Request) Response {
			panic("boom")
		},
	}
	r := NewRegistry(s)

	resp, handled := r.Dispatch(context.Background(), Request{Intent: intentWith("x")})
	require.True(t, handled)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "boom")
}

func TestRegistry_FailureResponsePassedThrough(t *testing.T) {
	s := &stubSkill{
		name:    "failing",
		handles: []string{"x"},
		execute: func(ctx context.Context, req Request) Response {
			return Fail("failing", "expected failure")
		},
	}
	r := NewRegistry(s)

	resp, handled := r.Dispatch(context.Background(), Request{Intent: intentWith("x")})
	require.True(t, handled)
	assert.False(t, resp.Success)
	assert.Equal(t, "expected failure", resp.Error)
}
