package skill

import (
	"context"

	"github.com/sandevgo/jarvis/internal/core"
)

// Request carries everything a skill may need to act on one turn.
type Request struct {
	SessionID string
	Text      string
	Intent    core.IntentResult
}

// Response is the normalized result of one skill execution. Data and
// Message are meaningful on success, Error on failure.
type Response struct {
	Success bool           `json:"success"`
	Skill   string         `json:"skill,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func Ok(skillName, message string, data map[string]any) Response {
	return Response{Success: true, Skill: skillName, Message: message, Data: data}
}

func Fail(skillName, errMsg string) Response {
	return Response{Success: false, Skill: skillName, Error: errMsg}
}

// Skill is one capability the dispatcher can route an intent to.
type Skill interface {
	Name() string
	CanHandle(intent core.IntentResult) bool
	Execute(ctx context.Context, req Request) Response
}
