package command

import (
	"context"

	"github.com/sandevgo/jarvis/internal/orchestrator"
)

type ClearCommand struct {
	orch      *orchestrator.Orchestrator
	formatter *ResponseFormatter
}

func NewClearCommand(orch *orchestrator.Orchestrator) *ClearCommand {
	return &ClearCommand{
		orch:      orch,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Clear the current conversation and start a new one"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.orch.ClearSession(sessionID)
	return c.formatter.Success("Conversation cleared"), nil
}
