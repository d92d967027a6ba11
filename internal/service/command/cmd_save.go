package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/jarvis/internal/orchestrator"
)

type SaveCommand struct {
	orch      *orchestrator.Orchestrator
	formatter *ResponseFormatter
}

func NewSaveCommand(orch *orchestrator.Orchestrator) *SaveCommand {
	return &SaveCommand{
		orch:      orch,
		formatter: NewResponseFormatter(),
	}
}

func (c *SaveCommand) Name() string {
	return "save"
}

func (c *SaveCommand) Description() string {
	return "Save the current conversation to disk"
}

func (c *SaveCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	filename := ""
	if len(args) > 0 {
		filename = args[0]
	}

	saved, err := c.orch.SaveSession(sessionID, filename)
	if err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Conversation saved to %s", saved)), nil
}
