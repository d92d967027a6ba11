package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/orchestrator"
)

type LoadCommand struct {
	orch      *orchestrator.Orchestrator
	store     *conversation.FileStore
	formatter *ResponseFormatter
}

func NewLoadCommand(orch *orchestrator.Orchestrator, store *conversation.FileStore) *LoadCommand {
	return &LoadCommand{
		orch:      orch,
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *LoadCommand) Name() string {
	return "load"
}

func (c *LoadCommand) Description() string {
	return "Load a saved conversation, or list saved ones"
}

func (c *LoadCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.listSaved()
	}

	filename := args[0]
	if err := c.orch.LoadSession(sessionID, filename); err != nil {
		if errors.Is(err, core.ErrConversationNotFound) {
			return fmt.Sprintf("No saved conversation named %q. Use /load to list them.", filename), nil
		}
		return "", fmt.Errorf("failed to load conversation: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Loaded conversation from %s", filename)), nil
}

func (c *LoadCommand) listSaved() (string, error) {
	saved, err := c.store.List()
	if err != nil {
		return "", fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(saved) == 0 {
		return "No saved conversations yet. Use /save first.", nil
	}

	items := make([]string, 0, len(saved))
	for _, meta := range saved {
		items = append(items, fmt.Sprintf("%s (%d messages, %s)",
			meta.Filename, meta.MessageCount, meta.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return c.formatter.Combine(
		c.formatter.Info("Saved conversations"),
		c.formatter.List(items),
		c.formatter.Usage("/load [filename]"),
	), nil
}
