package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/jarvis/internal/memory"
)

type MemoryCommand struct {
	store     *memory.Store
	formatter *ResponseFormatter
}

func NewMemoryCommand(store *memory.Store) *MemoryCommand {
	return &MemoryCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoryCommand) Name() string {
	return "memory"
}

func (c *MemoryCommand) Description() string {
	return "Inspect or prune long-term memory"
}

func (c *MemoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.usage(), nil
	}

	switch args[0] {
	case "recent":
		n := 5
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil || parsed <= 0 {
				return c.usage(), nil
			}
			n = parsed
		}
		return c.recent(ctx, n)

	case "forget":
		if len(args) < 2 {
			return c.usage(), nil
		}
		if err := c.store.Delete(ctx, args[1]); err != nil {
			return "", fmt.Errorf("failed to delete memory: %w", err)
		}
		return c.formatter.Success("Memory deleted"), nil

	case "prune":
		days := 30
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil || parsed <= 0 {
				return c.usage(), nil
			}
			days = parsed
		}
		count, err := c.store.ClearOld(ctx, days)
		if err != nil {
			return "", fmt.Errorf("failed to prune memories: %w", err)
		}
		return c.formatter.Success(fmt.Sprintf("Removed %d memories older than %d days", count, days)), nil

	default:
		return c.usage(), nil
	}
}

func (c *MemoryCommand) recent(ctx context.Context, n int) (string, error) {
	records, err := c.store.RecentConversations(ctx, n)
	if err != nil {
		return "", fmt.Errorf("failed to list memories: %w", err)
	}
	if len(records) == 0 {
		return "No conversation memories stored yet.", nil
	}

	items := make([]string, 0, len(records))
	for _, rec := range records {
		items = append(items, fmt.Sprintf("[%s] %s", rec.ID, rec.Content))
	}
	return c.formatter.Combine(
		c.formatter.Info("Recent memories"),
		c.formatter.List(items),
	), nil
}

func (c *MemoryCommand) usage() string {
	return c.formatter.Combine(
		c.formatter.Info("Memory"),
		c.formatter.Usage("/memory recent [n]"),
		c.formatter.Usage("/memory forget [id]"),
		c.formatter.Usage("/memory prune [days]"),
	)
}
