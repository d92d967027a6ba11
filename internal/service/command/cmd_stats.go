package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/jarvis/internal/orchestrator"
)

type StatsCommand struct {
	orch      *orchestrator.Orchestrator
	formatter *ResponseFormatter
}

func NewStatsCommand(orch *orchestrator.Orchestrator) *StatsCommand {
	return &StatsCommand{
		orch:      orch,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Show memory and session statistics"
}

func (c *StatsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	stats, err := c.orch.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to collect stats: %w", err)
	}

	sections := []string{
		c.formatter.Info("Statistics"),
		c.formatter.Label("Active sessions", fmt.Sprintf("%d", stats.ActiveSessions)),
		c.formatter.Label("Stored memories", fmt.Sprintf("%d", stats.Memory.Total)),
	}

	types := make([]string, 0, len(stats.Memory.ByType))
	for t := range stats.Memory.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		sections = append(sections, c.formatter.Label("  "+t, fmt.Sprintf("%d", stats.Memory.ByType[t])))
	}

	sections = append(sections, c.formatter.Label("Conversation", c.orch.SessionSummary(sessionID)))
	return c.formatter.Combine(sections...), nil
}
