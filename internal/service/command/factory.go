package command

import (
	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/memory"
	"github.com/sandevgo/jarvis/internal/orchestrator"
)

func NewCommands(
	orch *orchestrator.Orchestrator,
	convStore *conversation.FileStore,
	memories *memory.Store,
) []core.Command {
	return []core.Command{
		NewClearCommand(orch),
		NewSaveCommand(orch),
		NewLoadCommand(orch, convStore),
		NewStatsCommand(orch),
		NewMemoryCommand(memories),
	}
}
