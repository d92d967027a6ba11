package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/orchestrator"
	"github.com/sandevgo/jarvis/internal/service/ui"
	"github.com/sandevgo/jarvis/pkg/log"
)

const defaultSessionID = "cli-local"

// ReadLine is the interactive terminal front end. Slash commands are
// routed locally; everything else goes through the orchestrator.
type ReadLine struct {
	cfg    *config.AppConfig
	orch   *orchestrator.Orchestrator
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(orch *orchestrator.Orchestrator, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		orch:   orch,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("CLI chat started")

	fmt.Fprintln(r.rl.Stdout(), ui.TitleStyle.Render(fmt.Sprintf("%s %s", core.JarvisName, core.JarvisVersion)))
	fmt.Fprintln(r.rl.Stdout(), ui.MutedStyle.Render("Type /help for commands, 'exit' to quit."))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		if line == "/help" {
			fmt.Fprintln(r.rl.Stdout(), r.helpText())
			continue
		}
		if out, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintln(r.rl.Stdout(), out)
			continue
		}

		res, err := r.orch.Turn(ctx, defaultSessionID, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error().Err(err).Msg("turn failed")
			fmt.Fprintln(r.rl.Stdout(), ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			continue
		}

		if res.Skill != "" {
			fmt.Fprintln(r.rl.Stdout(), ui.SkillStyle.Render(fmt.Sprintf("[%s]", res.Skill)))
		}
		fmt.Fprintln(r.rl.Stdout(), ui.ReplyStyle.Render(res.Reply))
	}
}

func (r *ReadLine) helpText() string {
	commands := r.router.ListCommands()
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})

	var sb strings.Builder
	sb.WriteString(ui.TitleStyle.Render("Commands"))
	sb.WriteString("\n")
	for _, cmd := range commands {
		sb.WriteString(fmt.Sprintf("  /%s  %s\n", cmd.Name(), ui.MutedStyle.Render(cmd.Description())))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
