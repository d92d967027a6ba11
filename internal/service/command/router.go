package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/jarvis/internal/core"
)

// Router maps "/name arg..." input lines to registered commands. The
// second return of Execute reports whether the input was a command at
// all; non-command input falls through to the assistant.
type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	r := &Router{
		commands: make(map[string]core.Command),
	}
	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

func (r *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	return res
}
