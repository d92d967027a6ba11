package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger satisfies goose's Logger interface so migration output
// goes through the context logger instead of the standard log package.
type GooseLogger struct {
	logger *zerolog.Logger
}

// NewGooseLoggerFromCtx wraps the logger carried on ctx for use with
// goose.SetLogger.
func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{logger: FromCtx(ctx)}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Info().Msgf(format, v...)
}
