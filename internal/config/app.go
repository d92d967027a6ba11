package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/jarvis/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"JARVIS_RUNTIME_PATH" envDefault:".jarvis"`

	// Transport flags
	EnableCLI bool `env:"ENABLE_CLI" envDefault:"true"`
	EnableWeb bool `env:"ENABLE_WEB" envDefault:"false"`

	// Context management
	ContextMaxTokens int `env:"CONTEXT_MAX_TOKENS" envDefault:"2000"`

	// Memory retrieval
	MemoryResults int `env:"MEMORY_RESULTS" envDefault:"5"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "jarvis.db")
}

func (c AppConfig) GetConversationsPath() string {
	return filepath.Join(c.RuntimePath, "conversations")
}
