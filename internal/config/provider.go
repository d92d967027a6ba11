package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/jarvis/pkg/log"
)

type ProviderConfig struct {
	APIKey      string  `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL     string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model       string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS" envDefault:"1024"`
	Temperature float32 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

type EmbeddingConfig struct {
	APIKey  string `env:"EMBEDDING_API_KEY,expand" envDefault:"${OPENAI_API_KEY}"`
	BaseURL string `env:"EMBEDDING_BASE_URL,expand" envDefault:"${OPENAI_BASE_URL}"`
	Model   string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
