package embed

import (
	"context"
	"errors"

	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/pkg/retry"
	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns text into vectors through an OpenAI-compatible
// embeddings endpoint.
type Embedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	retrier *retry.Retrier
}

func NewEmbedder(cfg *config.EmbeddingConfig) *Embedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   openai.EmbeddingModel(cfg.Model),
		retrier: retry.NewDefaultRetrier(),
	}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	}

	var vector []float32
	err := e.retrier.Do(ctx, func() error {
		resp, err := e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return errors.New("empty data in embedding response")
		}
		vector = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, &core.ProviderError{Provider: "openai", Err: err}
	}
	return vector, nil
}
