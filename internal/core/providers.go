package core

import "context"

// LLMProvider generates free-form replies from a context slice.
// Calls are the only suspension points of a turn besides embedding.
type LLMProvider interface {
	Generate(ctx context.Context, messages []Message, maxTokens int, temperature float32) (string, error)
	Stream(ctx context.Context, messages []Message, maxTokens int, temperature float32) (<-chan Fragment, error)
}

// Fragment is one element of a finite, non-restartable reply stream.
// Err is set on the terminating fragment when the stream failed.
type Fragment struct {
	Text string
	Err  error
}

// Embedder turns text into a vector. Deterministic for identical input
// within one embedding-model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
