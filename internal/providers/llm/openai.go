package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/pkg/retry"
	openai "github.com/sashabaranov/go-openai"
)

// Provider generates replies through any OpenAI-compatible chat API.
type Provider struct {
	client  *openai.Client
	model   string
	retrier *retry.Retrier
}

func NewProvider(cfg *config.ProviderConfig) *Provider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		retrier: retry.NewDefaultRetrier(),
	}
}

func (p *Provider) Generate(ctx context.Context, messages []core.Message, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toChatMessages(messages),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var content string
	err := p.retrier.Do(ctx, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("empty choices in completion response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", &core.ProviderError{Provider: "openai", Err: err}
	}
	return content, nil
}

// Stream returns a finite, non-restartable sequence of reply fragments.
// The channel is closed after the final fragment; a failed stream
// terminates with a fragment carrying the error.
func (p *Provider) Stream(ctx context.Context, messages []core.Message, maxTokens int, temperature float32) (<-chan core.Fragment, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toChatMessages(messages),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      true,
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, &core.ProviderError{Provider: "openai", Err: err}
	}

	out := make(chan core.Fragment)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				out <- core.Fragment{Err: &core.ProviderError{Provider: "openai", Err: err}}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if delta := resp.Choices[0].Delta.Content; delta != "" {
				select {
				case out <- core.Fragment{Text: delta}:
				case <-ctx.Done():
					out <- core.Fragment{Err: fmt.Errorf("stream cancelled: %w", ctx.Err())}
					return
				}
			}
		}
	}()
	return out, nil
}

func toChatMessages(messages []core.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
