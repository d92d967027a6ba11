package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbeddingUnavailable means the embedding provider could not be
	// reached; no partial record is persisted when it occurs.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrMemoryNotFound means the requested memory id does not exist.
	ErrMemoryNotFound = errors.New("memory not found")

	// ErrConversationNotFound means a load-by-name did not resolve.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrSessionBusy means a turn is already in flight for the session.
	ErrSessionBusy = errors.New("session busy")
)

// ProviderError wraps a failure from the external LLM provider. The
// orchestrator converts it into a user-facing message; it never crosses
// the interface boundary.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
