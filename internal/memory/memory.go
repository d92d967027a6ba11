package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/pkg/log"
)

// Store is the long-term, semantically searchable memory. Embedding is
// delegated to the provider; ranking, tie-breaking and type filtering
// happen here so retrieval order is deterministic and testable without
// the backend.
type Store struct {
	repo     core.MemoriesRepository
	embedder core.Embedder
	now      func() time.Time
}

func NewStore(repo core.MemoriesRepository, embedder core.Embedder) *Store {
	return &Store{
		repo:     repo,
		embedder: embedder,
		now:      time.Now,
	}
}

// Save persists one memory record and returns its id. When the embedding
// provider is unreachable it fails with core.ErrEmbeddingUnavailable and
// nothing is persisted.
func (s *Store) Save(ctx context.Context, content string, metadata map[string]string, memoryType string) (string, error) {
	if memoryType == "" {
		memoryType = core.MemoryConversation
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrEmbeddingUnavailable, err)
	}

	rec := core.MemoryRecord{
		ID:        uuid.NewString(),
		Content:   content,
		Embedding: embedding,
		Type:      memoryType,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("persist memory: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("id", rec.ID).Str("type", memoryType).Msg("stored memory")
	return rec.ID, nil
}

// Retrieve ranks all eligible records against the query by cosine
// similarity, higher first, ties broken by more recent CreatedAt. Returns
// up to n records; an empty store yields an empty result, not an error.
func (s *Store) Retrieve(ctx context.Context, query string, n int, memoryType string) ([]core.MemoryRecord, error) {
	if n <= 0 {
		n = 5
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbeddingUnavailable, err)
	}

	candidates, err := s.repo.List(ctx, memoryType)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	for i := range candidates {
		candidates[i].Similarity = cosineSimilarity(queryVec, candidates[i].Embedding)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// SaveConversation captures one full exchange as a conversation record so
// later retrieval can reconstruct both sides.
func (s *Store) SaveConversation(ctx context.Context, userMessage, assistantMessage string) (string, error) {
	content := fmt.Sprintf("User: %s\nAssistant: %s", userMessage, assistantMessage)
	metadata := map[string]string{
		"user_message":      userMessage,
		"assistant_message": assistantMessage,
	}
	return s.Save(ctx, content, metadata, core.MemoryConversation)
}

func (s *Store) SaveFact(ctx context.Context, fact, category string) (string, error) {
	var metadata map[string]string
	if category != "" {
		metadata = map[string]string{"category": category}
	}
	return s.Save(ctx, fact, metadata, core.MemoryFact)
}

func (s *Store) SavePreference(ctx context.Context, preference, key string) (string, error) {
	var metadata map[string]string
	if key != "" {
		metadata = map[string]string{"key": key}
	}
	return s.Save(ctx, preference, metadata, core.MemoryPreference)
}

// RecentConversations returns the newest conversation-typed records.
func (s *Store) RecentConversations(ctx context.Context, n int) ([]core.MemoryRecord, error) {
	records, err := s.repo.List(ctx, core.MemoryConversation)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Stats reflects the persisted set exactly.
func (s *Store) Stats(ctx context.Context) (core.MemoryStats, error) {
	return s.repo.Stats(ctx)
}

// Delete removes one record. The first call succeeds, any retry fails
// with core.ErrMemoryNotFound; state after both equals state after one.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ClearOld removes records older than the given number of days and
// returns how many were deleted.
func (s *Store) ClearOld(ctx context.Context, days int) (int, error) {
	cutoff := s.now().AddDate(0, 0, -days)
	count, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	log.FromCtx(ctx).Info().Int("count", count).Int("days", days).Msg("cleared old memories")
	return count, nil
}
