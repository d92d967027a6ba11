package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/jarvis/internal/config"
	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/sandevgo/jarvis/internal/memory"
	"github.com/sandevgo/jarvis/internal/orchestrator"
	"github.com/sandevgo/jarvis/internal/skill"
)

type staticLLM struct {
	reply string
}

func (s *staticLLM) Generate(ctx context.Context, messages []core.Message, maxTokens int, temperature float32) (string, error) {
	return s.reply, nil
}

func (s *staticLLM) Stream(ctx context.Context, messages []core.Message, maxTokens int, temperature float32) (<-chan core.Fragment, error) {
	return nil, errors.New("not implemented")
}

type staticEmbedder struct{}

func (staticEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

type nopRepo struct{}

func (nopRepo) Insert(ctx context.Context, rec core.MemoryRecord) error { return nil }
func (nopRepo) List(ctx context.Context, memoryType string) ([]core.MemoryRecord, error) {
	return nil, nil
}
func (nopRepo) Delete(ctx context.Context, id string) error { return core.ErrMemoryNotFound }
func (nopRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}
func (nopRepo) Stats(ctx context.Context) (core.MemoryStats, error) {
	return core.MemoryStats{ByType: map[string]int{}}, nil
}

func newTestHandler(t *testing.T) *handler {
	t.Helper()

	store := memory.NewStore(nopRepo{}, staticEmbedder{})
	registry := skill.NewRegistry(skill.NewCalculateSkill())
	convStore, err := conversation.NewFileStore(t.TempDir())
	require.NoError(t, err)

	orch := orchestrator.New(
		intent.NewDetector(),
		registry,
		&staticLLM{reply: "hello from the model"},
		store,
		convStore,
		&config.AppConfig{ContextMaxTokens: 2000, MemoryResults: 5},
		&config.ProviderConfig{Model: "test", MaxTokens: 256, Temperature: 0.7},
	)
	return &handler{orch: orch}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestChatSkillReply(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.chat, http.MethodPost, "/api/chat",
		`{"session_id":"web-1","message":"Calculate 25 * 4 + 10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "calculate", resp.Skill)
	assert.Contains(t, resp.Reply, "110")
	assert.NotEmpty(t, resp.ReplyHTML)
	assert.Equal(t, "calculate", resp.Intent.Primary)
}

func TestChatFallbackReply(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.chat, http.MethodPost, "/api/chat",
		`{"message":"Tell me a joke"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Skill)
	assert.Equal(t, "hello from the model", resp.Reply)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.chat, http.MethodPost, "/api/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryAfterChat(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h.chat, http.MethodPost, "/api/chat",
		`{"session_id":"web-2","message":"Calculate 1 + 1"}`)

	rec := doJSON(t, h.history, http.MethodGet, "/api/history?session_id=web-2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string         `json:"session_id"`
		Messages  []core.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "web-2", resp.SessionID)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, core.RoleUser, resp.Messages[0].Role)
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h.stats, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp orchestrator.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ActiveSessions)
}

func TestClearEndpoint(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h.chat, http.MethodPost, "/api/chat",
		`{"session_id":"web-3","message":"Calculate 1 + 1"}`)

	rec := doJSON(t, h.clear, http.MethodPost, "/api/clear", `{"session_id":"web-3"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	hist := doJSON(t, h.history, http.MethodGet, "/api/history?session_id=web-3", "")
	var resp struct {
		Messages []core.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(hist.Body.Bytes(), &resp))
	assert.Empty(t, resp.Messages)
}
