package orchestrator

import (
	"sync"

	"github.com/sandevgo/jarvis/internal/conversation"
	"github.com/sandevgo/jarvis/internal/core"
)

// session pairs one conversation history with its in-flight guard.
type session struct {
	manager *conversation.Manager

	mu   *sync.Mutex
	busy bool
}

func (s *session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// sessionRegistry creates sessions lazily, one per session id, and
// enforces the single in-flight turn rule.
type sessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*session
	convStore *conversation.FileStore
}

func newSessionRegistry(convStore *conversation.FileStore) *sessionRegistry {
	return &sessionRegistry{
		sessions:  make(map[string]*session),
		convStore: convStore,
	}
}

// get returns the session for the id, creating it on first use.
func (r *sessionRegistry) get(sessionID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(sessionID)
}

func (r *sessionRegistry) getLocked(sessionID string) *session {
	if s, ok := r.sessions[sessionID]; ok {
		return s
	}
	s := &session{
		manager: conversation.NewManager(r.convStore),
		mu:      &r.mu,
	}
	r.sessions[sessionID] = s
	return s
}

// acquire marks the session busy for the duration of one turn.
func (r *sessionRegistry) acquire(sessionID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.getLocked(sessionID)
	if s.busy {
		return nil, core.ErrSessionBusy
	}
	s.busy = true
	return s, nil
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
