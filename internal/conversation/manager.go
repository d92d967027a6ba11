package conversation

import (
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
)

// Manager owns the ordered message history of one session. Message order
// is append-only and monotonic in time. All operations are synchronous
// and non-blocking.
type Manager struct {
	mu       sync.RWMutex
	id       string
	messages []core.Message

	countTokens TokenCounter
	store       *FileStore
	now         func() time.Time
}

type Option func(*Manager)

// WithTokenCounter overrides the token estimation function.
func WithTokenCounter(tc TokenCounter) Option {
	return func(m *Manager) { m.countTokens = tc }
}

// WithClock overrides timestamp generation. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store *FileStore, opts ...Option) *Manager {
	m := &Manager{
		countTokens: DefaultTokenCounter,
		store:       store,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.id = newConversationID(m.now())
	return m
}

func newConversationID(t time.Time) string {
	return fmt.Sprintf("conv_%s", t.Format("20060102_150405"))
}

func (m *Manager) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

// AddMessage appends a message with a manager-assigned timestamp.
func (m *Manager) AddMessage(role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, core.Message{
		Role:      role,
		Content:   content,
		Timestamp: m.now(),
	})
}

// Messages returns up to limit most recent messages in original order.
// limit <= 0 means all. System messages are filtered out unless
// includeSystem is set.
func (m *Manager) Messages(limit int, includeSystem bool) []core.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		if !includeSystem && msg.Role == core.RoleSystem {
			continue
		}
		out = append(out, msg)
	}

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// ContextMessages returns the largest message suffix whose estimated token
// total fits maxTokens. The most recent message is always included even
// when it alone exceeds the budget, so the slice is only empty for an
// empty conversation. Idempotent for an unchanged history and budget.
func (m *Manager) ContextMessages(maxTokens int) []core.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.messages) == 0 {
		return nil
	}

	total := 0
	start := len(m.messages)
	for i := len(m.messages) - 1; i >= 0; i-- {
		cost := m.countTokens(m.messages[i].Content)
		if total+cost > maxTokens && start < len(m.messages) {
			break
		}
		total += cost
		start = i
	}

	out := make([]core.Message, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out
}

// Clear resets the history and rotates the conversation id. Irreversible.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.id = newConversationID(m.now())
}

// Summary describes the current conversation by message counts.
func (m *Manager) Summary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.messages) == 0 {
		return "No messages in current conversation"
	}

	var user, assistant int
	for _, msg := range m.messages {
		switch msg.Role {
		case core.RoleUser:
			user++
		case core.RoleAssistant:
			assistant++
		}
	}
	return fmt.Sprintf("Conversation %s: %d messages (%d user, %d assistant)",
		m.id, len(m.messages), user, assistant)
}

// Save persists the full history. An empty filename derives one from the
// conversation id. Returns the filename written.
func (m *Manager) Save(filename string) (string, error) {
	m.mu.RLock()
	id := m.id
	messages := make([]core.Message, len(m.messages))
	copy(messages, m.messages)
	m.mu.RUnlock()

	if filename == "" {
		filename = id + ".json"
	}
	if err := m.store.Save(filename, id, messages); err != nil {
		return "", fmt.Errorf("save conversation: %w", err)
	}
	return filename, nil
}

// Load replaces the current history with a previously saved one. Fails
// with core.ErrConversationNotFound when filename does not resolve; the
// in-memory history is untouched on any failure.
func (m *Manager) Load(filename string) error {
	id, messages, err := m.store.Load(filename)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	m.messages = messages
	return nil
}
