package core

import "time"

const (
	JarvisName          = "Jarvis"
	JarvisUserAgent     = "Jarvis-Assistant/0.1"
	JarvisRepositoryURL = "https://github.com/sandevgo/jarvis"
	JarvisVersion       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation entry. Immutable once appended.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Urgency levels derived from the input text.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// IntentUnknown is the fallback label when no pattern matches.
const IntentUnknown = "unknown"

// IntentResult is the outcome of classifying one input text.
// Produced fresh per input, never persisted.
type IntentResult struct {
	Primary        string            `json:"primary_intent"`
	All            []string          `json:"all_intents"`
	Entities       map[string]string `json:"entities"`
	Urgency        string            `json:"urgency"`
	RequiresAction bool              `json:"requires_action"`
}

// Has reports whether label is among the detected intents.
func (r IntentResult) Has(label string) bool {
	for _, l := range r.All {
		if l == label {
			return true
		}
	}
	return false
}

// Memory record types.
const (
	MemoryConversation = "conversation"
	MemoryFact         = "fact"
	MemoryPreference   = "preference"
)

// MemoryRecord is one durable memory entry. Content is immutable after
// creation; updates are modeled as delete+recreate.
type MemoryRecord struct {
	ID         string            `json:"id"`
	Content    string            `json:"content"`
	Embedding  []float32         `json:"-"`
	Type       string            `json:"memory_type"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Similarity float32           `json:"similarity,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// MemoryStats is a read-only aggregate over the persisted record set.
type MemoryStats struct {
	Total  int            `json:"total_memories"`
	ByType map[string]int `json:"by_type"`
}

// Reminder is one scheduled reminder owned by the schedule skill.
type Reminder struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	DueAt     time.Time `json:"due_at"`
	CreatedAt time.Time `json:"created_at"`
}
