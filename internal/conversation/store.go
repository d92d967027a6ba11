package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
)

// FileStore persists conversation snapshots as JSON files in one
// directory. Snapshots are whole-file writes, so a completed Save always
// contains every message appended before it.
type FileStore struct {
	dir string
}

type snapshot struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	MessageCount int            `json:"message_count"`
	Messages     []core.Message `json:"messages"`
}

// Metadata describes a saved conversation without its messages.
type Metadata struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create conversations directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Save(filename, id string, messages []core.Message) error {
	snap := snapshot{
		ID:           id,
		UpdatedAt:    time.Now(),
		MessageCount: len(messages),
		Messages:     messages,
	}
	if len(messages) > 0 {
		snap.CreatedAt = messages[0].Timestamp
	} else {
		snap.CreatedAt = snap.UpdatedAt
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Write to a temp file and rename so a failed write never leaves a
	// truncated snapshot behind.
	path := filepath.Join(s.dir, filename)
	tmp, err := os.CreateTemp(s.dir, filename+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(filename string) (string, []core.Message, error) {
	path := filepath.Join(s.dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", core.ErrConversationNotFound, filename)
		}
		return "", nil, fmt.Errorf("read conversation: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return "", nil, fmt.Errorf("decode conversation %s: %w", filename, err)
	}
	return snap.ID, snap.Messages, nil
}

// List returns metadata for all saved conversations, most recently
// updated first. Unreadable files are skipped.
func (s *FileStore) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	var out []Metadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		out = append(out, Metadata{
			ID:           snap.ID,
			Filename:     entry.Name(),
			CreatedAt:    snap.CreatedAt,
			UpdatedAt:    snap.UpdatedAt,
			MessageCount: snap.MessageCount,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
