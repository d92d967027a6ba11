package core

import (
	"context"
	"time"
)

// MemoriesRepository persists MemoryRecords. Implementations must be safe
// for concurrent use from multiple sessions.
type MemoriesRepository interface {
	Insert(ctx context.Context, rec MemoryRecord) error
	List(ctx context.Context, memoryType string) ([]MemoryRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	Stats(ctx context.Context) (MemoryStats, error)
}

// RemindersRepository persists reminders for the schedule skill.
type RemindersRepository interface {
	Insert(ctx context.Context, r Reminder) (int64, error)
	ListPending(ctx context.Context, sessionID string) ([]Reminder, error)
	Delete(ctx context.Context, id int64) error
}
