package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
)

type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

// Insert persists one record atomically: either the full record lands or
// nothing does.
func (r *MemoriesRepo) Insert(ctx context.Context, rec core.MemoryRecord) error {
	vecBlob, err := serializeVector(rec.Embedding)
	if err != nil {
		return err
	}

	metaJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO memories (id, content, embedding, memory_type, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Content, vecBlob, rec.Type, string(metaJSON), rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}

	return tx.Commit()
}

// List returns all records, newest first, optionally filtered by type.
func (r *MemoriesRepo) List(ctx context.Context, memoryType string) ([]core.MemoryRecord, error) {
	query := `SELECT id, content, embedding, memory_type, metadata, created_at FROM memories`
	args := []any{}
	if memoryType != "" {
		query += ` WHERE memory_type = ?`
		args = append(args, memoryType)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var records []core.MemoryRecord
	for rows.Next() {
		var rec core.MemoryRecord
		var vecBlob []byte
		var metaJSON string

		if err := rows.Scan(&rec.ID, &rec.Content, &vecBlob, &rec.Type, &metaJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}

		if rec.Embedding, err = deserializeVector(vecBlob); err != nil {
			return nil, err
		}
		if metaJSON != "" && metaJSON != "{}" {
			if err := json.Unmarshal([]byte(metaJSON), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *MemoriesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrMemoryNotFound, id)
	}
	return nil
}

func (r *MemoriesRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old memories: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *MemoriesRepo) Stats(ctx context.Context) (core.MemoryStats, error) {
	stats := core.MemoryStats{ByType: make(map[string]int)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT memory_type, COUNT(*) FROM memories GROUP BY memory_type`)
	if err != nil {
		return stats, fmt.Errorf("failed to query memory stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memoryType string
		var count int
		if err := rows.Scan(&memoryType, &count); err != nil {
			return stats, fmt.Errorf("failed to scan memory stats: %w", err)
		}
		stats.ByType[memoryType] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
