package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/jarvis/internal/core"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Insert(ctx context.Context, rem core.Reminder) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (session_id, message, due_at, created_at) VALUES (?, ?, ?, ?)`,
		rem.SessionID, rem.Message, rem.DueAt.UTC(), rem.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reminder: %w", err)
	}
	return res.LastInsertId()
}

func (r *RemindersRepo) ListPending(ctx context.Context, sessionID string) ([]core.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, message, due_at, created_at FROM reminders WHERE session_id = ? ORDER BY due_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []core.Reminder
	for rows.Next() {
		var rem core.Reminder
		if err := rows.Scan(&rem.ID, &rem.SessionID, &rem.Message, &rem.DueAt, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *RemindersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
