package skill

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemindersRepo struct {
	mu        sync.Mutex
	nextID    int64
	reminders []core.Reminder
}

func (r *fakeRemindersRepo) Insert(ctx context.Context, rem core.Reminder) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rem.ID = r.nextID
	r.reminders = append(r.reminders, rem)
	return rem.ID, nil
}

func (r *fakeRemindersRepo) ListPending(ctx context.Context, sessionID string) ([]core.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Reminder
	for _, rem := range r.reminders {
		if rem.SessionID == sessionID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeRemindersRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rem := range r.reminders {
		if rem.ID == id {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

var scheduleNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func newScheduleSkillUnderTest() (*ScheduleSkill, *fakeRemindersRepo) {
	repo := &fakeRemindersRepo{}
	s := NewScheduleSkill(repo)
	s.now = func() time.Time { return scheduleNow }
	return s, repo
}

func TestParseDueTime(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
		ok   bool
	}{
		{"remind me in 10 minutes", scheduleNow.Add(10 * time.Minute), true},
		{"remind me in 2 hours", scheduleNow.Add(2 * time.Hour), true},
		{"remind me in 3 days", scheduleNow.AddDate(0, 0, 3), true},
		{"remind me at 15:30", time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC), true},
		{"remind me at 9pm", time.Date(2026, 8, 29, 21, 0, 0, 0, time.UTC), true},
		{"remind me tomorrow at 8am", time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC), true},
		{"remind me tomorrow", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), true},
		// Past clock times roll to the next day
		{"remind me at 8am", time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC), true},
		{"remind me whenever", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseDueTime(tt.text, scheduleNow)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestScheduleSkill_CreateReminder(t *testing.T) {
	s, repo := newScheduleSkillUnderTest()
	d := intent.NewDetector()

	text := "Remind me to call mom in 10 minutes"
	res := d.Detect(text)
	require.True(t, s.CanHandle(res))

	resp := s.Execute(context.Background(), Request{SessionID: "s1", Text: text, Intent: res})
	require.True(t, resp.Success, "error: %s", resp.Error)

	require.Len(t, repo.reminders, 1)
	rem := repo.reminders[0]
	assert.Equal(t, "call mom", rem.Message)
	assert.True(t, scheduleNow.Add(10*time.Minute).Equal(rem.DueAt))
	assert.Equal(t, "s1", rem.SessionID)
}

func TestScheduleSkill_ListReminders(t *testing.T) {
	s, repo := newScheduleSkillUnderTest()
	d := intent.NewDetector()

	_, err := repo.Insert(context.Background(), core.Reminder{
		SessionID: "s1",
		Message:   "stretch",
		DueAt:     scheduleNow.Add(time.Hour),
	})
	require.NoError(t, err)

	text := "List my schedule reminders"
	resp := s.Execute(context.Background(), Request{SessionID: "s1", Text: text, Intent: d.Detect(text)})
	require.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data["count"])
	assert.Contains(t, resp.Message, "stretch")
}

func TestScheduleSkill_DeleteReminder(t *testing.T) {
	s, repo := newScheduleSkillUnderTest()
	d := intent.NewDetector()

	id, err := repo.Insert(context.Background(), core.Reminder{
		SessionID: "s1",
		Message:   "stretch",
		DueAt:     scheduleNow.Add(time.Hour),
	})
	require.NoError(t, err)

	text := "Cancel reminder 1"
	res := d.Detect(text)
	require.True(t, s.CanHandle(res))

	resp := s.Execute(context.Background(), Request{SessionID: "s1", Text: text, Intent: res})
	require.True(t, resp.Success, "error: %s", resp.Error)
	assert.Equal(t, id, resp.Data["reminder_id"])
	assert.Empty(t, repo.reminders)

	// Already gone
	resp = s.Execute(context.Background(), Request{SessionID: "s1", Text: text, Intent: res})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "no reminder #1")
}

func TestScheduleSkill_DeleteWithoutNumber(t *testing.T) {
	s, repo := newScheduleSkillUnderTest()

	_, err := repo.Insert(context.Background(), core.Reminder{
		SessionID: "s1",
		Message:   "stretch",
		DueAt:     scheduleNow.Add(time.Hour),
	})
	require.NoError(t, err)

	resp := s.Execute(context.Background(), Request{SessionID: "s1", Text: "delete my reminder"})
	assert.False(t, resp.Success)
	require.Len(t, repo.reminders, 1)
}

func TestScheduleSkill_UnparseableTime(t *testing.T) {
	s, repo := newScheduleSkillUnderTest()

	resp := s.Execute(context.Background(), Request{Text: "remind me whenever you feel like it"})
	assert.False(t, resp.Success)
	assert.Empty(t, repo.reminders)
}
