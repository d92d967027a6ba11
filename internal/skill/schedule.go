package skill

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
)

// ScheduleSkill creates and lists reminders. Reminders are persisted so
// they survive restarts; delivery is left to the interface layer.
type ScheduleSkill struct {
	repo core.RemindersRepository
	now  func() time.Time
}

func NewScheduleSkill(repo core.RemindersRepository) *ScheduleSkill {
	return &ScheduleSkill{repo: repo, now: time.Now}
}

func (s *ScheduleSkill) Name() string { return "schedule" }

func (s *ScheduleSkill) CanHandle(res core.IntentResult) bool {
	return res.Has(intent.Schedule)
}

var (
	listRemindersRe  = regexp.MustCompile(`(?i)\b(list|show|what are)\b.*\breminders?\b`)
	deleteReminderRe = regexp.MustCompile(`(?i)\b(cancel|delete|remove)\b.*\breminders?\b`)
	reminderNumberRe = regexp.MustCompile(`\d+`)
	relativeTimeRe   = regexp.MustCompile(`(?i)\bin (\d+) (minutes?|hours?|days?)\b`)
	clockTimeRe      = regexp.MustCompile(`(?i)\bat (\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	reminderMsgRe    = regexp.MustCompile(`(?i)remind me (?:to |about |that )?(.+)`)
)

func (s *ScheduleSkill) Execute(ctx context.Context, req Request) Response {
	switch {
	case deleteReminderRe.MatchString(req.Text):
		return s.delete(ctx, req)
	case listRemindersRe.MatchString(req.Text):
		return s.list(ctx, req)
	default:
		return s.create(ctx, req)
	}
}

func (s *ScheduleSkill) create(ctx context.Context, req Request) Response {
	dueAt, ok := parseDueTime(req.Text, s.now())
	if !ok {
		return Fail(s.Name(), "could not understand when to remind you")
	}

	message := req.Text
	if m := reminderMsgRe.FindStringSubmatch(req.Text); m != nil {
		message = stripTimePhrases(m[1])
	}
	message = strings.TrimRight(strings.TrimSpace(message), ".! ")
	if message == "" {
		message = "reminder"
	}

	rem := core.Reminder{
		SessionID: req.SessionID,
		Message:   message,
		DueAt:     dueAt,
		CreatedAt: s.now(),
	}
	id, err := s.repo.Insert(ctx, rem)
	if err != nil {
		return Fail(s.Name(), fmt.Sprintf("failed to save reminder: %v", err))
	}

	return Ok(s.Name(),
		fmt.Sprintf("Reminder set for %s: %s", dueAt.Format("Mon Jan 2 15:04"), message),
		map[string]any{
			"reminder_id": id,
			"message":     message,
			"due_at":      dueAt,
		},
	)
}

func (s *ScheduleSkill) list(ctx context.Context, req Request) Response {
	reminders, err := s.repo.ListPending(ctx, req.SessionID)
	if err != nil {
		return Fail(s.Name(), fmt.Sprintf("failed to list reminders: %v", err))
	}
	if len(reminders) == 0 {
		return Ok(s.Name(), "You have no reminders.", map[string]any{"count": 0})
	}

	var lines []string
	for _, rem := range reminders {
		lines = append(lines, fmt.Sprintf("#%d %s › %s", rem.ID, rem.DueAt.Format("Mon Jan 2 15:04"), rem.Message))
	}
	return Ok(s.Name(),
		fmt.Sprintf("You have %d reminder(s):\n%s", len(reminders), strings.Join(lines, "\n")),
		map[string]any{"count": len(reminders)},
	)
}

// delete cancels one reminder by the number shown in the list output.
func (s *ScheduleSkill) delete(ctx context.Context, req Request) Response {
	matches := reminderNumberRe.FindAllString(req.Text, -1)
	if len(matches) == 0 {
		return Fail(s.Name(), "tell me which reminder number to cancel, e.g. \"cancel reminder 2\"")
	}

	id, err := strconv.ParseInt(matches[len(matches)-1], 10, 64)
	if err != nil {
		return Fail(s.Name(), "tell me which reminder number to cancel, e.g. \"cancel reminder 2\"")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Fail(s.Name(), fmt.Sprintf("there is no reminder #%d", id))
		}
		return Fail(s.Name(), fmt.Sprintf("failed to cancel reminder: %v", err))
	}

	return Ok(s.Name(),
		fmt.Sprintf("Reminder #%d cancelled.", id),
		map[string]any{"reminder_id": id},
	)
}

// parseDueTime understands "in N minutes/hours/days", "at HH[:MM] [am|pm]"
// and "tomorrow [at ...]".
func parseDueTime(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	if m := relativeTimeRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch {
		case strings.HasPrefix(m[2], "minute"):
			return now.Add(time.Duration(n) * time.Minute), true
		case strings.HasPrefix(m[2], "hour"):
			return now.Add(time.Duration(n) * time.Hour), true
		default:
			return now.AddDate(0, 0, n), true
		}
	}

	base := now
	tomorrow := strings.Contains(lower, "tomorrow")
	if tomorrow {
		base = now.AddDate(0, 0, 1)
	}

	if m := clockTimeRe.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}
		due := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
		if !tomorrow && due.Before(now) {
			due = due.AddDate(0, 0, 1)
		}
		return due, true
	}

	if tomorrow {
		// Default to 9am when only a day was given
		return time.Date(base.Year(), base.Month(), base.Day(), 9, 0, 0, 0, base.Location()), true
	}

	return time.Time{}, false
}

func stripTimePhrases(text string) string {
	text = relativeTimeRe.ReplaceAllString(text, "")
	text = clockTimeRe.ReplaceAllString(text, "")
	text = regexp.MustCompile(`(?i)\btomorrow\b`).ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
