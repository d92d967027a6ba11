package skill

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/sandevgo/jarvis/internal/intent"
)

// DatetimeSkill answers current time and date questions directly, without
// going through the LLM.
type DatetimeSkill struct {
	now func() time.Time
}

func NewDatetimeSkill() *DatetimeSkill {
	return &DatetimeSkill{now: time.Now}
}

func (s *DatetimeSkill) Name() string { return "datetime" }

func (s *DatetimeSkill) CanHandle(res core.IntentResult) bool {
	return res.Has(intent.Datetime)
}

var timeQueryRe = regexp.MustCompile(`(?i)what time is it|current time`)

func (s *DatetimeSkill) Execute(ctx context.Context, req Request) Response {
	now := s.now()
	if timeQueryRe.MatchString(req.Text) {
		return Ok(s.Name(),
			fmt.Sprintf("It's %s.", now.Format("15:04")),
			map[string]any{"time": now.Format("15:04:05")},
		)
	}
	return Ok(s.Name(),
		fmt.Sprintf("Today is %s.", now.Format("Monday, January 2, 2006")),
		map[string]any{"date": now.Format("2006-01-02")},
	)
}
