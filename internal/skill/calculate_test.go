package skill

import (
	"context"
	"testing"

	"github.com/sandevgo/jarvis/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr    string
		want    float64
		wantErr bool
	}{
		{"25 * 4 + 10", 110, false},
		{"2 + 3 * 4", 14, false},
		{"(2 + 3) * 4", 20, false},
		{"10 / 4", 2.5, false},
		{"2 ^ 10", 1024, false},
		{"2 ^ 3 ^ 2", 512, false}, // right-associative
		{"-5 + 3", -2, false},
		{"3.5 * 2", 7, false},
		{"1 / 0", 0, true},
		{"2 +", 0, true},
		{"hello", 0, true},
		{"(1 + 2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evaluate(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateSkill_Execute(t *testing.T) {
	s := NewCalculateSkill()
	d := intent.NewDetector()

	text := "Calculate 25 * 4 + 10"
	res := d.Detect(text)
	require.True(t, s.CanHandle(res))

	resp := s.Execute(context.Background(), Request{Text: text, Intent: res})
	require.True(t, resp.Success, "error: %s", resp.Error)
	assert.Equal(t, float64(110), resp.Data["result"])
	assert.Contains(t, resp.Message, "= 110")
}

func TestCalculateSkill_WordOperators(t *testing.T) {
	s := NewCalculateSkill()
	d := intent.NewDetector()

	text := "what is 6 times 7"
	resp := s.Execute(context.Background(), Request{Text: text, Intent: d.Detect(text)})
	require.True(t, resp.Success, "error: %s", resp.Error)
	assert.Equal(t, float64(42), resp.Data["result"])
}

func TestCalculateSkill_Unevaluable(t *testing.T) {
	s := NewCalculateSkill()
	resp := s.Execute(context.Background(), Request{Text: "calculate the meaning of life"})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}
