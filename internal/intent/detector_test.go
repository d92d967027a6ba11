package intent

import (
	"reflect"
	"testing"

	"github.com/sandevgo/jarvis/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestDetect_PrimaryIntent(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		primary string
		action  bool
	}{
		{"remember preference", "Remember that my favorite color is blue", MemoryWrite, true},
		{"recall preference", "What's my favorite color?", MemoryRead, true},
		{"calculation", "Calculate 25 * 4 + 10", Calculate, true},
		{"schedule", "Remind me to call mom in 10 minutes", Schedule, true},
		{"schedule cancel", "Cancel my reminder 2", Schedule, true},
		{"weather", "What's the weather like in Berlin?", Weather, true},
		{"news", "Show me the latest headlines", News, true},
		{"image", "Generate an image of a sunset", Image, true},
		{"file", "Create a pdf with my notes", File, true},
		{"search", "Tell me about black holes", Search, true},
		{"unmatched", "Tell me a joke", core.IntentUnknown, false},
		{"empty", "", core.IntentUnknown, false},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text)
			assert.Equal(t, tt.primary, got.Primary)
			assert.Equal(t, tt.action, got.RequiresAction)
		})
	}
}

func TestDetect_PriorityOrder(t *testing.T) {
	d := NewDetector()

	// Matches both schedule ("remind me", "in 2 hours") and memory_write
	// ("remember that"); schedule outranks memory_write.
	got := d.Detect("Remember that you should remind me in 2 hours")
	assert.Equal(t, Schedule, got.Primary)
	assert.Contains(t, got.All, MemoryWrite)

	// Matches both calculate and search ("what is"); calculate wins.
	got = d.Detect("What is 2 + 2?")
	assert.Equal(t, Calculate, got.Primary)
	assert.Contains(t, got.All, Search)
}

func TestDetect_PrimaryAlwaysInAll(t *testing.T) {
	d := NewDetector()
	inputs := []string{
		"Remember that my favorite color is blue",
		"remind me tomorrow at 9am to stretch",
		"calculate 7 * 6",
		"weather forecast for tomorrow",
		"completely unmatched gibberish",
		"",
	}
	for _, text := range inputs {
		got := d.Detect(text)
		assert.Contains(t, got.All, got.Primary, "input %q", text)
		assert.NotEmpty(t, got.All)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	d := NewDetector()
	text := "Remind me tomorrow at 9:30 to calculate 12 * 12, it's urgent"

	first := d.Detect(text)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, d.Detect(text)) {
			t.Fatalf("detection not deterministic on call %d", i)
		}
	}
}

func TestDetect_Urgency(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"do it now, it's urgent", core.UrgencyHigh},
		{"remind me asap", core.UrgencyHigh},
		{"remind me tonight", core.UrgencyMedium},
		{"I need this done soon", core.UrgencyMedium},
		{"tell me about whales", core.UrgencyLow},
	}

	d := NewDetector()
	for _, tt := range tests {
		got := d.Detect(tt.text)
		assert.Equal(t, tt.want, got.Urgency, "input %q", tt.text)
	}
}

func TestDetect_Entities(t *testing.T) {
	d := NewDetector()

	got := d.Detect(`Remind me tomorrow at 9:30 am to check https://example.com and note "buy milk"`)
	assert.Equal(t, "tomorrow", got.Entities["date"])
	assert.Equal(t, "9:30 am", got.Entities["time"])
	assert.Equal(t, "https://example.com", got.Entities["url"])
	assert.Equal(t, "buy milk", got.Entities["quoted"])

	got = d.Detect("Calculate 25 * 4 + 10")
	assert.Equal(t, "25 * 4 + 10", got.Entities["expression"])
	assert.Equal(t, "25", got.Entities["number"])

	// No match leaves the entity unset, not empty-valued.
	got = d.Detect("hello there")
	_, ok := got.Entities["date"]
	assert.False(t, ok)
}
