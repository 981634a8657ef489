package taskparse

import (
	"testing"
	"time"

	"quickcap/internal/domain"
)

// A Monday, so weekday math is predictable.
var monday = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

func TestParseFullExample(t *testing.T) {
	got := Parse("Call Bob tomorrow 2pm 30m !high #sales", monday)

	if got.Text != "Call Bob" {
		t.Fatalf("Text = %q, want %q", got.Text, "Call Bob")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "sales" {
		t.Fatalf("Tags = %v, want [sales]", got.Tags)
	}
	if got.Priority != domain.PriorityHigh {
		t.Fatalf("Priority = %q, want high", got.Priority)
	}
	if got.Duration != 30 {
		t.Fatalf("Duration = %d, want 30", got.Duration)
	}
	if got.Time != "2pm" {
		t.Fatalf("Time = %q, want 2pm", got.Time)
	}
	wantDate := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	if got.Date == nil || !got.Date.Equal(wantDate) {
		t.Fatalf("Date = %v, want %v", got.Date, wantDate)
	}
}

func TestParseTags(t *testing.T) {
	got := Parse("ship update #launch #email #launch", monday)
	if len(got.Tags) != 2 || got.Tags[0] != "launch" || got.Tags[1] != "email" {
		t.Fatalf("Tags = %v, want [launch email] deduped in order", got.Tags)
	}
	if got.Text != "ship update" {
		t.Fatalf("Text = %q, want %q", got.Text, "ship update")
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Priority
	}{
		{"fix the form !high", domain.PriorityHigh},
		{"fix the form !med", domain.PriorityMedium},
		{"fix the form !MEDIUM", domain.PriorityMedium},
		{"fix the form !low", domain.PriorityLow},
		{"fix the form", ""},
	}
	for _, tc := range cases {
		if got := Parse(tc.input, monday); got.Priority != tc.want {
			t.Errorf("Parse(%q).Priority = %q, want %q", tc.input, got.Priority, tc.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"deep work 2h", 120},
		{"standup 15m", 15},
		{"edit pass 90min", 90},
		{"workshop 1 hour", 60},
		{"call 1hr", 60},
		{"no duration here", 0},
	}
	for _, tc := range cases {
		if got := Parse(tc.input, monday); got.Duration != tc.want {
			t.Errorf("Parse(%q).Duration = %d, want %d", tc.input, got.Duration, tc.want)
		}
	}
}

func TestParseDateChain(t *testing.T) {
	cases := []struct {
		input    string
		wantDays int // days after monday
	}{
		{"review today", 0},
		{"review tomorrow", 1},
		{"review next week", 7},
		{"review friday", 4},
		{"review sunday", 6},
	}
	for _, tc := range cases {
		got := Parse(tc.input, monday)
		want := time.Date(2026, 3, 2+tc.wantDays, 0, 0, 0, 0, time.UTC)
		if got.Date == nil || !got.Date.Equal(want) {
			t.Errorf("Parse(%q).Date = %v, want %v", tc.input, got.Date, want)
		}
		if got.Text != "review" {
			t.Errorf("Parse(%q).Text = %q, want %q", tc.input, got.Text, "review")
		}
	}
}

func TestParseDateSurvivesCaseFoldingRunes(t *testing.T) {
	// Lowercasing Ⱥ (U+023A) and İ (U+0130) changes their byte length,
	// so date offsets must come from the original text.
	got := Parse("ȺȺȺȺȺ today", monday)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got.Date == nil || !got.Date.Equal(want) {
		t.Fatalf("Date = %v, want %v", got.Date, want)
	}
	if got.Text != "ȺȺȺȺȺ" {
		t.Fatalf("Text = %q, want %q", got.Text, "ȺȺȺȺȺ")
	}

	got = Parse("İstanbul trip tomorrow", monday)
	wantDate := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	if got.Date == nil || !got.Date.Equal(wantDate) {
		t.Fatalf("Date = %v, want %v", got.Date, wantDate)
	}
	if got.Text != "İstanbul trip" {
		t.Fatalf("Text = %q, want %q", got.Text, "İstanbul trip")
	}
}

func TestParseSameWeekdayResolvesNextWeek(t *testing.T) {
	got := Parse("standup monday", monday)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if got.Date == nil || !got.Date.Equal(want) {
		t.Fatalf("same weekday should land a full week out, got %v want %v", got.Date, want)
	}
}

func TestParseTimeRequiresSuffixOrMinutes(t *testing.T) {
	// Bare numbers stay in the title.
	got := Parse("review 3 PRs", monday)
	if got.Time != "" {
		t.Fatalf("bare number captured as time: %q", got.Time)
	}
	if got.Text != "review 3 PRs" {
		t.Fatalf("Text = %q, want %q", got.Text, "review 3 PRs")
	}

	got = Parse("standup 9:30", monday)
	if got.Time != "9:30" {
		t.Fatalf("Time = %q, want 9:30", got.Time)
	}

	got = Parse("lunch 12 pm", monday)
	if got.Time != "12 pm" {
		t.Fatalf("Time = %q, want %q", got.Time, "12 pm")
	}
}

func TestParseIdempotentOnCleanedText(t *testing.T) {
	first := Parse("Plan launch friday 3pm 45m !med #launch #q3", monday)
	second := Parse(first.Text, monday)

	if second.Text != first.Text {
		t.Fatalf("second pass changed text: %q -> %q", first.Text, second.Text)
	}
	if len(second.Tags) != 0 || second.Priority != "" || second.Duration != 0 ||
		second.Date != nil || second.Time != "" {
		t.Fatalf("second pass extracted residual fields: %+v", second)
	}
}

func TestParseNeverPanicsOnAdversarialInput(t *testing.T) {
	inputs := []string{
		"", "   ", "###", "!!!", "#", "!high!low", "99999999h",
		"monday tuesday wednesday", "12:99pm", "$$$ 5pm #",
		"ȺȺȺȺȺtoday", "İİİİİtoday",
	}
	for _, in := range inputs {
		got := Parse(in, monday)
		if got.Tags == nil {
			t.Errorf("Parse(%q).Tags is nil, want empty slice", in)
		}
	}
}
