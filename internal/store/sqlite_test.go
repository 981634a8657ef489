package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quickcap/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndListTasks(t *testing.T) {
	s := testStore(t)

	date := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	parsed := domain.ParsedTask{
		Text:     "Call Bob",
		Date:     &date,
		Time:     "2pm",
		Duration: 30,
		Priority: domain.PriorityHigh,
		Tags:     []string{"sales"},
	}

	task, err := s.AddTask(parsed)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID == "" {
		t.Fatal("task ID is empty")
	}

	tasks, err := s.ListTasks(10, 0)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Text != "Call Bob" || got.Duration != 30 || got.Priority != domain.PriorityHigh {
		t.Fatalf("task round trip mismatch: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "sales" {
		t.Fatalf("Tags = %v, want [sales]", got.Tags)
	}
}

func TestAddAndListCaptures(t *testing.T) {
	s := testStore(t)

	if _, err := s.AddCapture(domain.CaptureIdea, "run the summit twice a year", 0, ""); err != nil {
		t.Fatalf("AddCapture: %v", err)
	}
	if _, err := s.AddCapture(domain.CaptureExpense, "$12 stock photos", 1200, ""); err != nil {
		t.Fatalf("AddCapture: %v", err)
	}

	ideas, err := s.ListCaptures(domain.CaptureIdea, 10)
	if err != nil {
		t.Fatalf("ListCaptures: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Type != domain.CaptureIdea {
		t.Fatalf("idea filter broken: %+v", ideas)
	}

	all, err := s.ListCaptures("", 10)
	if err != nil {
		t.Fatalf("ListCaptures: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d captures, want 2", len(all))
	}
}

func TestRateGenerationAndFetchRated(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	g1, err := s.AddGeneration("u1", "sales_email", "spring cohort", "prompt", "output one", 2)
	if err != nil {
		t.Fatalf("AddGeneration: %v", err)
	}
	g2, err := s.AddGeneration("u1", "social_post", "spring cohort", "prompt", "output two", 1)
	if err != nil {
		t.Fatalf("AddGeneration: %v", err)
	}
	if _, err := s.AddGeneration("u2", "sales_email", "", "prompt", "other user", 0); err != nil {
		t.Fatalf("AddGeneration: %v", err)
	}

	// Unrated rows are invisible to the learning reader.
	rated, err := s.FetchRated(ctx, "u1", nil, 50)
	if err != nil {
		t.Fatalf("FetchRated: %v", err)
	}
	if len(rated) != 0 {
		t.Fatalf("unrated generations leaked: %+v", rated)
	}

	if err := s.RateGeneration(g1.ID, 4, []string{"too_formal"}); err != nil {
		t.Fatalf("RateGeneration: %v", err)
	}
	if err := s.RateGeneration(g2.ID, 9, []string{"great_hook"}); err != nil {
		t.Fatalf("RateGeneration: %v", err)
	}

	rated, err = s.FetchRated(ctx, "u1", nil, 50)
	if err != nil {
		t.Fatalf("FetchRated: %v", err)
	}
	if len(rated) != 2 {
		t.Fatalf("got %d rated, want 2", len(rated))
	}

	// Content-type filter scopes to the family.
	scoped, err := s.FetchRated(ctx, "u1", []string{"sales_email"}, 50)
	if err != nil {
		t.Fatalf("FetchRated: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ContentType != "sales_email" {
		t.Fatalf("content type filter broken: %+v", scoped)
	}
	if scoped[0].Rating == nil || *scoped[0].Rating != 4 {
		t.Fatalf("rating round trip mismatch: %+v", scoped[0])
	}
	if len(scoped[0].FeedbackTags) != 1 || scoped[0].FeedbackTags[0] != "too_formal" {
		t.Fatalf("feedback tags round trip mismatch: %+v", scoped[0])
	}
}

func TestRateGenerationUnknownID(t *testing.T) {
	s := testStore(t)
	if err := s.RateGeneration("missing", 5, nil); err == nil {
		t.Fatal("expected error for unknown generation id")
	}
}
