package aidetect

import (
	"strings"
	"testing"
)

func TestCheckEmptyText(t *testing.T) {
	got := Check("")
	if got.Score != 0 {
		t.Fatalf("empty text score = %d, want 0", got.Score)
	}
	if len(got.Warnings) != 0 || len(got.Suggestions) != 0 {
		t.Fatalf("empty text produced warnings: %+v", got)
	}
	if got.Warnings == nil || got.Suggestions == nil {
		t.Fatal("warnings/suggestions should be empty slices, not nil")
	}
}

func TestCheckCleanProse(t *testing.T) {
	text := "I missed the deadline last spring. Not by a day, by three weeks. " +
		"The fix wasn't a new tool. I started writing the ending first, then worked backwards until the opening felt inevitable."
	got := Check(text)
	if got.Score > 1 {
		t.Fatalf("clean prose scored %d: %v", got.Score, got.Warnings)
	}
}

func TestCheckForbiddenPhrases(t *testing.T) {
	got := Check("Let's delve into this game-changer.")
	if got.Score < 4 {
		t.Fatalf("two clichés should score at least 4, got %d: %v", got.Score, got.Warnings)
	}
	joined := strings.Join(got.Warnings, "\n")
	if !strings.Contains(joined, "delve into") || !strings.Contains(joined, "game-changer") {
		t.Fatalf("warnings missing phrase names: %v", got.Warnings)
	}
	if len(got.Suggestions) != len(got.Warnings) {
		t.Fatalf("suggestions (%d) not paired with warnings (%d)", len(got.Suggestions), len(got.Warnings))
	}
}

func TestCheckPhraseMatchIsCaseInsensitive(t *testing.T) {
	if got := Check("DELVE INTO the archives."); got.Score < 2 {
		t.Fatalf("uppercase cliché not caught, score %d", got.Score)
	}
}

func TestCheckAIPatternScoredOncePerType(t *testing.T) {
	once := Check("Here's what matters.")
	twice := Check("Here's what matters. Here's what counts.")
	if once.Score != twice.Score {
		t.Fatalf("pattern scored per occurrence: %d vs %d", once.Score, twice.Score)
	}
}

func TestCheckMonotonicUnderAppendedCliches(t *testing.T) {
	base := "The workshop sold out in a week. We capped it at forty seats on purpose."
	prev := Check(base).Score
	text := base
	for _, phrase := range []string{"It was a game-changer.", "We will delve into why.", "It will revolutionize your mornings."} {
		text += " " + phrase
		score := Check(text).Score
		if score < prev {
			t.Fatalf("score decreased from %d to %d after appending %q", prev, score, phrase)
		}
		prev = score
	}
}

func TestCheckScoreClampedAtTen(t *testing.T) {
	var sb strings.Builder
	for _, r := range forbiddenPhrases {
		sb.WriteString(r.Phrase)
		sb.WriteString(". ")
	}
	got := Check(sb.String())
	if got.Score != 10 {
		t.Fatalf("score = %d, want clamp at 10", got.Score)
	}
	if len(got.Warnings) <= 10 {
		t.Fatalf("clamping should not drop warnings, got %d", len(got.Warnings))
	}
}

func TestCheckTripleAdjectiveList(t *testing.T) {
	got := Check("The offer is simple, clear, and generous.")
	if !hasWarning(got.Warnings, "triple-list") {
		t.Fatalf("triple list not flagged: %v", got.Warnings)
	}
}

func TestCheckUniformSentenceLength(t *testing.T) {
	text := "The cat sat on one mat. The dog sat on one rug. The hen sat on one box. The fox sat on one log."
	got := Check(text)
	if !hasWarning(got.Warnings, "uniform") {
		t.Fatalf("uniform sentence lengths not flagged: %v", got.Warnings)
	}
}

func TestCheckVariedSentenceLengthNotFlagged(t *testing.T) {
	text := "Stop. The launch email you drafted last night buries its only interesting claim under two paragraphs of warm-up. Cut the warm-up. Lead with the claim and let the proof follow in whatever order it arrived."
	got := Check(text)
	if hasWarning(got.Warnings, "uniform") {
		t.Fatalf("varied sentences wrongly flagged: %v", got.Warnings)
	}
}

func TestCheckColonSetupLines(t *testing.T) {
	text := "First point:\nsomething\nSecond point:\nsomething else\nThird point:\nmore"
	got := Check(text)
	if !hasWarning(got.Warnings, "colon") {
		t.Fatalf("colon setups not flagged: %v", got.Warnings)
	}
}

func TestCheckBulletImbalance(t *testing.T) {
	text := "- one\n- two\n- three\n- four\n- five\n- six\n- seven\n"
	got := Check(text)
	if !hasWarning(got.Warnings, "bullets") {
		t.Fatalf("bullet-heavy text not flagged: %v", got.Warnings)
	}
}

func TestAssessmentBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "excellent"}, {1, "excellent"},
		{2, "good"}, {3, "good"},
		{4, "warning"}, {5, "warning"},
		{6, "danger"}, {10, "danger"},
	}
	for _, tc := range cases {
		if got := Assessment(tc.score); got != tc.want {
			t.Errorf("Assessment(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
