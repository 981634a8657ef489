package fetcher

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestIsURL(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://example.com/post", true},
		{"http://example.com", true},
		{"www.example.com", true},
		{"  https://example.com", true},
		{"call Bob tomorrow", false},
		{"ftp://example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsURL(tc.input); got != tc.want {
			t.Errorf("IsURL(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractTextSkipsBoilerplate(t *testing.T) {
	html := `<html><head><style>body{color:red}</style></head><body>
<nav>Home About</nav>
<h1>Pricing your first workshop</h1>
<p>Charge for the outcome, not the hours.</p>
<script>track()</script>
<footer>Copyright</footer>
</body></html>`

	got := ExtractText(html, 0)
	if !strings.Contains(got, "Pricing your first workshop") {
		t.Fatalf("heading missing from %q", got)
	}
	if !strings.Contains(got, "Charge for the outcome") {
		t.Fatalf("paragraph missing from %q", got)
	}
	for _, skipped := range []string{"Home About", "track()", "Copyright", "color:red"} {
		if strings.Contains(got, skipped) {
			t.Fatalf("boilerplate %q leaked into %q", skipped, got)
		}
	}
}

func TestExtractTextTruncatesLongContent(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 5000) + "</p>"
	got := ExtractText(html, 0)
	if len(got) > defaultTextChars+3 {
		t.Fatalf("extracted text too long: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatal("truncated text should end with ellipsis")
	}
}

func TestExtractTextHonorsConfiguredLimit(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 100) + "</p>"
	got := ExtractText(html, 50)
	if len(got) > 53 {
		t.Fatalf("configured limit ignored: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatal("truncated text should end with ellipsis")
	}
	// Truncation lands on a word boundary.
	for _, f := range strings.Fields(strings.TrimSuffix(got, "...")) {
		if f != "word" {
			t.Fatalf("truncation split a word: %q", got)
		}
	}
}

func TestExtractTextTruncationIsRuneSafe(t *testing.T) {
	html := "<p>" + strings.Repeat("héllo ", 3000) + "</p>"
	got := ExtractText(html, 0)
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced an invalid rune")
	}
}

func TestExtractTextEmptyOnGarbage(t *testing.T) {
	if got := ExtractText("", 0); got != "" {
		t.Fatalf("empty input produced %q", got)
	}
}
