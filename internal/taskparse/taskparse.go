// Package taskparse pulls structured fields out of free task text.
//
// Extraction is a fixed sequence of destructive passes over a working
// copy of the input: each pass removes what it matched before the next
// pass runs, so later passes never re-claim text. Each pass is its own
// function so over-matching regressions are caught per field.
package taskparse

import (
	"regexp"
	"strings"
	"time"

	"quickcap/internal/domain"
)

var (
	tagRe      = regexp.MustCompile(`#(\w+)`)
	priorityRe = regexp.MustCompile(`(?i)!(high|medium|med|low)\b`)
	durationRe = regexp.MustCompile(`(?i)\b(\d+)\s*(hours?|hrs?|h|min|m)\b`)
	weekdayRe  = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	// A bare 1-2 digit number needs either a :MM part or an am/pm suffix
	// to count as a time; "review 3 PRs" keeps its 3.
	timeRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(am|pm)?\b|\b\d{1,2}\s*(am|pm)\b`)

	spaceRe = regexp.MustCompile(`\s+`)
)

// Relative date words checked in order before weekday names. Matched
// case-insensitively against the original text so offsets stay valid
// for runes whose byte length changes under case folding.
var literalDates = []struct {
	re   *regexp.Regexp
	days int
}{
	{regexp.MustCompile(`(?i)today`), 0},
	{regexp.MustCompile(`(?i)tomorrow`), 1},
	{regexp.MustCompile(`(?i)next week`), 7},
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parse extracts task fields from text, using now for relative dates.
// It never fails; unmatched fields are simply absent and the remaining
// words become the cleaned title.
func Parse(text string, now time.Time) domain.ParsedTask {
	task := domain.ParsedTask{Tags: []string{}}
	working := text

	working, task.Tags = extractTags(working)
	working, task.Priority = extractPriority(working)
	working, task.Duration = extractDuration(working)
	working, task.Date = extractDate(working, now)
	working, task.Time = extractTime(working)

	task.Text = strings.TrimSpace(spaceRe.ReplaceAllString(working, " "))
	return task
}

// extractTags pulls every #word token, de-duplicated in first-seen order.
func extractTags(text string) (string, []string) {
	tags := []string{}
	seen := map[string]bool{}
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		tag := m[1]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tagRe.ReplaceAllString(text, ""), tags
}

// extractPriority takes the first !high/!med/!medium/!low marker.
func extractPriority(text string) (string, domain.Priority) {
	m := priorityRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, ""
	}
	level := strings.ToLower(text[m[2]:m[3]])
	if level == "med" {
		level = "medium"
	}
	return text[:m[0]] + text[m[1]:], domain.Priority(level)
}

// extractDuration takes the first <digits><unit> match; hour units
// convert to minutes.
func extractDuration(text string) (string, int) {
	m := durationRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, 0
	}
	digits := text[m[2]:m[3]]
	unit := strings.ToLower(text[m[4]:m[5]])

	n := 0
	for _, ch := range digits {
		n = n*10 + int(ch-'0')
	}
	if strings.HasPrefix(unit, "h") {
		n *= 60
	}
	return text[:m[0]] + text[m[1]:], n
}

// extractDate resolves relative date words as a priority chain: today,
// tomorrow, next week, then the first weekday name. A weekday matching
// today's resolves a full week out, never to today.
func extractDate(text string, now time.Time) (string, *time.Time) {
	for _, l := range literalDates {
		if m := l.re.FindStringIndex(text); m != nil {
			d := midnight(now).AddDate(0, 0, l.days)
			return text[:m[0]] + text[m[1]:], &d
		}
	}

	m := weekdayRe.FindStringIndex(text)
	if m == nil {
		return text, nil
	}
	target := weekdays[strings.ToLower(text[m[0]:m[1]])]
	ahead := (int(target) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	d := midnight(now).AddDate(0, 0, ahead)
	return text[:m[0]] + text[m[1]:], &d
}

// extractTime keeps the matched clock text verbatim for display; it is
// not parsed into a time-of-day value.
func extractTime(text string) (string, string) {
	m := timeRe.FindStringIndex(text)
	if m == nil {
		return text, ""
	}
	return text[:m[0]] + text[m[1]:], strings.TrimSpace(text[m[0]:m[1]])
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
