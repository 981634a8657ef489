// Package classify decides what kind of capture a piece of free text is.
// Classification is pure and cheap enough to run on every keystroke.
package classify

import (
	"regexp"
	"strings"

	"quickcap/internal/domain"
)

// Phrase sets checked as case-insensitive substrings. Kept as data so
// product can tune them without touching the rule chain.
var (
	incomePhrases = []string{
		"received", "earned", "payment from", "paid me", "invoice paid",
		"sold", "revenue", "deposit", "client paid", "payout",
	}

	expensePhrases = []string{
		"spent", "bought", "paid for", "purchase", "subscription",
		"bill", "cost", "renewal", "charged", "fee",
	}

	ideaPhrases = []string{
		"idea", "brainstorm", "what if", "concept", "maybe we could",
		"thought:", "inspiration",
	}

	// First-word verbs that usually open a task. Matched exactly or with
	// a trailing "s"/"ing".
	actionVerbs = []string{
		"call", "email", "write", "send", "review", "finish", "schedule",
		"book", "buy", "fix", "update", "prepare", "plan", "check",
		"create", "draft", "record", "post", "publish", "follow",
		"submit", "order", "pay", "read", "clean",
	}
)

var (
	currencyStartRe = regexp.MustCompile(`^\$\d+(\.\d{2})?`)
	amountRe        = regexp.MustCompile(`^\$(\d+)(?:\.(\d{2}))?`)

	// Any of these mark the input as schedule-shaped: weekday names,
	// relative days, clock times, duration shorthand, priority markers.
	timeDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`(?i)\b(today|tomorrow|next week)\b`),
		// Same shape taskparse accepts: H:MM with optional am/pm, or a
		// bare hour with am/pm.
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(am|pm)?\b|\b\d{1,2}\s*(am|pm)\b`),
		regexp.MustCompile(`(?i)\b\d+\s*(m|h|min|hr|hour)s?\b`),
		regexp.MustCompile(`(?i)!(high|med|medium|low)\b`),
	}
)

// Options control the judgment calls the rule chain can't derive.
type Options struct {
	// AmbiguousCurrency is the type assigned when input leads with a
	// dollar amount but carries no income or expense context.
	AmbiguousCurrency domain.CaptureType
}

// DefaultOptions biases ambiguous money captures toward expense, the more
// common case in free-text capture.
func DefaultOptions() Options {
	return Options{AmbiguousCurrency: domain.CaptureExpense}
}

// Classify runs the full rule chain with default options.
func Classify(input string) domain.DetectionResult {
	return ClassifyWith(input, DefaultOptions())
}

// ClassifyWith decides the capture type for input. Total: always returns
// a result, falling back to a low-confidence task.
func ClassifyWith(input string, opts Options) domain.DetectionResult {
	lower := strings.ToLower(strings.TrimSpace(input))

	// Explicit markers always win.
	if r, ok := explicitMarker(lower); ok {
		return r
	}

	// Leading currency is the strongest signal after markers.
	if currencyStartRe.MatchString(lower) {
		if containsAny(lower, incomePhrases) {
			return result(domain.CaptureIncome, domain.ConfidenceHigh, "amount with income context")
		}
		if containsAny(lower, expensePhrases) {
			return result(domain.CaptureExpense, domain.ConfidenceHigh, "amount with expense context")
		}
		fallback := opts.AmbiguousCurrency
		if fallback == "" {
			fallback = domain.CaptureExpense
		}
		return result(fallback, domain.ConfidenceMedium, "amount without context")
	}

	if containsAny(lower, incomePhrases) {
		return result(domain.CaptureIncome, domain.ConfidenceMedium, "income phrasing")
	}
	if containsAny(lower, expensePhrases) {
		return result(domain.CaptureExpense, domain.ConfidenceMedium, "expense phrasing")
	}
	if containsAny(lower, ideaPhrases) {
		return result(domain.CaptureIdea, domain.ConfidenceMedium, "idea phrasing")
	}

	for _, re := range timeDatePatterns {
		if re.MatchString(lower) {
			return result(domain.CaptureTask, domain.ConfidenceHigh, "contains schedule details")
		}
	}

	if startsWithActionVerb(lower) {
		return result(domain.CaptureTask, domain.ConfidenceMedium, "starts with an action verb")
	}

	return result(domain.CaptureTask, domain.ConfidenceLow, "no strong signal, defaulting to task")
}

func explicitMarker(lower string) (domain.DetectionResult, bool) {
	markers := []struct {
		prefixes []string
		typ      domain.CaptureType
	}{
		{[]string{"#idea", "idea:"}, domain.CaptureIdea},
		{[]string{"#income", "income:"}, domain.CaptureIncome},
		{[]string{"#expense", "expense:"}, domain.CaptureExpense},
	}
	for _, m := range markers {
		for _, p := range m.prefixes {
			if strings.HasPrefix(lower, p) {
				return result(m.typ, domain.ConfidenceHigh, "explicit "+string(m.typ)+" marker"), true
			}
		}
	}
	return domain.DetectionResult{}, false
}

func startsWithActionVerb(lower string) bool {
	fields := strings.Fields(lower)
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	for _, v := range actionVerbs {
		if first == v || first == v+"s" || first == v+"ing" {
			return true
		}
	}
	return false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func result(t domain.CaptureType, c domain.Confidence, reason string) domain.DetectionResult {
	return domain.DetectionResult{SuggestedType: t, Confidence: c, Reason: reason}
}

// ParseAmount extracts a leading $ amount as cents. Returns 0, false when
// the input doesn't start with a dollar amount.
func ParseAmount(input string) (int64, bool) {
	m := amountRe.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return 0, false
	}
	var cents int64
	for _, ch := range m[1] {
		cents = cents*10 + int64(ch-'0')
	}
	cents *= 100
	if m[2] != "" {
		cents += int64(m[2][0]-'0')*10 + int64(m[2][1]-'0')
	}
	return cents, true
}
