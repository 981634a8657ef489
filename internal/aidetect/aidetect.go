// Package aidetect scores generated copy for patterns that read as
// machine-written. Scoring is additive and clamped to 0-10; each
// triggered rule contributes one warning and, where a fix applies, one
// suggestion at the same index.
package aidetect

import (
	"fmt"
	"regexp"
	"strings"

	"quickcap/internal/domain"
)

const maxScore = 10

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
	emDashRe         = regexp.MustCompile(`[—–]`)
	parentheticalRe  = regexp.MustCompile(`\([^)]*\)`)
	colonLineRe      = regexp.MustCompile(`:\s*(\n|$)`)
	bulletLineRe     = regexp.MustCompile(`(?m)^\s*([-*•]|\d+\.)\s+`)
)

// Check scores text for AI-sounding patterns. Empty or bland text scores
// 0 with empty (non-nil) lists.
func Check(text string) domain.AIDetectionResult {
	res := domain.AIDetectionResult{Warnings: []string{}, Suggestions: []string{}}
	if strings.TrimSpace(text) == "" {
		return res
	}

	lower := strings.ToLower(text)
	sentences := splitSentences(text)
	paragraphs := splitParagraphs(text)

	for _, rule := range forbiddenPhrases {
		if strings.Contains(lower, rule.Phrase) {
			res.Score += 2
			res.Warnings = append(res.Warnings, fmt.Sprintf("uses the AI cliché %q", rule.Phrase))
			res.Suggestions = append(res.Suggestions, rule.Suggestion)
		}
	}

	for _, rule := range aiPatterns {
		if rule.Re.MatchString(text) {
			res.Score++
			res.Warnings = append(res.Warnings, "uses "+rule.Label)
			res.Suggestions = append(res.Suggestions, rule.Suggestion)
		}
	}

	addDensityChecks(&res, text, lower, sentences, paragraphs)

	if res.Score > maxScore {
		res.Score = maxScore
	}
	return res
}

func addDensityChecks(res *domain.AIDetectionResult, text, lower string, sentences []string, paragraphs []string) {
	exclaims := strings.Count(text, "!")
	if float64(exclaims) > 0.3*float64(len(sentences)) && exclaims > 0 {
		flag(res, "too many exclamation points for the amount of text", "keep at most one exclamation point per few paragraphs")
	}

	if len(emDashRe.FindAllString(text, -1)) > 2*len(paragraphs) {
		flag(res, "leans on em-dashes as connective tissue", "replace most dashes with periods or commas")
	}

	if len(parentheticalRe.FindAllString(text, -1)) > len(paragraphs) {
		flag(res, "too many parenthetical asides", "promote asides into sentences or cut them")
	}

	if qualifierCount(lower) > 0.2*float64(len(sentences)) {
		flag(res, "dense with qualifier words (really, very, powerful...)", "cut qualifiers, let nouns and verbs carry the weight")
	}

	if tripleListRe.MatchString(text) {
		flag(res, "uses the X, Y, and Z triple-list rhythm", "break the list or commit to one strong item")
	}

	if len(sentences) > 3 && sentenceLengthVariance(sentences) < 10 {
		flag(res, "sentences are too uniform in length", "vary sentence length, mix short punches with longer lines")
	}

	if len(colonLineRe.FindAllString(text, -1)) > 2 {
		flag(res, "overuses colon-setup lines", "fold setups into the sentences they introduce")
	}

	bullets := len(bulletLineRe.FindAllString(text, -1))
	if bullets > 5 {
		prose := bulletLineRe.ReplaceAllString(removeBulletLines(text), "")
		if len(strings.Fields(prose)) < bullets*20 {
			flag(res, "mostly bullets with little connecting prose", "convert some bullets into paragraphs that earn them")
		}
	}
}

func flag(res *domain.AIDetectionResult, warning, suggestion string) {
	res.Score++
	res.Warnings = append(res.Warnings, warning)
	res.Suggestions = append(res.Suggestions, suggestion)
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func qualifierCount(lower string) float64 {
	return float64(len(qualifierRe.FindAllString(lower, -1)))
}

// sentenceLengthVariance is the population variance of per-sentence word
// counts. Human writing mixes lengths; low variance reads as generated.
func sentenceLengthVariance(sentences []string) float64 {
	counts := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		counts[i] = float64(len(strings.Fields(s)))
		sum += counts[i]
	}
	mean := sum / float64(len(counts))
	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	return variance / float64(len(counts))
}

func removeBulletLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if !bulletLineRe.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Assessment maps a score to a display band.
func Assessment(score int) string {
	switch {
	case score <= 1:
		return "excellent"
	case score <= 3:
		return "good"
	case score <= 5:
		return "warning"
	default:
		return "danger"
	}
}
