// Package learning turns a user's historical generation ratings into
// parameter adjustments that bias future generation requests.
//
// Everything here is a transient aggregate over an append-only ratings
// log owned elsewhere. A failed or empty fetch is indistinguishable from
// a brand-new user: the engine degrades to neutral parameters and never
// surfaces an error to the generation pipeline.
package learning

import (
	"context"
	"fmt"
	"sort"

	"quickcap/internal/domain"
)

const (
	familyWindow = 30
	globalWindow = 50

	// Fewer than this many rated generations is noise, not signal.
	minSignal = 3

	lowRatingCeiling  = 7.0 // exclusive; 7 itself is a dead zone
	highRatingFloor   = 8.0
	poorAvgCeiling    = 6.0
	strongAvgFloor    = 8.5
	recentIssueWindow = 5

	minTemperature = -0.2
	maxTemperature = 0.2
)

// RatedLog reads the append-only generations log. Results come back
// newest-first. Implementations filter to rows that carry a rating.
type RatedLog interface {
	FetchRated(ctx context.Context, userID string, contentTypes []string, limit int) ([]domain.RatedGeneration, error)
}

// Engine aggregates feedback and derives adaptive parameters.
type Engine struct {
	log RatedLog
}

func NewEngine(log RatedLog) *Engine {
	return &Engine{log: log}
}

// AnalyzeFeedback aggregates the user's recent rated generations for the
// content type's family. Returns nil when there is nothing to learn from.
func (e *Engine) AnalyzeFeedback(ctx context.Context, userID, contentType string) *domain.FeedbackPattern {
	family, err := e.log.FetchRated(ctx, userID, familyFor(contentType), familyWindow)
	if err != nil {
		family = nil // fetch failure reads as "no data"
	}
	global, err := e.log.FetchRated(ctx, userID, nil, globalWindow)
	if err != nil {
		global = nil
	}

	globalIssues, globalSuccesses := universalSignal(global)

	if len(family) == 0 {
		// A new content type still benefits from the user's general
		// style preferences, carried by universal tags only.
		if len(global) >= minSignal {
			return &domain.FeedbackPattern{
				ContentType:      contentType,
				CommonIssues:     globalIssues,
				SuccessFactors:   globalSuccesses,
				ImprovementAreas: []string{},
			}
		}
		return nil
	}

	var sum float64
	rated := 0
	var low, high []domain.RatedGeneration
	for _, g := range family {
		if g.Rating == nil {
			continue
		}
		rated++
		sum += *g.Rating
		switch {
		case *g.Rating < lowRatingCeiling:
			low = append(low, g)
		case *g.Rating >= highRatingFloor:
			high = append(high, g)
		}
	}
	if rated == 0 {
		return nil
	}

	issueCounts := tagFrequencies(low)
	foldIn(issueCounts, globalIssues)
	successCounts := tagFrequencies(high)
	foldIn(successCounts, globalSuccesses)

	return &domain.FeedbackPattern{
		ContentType:      contentType,
		AvgRating:        sum / float64(rated),
		TotalGenerations: rated,
		CommonIssues:     frequentTags(issueCounts, threshold(len(low), 0.3)),
		SuccessFactors:   frequentTags(successCounts, threshold(len(high), 0.4)),
		ImprovementAreas: recentTags(low, recentIssueWindow),
	}
}

// AdaptiveParamsFor converts a feedback pattern into generation
// adjustments. Nil or under-powered patterns return the exact neutral
// default rather than over-fitting to noise.
func (e *Engine) AdaptiveParamsFor(pattern *domain.FeedbackPattern) domain.AdaptiveParams {
	params := domain.AdaptiveParams{
		StrategicGuidance: []string{},
		AvoidPatterns:     []string{},
		EmphasizePatterns: []string{},
	}
	if pattern == nil || pattern.TotalGenerations < minSignal {
		return params
	}

	for _, tag := range pattern.CommonIssues {
		if adj, ok := issueAdjustments[tag]; ok {
			apply(&params, adj)
		}
	}
	for _, tag := range pattern.SuccessFactors {
		if adj, ok := successAdjustments[tag]; ok {
			apply(&params, adj)
		}
	}

	if pattern.AvgRating < poorAvgCeiling {
		params.StrategicGuidance = append(params.StrategicGuidance,
			fmt.Sprintf("Recent average rating is %.1f/10. Take extra care with voice and specificity.", pattern.AvgRating))
	} else if pattern.AvgRating >= strongAvgFloor {
		params.StrategicGuidance = append(params.StrategicGuidance,
			"Recent ratings are strong. Maintain the current approach.")
	}

	params.TemperatureAdjustment = clampFloat(params.TemperatureAdjustment, minTemperature, maxTemperature)
	params.ToneShift.Formality = clampInt(params.ToneShift.Formality, -2, 2)
	params.ToneShift.Energy = clampInt(params.ToneShift.Energy, -2, 2)
	params.ToneShift.Emotion = clampInt(params.ToneShift.Emotion, -2, 2)
	return params
}

// GlobalLearnings summarizes universal style signal across every content
// type the user has rated.
func (e *Engine) GlobalLearnings(ctx context.Context, userID string) *domain.GlobalLearnings {
	global, err := e.log.FetchRated(ctx, userID, nil, globalWindow)
	if err != nil || len(global) == 0 {
		return nil
	}

	issues, successes := universalSignal(global)

	return &domain.GlobalLearnings{
		UniversalPatterns: domain.UniversalPatterns{
			FormalityPreference: pick(issues, map[string]string{"too_formal": "casual", "too_casual": "formal"}, "balanced"),
			ToneAlignment:       pick(successes, map[string]string{"right_tone": "aligned"}, "unknown"),
			LengthPreference:    pick(issues, map[string]string{"too_long": "shorter", "too_short": "longer"}, "standard"),
			EmotionLevel:        pick(successes, map[string]string{"felt_personal": "personal"}, "neutral"),
		},
		SuccessFactors:        successes,
		CommonIssues:          issues,
		TotalRatedAcrossTypes: len(global),
	}
}

// universalSignal extracts universal-vocabulary tags from low- and
// high-rated generations across all content types.
func universalSignal(gens []domain.RatedGeneration) (issues, successes []string) {
	var low, high []domain.RatedGeneration
	for _, g := range gens {
		if g.Rating == nil {
			continue
		}
		if *g.Rating < lowRatingCeiling {
			low = append(low, g)
		} else if *g.Rating >= highRatingFloor {
			high = append(high, g)
		}
	}
	issues = dedupe(filterUniversal(allTags(low)))
	successes = dedupe(filterUniversal(allTags(high)))
	return issues, successes
}

// threshold is relative so a user with 4 low-rated generations doesn't
// need the same absolute count as one with 20, but never below 2.
func threshold(count int, fraction float64) int {
	t := int(fraction * float64(count))
	if t < 2 {
		t = 2
	}
	return t
}

func tagFrequencies(gens []domain.RatedGeneration) map[string]int {
	counts := map[string]int{}
	for _, g := range gens {
		for _, t := range dedupe(g.FeedbackTags) {
			counts[t]++
		}
	}
	return counts
}

func foldIn(counts map[string]int, tags []string) {
	for _, t := range tags {
		counts[t]++
	}
}

// frequentTags returns tags at or above min, most frequent first, with a
// stable alphabetical tiebreak.
func frequentTags(counts map[string]int, min int) []string {
	out := []string{}
	for tag, n := range counts {
		if n >= min {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// recentTags is the recency-biased view: deduped tags from the n most
// recent entries (input is newest-first).
func recentTags(gens []domain.RatedGeneration, n int) []string {
	if len(gens) > n {
		gens = gens[:n]
	}
	return dedupe(allTags(gens))
}

func allTags(gens []domain.RatedGeneration) []string {
	var out []string
	for _, g := range gens {
		out = append(out, g.FeedbackTags...)
	}
	return out
}

func dedupe(tags []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// pick returns the label of the first tag with a mapped label, or def.
func pick(tags []string, labels map[string]string, def string) string {
	for _, t := range tags {
		if label, ok := labels[t]; ok {
			return label
		}
	}
	return def
}

func apply(params *domain.AdaptiveParams, adj adjustment) {
	params.TemperatureAdjustment += adj.Temperature
	params.ToneShift.Formality += adj.Formality
	params.ToneShift.Energy += adj.Energy
	params.ToneShift.Emotion += adj.Emotion
	if adj.Guidance != "" {
		params.StrategicGuidance = append(params.StrategicGuidance, adj.Guidance)
	}
	if adj.Avoid != "" {
		params.AvoidPatterns = append(params.AvoidPatterns, adj.Avoid)
	}
	if adj.Emphasize != "" {
		params.EmphasizePatterns = append(params.EmphasizePatterns, adj.Emphasize)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
