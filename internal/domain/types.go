package domain

import "time"

// CaptureType is the coarse category assigned to a raw text snippet.
type CaptureType string

const (
	CaptureTask    CaptureType = "task"
	CaptureIdea    CaptureType = "idea"
	CaptureContent CaptureType = "content"
	CaptureIncome  CaptureType = "income"
	CaptureExpense CaptureType = "expense"
)

// Confidence expresses how certain a classification is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DetectionResult is the classifier's verdict for one piece of input.
type DetectionResult struct {
	SuggestedType CaptureType `json:"suggested_type"`
	Confidence    Confidence  `json:"confidence"`
	Reason        string      `json:"reason"`
}

// Priority levels for tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsedTask is the structured form extracted from free task text.
// Text never contains the substrings claimed by the other fields.
type ParsedTask struct {
	Text      string     `json:"text"`
	Date      *time.Time `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	Duration  int        `json:"duration,omitempty"` // minutes, 0 = unset
	Priority  Priority   `json:"priority,omitempty"`
	Tags      []string   `json:"tags"`
	ProjectID string     `json:"project_id,omitempty"`
}

// Task is a persisted task record.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Date      *time.Time `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	Duration  int        `json:"duration,omitempty"`
	Priority  Priority   `json:"priority,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	ProjectID string     `json:"project_id,omitempty"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
}

// Capture is a persisted non-task capture (idea, income, expense).
type Capture struct {
	ID          string      `json:"id"`
	Type        CaptureType `json:"type"`
	Content     string      `json:"content"`
	AmountCents int64       `json:"amount_cents,omitempty"`
	SourceURL   string      `json:"source_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AIDetectionResult scores how machine-generated a piece of copy reads.
// Suggestions pair with Warnings by index where a fix applies.
type AIDetectionResult struct {
	Score       int      `json:"score"` // 0-10
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// RatedGeneration is one row of the append-only generations log, as seen
// by the learning engine. Rating and FeedbackTags stay nil until the user
// rates the generation.
type RatedGeneration struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ContentType  string    `json:"content_type"`
	Rating       *float64  `json:"rating,omitempty"` // 0-10
	FeedbackTags []string  `json:"feedback_tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Generation is a full persisted generation attempt.
type Generation struct {
	RatedGeneration
	Topic  string `json:"topic,omitempty"`
	Output string `json:"output"`
	Score  int    `json:"score"` // AI-pattern score at generation time
}

// FeedbackPattern is the transient per-user, per-family aggregate of
// historical ratings. Never persisted; recomputed per request.
type FeedbackPattern struct {
	ContentType      string   `json:"content_type"`
	AvgRating        float64  `json:"avg_rating"`
	TotalGenerations int      `json:"total_generations"`
	CommonIssues     []string `json:"common_issues"`
	ImprovementAreas []string `json:"improvement_areas"`
	SuccessFactors   []string `json:"success_factors"`
}

// ToneShift holds per-axis integer shifts, each within [-2, 2].
type ToneShift struct {
	Formality int `json:"formality"`
	Energy    int `json:"energy"`
	Emotion   int `json:"emotion"`
}

// AdaptiveParams bias a future generation request. The zero value is the
// neutral default.
type AdaptiveParams struct {
	TemperatureAdjustment float64   `json:"temperature_adjustment"` // [-0.2, 0.2]
	ToneShift             ToneShift `json:"tone_shift"`
	StrategicGuidance     []string  `json:"strategic_guidance"`
	AvoidPatterns         []string  `json:"avoid_patterns"`
	EmphasizePatterns     []string  `json:"emphasize_patterns"`
}

// UniversalPatterns summarizes style preferences that hold across all
// content types for one user.
type UniversalPatterns struct {
	FormalityPreference string `json:"formality_preference"`
	ToneAlignment       string `json:"tone_alignment"`
	LengthPreference    string `json:"length_preference"`
	EmotionLevel        string `json:"emotion_level"`
}

// GlobalLearnings is the cross-content-type transient aggregate.
type GlobalLearnings struct {
	UniversalPatterns     UniversalPatterns `json:"universal_patterns"`
	SuccessFactors        []string          `json:"success_factors"`
	CommonIssues          []string          `json:"common_issues"`
	TotalRatedAcrossTypes int               `json:"total_rated_across_types"`
}

// VoiceProfile describes a brand voice fed to the prompt composer.
type VoiceProfile struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Traits      []string `json:"traits,omitempty"`
	Audience    string   `json:"audience,omitempty"`
}
