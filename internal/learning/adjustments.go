package learning

// adjustment is one hand-authored response to a feedback tag. The tag
// vocabulary is small and curated, so a direct data table stays
// transparent and debuggable; no trained model is warranted at
// single-user feedback volumes.
type adjustment struct {
	Temperature float64
	Formality   int
	Energy      int
	Emotion     int
	Guidance    string
	Avoid       string
	Emphasize   string
}

// issueAdjustments apply when a tag clears the common-issues threshold.
var issueAdjustments = map[string]adjustment{
	"too_formal": {
		Temperature: 0.1,
		Formality:   -1,
		Guidance:    "Loosen up. Write like you'd talk to this reader over coffee.",
	},
	"too_casual": {
		Formality: 1,
		Guidance:  "Tighten the register. Keep warmth but drop the slang.",
	},
	"too_long": {
		Guidance: "Be concise. Cut anything that doesn't earn its place.",
		Avoid:    "long wind-ups before the point",
	},
	"too_short": {
		Guidance: "Develop the ideas further. Give each point room to land.",
	},
	"bland_generic": {
		Temperature: 0.2,
		Guidance:    "Be more specific. Use concrete details over general claims.",
		Avoid:       "generic claims that could appear in anyone's copy",
	},
	"too_salesy": {
		Energy:   -1,
		Guidance: "Ease off the pitch. Lead with usefulness, sell late.",
		Avoid:    "urgency language and stacked exclamation points",
	},
	"too_hype": {
		Energy:      -1,
		Temperature: -0.1,
		Guidance:    "Bring the energy down a notch. Understate rather than oversell.",
	},
	"off_voice": {
		Guidance: "Re-read the voice profile before writing. Match its cadence, not just its vocabulary.",
	},
	"not_enough_story": {
		Emotion:  1,
		Guidance: "Open with a small concrete story or moment before the teaching point.",
	},
}

// successAdjustments apply when a tag clears the success-factors
// threshold; they reinforce what already works.
var successAdjustments = map[string]adjustment{
	"great_hook": {
		Emphasize: "strong opening hooks",
		Guidance:  "Keep leading with a hook as strong as recent winners.",
	},
	"right_tone": {
		Guidance: "The recent tone is landing. Hold it steady.",
	},
	"felt_personal": {
		Emotion:   1,
		Emphasize: "direct, personal address to the reader",
		Guidance:  "Keep the personal, one-to-one feel.",
	},
	"clear_structure": {
		Emphasize: "clean, scannable structure",
		Guidance:  "Keep the structure this clear.",
	},
}
