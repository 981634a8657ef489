// Package compose assembles the instruction text that drives the
// generation model. Pure templating: the same request always renders the
// same string, and sections appear only when they have content.
package compose

import (
	"fmt"
	"strings"

	"quickcap/internal/domain"
)

// strategies give each content type its base brief. Types without an
// entry fall back to a generic brief naming the type.
var strategies = map[string]string{
	"welcome_email_1": "Write the first welcome email: warm, personal, one clear idea. Thank them for joining and set expectations for what's coming.",
	"welcome_email_2": "Write the second welcome email: share the origin story behind the work, then one actionable takeaway.",
	"welcome_email_3": "Write the third welcome email: teach one small thing the reader can apply today.",
	"sales_email":     "Write a sales email: lead with the reader's problem, present the offer as the bridge, close with one clear call to action.",
	"launch_email":    "Write a launch announcement email: concrete, specific, focused on what's new and why it matters to the reader.",
	"social_post":     "Write a short social post: one idea, a hook in the first line, no hashtag stuffing.",
	"landing_page":    "Write landing page copy: headline, subhead, three benefit blocks, one call to action.",
}

// Request carries everything the composer merges into a prompt.
type Request struct {
	ContentType string
	Topic       string
	Voice       domain.VoiceProfile
	Adaptive    domain.AdaptiveParams
}

// Compose renders the full instruction text for a generation request.
func Compose(req Request) string {
	var sb strings.Builder

	strategy, ok := strategies[req.ContentType]
	if !ok {
		strategy = fmt.Sprintf("Write %s content.", strings.ReplaceAll(req.ContentType, "_", " "))
	}
	sb.WriteString(strategy)
	sb.WriteString("\n")

	if req.Topic != "" {
		sb.WriteString("\nTOPIC: ")
		sb.WriteString(req.Topic)
		sb.WriteString("\n")
	}

	writeVoice(&sb, req.Voice)
	sb.WriteString(RenderAdaptive(req.Adaptive))

	sb.WriteString("\nWrite naturally. No AI clichés, no filler transitions, vary sentence length.\n")
	return sb.String()
}

func writeVoice(sb *strings.Builder, v domain.VoiceProfile) {
	if v.Name == "" && v.Description == "" && len(v.Traits) == 0 && v.Audience == "" {
		return
	}
	sb.WriteString("\nVOICE:\n")
	if v.Name != "" {
		sb.WriteString("- Brand: " + v.Name + "\n")
	}
	if v.Description != "" {
		sb.WriteString("- " + v.Description + "\n")
	}
	for _, t := range v.Traits {
		sb.WriteString("- Trait: " + t + "\n")
	}
	if v.Audience != "" {
		sb.WriteString("- Audience: " + v.Audience + "\n")
	}
}

// RenderAdaptive renders adaptive parameters as instruction text. A
// neutral parameter set renders as an empty string; sections with no
// content emit no header.
func RenderAdaptive(p domain.AdaptiveParams) string {
	var sb strings.Builder

	if line := toneLine(p.ToneShift); line != "" {
		sb.WriteString("\nTONE: " + line + "\n")
	}

	if len(p.StrategicGuidance) > 0 {
		sb.WriteString("\nGUIDANCE (from this reader's past feedback):\n")
		for _, g := range p.StrategicGuidance {
			sb.WriteString("- " + g + "\n")
		}
	}
	if len(p.AvoidPatterns) > 0 {
		sb.WriteString("\nAVOID:\n")
		for _, a := range p.AvoidPatterns {
			sb.WriteString("- " + a + "\n")
		}
	}
	if len(p.EmphasizePatterns) > 0 {
		sb.WriteString("\nEMPHASIZE:\n")
		for _, e := range p.EmphasizePatterns {
			sb.WriteString("- " + e + "\n")
		}
	}
	return sb.String()
}

func toneLine(t domain.ToneShift) string {
	var parts []string
	if d := axis(t.Formality, "more formal", "more casual"); d != "" {
		parts = append(parts, d)
	}
	if d := axis(t.Energy, "higher energy", "calmer"); d != "" {
		parts = append(parts, d)
	}
	if d := axis(t.Emotion, "more emotional warmth", "more reserved"); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, "; ")
}

func axis(shift int, up, down string) string {
	switch {
	case shift >= 2:
		return "noticeably " + up
	case shift == 1:
		return "slightly " + up
	case shift == -1:
		return "slightly " + down
	case shift <= -2:
		return "noticeably " + down
	}
	return ""
}

// Temperature folds the adaptive adjustment into a base sampling
// temperature, keeping the result in a sane generation range.
func Temperature(base float64, p domain.AdaptiveParams) float64 {
	t := base + p.TemperatureAdjustment
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}
