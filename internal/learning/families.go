package learning

// Content types are grouped into families so feedback on one welcome-email
// step informs its siblings. Voice feedback generalizes well within a
// family and poorly across unrelated ones, so cross-family signal flows
// only through the universal tag vocabulary.
var contentFamilies = map[string][]string{
	"welcome_email": {
		"welcome_email_1", "welcome_email_2", "welcome_email_3",
		"welcome_email_4", "welcome_email_5",
	},
	"sales_email": {
		"sales_email", "launch_email", "cart_open_email", "cart_close_email",
	},
	"social_post": {
		"social_post", "instagram_caption", "linkedin_post", "tweet_thread",
	},
	"landing_page": {
		"landing_page", "sales_page", "opt_in_page",
	},
}

// familyFor returns every content type sharing a family with contentType,
// including itself. Types outside any family form a family of one.
func familyFor(contentType string) []string {
	for _, members := range contentFamilies {
		for _, m := range members {
			if m == contentType {
				return members
			}
		}
	}
	return []string{contentType}
}

// universalTags is the closed vocabulary of feedback tags whose meaning
// holds across all content types. Only these cross-pollinate between
// families.
var universalTags = map[string]bool{
	"too_formal":       true,
	"too_casual":       true,
	"too_long":         true,
	"too_short":        true,
	"bland_generic":    true,
	"too_salesy":       true,
	"off_voice":        true,
	"great_hook":       true,
	"right_tone":       true,
	"felt_personal":    true,
	"clear_structure":  true,
	"too_hype":         true,
	"not_enough_story": true,
}

func filterUniversal(tags []string) []string {
	var out []string
	for _, t := range tags {
		if universalTags[t] {
			out = append(out, t)
		}
	}
	return out
}
