package loss

import (
	"regexp"
	"strings"
)

// Keyword lexicons for damage-language classification. Matching is
// word-boundary based so "door" does not match "outdoor".
var (
	catastrophicKeywords = []string{
		"flood", "flooded", "flooding", "fire", "fires", "submerged",
		"rollover", "rolled over", "roof crushed", "burned", "burning",
		"burnt", "crushed",
	}

	explicitTotalLossKeywords = []string{
		"totaled", "total loss", "destroyed", "beyond repair", "unrepairable",
		"complete loss", "write-off", "write off", "frame bent", "frame damage",
	}

	repairableKeywords = []string{
		"door", "doors", "fender", "bumper", "hood", "trunk", "mirror",
		"light", "headlight", "taillight", "dent", "scratch", "panel",
		"quarter panel", "windshield", "window", "paint",
	}
)

var (
	catastrophicRe = compileKeywordPattern(catastrophicKeywords)
	explicitRe     = compileKeywordPattern(explicitTotalLossKeywords)
	repairableRe   = compileKeywordPattern(repairableKeywords)
)

func compileKeywordPattern(keywords []string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// IsCatastrophicEvent reports whether the text describes a catastrophic
// incident such as flood, fire, or rollover.
func IsCatastrophicEvent(text string) bool {
	return catastrophicRe.MatchString(strings.ToLower(text))
}

// IndicatesTotalLoss reports whether the text explicitly describes the
// vehicle as a total loss.
func IndicatesTotalLoss(text string) bool {
	return explicitRe.MatchString(strings.ToLower(text))
}

// IsRepairable reports whether the text mentions only localized, repairable
// damage. Catastrophic or explicit total-loss language overrides any
// repairable-part mentions.
func IsRepairable(text string) bool {
	lower := strings.ToLower(text)
	if catastrophicRe.MatchString(lower) || explicitRe.MatchString(lower) {
		return false
	}
	return repairableRe.MatchString(lower)
}
