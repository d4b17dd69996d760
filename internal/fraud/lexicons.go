// Package fraud implements the fraud scoring pipeline: pattern analysis,
// cross-reference, and assessment. Every stage is a pure function of its
// inputs and degrades to "no signal" on malformed or empty claim data.
package fraud

import "strings"

// fraudKeywords are phrases whose presence in claim text contributes to the
// cross-reference score. Each hit becomes an indicator with spaces replaced by
// underscores.
var fraudKeywords = []string{
	"staged",
	"inflated",
	"pre-existing",
	"exaggerated",
	"fabricated",
	"misrepresentation",
	"multiple occupants",
	"witnesses left",
	"witness left",
	"prior claims",
	"suspicious damage",
	"inconsistent",
}

// stagedAccidentPhrases indicate orchestrated collisions.
var stagedAccidentPhrases = []string{
	"staged",
	"multiple occupants",
	"witnesses left the scene",
	"witness left the scene",
	"brake checked",
	"brake check",
	"sudden stop",
}

// timingPhrases indicate a suspiciously fresh policy or rushed filing.
var timingPhrases = []string{
	"new policy",
	"just purchased",
	"recently purchased",
	"policy started",
	"day after",
}

// Indicator names shared between the pipeline and the escalation engine.
const (
	IndicatorStagedAccident      = "staged_accident_indicators"
	IndicatorNewPolicyTiming     = "new_policy_timing"
	IndicatorMultipleClaims      = "multiple_claims_same_vin"
	IndicatorDamageNearValue     = "damage_near_or_above_vehicle_value"
	IndicatorDescriptionMismatch = "incident_damage_description_mismatch"
)

func containsAny(text string, phrases []string) []string {
	var found []string
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

func keywordIndicator(keyword string) string {
	return strings.ReplaceAll(keyword, " ", "_")
}
