package fraud

import (
	"strings"

	"github.com/jmoreau/claimroute/internal/match"
	"github.com/jmoreau/claimroute/internal/model"
)

// DetectIndicators runs the lexical fraud scan used by both the escalation
// gate and pre-routing enrichment. It checks the fraud keyword lexicon,
// repeat claims on the VIN, the damage-vs-value ratio, and incident/damage
// description overlap. history and vehicleValue are pre-fetched by the
// caller; vehicleValue <= 0 skips the value check.
func DetectIndicators(claim model.Claim, history []model.Claim, vehicleValue float64, cfg Config) []string {
	if claim.Empty() {
		return []string{}
	}

	var indicators []string
	text := strings.ToLower(claim.CombinedText())
	seen := make(map[string]bool)

	for _, keyword := range fraudKeywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		indicator := keywordIndicator(keyword)
		if seen[indicator] {
			continue
		}
		seen[indicator] = true
		indicators = append(indicators, indicator)
	}

	if priorClaimsInWindow(claim, history, cfg.MultipleClaimsDays) >= 1 {
		indicators = append(indicators, IndicatorMultipleClaims)
	}

	if claim.EstimatedDamage != nil && *claim.EstimatedDamage > 0 && vehicleValue > 0 {
		if *claim.EstimatedDamage >= cfg.DamageVsValueRatio*vehicleValue {
			indicators = append(indicators, IndicatorDamageNearValue)
		}
	}

	incident := strings.TrimSpace(claim.IncidentDescription)
	damage := strings.TrimSpace(claim.DamageDescription)
	if nonTrivial(incident) && nonTrivial(damage) {
		if match.Overlap(incident, damage) < cfg.DescriptionOverlapThreshold {
			indicators = append(indicators, IndicatorDescriptionMismatch)
		}
	}

	if indicators == nil {
		indicators = []string{}
	}
	return indicators
}

// FilterWeakIndicators drops indicators that are expected in legitimate
// total-loss or high-damage scenarios, so routing doesn't over-trigger fraud.
func FilterWeakIndicators(indicators []string) []string {
	weak := map[string]bool{
		IndicatorDamageNearValue:     true,
		IndicatorDescriptionMismatch: true,
	}
	var out []string
	for _, indicator := range indicators {
		if !weak[indicator] {
			out = append(out, indicator)
		}
	}
	return out
}
