package fraud

import (
	"fmt"
	"strings"

	"github.com/jmoreau/claimroute/internal/match"
	"github.com/jmoreau/claimroute/internal/model"
)

// Risk levels reported by the cross-reference stage.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// CrossReferenceResult is the output of the cross-reference stage.
type CrossReferenceResult struct {
	RiskLevel           string
	FraudKeywordsFound  []string
	DatabaseMatches     []string
	CrossReferenceScore int
	DescriptionMismatch bool
}

// CrossReference checks claim text against the fraud keyword lexicon, the
// damage estimate against the vehicle's market value, and the incident
// description against the damage description. vehicleValue <= 0 means the
// value lookup was unavailable; the value-mismatch check is then skipped
// rather than failing. An empty claim yields an empty low-risk result.
func CrossReference(claim model.Claim, vehicleValue float64, cfg Config) CrossReferenceResult {
	result := CrossReferenceResult{
		RiskLevel:          RiskLow,
		FraudKeywordsFound: []string{},
		DatabaseMatches:    []string{},
	}
	if claim.Empty() {
		return result
	}

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
		result.FraudKeywordsFound = append(result.FraudKeywordsFound, indicator)
		result.CrossReferenceScore += cfg.KeywordScore
	}

	if claim.EstimatedDamage != nil && *claim.EstimatedDamage > 0 && vehicleValue > 0 {
		if *claim.EstimatedDamage >= cfg.DamageVsValueRatio*vehicleValue {
			result.DatabaseMatches = append(result.DatabaseMatches,
				fmt.Sprintf("damage estimate %.2f at or above %.0f%% of vehicle value %.2f",
					*claim.EstimatedDamage, cfg.DamageVsValueRatio*100, vehicleValue))
			result.CrossReferenceScore += cfg.DamageMismatchScore
		}
	}

	incident := strings.TrimSpace(claim.IncidentDescription)
	damage := strings.TrimSpace(claim.DamageDescription)
	if nonTrivial(incident) && nonTrivial(damage) {
		if match.Overlap(incident, damage) < cfg.DescriptionOverlapThreshold {
			result.DescriptionMismatch = true
			result.DatabaseMatches = append(result.DatabaseMatches,
				"incident and damage descriptions share almost no wording")
			result.CrossReferenceScore += cfg.DescriptionMismatchScore
		}
	}

	switch {
	case result.CrossReferenceScore >= cfg.HighRiskThreshold:
		result.RiskLevel = RiskHigh
	case result.CrossReferenceScore >= cfg.MediumRiskThreshold:
		result.RiskLevel = RiskMedium
	}

	return result
}

// nonTrivial reports whether text has enough words for the mismatch check to
// mean anything.
func nonTrivial(text string) bool {
	return len(strings.Fields(text)) >= 3
}
