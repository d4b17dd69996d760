package fraud

import (
	"fmt"
	"strings"

	"github.com/jmoreau/claimroute/internal/model"
)

// PatternResult is the output of the pattern analysis stage.
type PatternResult struct {
	ClaimHistory     string
	PatternsDetected []string
	TimingFlags      []string
	RiskFactors      []string
	PatternScore     int
}

// AnalyzePatterns scans a claim for staged-accident language, timing red
// flags, and repeat claims on the same VIN. history is the pre-fetched list of
// prior claims sharing the VIN (excluding the claim itself); passing it in
// keeps the stage a pure function. An empty claim yields a zero result.
func AnalyzePatterns(claim model.Claim, history []model.Claim, cfg Config) PatternResult {
	result := PatternResult{
		PatternsDetected: []string{},
		TimingFlags:      []string{},
		RiskFactors:      []string{},
	}
	if claim.Empty() {
		return result
	}

	text := strings.ToLower(claim.CombinedText())

	if phrases := containsAny(text, stagedAccidentPhrases); len(phrases) > 0 {
		result.PatternsDetected = append(result.PatternsDetected, IndicatorStagedAccident)
		result.RiskFactors = append(result.RiskFactors,
			fmt.Sprintf("staged accident language: %s", strings.Join(phrases, ", ")))
		result.PatternScore += cfg.KeywordScore
	}

	if phrases := containsAny(text, timingPhrases); len(phrases) > 0 {
		result.PatternsDetected = append(result.PatternsDetected, IndicatorNewPolicyTiming)
		result.TimingFlags = append(result.TimingFlags, phrases...)
		result.PatternScore += cfg.TimingAnomalyScore
	}

	priorCount := priorClaimsInWindow(claim, history, cfg.MultipleClaimsDays)
	if priorCount >= cfg.MultipleClaimsThreshold {
		result.PatternsDetected = append(result.PatternsDetected, IndicatorMultipleClaims)
		result.ClaimHistory = fmt.Sprintf("%d prior claims on VIN within %d days",
			priorCount, cfg.MultipleClaimsDays)
		result.RiskFactors = append(result.RiskFactors, result.ClaimHistory)
		result.PatternScore += cfg.MultipleClaimsScore
	}

	return result
}

// priorClaimsInWindow counts history entries on the same VIN with a different
// incident date falling inside the lookback window ending one day after the
// claim's own incident date. Unparseable dates on either side contribute
// nothing.
func priorClaimsInWindow(claim model.Claim, history []model.Claim, lookbackDays int) int {
	vin := strings.TrimSpace(claim.VIN)
	if vin == "" {
		return 0
	}
	target, err := model.ParseIncidentDate(claim.IncidentDate)
	if err != nil {
		return 0
	}

	start := target.AddDate(0, 0, -lookbackDays)
	end := target.AddDate(0, 0, 1)

	count := 0
	for _, prior := range history {
		if prior.ID == claim.ID || strings.TrimSpace(prior.VIN) != vin {
			continue
		}
		if prior.IncidentDate == claim.IncidentDate {
			continue
		}
		priorDate, parseErr := model.ParseIncidentDate(prior.IncidentDate)
		if parseErr != nil {
			continue
		}
		if !priorDate.Before(start) && !priorDate.After(end) {
			count++
		}
	}
	return count
}
