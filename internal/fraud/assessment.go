package fraud

import (
	"github.com/jmoreau/claimroute/internal/model"
)

// Likelihood categorizes a fraud score.
type Likelihood string

// Fraud likelihood bands.
const (
	LikelihoodLow      Likelihood = "low"
	LikelihoodMedium   Likelihood = "medium"
	LikelihoodHigh     Likelihood = "high"
	LikelihoodCritical Likelihood = "critical"
)

// Assessment is the combined output of the fraud pipeline.
type Assessment struct {
	FraudLikelihood   Likelihood
	RecommendedAction string
	FraudIndicators   []string
	FraudScore        int
	ShouldBlock       bool
	SIUReferral       bool
}

// Assess combines the pattern and cross-reference stages into a final fraud
// determination. Either stage result may be nil, in which case it is
// recomputed from the claim, history, and vehicle value. Empty claim data
// yields a zero-score low assessment flagged as invalid rather than an error.
func Assess(claim model.Claim, pattern *PatternResult, xref *CrossReferenceResult,
	history []model.Claim, vehicleValue float64, cfg Config) Assessment {

	if claim.Empty() {
		return Assessment{
			FraudLikelihood:   LikelihoodLow,
			RecommendedAction: "Invalid claim data: nothing to assess",
			FraudIndicators:   []string{},
		}
	}

	if pattern == nil {
		p := AnalyzePatterns(claim, history, cfg)
		pattern = &p
	}
	if xref == nil {
		x := CrossReference(claim, vehicleValue, cfg)
		xref = &x
	}

	assessment := Assessment{
		FraudScore:      pattern.PatternScore + xref.CrossReferenceScore,
		FraudIndicators: dedupe(pattern.PatternsDetected, xref.FraudKeywordsFound),
	}
	if xref.DescriptionMismatch {
		assessment.FraudIndicators = dedupe(assessment.FraudIndicators, []string{IndicatorDescriptionMismatch})
	}

	switch {
	case assessment.FraudScore >= cfg.CriticalRiskThreshold:
		assessment.FraudLikelihood = LikelihoodCritical
	case assessment.FraudScore >= cfg.HighRiskThreshold:
		assessment.FraudLikelihood = LikelihoodHigh
	case assessment.FraudScore >= cfg.MediumRiskThreshold:
		assessment.FraudLikelihood = LikelihoodMedium
	default:
		assessment.FraudLikelihood = LikelihoodLow
	}

	criticalByCount := len(assessment.FraudIndicators) >= cfg.CriticalIndicatorCount
	assessment.SIUReferral = assessment.FraudLikelihood == LikelihoodHigh ||
		assessment.FraudLikelihood == LikelihoodCritical ||
		criticalByCount
	assessment.ShouldBlock = assessment.FraudLikelihood == LikelihoodCritical || criticalByCount

	switch {
	case assessment.ShouldBlock:
		assessment.RecommendedAction = "Block claim processing and refer to SIU immediately"
	case assessment.SIUReferral:
		assessment.RecommendedAction = "Refer to SIU for investigation before settlement"
	case assessment.FraudLikelihood == LikelihoodMedium:
		assessment.RecommendedAction = "Flag for adjuster review of the identified indicators"
	default:
		assessment.RecommendedAction = "No significant fraud indicators; process normally"
	}

	return assessment
}

// dedupe merges indicator lists preserving first-seen order.
func dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, item := range list {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
