package engine

import (
	"context"

	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/loss"
	"github.com/jmoreau/claimroute/internal/match"
	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"
)

// Enrichment thresholds. High-value claims get a stricter duplicate bar in
// routing; a damage-to-value ratio past fraudRatioTrigger runs the fraud
// indicator scan unless the damage language already explains the ratio.
const (
	maxDuplicateCandidates = 5
	candidateDescLimit     = 200
	fraudRatioTrigger      = 0.9
	highValueDamage        = 25000.0
	highValueVehicle       = 50000.0
)

// workflowContext carries a claim and the deterministic signals computed
// before classification, shared by the classifier request and the workflows.
type workflowContext struct {
	claim           model.Claim
	lossResult      loss.Result
	vinHistory      []model.Claim
	candidates      []service.DuplicateCandidate
	fraudIndicators []string
	highValue       bool
}

// enrich runs the pre-routing checks: economic total-loss signals, duplicate
// candidates on the VIN, the conditional fraud indicator scan, and the
// high-value mark. The valuation inside the economic check is required, so
// its failure propagates.
func (e *Engine) enrich(ctx context.Context, claim model.Claim) (*workflowContext, error) {
	lossResult, err := e.loss.Evaluate(ctx, claim)
	if err != nil {
		return nil, err
	}

	matches, err := e.matcher.FindCandidates(ctx, claim.VIN, claim.IncidentDate, claim.ID)
	if err != nil {
		return nil, err
	}
	vinHistory := make([]model.Claim, 0, len(matches))
	for _, m := range matches {
		vinHistory = append(vinHistory, m.Claim)
	}

	wc := &workflowContext{
		claim:      claim,
		lossResult: lossResult,
		vinHistory: vinHistory,
		candidates: enrichCandidates(claim, matches),
	}

	// Catastrophic events carry high damage-to-value ratios legitimately, so
	// they skip the fraud scan and route as total loss.
	if lossResult.DamageToValueRatio > fraudRatioTrigger &&
		!lossResult.IsCatastrophicEvent && !lossResult.DamageIndicatesTotalLoss {
		indicators := fraud.DetectIndicators(claim, vinHistory, lossResult.VehicleValue, e.fraudCfg)
		wc.fraudIndicators = fraud.FilterWeakIndicators(indicators)
	}

	if (claim.EstimatedDamage != nil && *claim.EstimatedDamage > highValueDamage) ||
		lossResult.VehicleValue > highValueVehicle {
		wc.highValue = true
	}

	return wc, nil
}

// request builds the classifier payload from the enrichment signals.
func (wc *workflowContext) request() service.ClassifyRequest {
	return service.ClassifyRequest{
		Claim: wc.claim,
		EconomicSignals: map[string]any{
			"is_economic_total_loss":      wc.lossResult.IsEconomicTotalLoss,
			"is_catastrophic_event":       wc.lossResult.IsCatastrophicEvent,
			"damage_indicates_total_loss": wc.lossResult.DamageIndicatesTotalLoss,
			"damage_is_repairable":        wc.lossResult.DamageIsRepairable,
			"vehicle_value":               wc.lossResult.VehicleValue,
			"damage_to_value_ratio":       wc.lossResult.DamageToValueRatio,
		},
		FraudIndicators:     wc.fraudIndicators,
		DuplicateCandidates: wc.candidates,
		HighValue:           wc.highValue,
	}
}

// enrichCandidates annotates the closest duplicate candidates with combined
// incident+damage text similarity for the classifier.
func enrichCandidates(claim model.Claim, matches []match.Candidate) []service.DuplicateCandidate {
	if len(matches) > maxDuplicateCandidates {
		matches = matches[:maxDuplicateCandidates]
	}
	target := claim.CombinedText()

	candidates := make([]service.DuplicateCandidate, 0, len(matches))
	for _, m := range matches {
		similarity := match.Compare(target, m.Claim.CombinedText())
		description := m.Claim.IncidentDescription
		if len(description) > candidateDescLimit {
			description = description[:candidateDescLimit]
		}
		candidates = append(candidates, service.DuplicateCandidate{
			ClaimID:             m.Claim.ID,
			IncidentDate:        m.Claim.IncidentDate,
			IncidentDescription: description,
			DaysDifference:      m.DaysDifference,
			SimilarityScore:     similarity.Score,
		})
	}
	return candidates
}
