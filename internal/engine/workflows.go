package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/policy"
	"github.com/jmoreau/claimroute/internal/repair"
	"github.com/jmoreau/claimroute/internal/service"
	"github.com/jmoreau/claimroute/internal/valuation"
)

// runNewClaim validates the policy and opens the claim. Unknown or inactive
// policies do not fail the run; the finding is recorded in the output for the
// adjuster.
func (e *Engine) runNewClaim(ctx context.Context, wc *workflowContext) (string, *float64, error) {
	p, err := e.lookupPolicy(ctx, wc.claim.PolicyNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrPolicyInactive) {
			return fmt.Sprintf("Claim registered. Policy %s is not valid or inactive; "+
				"coverage must be confirmed before any payout.", wc.claim.PolicyNumber), nil, nil
		}
		return "", nil, err
	}
	return fmt.Sprintf("Claim registered under policy %s (coverage: %s, deductible: $%.2f). "+
		"Vehicle value $%.2f.", p.Number, p.Coverage, p.Deductible, wc.lossResult.VehicleValue), nil, nil
}

// runDuplicate records which prior claim this submission duplicates.
func (e *Engine) runDuplicate(_ context.Context, wc *workflowContext) (string, *float64, error) {
	if len(wc.candidates) == 0 {
		return "Routed as duplicate but no matching prior claim was found on the VIN; " +
			"flagging for manual reconciliation.", nil, nil
	}
	top := wc.candidates[0]
	return fmt.Sprintf("Duplicate of claim %s (incident %s, %d days apart, similarity %.2f). "+
		"No payout issued on this submission.",
		top.ClaimID, top.IncidentDate, top.DaysDifference, top.SimilarityScore), nil, nil
}

// runTotalLoss settles the claim at vehicle value minus the policy
// deductible. An invalid policy yields a zero payout with the reason spelled
// out rather than an error.
func (e *Engine) runTotalLoss(ctx context.Context, wc *workflowContext) (string, *float64, error) {
	zero := 0.0

	p, err := e.lookupPolicy(ctx, wc.claim.PolicyNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrPolicyInactive) {
			return fmt.Sprintf("Total loss confirmed but policy %s is not valid or inactive. "+
				"Payout: $0.00.", wc.claim.PolicyNumber), &zero, nil
		}
		return "", nil, err
	}

	payout, err := valuation.CalculatePayout(wc.lossResult.VehicleValue, p.Deductible)
	if err != nil {
		return fmt.Sprintf("Total loss confirmed but no payout calculated: %v. Payout: $0.00.", err),
			&zero, nil
	}
	return fmt.Sprintf("Total loss settlement: %s. Damage-to-value ratio %.2f.",
		payout.Calculation, wc.lossResult.DamageToValueRatio), &payout.Amount, nil
}

// runFraud executes the full three-stage fraud pipeline and records the
// assessment as the workflow output.
func (e *Engine) runFraud(_ context.Context, wc *workflowContext) (string, *float64, error) {
	pattern := fraud.AnalyzePatterns(wc.claim, wc.vinHistory, e.fraudCfg)
	xref := fraud.CrossReference(wc.claim, wc.lossResult.VehicleValue, e.fraudCfg)
	assessment := fraud.Assess(wc.claim, &pattern, &xref, wc.vinHistory,
		wc.lossResult.VehicleValue, e.fraudCfg)

	output, err := json.Marshal(map[string]any{
		"fraud_score":        assessment.FraudScore,
		"fraud_likelihood":   assessment.FraudLikelihood,
		"fraud_indicators":   assessment.FraudIndicators,
		"should_block":       assessment.ShouldBlock,
		"siu_referral":       assessment.SIUReferral,
		"recommended_action": assessment.RecommendedAction,
		"risk_factors":       pattern.RiskFactors,
		"database_matches":   xref.DatabaseMatches,
	})
	if err != nil {
		return "", nil, fmt.Errorf("encoding fraud assessment: %w", err)
	}
	return string(output), nil, nil
}

// runPartialLoss prices the repair and splits it between customer and
// insurer.
func (e *Engine) runPartialLoss(ctx context.Context, wc *workflowContext) (string, *float64, error) {
	deductible := policy.DefaultDeductible
	if p, err := e.lookupPolicy(ctx, wc.claim.PolicyNumber); err == nil {
		deductible = p.Deductible
	}

	estimate := repair.Calculate(wc.claim.DamageDescription, repair.PartTypeAftermarket,
		repair.DefaultLaborRate, deductible, wc.lossResult.VehicleValue)

	output := fmt.Sprintf("Repair estimate: parts $%.2f (%d parts), labor %.1fh at $%.2f/h = $%.2f, "+
		"total $%.2f. Deductible $%.2f: customer pays $%.2f, insurance pays $%.2f.",
		estimate.PartsCost, len(estimate.Parts), estimate.LaborHours, estimate.LaborRate,
		estimate.LaborCost, estimate.TotalEstimate, estimate.Deductible,
		estimate.CustomerPays, estimate.InsurancePays)
	if estimate.IsTotalLoss {
		output += fmt.Sprintf(" Warning: repair cost is %.0f%% of vehicle value; "+
			"consider total-loss review.", estimate.RepairToValueRatio*100)
	}
	return output, &estimate.InsurancePays, nil
}

func (e *Engine) lookupPolicy(ctx context.Context, policyNumber string) (service.Policy, error) {
	if e.policies == nil {
		return service.Policy{}, fmt.Errorf("policy lookup: %w", common.ErrNotFound)
	}
	return e.policies.Lookup(ctx, policyNumber)
}
