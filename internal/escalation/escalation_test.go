package escalation

import (
	"testing"

	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/model"

	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), fraud.DefaultConfig())
}

func damage(amount float64) *float64 {
	return &amount
}

func similarity(score float64) *float64 {
	return &score
}

func cleanClaim(estimated *float64) model.Claim {
	return model.Claim{
		ID:                  "CLM-00000001",
		PolicyNumber:        "POL-001",
		VIN:                 "VIN1",
		IncidentDate:        "2024-03-01",
		IncidentDescription: "Rear ended at a stop light on Main Street",
		DamageDescription:   "Rear bumper cracked at the stop light impact",
		EstimatedDamage:     estimated,
	}
}

func TestEvaluateHighValue(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:        cleanClaim(damage(15000)),
		RouterOutput: "new",
	})

	assert.True(t, result.NeedsReview)
	assert.Contains(t, result.Reasons, ReasonHighValue)
	assert.Equal(t, PriorityLow, result.Priority)
}

func TestEvaluateLowConfidence(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:        cleanClaim(nil),
		RouterOutput: "possibly a duplicate, unclear incident details, might be new",
	})

	assert.InDelta(t, 0.55, result.Confidence, 0.001)
	assert.Contains(t, result.Reasons, ReasonLowConfidence)
}

func TestEvaluateAmbiguousSimilarity(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:           cleanClaim(nil),
		RouterOutput:    "duplicate",
		SimilarityScore: similarity(65),
	})

	assert.True(t, result.NeedsReview)
	assert.Contains(t, result.Reasons, ReasonAmbiguousSimilarity)
}

func TestEvaluateNoEscalation(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:        cleanClaim(damage(3000)),
		RouterOutput: "new",
	})

	assert.False(t, result.NeedsReview)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, PriorityLow, result.Priority)
	assert.Equal(t, "No escalation needed.", result.RecommendedAction)
}

func TestEvaluatePayoutPreferredOverEstimate(t *testing.T) {
	engine := newTestEngine()

	// Estimate alone would trigger high_value, but the actual payout is low.
	result := engine.Evaluate(Input{
		Claim:        cleanClaim(damage(15000)),
		RouterOutput: "total_loss",
		PayoutAmount: damage(4500),
	})
	assert.NotContains(t, result.Reasons, ReasonHighValue)
}

func TestEvaluatePriority(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name         string
		input        Input
		wantPriority string
	}{
		{
			name: "one reason is low",
			input: Input{
				Claim:        cleanClaim(damage(15000)),
				RouterOutput: "new",
			},
			wantPriority: PriorityLow,
		},
		{
			name: "two reasons is medium",
			input: Input{
				Claim:           cleanClaim(damage(15000)),
				RouterOutput:    "new",
				SimilarityScore: similarity(60),
			},
			wantPriority: PriorityMedium,
		},
		{
			name: "three reasons is high",
			input: Input{
				Claim:           cleanClaim(damage(15000)),
				RouterOutput:    "possibly new, unclear damage, might be duplicate",
				SimilarityScore: similarity(60),
			},
			wantPriority: PriorityHigh,
		},
		{
			name: "fraud alone is high",
			input: Input{
				Claim: model.Claim{
					ID:                  "CLM-00000002",
					VIN:                 "VIN1",
					IncidentDate:        "2024-03-01",
					IncidentDescription: "The inflated repair quote came with the claim file",
					DamageDescription:   "The repair quote for the claim looks inflated to reviewers",
				},
				RouterOutput: "new",
			},
			wantPriority: PriorityHigh,
		},
		{
			name: "fraud with two indicators is critical",
			input: Input{
				Claim: model.Claim{
					ID:                  "CLM-00000003",
					VIN:                 "VIN1",
					IncidentDate:        "2024-03-01",
					IncidentDescription: "Damage appears staged and the quote looks inflated to us",
					DamageDescription:   "Suspicious damage pattern staged across both inflated panels",
				},
				RouterOutput: "new",
			},
			wantPriority: PriorityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Evaluate(tt.input)
			assert.Equal(t, tt.wantPriority, result.Priority)
		})
	}
}

func TestEvaluateReasonOrderAndAction(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:           cleanClaim(damage(15000)),
		RouterOutput:    "possibly new, unclear damage, might be duplicate",
		SimilarityScore: similarity(60),
	})

	assert.Equal(t, []string{ReasonLowConfidence, ReasonHighValue, ReasonAmbiguousSimilarity}, result.Reasons)
	assert.Contains(t, result.RecommendedAction, "Review claim manually.")
	assert.Contains(t, result.RecommendedAction, "Verify valuation and damage estimate.")
	assert.Contains(t, result.RecommendedAction, "Confirm routing classification.")
	assert.Contains(t, result.RecommendedAction, "Confirm duplicate vs new claim.")
}

func TestConfidenceFloorsAtZero(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(Input{
		Claim:        cleanClaim(nil),
		RouterOutput: "possibly unclear, might be, maybe, unsure, uncertain, could be, not sure",
	})
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.Contains(t, result.Reasons, ReasonLowConfidence)
}
