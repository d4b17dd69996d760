// Package escalation decides whether a routed claim needs human review.
package escalation

import (
	"strings"

	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/model"
)

// Escalation reasons, in the order they are evaluated and reported.
const (
	ReasonLowConfidence       = "low_confidence"
	ReasonHighValue           = "high_value"
	ReasonAmbiguousSimilarity = "ambiguous_similarity"
	ReasonFraudSuspected      = "fraud_suspected"
)

// Escalation priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// hedgeMarkers are the uncertainty phrases that lower routing confidence.
var hedgeMarkers = []string{
	"possibly", "unclear", "might", "maybe", "unsure", "uncertain",
	"could be", "not sure",
}

// Config holds escalation thresholds.
type Config struct {
	ConfidenceThreshold float64
	ConfidenceDecrement float64
	HighValueThreshold  float64
	AmbiguousLow        float64
	AmbiguousHigh       float64
}

// DefaultConfig returns the default escalation configuration.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.7,
		ConfidenceDecrement: 0.15,
		HighValueThreshold:  10000,
		AmbiguousLow:        50,
		AmbiguousHigh:       80,
	}
}

// Input carries the routed claim and the signals the engine evaluates.
// SimilarityScore and PayoutAmount are nil when not computed for this claim.
type Input struct {
	SimilarityScore *float64
	PayoutAmount    *float64
	RouterOutput    string
	Claim           model.Claim
	PriorClaims     []model.Claim
	VehicleValue    float64
}

// Result is the escalation decision for a claim.
type Result struct {
	Priority          string
	RecommendedAction string
	Reasons           []string
	FraudIndicators   []string
	Confidence        float64
	NeedsReview       bool
}

// Engine evaluates routed claims for escalation.
type Engine struct {
	fraudCfg fraud.Config
	cfg      Config
}

// NewEngine creates an escalation engine.
func NewEngine(cfg Config, fraudCfg fraud.Config) *Engine {
	return &Engine{cfg: cfg, fraudCfg: fraudCfg}
}

// Evaluate applies the escalation checks in fixed order: routing confidence,
// claim value, duplicate-similarity ambiguity, then fraud language. A claim
// needs review exactly when at least one reason fires.
func (e *Engine) Evaluate(in Input) Result {
	result := Result{
		Reasons:         []string{},
		FraudIndicators: []string{},
		Confidence:      e.confidence(in.RouterOutput),
		Priority:        PriorityLow,
	}

	if result.Confidence < e.cfg.ConfidenceThreshold {
		result.Reasons = append(result.Reasons, ReasonLowConfidence)
	}

	if e.claimValue(in) >= e.cfg.HighValueThreshold {
		result.Reasons = append(result.Reasons, ReasonHighValue)
	}

	if in.SimilarityScore != nil &&
		*in.SimilarityScore >= e.cfg.AmbiguousLow && *in.SimilarityScore <= e.cfg.AmbiguousHigh {
		result.Reasons = append(result.Reasons, ReasonAmbiguousSimilarity)
	}

	result.FraudIndicators = fraud.DetectIndicators(in.Claim, in.PriorClaims, in.VehicleValue, e.fraudCfg)
	fraudSuspected := len(result.FraudIndicators) > 0
	if fraudSuspected {
		result.Reasons = append(result.Reasons, ReasonFraudSuspected)
	}

	result.NeedsReview = len(result.Reasons) > 0
	result.Priority = priority(result.Reasons, fraudSuspected, len(result.FraudIndicators))
	result.RecommendedAction = recommendedAction(result.Reasons)
	return result
}

// confidence starts at 1.0 and loses a fixed decrement per distinct hedge
// marker found in the router output, floored at zero.
func (e *Engine) confidence(routerOutput string) float64 {
	text := strings.ToLower(routerOutput)
	confidence := 1.0
	for _, marker := range hedgeMarkers {
		if strings.Contains(text, marker) {
			confidence -= e.cfg.ConfidenceDecrement
		}
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// claimValue prefers the computed payout over the raw damage estimate.
func (e *Engine) claimValue(in Input) float64 {
	if in.PayoutAmount != nil {
		return *in.PayoutAmount
	}
	if in.Claim.EstimatedDamage != nil {
		return *in.Claim.EstimatedDamage
	}
	return 0
}

func priority(reasons []string, fraudSuspected bool, indicatorCount int) string {
	switch {
	case fraudSuspected && indicatorCount >= 2:
		return PriorityCritical
	case fraudSuspected || len(reasons) >= 3:
		return PriorityHigh
	case len(reasons) == 2:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func recommendedAction(reasons []string) string {
	if len(reasons) == 0 {
		return "No escalation needed."
	}
	parts := []string{"Review claim manually."}
	for _, reason := range reasons {
		switch reason {
		case ReasonFraudSuspected:
			parts = append(parts, "Refer to SIU if fraud indicators are confirmed.")
		case ReasonHighValue:
			parts = append(parts, "Verify valuation and damage estimate.")
		case ReasonLowConfidence:
			parts = append(parts, "Confirm routing classification.")
		case ReasonAmbiguousSimilarity:
			parts = append(parts, "Confirm duplicate vs new claim.")
		}
	}
	return strings.Join(parts, " ")
}
