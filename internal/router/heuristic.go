package router

import (
	"context"

	"github.com/jmoreau/claimroute/internal/service"
)

// Duplicate-routing thresholds. High-value claims need a stronger similarity
// signal before being written off as duplicates.
const (
	duplicateSimilarityMin          = 40.0
	duplicateSimilarityMinHighValue = 60.0
	duplicateMaxDays                = 3
)

// HeuristicClassifier routes claims with fixed rules over the enrichment
// signals computed before classification. It implements service.Classifier
// and is the default when no external classifier is configured.
type HeuristicClassifier struct{}

// NewHeuristicClassifier creates the rule-based classifier.
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Classify applies routing rules in fixed order: duplicate, total loss,
// fraud, partial loss, then new. The returned string feeds ParseClaimType.
func (c *HeuristicClassifier) Classify(_ context.Context, req service.ClassifyRequest) (string, error) {
	if isDuplicate(req) {
		return "duplicate", nil
	}
	if isTotalLoss(req) {
		return "total_loss", nil
	}
	if len(req.FraudIndicators) > 0 {
		return "fraud", nil
	}
	if isPartialLoss(req) {
		return "partial_loss", nil
	}
	return "new", nil
}

func isDuplicate(req service.ClassifyRequest) bool {
	minSimilarity := duplicateSimilarityMin
	if req.HighValue {
		minSimilarity = duplicateSimilarityMinHighValue
	}
	for _, candidate := range req.DuplicateCandidates {
		if candidate.SimilarityScore >= minSimilarity &&
			candidate.DaysDifference >= 0 && candidate.DaysDifference <= duplicateMaxDays {
			return true
		}
	}
	return false
}

func isTotalLoss(req service.ClassifyRequest) bool {
	for _, key := range []string{"is_economic_total_loss", "is_catastrophic_event", "damage_indicates_total_loss"} {
		if flag, ok := req.EconomicSignals[key].(bool); ok && flag {
			return true
		}
	}
	return false
}

func isPartialLoss(req service.ClassifyRequest) bool {
	repairable, _ := req.EconomicSignals["damage_is_repairable"].(bool)
	econ, _ := req.EconomicSignals["is_economic_total_loss"].(bool)
	return repairable && !econ
}
