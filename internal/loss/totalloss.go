// Package loss classifies claim damage as economic total loss, catastrophic,
// or repairable.
package loss

import (
	"context"
	"fmt"

	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"
)

// DefaultThreshold is the damage-to-value ratio at which a claim becomes an
// economic total loss.
const DefaultThreshold = 0.75

// Config holds total-loss classification thresholds.
type Config struct {
	// Threshold is the damage/value ratio for economic total loss.
	Threshold float64
}

// DefaultConfig returns the default total-loss configuration.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Result reports every total-loss signal independently so downstream routing
// can weigh them separately.
type Result struct {
	IsEconomicTotalLoss      bool
	IsCatastrophicEvent      bool
	DamageIndicatesTotalLoss bool
	DamageIsRepairable       bool
	VehicleValue             float64
	DamageToValueRatio       float64
}

// Classifier evaluates claims against economic and language total-loss
// signals.
type Classifier struct {
	valuer service.Valuer
	cfg    Config
}

// NewClassifier creates a total-loss classifier backed by the given valuer.
func NewClassifier(valuer service.Valuer, cfg Config) *Classifier {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Classifier{valuer: valuer, cfg: cfg}
}

// Evaluate computes all total-loss signals for a claim. The economic check
// compares the damage estimate to the vehicle's looked-up value; a missing or
// non-positive estimate means the economic flag stays false while the
// language flags are still reported. Keyword matches alone never set the
// economic flag.
func (c *Classifier) Evaluate(ctx context.Context, claim model.Claim) (Result, error) {
	text := claim.CombinedText()
	result := Result{
		IsCatastrophicEvent:      IsCatastrophicEvent(text),
		DamageIndicatesTotalLoss: IndicatesTotalLoss(text),
		DamageIsRepairable:       IsRepairable(text),
	}

	valuation, err := c.valuer.VehicleValue(ctx, claim.VIN, claim.VehicleYear,
		claim.VehicleMake, claim.VehicleModel)
	if err != nil {
		return Result{}, fmt.Errorf("looking up vehicle value: %w", err)
	}
	result.VehicleValue = valuation.Value

	if claim.EstimatedDamage == nil || *claim.EstimatedDamage <= 0 || valuation.Value <= 0 {
		return result, nil
	}
	result.DamageToValueRatio = *claim.EstimatedDamage / valuation.Value

	// Repairable-only damage language raises the economic bar to the full
	// vehicle value.
	threshold := c.cfg.Threshold
	if result.DamageIsRepairable && !result.DamageIndicatesTotalLoss && !result.IsCatastrophicEvent {
		threshold = 1.0
	}
	result.IsEconomicTotalLoss = result.DamageToValueRatio >= threshold

	return result, nil
}
