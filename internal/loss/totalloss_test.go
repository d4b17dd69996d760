package loss

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedValuer struct {
	value float64
	err   error
}

func (v fixedValuer) VehicleValue(context.Context, string, int, string, string) (service.Valuation, error) {
	if v.err != nil {
		return service.Valuation{}, v.err
	}
	return service.Valuation{Value: v.value, Condition: "good", Source: "table"}, nil
}

func damage(amount float64) *float64 {
	return &amount
}

func TestEvaluateRepairableDamageRaisesEconomicBar(t *testing.T) {
	classifier := NewClassifier(fixedValuer{value: 20000}, DefaultConfig())

	// Ratio 0.8 with repairable-only language: below the raised 1.0 bar.
	result, err := classifier.Evaluate(context.Background(), model.Claim{
		ID:                  "CLM-1",
		DamageDescription:   "Damaged door and rear bumper",
		IncidentDescription: "Hit while parked",
		EstimatedDamage:     damage(16000),
	})
	require.NoError(t, err)
	assert.False(t, result.IsEconomicTotalLoss)
	assert.True(t, result.DamageIsRepairable)
	assert.InDelta(t, 0.8, result.DamageToValueRatio, 0.001)

	// Ratio 1.0 with the same language: economic total loss.
	result, err = classifier.Evaluate(context.Background(), model.Claim{
		ID:                  "CLM-2",
		DamageDescription:   "Damaged door and rear bumper",
		IncidentDescription: "Hit while parked",
		EstimatedDamage:     damage(20000),
	})
	require.NoError(t, err)
	assert.True(t, result.IsEconomicTotalLoss)
}

func TestEvaluateKeywordAloneIsNotEconomicTotalLoss(t *testing.T) {
	classifier := NewClassifier(fixedValuer{value: 20000}, DefaultConfig())

	result, err := classifier.Evaluate(context.Background(), model.Claim{
		ID:                  "CLM-3",
		DamageDescription:   "Vehicle totaled",
		IncidentDescription: "Collision on the highway",
		EstimatedDamage:     damage(10000), // ratio 0.5
	})
	require.NoError(t, err)
	assert.False(t, result.IsEconomicTotalLoss)
	assert.True(t, result.DamageIndicatesTotalLoss)
}

func TestEvaluateMissingEstimate(t *testing.T) {
	classifier := NewClassifier(fixedValuer{value: 20000}, DefaultConfig())

	result, err := classifier.Evaluate(context.Background(), model.Claim{
		ID:                  "CLM-4",
		DamageDescription:   "Car submerged in flood water",
		IncidentDescription: "Flash flood in parking structure",
	})
	require.NoError(t, err)
	assert.False(t, result.IsEconomicTotalLoss)
	assert.True(t, result.IsCatastrophicEvent)
	assert.Zero(t, result.DamageToValueRatio)
}

func TestEvaluateValuationFailurePropagates(t *testing.T) {
	lookupErr := errors.New("valuation service down")
	classifier := NewClassifier(fixedValuer{err: lookupErr}, DefaultConfig())

	_, err := classifier.Evaluate(context.Background(), model.Claim{
		ID:                "CLM-5",
		DamageDescription: "Front bumper scratch",
		EstimatedDamage:   damage(1000),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
}

func TestKeywordPredicates(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		catastrophic   bool
		explicit       bool
		repairable     bool
	}{
		{"flood event", "car was flooded overnight", true, false, false},
		{"fire word boundary", "the engine misfired badly", false, false, false},
		{"explicit totaled", "vehicle is totaled", false, true, false},
		{"frame damage", "visible frame damage on inspection", false, true, false},
		{"repairable only", "dented door and cracked windshield", false, false, true},
		{"dent not accident", "minor accident with no visible harm", false, false, false},
		{"repairable overridden", "doors crushed in rollover", true, false, false},
		{"empty", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.catastrophic, IsCatastrophicEvent(tt.text), "catastrophic")
			assert.Equal(t, tt.explicit, IndicatesTotalLoss(tt.text), "explicit")
			assert.Equal(t, tt.repairable, IsRepairable(tt.text), "repairable")
		})
	}
}
