package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchParts(t *testing.T) {
	parts := MatchParts("Front bumper cracked and headlight broken")
	require.Len(t, parts, 2)

	ids := []string{parts[0].ID, parts[1].ID}
	assert.Contains(t, ids, "PART-BUMPER-FRONT")
	assert.Contains(t, ids, "PART-HEADLIGHT")
}

func TestMatchPartsSpecificBeatsGeneric(t *testing.T) {
	parts := MatchParts("rear bumper dented")
	require.Len(t, parts, 1)
	assert.Equal(t, "PART-BUMPER-REAR", parts[0].ID)
}

func TestMatchPartsEmpty(t *testing.T) {
	assert.Empty(t, MatchParts(""))
	assert.Empty(t, MatchParts("engine trouble"))
}

func TestPartPriceByType(t *testing.T) {
	part := Part{PriceOEM: 850, PriceAftermarket: 450, PriceRefurbished: 300}
	assert.Equal(t, 850.0, part.Price(PartTypeOEM))
	assert.Equal(t, 450.0, part.Price(PartTypeAftermarket))
	assert.Equal(t, 300.0, part.Price(PartTypeRefurbished))
	assert.Equal(t, 450.0, part.Price("unknown"))
}

func TestCalculate(t *testing.T) {
	estimate := Calculate("Front bumper cracked, headlight broken", PartTypeAftermarket, 85, 500, 20000)

	require.Len(t, estimate.Parts, 2)
	assert.InDelta(t, 630.0, estimate.PartsCost, 0.001) // 450 + 180

	// Two parts at 1.5h each plus paint/body for the bumper.
	assert.InDelta(t, 5.0, estimate.LaborHours, 0.001)
	assert.InDelta(t, 425.0, estimate.LaborCost, 0.001)
	assert.InDelta(t, 1055.0, estimate.TotalEstimate, 0.001)

	assert.InDelta(t, estimate.PartsCost+estimate.LaborCost, estimate.TotalEstimate, 0.001)
	assert.InDelta(t, 555.0, estimate.InsurancePays, 0.001)
	assert.InDelta(t, 500.0, estimate.CustomerPays, 0.001)
	assert.False(t, estimate.IsTotalLoss)
}

func TestCalculateOEMCostsMore(t *testing.T) {
	oem := Calculate("rear bumper", PartTypeOEM, 85, 500, 20000)
	aftermarket := Calculate("rear bumper", PartTypeAftermarket, 85, 500, 20000)
	assert.Greater(t, oem.TotalEstimate, aftermarket.TotalEstimate)
}

func TestCalculateLaborRates(t *testing.T) {
	expensive := Calculate("front bumper", "", 85, 500, 20000)
	cheap := Calculate("front bumper", "", 55, 500, 20000)
	assert.InDelta(t, expensive.LaborHours, cheap.LaborHours, 0.001)
	assert.Greater(t, expensive.LaborCost, cheap.LaborCost)

	defaulted := Calculate("front bumper", "", 0, 500, 20000)
	assert.Equal(t, DefaultLaborRate, defaulted.LaborRate)
}

func TestCalculateMinimumLabor(t *testing.T) {
	// Headlight has no paint work: 1.5h raises to the 2.0h minimum.
	estimate := Calculate("headlight broken", PartTypeAftermarket, 85, 500, 20000)
	assert.InDelta(t, LaborHoursMin, estimate.LaborHours, 0.001)
}

func TestCalculateDeductibleExceedsTotal(t *testing.T) {
	estimate := Calculate("mirror knocked off", PartTypeRefurbished, 60, 1000, 20000)
	assert.Zero(t, estimate.InsurancePays)
	assert.InDelta(t, estimate.TotalEstimate, estimate.CustomerPays, 0.001)
}

func TestCalculateTotalLossFlag(t *testing.T) {
	damage := "Front bumper, rear bumper, hood, door, fender, headlight, taillight, windshield, trunk, quarter panel"
	estimate := Calculate(damage, PartTypeOEM, 85, 500, 5000)
	assert.True(t, estimate.IsTotalLoss)
	assert.Greater(t, estimate.RepairToValueRatio, estimate.TotalLossThreshold)
}
