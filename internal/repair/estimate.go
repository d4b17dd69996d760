// Package repair prices partial-loss repairs from a damage description.
package repair

import (
	"github.com/shopspring/decimal"
)

// Labor and threshold defaults for repair estimates.
const (
	DefaultLaborRate      = 75.0
	LaborHoursRnIPerPart  = 1.5
	LaborHoursPaintBody   = 2.0
	LaborHoursMin         = 2.0
	TotalLossRatioDefault = 0.75
)

// Estimate is a full repair cost breakdown for a partial-loss claim.
type Estimate struct {
	Parts              []Part
	PartsCost          float64
	LaborHours         float64
	LaborRate          float64
	LaborCost          float64
	TotalEstimate      float64
	Deductible         float64
	CustomerPays       float64
	InsurancePays      float64
	VehicleValue       float64
	RepairToValueRatio float64
	TotalLossThreshold float64
	IsTotalLoss        bool
}

// Calculate builds a repair estimate: parts from the catalog, removal and
// install labor per part plus a paint/body allowance when any matched part
// needs paint, floored at the minimum job time. Currency math runs through
// decimal and rounds to cents. vehicleValue <= 0 skips the total-loss ratio
// check.
func Calculate(damageDescription, partTypePreference string, laborRate, deductible, vehicleValue float64) Estimate {
	if laborRate <= 0 {
		laborRate = DefaultLaborRate
	}

	parts := MatchParts(damageDescription)
	partsCost := decimal.Zero
	needsPaint := false
	for _, part := range parts {
		partsCost = partsCost.Add(decimal.NewFromFloat(part.Price(partTypePreference)))
		if part.NeedsPaint {
			needsPaint = true
		}
	}

	laborHours := float64(len(parts)) * LaborHoursRnIPerPart
	if needsPaint {
		laborHours += LaborHoursPaintBody
	}
	if laborHours < LaborHoursMin {
		laborHours = LaborHoursMin
	}

	laborCost := decimal.NewFromFloat(laborHours).Mul(decimal.NewFromFloat(laborRate)).Round(2)
	total := partsCost.Add(laborCost).Round(2)
	ded := decimal.NewFromFloat(deductible)

	insurance := total.Sub(ded)
	if insurance.IsNegative() {
		insurance = decimal.Zero
	}
	customer := total.Sub(insurance)

	estimate := Estimate{
		Parts:              parts,
		PartsCost:          partsCost.Round(2).InexactFloat64(),
		LaborHours:         laborHours,
		LaborRate:          laborRate,
		LaborCost:          laborCost.InexactFloat64(),
		TotalEstimate:      total.InexactFloat64(),
		Deductible:         deductible,
		CustomerPays:       customer.Round(2).InexactFloat64(),
		InsurancePays:      insurance.Round(2).InexactFloat64(),
		VehicleValue:       vehicleValue,
		TotalLossThreshold: TotalLossRatioDefault,
	}

	if vehicleValue > 0 {
		estimate.RepairToValueRatio = estimate.TotalEstimate / vehicleValue
		estimate.IsTotalLoss = estimate.RepairToValueRatio >= estimate.TotalLossThreshold
	}
	return estimate
}
