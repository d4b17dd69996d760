package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinPayoutVehicleValue is the minimum vehicle value eligible for a payout.
const MinPayoutVehicleValue = 100.0

// Payout is a total-loss settlement calculation.
type Payout struct {
	Calculation  string
	Amount       float64
	VehicleValue float64
	Deductible   float64
}

// CalculatePayout computes a total-loss payout as vehicle value minus the
// policy deductible, floored at zero. Currency math runs through decimal to
// avoid float drift in the cents.
func CalculatePayout(vehicleValue, deductible float64) (Payout, error) {
	if vehicleValue < MinPayoutVehicleValue {
		return Payout{}, fmt.Errorf("vehicle value %.2f below minimum %.2f", vehicleValue, MinPayoutVehicleValue)
	}

	value := decimal.NewFromFloat(vehicleValue).Round(2)
	ded := decimal.NewFromFloat(deductible).Round(2)

	amount := value.Sub(ded)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	amount = amount.Round(2)

	payout := Payout{
		Amount:       amount.InexactFloat64(),
		VehicleValue: value.InexactFloat64(),
		Deductible:   ded.InexactFloat64(),
	}
	payout.Calculation = fmt.Sprintf("$%s (vehicle value) - $%s (deductible) = $%s",
		value.StringFixed(2), ded.StringFixed(2), amount.StringFixed(2))
	return payout, nil
}
