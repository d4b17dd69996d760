// Package valuation provides deterministic vehicle market value lookups and
// total-loss payout calculation.
package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoreau/claimroute/internal/service"
)

// Estimation defaults, overridable via Config.
const (
	DefaultBaseValue           = 12000.0
	DefaultDepreciationPerYear = 500.0
	DefaultMinVehicleValue     = 2000.0
)

// Config holds valuation estimation parameters.
type Config struct {
	BaseValue           float64
	DepreciationPerYear float64
	MinVehicleValue     float64
}

// DefaultConfig returns the default valuation configuration.
func DefaultConfig() Config {
	return Config{
		BaseValue:           DefaultBaseValue,
		DepreciationPerYear: DefaultDepreciationPerYear,
		MinVehicleValue:     DefaultMinVehicleValue,
	}
}

// StaticValuer resolves vehicle values from a fixed table, falling back to a
// deterministic age-based estimate. It implements service.Valuer.
type StaticValuer struct {
	now    func() time.Time
	values map[string]service.Valuation
	config Config
}

// Option configures a StaticValuer.
type Option func(*StaticValuer)

// WithValues seeds the lookup table. Keys are VINs or year_make_model strings.
func WithValues(values map[string]service.Valuation) Option {
	return func(v *StaticValuer) {
		for k, val := range values {
			v.values[k] = val
		}
	}
}

// WithClock overrides the current-time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(v *StaticValuer) {
		v.now = now
	}
}

// NewStaticValuer creates a valuer with the given config and options.
func NewStaticValuer(config Config, opts ...Option) *StaticValuer {
	v := &StaticValuer{
		now:    time.Now,
		values: make(map[string]service.Valuation),
		config: config,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VehicleValue returns the market value for a vehicle. Known VINs (or
// year/make/model combinations) resolve from the table; everything else gets
// the fallback estimate max(floor, base - depreciation*age).
func (v *StaticValuer) VehicleValue(_ context.Context, vin string, year int, vehicleMake, vehicleModel string) (service.Valuation, error) {
	vin = strings.TrimSpace(vin)
	if year <= 0 {
		year = 2020
	}

	key := vin
	if key == "" {
		key = fmt.Sprintf("%d_%s_%s", year, strings.TrimSpace(vehicleMake), strings.TrimSpace(vehicleModel))
	}
	if val, ok := v.values[key]; ok {
		return val, nil
	}

	age := v.now().Year() - year
	value := v.config.BaseValue - float64(age)*v.config.DepreciationPerYear
	if value < v.config.MinVehicleValue {
		value = v.config.MinVehicleValue
	}
	return service.Valuation{
		Value:     value,
		Condition: "good",
		Source:    "estimated",
	}, nil
}
