package fraud

// Config holds fraud detection thresholds and score increments.
type Config struct {
	MultipleClaimsDays          int
	MultipleClaimsThreshold     int
	KeywordScore                int
	MultipleClaimsScore         int
	TimingAnomalyScore          int
	DamageMismatchScore         int
	DescriptionMismatchScore    int
	MediumRiskThreshold         int
	HighRiskThreshold           int
	CriticalRiskThreshold       int
	CriticalIndicatorCount      int
	DamageVsValueRatio          float64
	DescriptionOverlapThreshold float64
}

// DefaultConfig returns the default fraud configuration.
func DefaultConfig() Config {
	return Config{
		MultipleClaimsDays:          90,
		MultipleClaimsThreshold:     2,
		KeywordScore:                20,
		MultipleClaimsScore:         25,
		TimingAnomalyScore:          15,
		DamageMismatchScore:         20,
		DescriptionMismatchScore:    15,
		MediumRiskThreshold:         30,
		HighRiskThreshold:           50,
		CriticalRiskThreshold:       75,
		CriticalIndicatorCount:      5,
		DamageVsValueRatio:          0.9,
		DescriptionOverlapThreshold: 0.1,
	}
}
