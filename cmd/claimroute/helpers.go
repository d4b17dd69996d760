package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/engine"
	"github.com/jmoreau/claimroute/internal/escalation"
	"github.com/jmoreau/claimroute/internal/fraud"
	"github.com/jmoreau/claimroute/internal/loss"
	"github.com/jmoreau/claimroute/internal/policy"
	"github.com/jmoreau/claimroute/internal/router"
	"github.com/jmoreau/claimroute/internal/service"
	"github.com/jmoreau/claimroute/internal/storage"
	"github.com/jmoreau/claimroute/internal/valuation"

	"github.com/spf13/viper"
)

// setConfigDefaults registers every tunable threshold so config files and
// CLAIMROUTE_* env vars can override them.
func setConfigDefaults() {
	viper.SetDefault("escalation.confidence_threshold", 0.7)
	viper.SetDefault("escalation.confidence_decrement", 0.15)
	viper.SetDefault("escalation.high_value_threshold", 10000.0)
	viper.SetDefault("escalation.ambiguous_low", 50.0)
	viper.SetDefault("escalation.ambiguous_high", 80.0)

	defaults := fraud.DefaultConfig()
	viper.SetDefault("fraud.multiple_claims_days", defaults.MultipleClaimsDays)
	viper.SetDefault("fraud.multiple_claims_threshold", defaults.MultipleClaimsThreshold)
	viper.SetDefault("fraud.keyword_score", defaults.KeywordScore)
	viper.SetDefault("fraud.multiple_claims_score", defaults.MultipleClaimsScore)
	viper.SetDefault("fraud.timing_anomaly_score", defaults.TimingAnomalyScore)
	viper.SetDefault("fraud.damage_mismatch_score", defaults.DamageMismatchScore)
	viper.SetDefault("fraud.description_mismatch_score", defaults.DescriptionMismatchScore)
	viper.SetDefault("fraud.medium_risk_threshold", defaults.MediumRiskThreshold)
	viper.SetDefault("fraud.high_risk_threshold", defaults.HighRiskThreshold)
	viper.SetDefault("fraud.critical_risk_threshold", defaults.CriticalRiskThreshold)
	viper.SetDefault("fraud.critical_indicator_count", defaults.CriticalIndicatorCount)
	viper.SetDefault("fraud.damage_vs_value_ratio", defaults.DamageVsValueRatio)
	viper.SetDefault("fraud.description_overlap_threshold", defaults.DescriptionOverlapThreshold)

	viper.SetDefault("loss.total_loss_threshold", loss.DefaultThreshold)

	viper.SetDefault("valuation.base_value", valuation.DefaultBaseValue)
	viper.SetDefault("valuation.depreciation_per_year", valuation.DefaultDepreciationPerYear)
	viper.SetDefault("valuation.min_vehicle_value", valuation.DefaultMinVehicleValue)
	viper.SetDefault("valuation.cache_size", 128)

	viper.SetDefault("retry.max_attempts", 3)
	viper.SetDefault("retry.initial_delay", "100ms")
	viper.SetDefault("retry.max_delay", "30s")
	viper.SetDefault("retry.multiplier", 2.0)
}

func databasePath() (string, error) {
	dbPath := viper.GetString("database.path")
	if dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "claimroute", "claims.db"), nil
}

func openStorage() (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// buildEngine assembles the workflow engine from configuration: SQLite
// storage, the rule-based classifier, a cached static valuer, and policies
// loaded from the config file.
func buildEngine(store *storage.SQLiteStorage) (*engine.Engine, error) {
	valuer := valuation.NewCachingValuer(
		valuation.NewStaticValuer(valuation.Config{
			BaseValue:           viper.GetFloat64("valuation.base_value"),
			DepreciationPerYear: viper.GetFloat64("valuation.depreciation_per_year"),
			MinVehicleValue:     viper.GetFloat64("valuation.min_vehicle_value"),
		}),
		viper.GetInt("valuation.cache_size"),
	)

	var policies []service.Policy
	if err := viper.UnmarshalKey("policies", &policies); err != nil {
		return nil, fmt.Errorf("%w: failed to load policies: %v", common.ErrInvalidConfig, err)
	}

	return engine.NewEngine(engine.Options{
		Storage:    store,
		Classifier: router.NewHeuristicClassifier(),
		Valuer:     valuer,
		Policies:   policy.NewStaticLookup(policies),
		FraudConfig: fraud.Config{
			MultipleClaimsDays:          viper.GetInt("fraud.multiple_claims_days"),
			MultipleClaimsThreshold:     viper.GetInt("fraud.multiple_claims_threshold"),
			KeywordScore:                viper.GetInt("fraud.keyword_score"),
			MultipleClaimsScore:         viper.GetInt("fraud.multiple_claims_score"),
			TimingAnomalyScore:          viper.GetInt("fraud.timing_anomaly_score"),
			DamageMismatchScore:         viper.GetInt("fraud.damage_mismatch_score"),
			DescriptionMismatchScore:    viper.GetInt("fraud.description_mismatch_score"),
			MediumRiskThreshold:         viper.GetInt("fraud.medium_risk_threshold"),
			HighRiskThreshold:           viper.GetInt("fraud.high_risk_threshold"),
			CriticalRiskThreshold:       viper.GetInt("fraud.critical_risk_threshold"),
			CriticalIndicatorCount:      viper.GetInt("fraud.critical_indicator_count"),
			DamageVsValueRatio:          viper.GetFloat64("fraud.damage_vs_value_ratio"),
			DescriptionOverlapThreshold: viper.GetFloat64("fraud.description_overlap_threshold"),
		},
		LossConfig: loss.Config{
			Threshold: viper.GetFloat64("loss.total_loss_threshold"),
		},
		EscalationCfg: escalation.Config{
			ConfidenceThreshold: viper.GetFloat64("escalation.confidence_threshold"),
			ConfidenceDecrement: viper.GetFloat64("escalation.confidence_decrement"),
			HighValueThreshold:  viper.GetFloat64("escalation.high_value_threshold"),
			AmbiguousLow:        viper.GetFloat64("escalation.ambiguous_low"),
			AmbiguousHigh:       viper.GetFloat64("escalation.ambiguous_high"),
		},
		Retry: service.RetryOptions{
			MaxAttempts:  viper.GetInt("retry.max_attempts"),
			InitialDelay: viper.GetDuration("retry.initial_delay"),
			MaxDelay:     viper.GetDuration("retry.max_delay"),
			Multiplier:   viper.GetFloat64("retry.multiplier"),
		},
	}), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
