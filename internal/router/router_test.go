package router

import (
	"context"
	"testing"

	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaimType(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   model.ClaimType
	}{
		{"exact new", "new", model.TypeNew},
		{"exact duplicate", "duplicate", model.TypeDuplicate},
		{"exact total_loss", "total_loss", model.TypeTotalLoss},
		{"spaced total loss", "total loss", model.TypeTotalLoss},
		{"hyphenated partial-loss", "partial-loss", model.TypePartialLoss},
		{"uppercase", "FRAUD", model.TypeFraud},
		{"trailing punctuation", "duplicate.", model.TypeDuplicate},
		{"fraud beats total loss", "fraud, possibly a total loss as well", model.TypeFraud},
		{"partial beats total", "partial loss with some total loss language", model.TypePartialLoss},
		{"mid-sentence mention does not match", "this appears to be a duplicate claim", model.TypeNew},
		{"unrecognized defaults to new", "no idea what this is", model.TypeNew},
		{"empty defaults to new", "", model.TypeNew},
		{"whitespace padded", "  total_loss  ", model.TypeTotalLoss},
		{"reasoning mentions other types", "new\nNot a duplicate and definitely not fraud.", model.TypeNew},
		{"duplicate with total loss reasoning", "duplicate\nSame VIN, not a total loss.", model.TypeDuplicate},
		{"total loss with fraud reasoning", "total_loss\nNo fraud indicators present.", model.TypeTotalLoss},
		{"type on second line", "Routing decision follows.\nfraud", model.TypeFraud},
		{"blank first line", "\nduplicate", model.TypeDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClaimType(tt.output))
		})
	}
}

func classifyReq(signals map[string]any) service.ClassifyRequest {
	return service.ClassifyRequest{
		Claim:           model.Claim{ID: "CLM-1", VIN: "VIN1"},
		EconomicSignals: signals,
	}
}

func TestHeuristicClassifier(t *testing.T) {
	classifier := NewHeuristicClassifier()
	ctx := context.Background()

	t.Run("duplicate on close similar candidate", func(t *testing.T) {
		req := classifyReq(nil)
		req.DuplicateCandidates = []service.DuplicateCandidate{
			{ClaimID: "CLM-0", DaysDifference: 1, SimilarityScore: 55},
		}
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "duplicate", out)
	})

	t.Run("high value needs stronger similarity", func(t *testing.T) {
		req := classifyReq(nil)
		req.HighValue = true
		req.DuplicateCandidates = []service.DuplicateCandidate{
			{ClaimID: "CLM-0", DaysDifference: 1, SimilarityScore: 55},
		}
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "new", out)
	})

	t.Run("distant incident is not duplicate", func(t *testing.T) {
		req := classifyReq(nil)
		req.DuplicateCandidates = []service.DuplicateCandidate{
			{ClaimID: "CLM-0", DaysDifference: 30, SimilarityScore: 90},
		}
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "new", out)
	})

	t.Run("total loss on catastrophic signal", func(t *testing.T) {
		req := classifyReq(map[string]any{"is_catastrophic_event": true})
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "total_loss", out)
	})

	t.Run("fraud on pre-routing indicators", func(t *testing.T) {
		req := classifyReq(nil)
		req.FraudIndicators = []string{"staged_accident_indicators"}
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "fraud", out)
	})

	t.Run("total loss beats fraud", func(t *testing.T) {
		req := classifyReq(map[string]any{"is_economic_total_loss": true})
		req.FraudIndicators = []string{"staged_accident_indicators"}
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "total_loss", out)
	})

	t.Run("partial loss on repairable-only damage", func(t *testing.T) {
		req := classifyReq(map[string]any{
			"damage_is_repairable":   true,
			"is_economic_total_loss": false,
		})
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "partial_loss", out)
	})

	t.Run("repairable but economic total loss routes total", func(t *testing.T) {
		req := classifyReq(map[string]any{
			"damage_is_repairable":   true,
			"is_economic_total_loss": true,
		})
		out, err := classifier.Classify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "total_loss", out)
	})

	t.Run("defaults to new", func(t *testing.T) {
		out, err := classifier.Classify(ctx, classifyReq(nil))
		require.NoError(t, err)
		assert.Equal(t, "new", out)
	})
}
