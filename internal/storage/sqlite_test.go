package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "claims.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testInput() model.ClaimInput {
	amount := 4200.0
	return model.ClaimInput{
		PolicyNumber:        "POL-001",
		VIN:                 "1HGCM82633A004352",
		VehicleYear:         2021,
		VehicleMake:         "Honda",
		VehicleModel:        "Accord",
		IncidentDate:        "2024-03-01",
		IncidentDescription: "Rear ended at a stop light",
		DamageDescription:   "Rear bumper cracked",
		EstimatedDamage:     &amount,
	}
}

func TestCreateAndGetClaimRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	input := testInput()

	claimID, err := store.CreateClaim(ctx, input)
	require.NoError(t, err)
	assert.Regexp(t, `^CLM-[0-9A-F]{8}$`, claimID)

	claim, err := store.GetClaim(ctx, claimID)
	require.NoError(t, err)

	assert.Equal(t, input.PolicyNumber, claim.PolicyNumber)
	assert.Equal(t, input.VIN, claim.VIN)
	assert.Equal(t, input.VehicleYear, claim.VehicleYear)
	assert.Equal(t, input.VehicleMake, claim.VehicleMake)
	assert.Equal(t, input.VehicleModel, claim.VehicleModel)
	assert.Equal(t, input.IncidentDate, claim.IncidentDate)
	assert.Equal(t, input.IncidentDescription, claim.IncidentDescription)
	assert.Equal(t, input.DamageDescription, claim.DamageDescription)
	require.NotNil(t, claim.EstimatedDamage)
	assert.Equal(t, *input.EstimatedDamage, *claim.EstimatedDamage)
	assert.Equal(t, model.StatusPending, claim.Status)
	assert.Empty(t, claim.ClaimType)
	assert.Nil(t, claim.PayoutAmount)
	assert.False(t, claim.CreatedAt.IsZero())
}

func TestCreateClaimValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.ClaimInput)
	}{
		{"missing policy number", func(in *model.ClaimInput) { in.PolicyNumber = "" }},
		{"missing vin", func(in *model.ClaimInput) { in.VIN = "" }},
		{"missing incident date", func(in *model.ClaimInput) { in.IncidentDate = "" }},
		{"bad incident date", func(in *model.ClaimInput) { in.IncidentDate = "03/01/2024" }},
		{"missing incident description", func(in *model.ClaimInput) { in.IncidentDescription = "" }},
		{"missing damage description", func(in *model.ClaimInput) { in.DamageDescription = "" }},
		{"negative estimate", func(in *model.ClaimInput) {
			bad := -10.0
			in.EstimatedDamage = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testInput()
			tt.mutate(&input)
			_, err := store.CreateClaim(ctx, input)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestGetClaimNotFound(t *testing.T) {
	store := newTestStorage(t)
	_, err := store.GetClaim(context.Background(), "CLM-DEADBEEF")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreatedAuditEntryIsFirst(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	claimID, err := store.CreateClaim(ctx, testInput())
	require.NoError(t, err)

	entries, err := store.GetClaimHistory(ctx, claimID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditActionCreated, entries[0].Action)
	assert.Equal(t, model.StatusPending, entries[0].NewStatus)
}

func TestUpdateClaimStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	claimID, err := store.CreateClaim(ctx, testInput())
	require.NoError(t, err)

	require.NoError(t, store.UpdateClaimStatus(ctx, claimID, service.StatusUpdate{
		Status: model.StatusProcessing,
	}))

	claimType := model.TypeTotalLoss
	payout := 14500.0
	require.NoError(t, store.UpdateClaimStatus(ctx, claimID, service.StatusUpdate{
		Status:       model.StatusClosed,
		ClaimType:    &claimType,
		PayoutAmount: &payout,
		Details:      "Total loss settlement issued",
	}))

	claim, err := store.GetClaim(ctx, claimID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, claim.Status)
	assert.Equal(t, model.TypeTotalLoss, claim.ClaimType)
	require.NotNil(t, claim.PayoutAmount)
	assert.Equal(t, payout, *claim.PayoutAmount)

	entries, err := store.GetClaimHistory(ctx, claimID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.AuditActionCreated, entries[0].Action)

	assert.Equal(t, model.AuditActionStatusChanged, entries[1].Action)
	assert.Equal(t, model.StatusPending, entries[1].OldStatus)
	assert.Equal(t, model.StatusProcessing, entries[1].NewStatus)

	assert.Equal(t, model.AuditActionStatusChanged, entries[2].Action)
	assert.Equal(t, model.StatusProcessing, entries[2].OldStatus)
	assert.Equal(t, model.StatusClosed, entries[2].NewStatus)
	assert.Equal(t, "Total loss settlement issued", entries[2].Details)
}

func TestUpdateClaimStatusInvalidTransition(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	claimID, err := store.CreateClaim(ctx, testInput())
	require.NoError(t, err)

	// pending cannot jump straight to closed.
	err = store.UpdateClaimStatus(ctx, claimID, service.StatusUpdate{Status: model.StatusClosed})
	assert.ErrorIs(t, err, common.ErrInvalidTransition)

	// No audit entry is written for the rejected change.
	entries, err := store.GetClaimHistory(ctx, claimID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpdateClaimStatusNotFound(t *testing.T) {
	store := newTestStorage(t)
	err := store.UpdateClaimStatus(context.Background(), "CLM-DEADBEEF", service.StatusUpdate{
		Status: model.StatusProcessing,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSearchClaims(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := testInput()
	firstID, err := store.CreateClaim(ctx, first)
	require.NoError(t, err)

	second := testInput()
	second.IncidentDate = "2024-03-05"
	_, err = store.CreateClaim(ctx, second)
	require.NoError(t, err)

	other := testInput()
	other.VIN = "OTHERVIN000000000"
	_, err = store.CreateClaim(ctx, other)
	require.NoError(t, err)

	byVIN, err := store.SearchClaims(ctx, service.SearchFilter{VIN: first.VIN})
	require.NoError(t, err)
	assert.Len(t, byVIN, 2)

	byBoth, err := store.SearchClaims(ctx, service.SearchFilter{
		VIN:          first.VIN,
		IncidentDate: "2024-03-01",
	})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, firstID, byBoth[0].ID)

	byDate, err := store.SearchClaims(ctx, service.SearchFilter{IncidentDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Len(t, byDate, 1)
}

func TestSearchClaimsEmptyFilter(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateClaim(ctx, testInput())
	require.NoError(t, err)

	claims, err := store.SearchClaims(ctx, service.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestWorkflowRuns(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	claimID, err := store.CreateClaim(ctx, testInput())
	require.NoError(t, err)

	require.NoError(t, store.SaveWorkflowRun(ctx, model.WorkflowRun{
		ClaimID:        claimID,
		ClaimType:      model.TypeNew,
		RouterOutput:   "new",
		WorkflowOutput: "claim registered",
	}))
	require.NoError(t, store.SaveWorkflowRun(ctx, model.WorkflowRun{
		ClaimID:        claimID,
		ClaimType:      model.TypeDuplicate,
		RouterOutput:   "duplicate",
		WorkflowOutput: "reprocessed as duplicate",
	}))

	runs, err := store.GetWorkflowRuns(ctx, claimID)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, model.TypeNew, runs[0].ClaimType)
	assert.Equal(t, model.TypeDuplicate, runs[1].ClaimType)
	assert.Equal(t, "reprocessed as duplicate", runs[1].WorkflowOutput)
}

func TestValidationGuards(t *testing.T) {
	store := newTestStorage(t)

	//nolint:staticcheck // deliberately testing nil context handling
	_, err := store.GetClaim(nil, "CLM-00000001")
	assert.Error(t, err)

	_, err = store.GetClaim(context.Background(), "")
	assert.Error(t, err)
}
