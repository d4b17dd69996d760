// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/jmoreau/claimroute/internal/model"
)

// SearchFilter defines lookup options for claim queries. Both fields are
// optional; a filter with neither set matches nothing.
type SearchFilter struct {
	VIN          string
	IncidentDate string
}

// Empty reports whether the filter has no criteria.
func (f SearchFilter) Empty() bool {
	return f.VIN == "" && f.IncidentDate == ""
}

// StatusUpdate describes a claim status change. Details, ClaimType and
// PayoutAmount are optional; nil fields are left untouched.
type StatusUpdate struct {
	ClaimType    *model.ClaimType
	PayoutAmount *float64
	Status       model.ClaimStatus
	Details      string
}

// Storage defines the contract for the claim persistence layer.
type Storage interface {
	// Claim operations. CreateClaim assigns the claim id and writes the
	// "created" audit entry atomically with the insert.
	CreateClaim(ctx context.Context, input model.ClaimInput) (string, error)
	GetClaim(ctx context.Context, claimID string) (*model.Claim, error)
	UpdateClaimStatus(ctx context.Context, claimID string, update StatusUpdate) error
	SearchClaims(ctx context.Context, filter SearchFilter) ([]model.Claim, error)

	// Audit and workflow history.
	GetClaimHistory(ctx context.Context, claimID string) ([]model.AuditEntry, error)
	SaveWorkflowRun(ctx context.Context, run model.WorkflowRun) error
	GetWorkflowRuns(ctx context.Context, claimID string) ([]model.WorkflowRun, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier produces raw routing output for a claim. Implementations may call
// an LLM; the engine only depends on the returned text, parsed with
// router.ParseClaimType.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (string, error)
}

// ClassifyRequest carries the claim plus the deterministic enrichment signals
// computed before routing.
type ClassifyRequest struct {
	EconomicSignals     map[string]any
	Claim               model.Claim
	FraudIndicators     []string
	DuplicateCandidates []DuplicateCandidate
	HighValue           bool
}

// DuplicateCandidate is a prior same-VIN claim annotated for routing.
type DuplicateCandidate struct {
	ClaimID             string
	IncidentDate        string
	IncidentDescription string
	DaysDifference      int
	SimilarityScore     float64
}

// Valuation is a vehicle market value with its provenance.
type Valuation struct {
	Condition string
	Source    string
	Value     float64
}

// Valuer returns a vehicle's market value from VIN or year/make/model.
type Valuer interface {
	VehicleValue(ctx context.Context, vin string, year int, make, model string) (Valuation, error)
}

// Policy is an insurance policy record.
type Policy struct {
	Number     string
	Coverage   string
	Status     string
	Deductible float64
}

// Active reports whether the policy is in force.
func (p Policy) Active() bool {
	return p.Status == "active"
}

// PolicyLookup resolves policy numbers to policy records.
type PolicyLookup interface {
	Lookup(ctx context.Context, policyNumber string) (Policy, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
