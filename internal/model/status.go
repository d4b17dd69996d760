package model

// ClaimStatus is the lifecycle state of a claim.
type ClaimStatus string

// Claim status constants.
const (
	StatusPending        ClaimStatus = "pending"
	StatusProcessing     ClaimStatus = "processing"
	StatusOpen           ClaimStatus = "open"
	StatusClosed         ClaimStatus = "closed"
	StatusDuplicate      ClaimStatus = "duplicate"
	StatusFraudSuspected ClaimStatus = "fraud_suspected"
	StatusPartialLoss    ClaimStatus = "partial_loss"
	StatusNeedsReview    ClaimStatus = "needs_review"
	StatusFailed         ClaimStatus = "failed"
)

// ClaimStatuses lists every valid claim status.
var ClaimStatuses = []ClaimStatus{
	StatusPending,
	StatusProcessing,
	StatusOpen,
	StatusClosed,
	StatusDuplicate,
	StatusFraudSuspected,
	StatusPartialLoss,
	StatusNeedsReview,
	StatusFailed,
}

// outcomeStatuses are the states a workflow run can leave a claim in. Each is
// re-enterable via reprocessing, which resets the claim to processing first.
var outcomeStatuses = map[ClaimStatus]bool{
	StatusOpen:           true,
	StatusClosed:         true,
	StatusDuplicate:      true,
	StatusFraudSuspected: true,
	StatusPartialLoss:    true,
	StatusNeedsReview:    true,
	StatusFailed:         true,
}

// Valid reports whether s is a recognized claim status.
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusOpen, StatusClosed, StatusDuplicate,
		StatusFraudSuspected, StatusPartialLoss, StatusNeedsReview, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change from s to next is allowed.
// pending -> processing -> any outcome; outcomes re-enter processing on
// reprocessing. The audit log keeps the full history either way.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	if !next.Valid() {
		return false
	}
	switch {
	case s == StatusPending:
		return next == StatusProcessing || next == StatusFailed
	case s == StatusProcessing:
		return outcomeStatuses[next]
	case outcomeStatuses[s]:
		return next == StatusProcessing
	}
	return false
}
