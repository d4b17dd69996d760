package model

import "time"

// Audit log action names.
const (
	AuditActionCreated       = "created"
	AuditActionStatusChanged = "status_changed"
)

// AuditEntry is one append-only record of a claim lifecycle event. Exactly one
// "created" entry exists per claim, ordered before every "status_changed".
type AuditEntry struct {
	CreatedAt time.Time   `json:"created_at"`
	ClaimID   string      `json:"claim_id"`
	Action    string      `json:"action"`
	OldStatus ClaimStatus `json:"old_status,omitempty"`
	NewStatus ClaimStatus `json:"new_status,omitempty"`
	Details   string      `json:"details,omitempty"`
	ID        int64       `json:"id"`
}

// WorkflowRun records one processing attempt for a claim. Rows are never
// mutated, so reprocessing history is preserved.
type WorkflowRun struct {
	CreatedAt      time.Time `json:"created_at"`
	ClaimID        string    `json:"claim_id"`
	ClaimType      ClaimType `json:"claim_type"`
	RouterOutput   string    `json:"router_output"`
	WorkflowOutput string    `json:"workflow_output"`
	ID             int64     `json:"id"`
}
