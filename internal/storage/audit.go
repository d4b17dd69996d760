package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoreau/claimroute/internal/model"
)

// GetClaimHistory returns a claim's audit entries in insertion order.
func (s *SQLiteStorage) GetClaimHistory(ctx context.Context, claimID string) ([]model.AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(claimID, "claimID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, action, old_status, new_status, details, created_at
		FROM claim_audit_log
		WHERE claim_id = ?
		ORDER BY id ASC
	`, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AuditEntry
	for rows.Next() {
		var (
			entry     model.AuditEntry
			oldStatus sql.NullString
			newStatus sql.NullString
			details   sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.ClaimID, &entry.Action,
			&oldStatus, &newStatus, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.OldStatus = model.ClaimStatus(oldStatus.String)
		entry.NewStatus = model.ClaimStatus(newStatus.String)
		entry.Details = details.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}
	return entries, nil
}

// SaveWorkflowRun appends one workflow run record. Prior runs are never mutated.
func (s *SQLiteStorage) SaveWorkflowRun(ctx context.Context, run model.WorkflowRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(run.ClaimID, "run.ClaimID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workflow_runs (claim_id, claim_type, router_output, workflow_output)
		VALUES (?, ?, ?, ?)
	`, run.ClaimID, string(run.ClaimType), run.RouterOutput, run.WorkflowOutput)
	if err != nil {
		return fmt.Errorf("failed to save workflow run: %w", err)
	}
	return nil
}

// GetWorkflowRuns returns a claim's workflow runs in insertion order.
func (s *SQLiteStorage) GetWorkflowRuns(ctx context.Context, claimID string) ([]model.WorkflowRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(claimID, "claimID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, claim_type, router_output, workflow_output, created_at
		FROM workflow_runs
		WHERE claim_id = ?
		ORDER BY id ASC
	`, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.WorkflowRun
	for rows.Next() {
		var (
			run          model.WorkflowRun
			claimType    sql.NullString
			routerOutput sql.NullString
			workflowOut  sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.ClaimID, &claimType,
			&routerOutput, &workflowOut, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workflow run: %w", err)
		}
		run.ClaimType = model.ClaimType(claimType.String)
		run.RouterOutput = routerOutput.String
		run.WorkflowOutput = workflowOut.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflow runs: %w", err)
	}
	return runs, nil
}
