package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"
)

const claimColumns = `id, policy_number, vin, vehicle_year, vehicle_make, vehicle_model,
	incident_date, incident_description, damage_description, estimated_damage,
	claim_type, status, payout_amount, created_at, updated_at`

// CreateClaim validates the input, generates a claim id, inserts the claim
// with status pending, and writes the "created" audit entry in the same
// transaction.
func (s *SQLiteStorage) CreateClaim(ctx context.Context, input model.ClaimInput) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := s.validator.ValidateInput(input); err != nil {
		return "", err
	}

	claimID := model.NewClaimID()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO claims (
				id, policy_number, vin, vehicle_year, vehicle_make, vehicle_model,
				incident_date, incident_description, damage_description, estimated_damage,
				claim_type, status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)
		`,
			claimID,
			input.PolicyNumber,
			input.VIN,
			input.VehicleYear,
			input.VehicleMake,
			input.VehicleModel,
			input.IncidentDate,
			input.IncidentDescription,
			input.DamageDescription,
			input.EstimatedDamage,
			string(model.StatusPending),
		)
		if err != nil {
			return fmt.Errorf("failed to insert claim: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO claim_audit_log (claim_id, action, new_status, details)
			VALUES (?, ?, ?, ?)
		`, claimID, model.AuditActionCreated, string(model.StatusPending), "Claim record created")
		if err != nil {
			return fmt.Errorf("failed to write created audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return claimID, nil
}

// GetClaim fetches a claim by id.
func (s *SQLiteStorage) GetClaim(ctx context.Context, claimID string) (*model.Claim, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(claimID, "claimID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM claims WHERE id = ?", claimColumns), claimID)

	claim, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("claim %s: %w", claimID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim %s: %w", claimID, err)
	}
	return claim, nil
}

// UpdateClaimStatus applies a status change, enforcing the transition table,
// and writes exactly one "status_changed" audit entry in the same transaction.
func (s *SQLiteStorage) UpdateClaimStatus(ctx context.Context, claimID string, update service.StatusUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(claimID, "claimID"); err != nil {
		return err
	}
	if err := validateStatusUpdate(update.Status); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var oldStatus string
		err := tx.QueryRowContext(ctx, "SELECT status FROM claims WHERE id = ?", claimID).Scan(&oldStatus)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("claim %s: %w", claimID, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read current status: %w", err)
		}

		if !model.ClaimStatus(oldStatus).CanTransitionTo(update.Status) {
			return fmt.Errorf("%w: %s -> %s for claim %s",
				common.ErrInvalidTransition, oldStatus, update.Status, claimID)
		}

		builder := sq.Update("claims").
			Set("status", string(update.Status)).
			Where(sq.Eq{"id": claimID})
		if update.ClaimType != nil {
			builder = builder.Set("claim_type", string(*update.ClaimType))
		}
		if update.PayoutAmount != nil {
			builder = builder.Set("payout_amount", *update.PayoutAmount)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update claim %s: %w", claimID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO claim_audit_log (claim_id, action, old_status, new_status, details)
			VALUES (?, ?, ?, ?, ?)
		`, claimID, model.AuditActionStatusChanged, oldStatus, string(update.Status), update.Details)
		if err != nil {
			return fmt.Errorf("failed to write status_changed audit entry: %w", err)
		}
		return nil
	})
}

// SearchClaims looks up claims by VIN and/or incident date. An empty filter
// returns no results without issuing a query.
func (s *SQLiteStorage) SearchClaims(ctx context.Context, filter service.SearchFilter) ([]model.Claim, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Empty() {
		return []model.Claim{}, nil
	}

	builder := sq.Select(claimColumns).From("claims")
	if filter.VIN != "" {
		builder = builder.Where(sq.Eq{"vin": filter.VIN})
	}
	if filter.IncidentDate != "" {
		builder = builder.Where(sq.Eq{"incident_date": filter.IncidentDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search claims: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var claims []model.Claim
	for rows.Next() {
		claim, scanErr := scanClaim(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", scanErr)
		}
		claims = append(claims, *claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClaim(row scanner) (*model.Claim, error) {
	var (
		claim           model.Claim
		vehicleYear     sql.NullInt64
		vehicleMake     sql.NullString
		vehicleModel    sql.NullString
		incidentDate    sql.NullString
		incidentDesc    sql.NullString
		damageDesc      sql.NullString
		estimatedDamage sql.NullFloat64
		claimType       sql.NullString
		payoutAmount    sql.NullFloat64
		status          string
	)

	err := row.Scan(
		&claim.ID,
		&claim.PolicyNumber,
		&claim.VIN,
		&vehicleYear,
		&vehicleMake,
		&vehicleModel,
		&incidentDate,
		&incidentDesc,
		&damageDesc,
		&estimatedDamage,
		&claimType,
		&status,
		&payoutAmount,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	claim.VehicleYear = int(vehicleYear.Int64)
	claim.VehicleMake = vehicleMake.String
	claim.VehicleModel = vehicleModel.String
	claim.IncidentDate = incidentDate.String
	claim.IncidentDescription = incidentDesc.String
	claim.DamageDescription = damageDesc.String
	claim.Status = model.ClaimStatus(status)
	if estimatedDamage.Valid {
		v := estimatedDamage.Float64
		claim.EstimatedDamage = &v
	}
	if claimType.Valid {
		claim.ClaimType = model.ClaimType(claimType.String)
	}
	if payoutAmount.Valid {
		v := payoutAmount.Float64
		claim.PayoutAmount = &v
	}
	return &claim, nil
}
