package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS claims (
					id TEXT PRIMARY KEY,
					policy_number TEXT NOT NULL,
					vin TEXT NOT NULL,
					vehicle_year INTEGER,
					vehicle_make TEXT,
					vehicle_model TEXT,
					incident_date TEXT,
					incident_description TEXT,
					damage_description TEXT,
					estimated_damage REAL,
					claim_type TEXT,
					status TEXT NOT NULL DEFAULT 'pending',
					payout_amount REAL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_claims_vin ON claims(vin)`,
				`CREATE INDEX idx_claims_incident_date ON claims(incident_date)`,
				`CREATE INDEX idx_claims_status ON claims(status)`,

				`CREATE TABLE IF NOT EXISTS claim_audit_log (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					claim_id TEXT NOT NULL,
					action TEXT NOT NULL,
					old_status TEXT,
					new_status TEXT,
					details TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (claim_id) REFERENCES claims(id)
				)`,
				`CREATE INDEX idx_claim_audit_log_claim_id ON claim_audit_log(claim_id)`,

				`CREATE TABLE IF NOT EXISTS workflow_runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					claim_id TEXT NOT NULL,
					claim_type TEXT,
					router_output TEXT,
					workflow_output TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (claim_id) REFERENCES claims(id)
				)`,
				`CREATE INDEX idx_workflow_runs_claim_id ON workflow_runs(claim_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Keep updated_at current on claim updates",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TRIGGER IF NOT EXISTS update_claims_updated_at
				AFTER UPDATE ON claims
				FOR EACH ROW
				BEGIN
					UPDATE claims SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
				END
			`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
