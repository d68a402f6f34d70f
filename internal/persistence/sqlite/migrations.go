package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migration is one ordered schema step. Statements in a step run inside a
// single transaction together with the version bookkeeping.
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS equipment (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				category    TEXT NOT NULL CHECK (category IN ('cardio', 'weight-machines', 'free-weights')),
				location    TEXT NOT NULL,
				status      TEXT NOT NULL CHECK (status IN ('operational', 'maintenance', 'broken')),
				last_check  TEXT NOT NULL,
				next_due    TEXT NOT NULL,
				issue_count INTEGER NOT NULL DEFAULT 0 CHECK (issue_count >= 0),
				photo_count INTEGER NOT NULL DEFAULT 0 CHECK (photo_count >= 0),
				notes       TEXT,
				created_at  TEXT NOT NULL,
				updated_at  TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS checklist_items (
				id           TEXT PRIMARY KEY,
				category     TEXT NOT NULL CHECK (category IN ('safety', 'cleanliness', 'equipment', 'facility')),
				task         TEXT NOT NULL,
				priority     TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
				completed    INTEGER NOT NULL DEFAULT 0,
				completed_by TEXT,
				completed_at TEXT,
				assigned_to  TEXT,
				notes        TEXT,
				created_at   TEXT NOT NULL,
				updated_at   TEXT NOT NULL,
				CHECK ((completed = 0 AND completed_by IS NULL AND completed_at IS NULL)
					OR (completed = 1 AND completed_by IS NOT NULL AND completed_at IS NOT NULL))
			)`,
			`CREATE TABLE IF NOT EXISTS log_entries (
				id             TEXT PRIMARY KEY,
				equipment_id   TEXT,
				equipment_name TEXT,
				type           TEXT NOT NULL CHECK (type IN ('check', 'issue', 'repair', 'maintenance', 'daily-check')),
				description    TEXT NOT NULL,
				staff          TEXT NOT NULL,
				timestamp      TEXT NOT NULL,
				priority       TEXT CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
				status         TEXT NOT NULL CHECK (status IN ('completed', 'in-progress', 'pending'))
			)`,
			`CREATE TABLE IF NOT EXISTS log_entry_photos (
				log_id    TEXT NOT NULL REFERENCES log_entries(id) ON DELETE CASCADE,
				position  INTEGER NOT NULL,
				reference TEXT NOT NULL,
				PRIMARY KEY (log_id, position)
			)`,
			`CREATE TABLE IF NOT EXISTS scheduled_maintenance (
				id             TEXT PRIMARY KEY,
				target_type    TEXT NOT NULL CHECK (target_type IN ('equipment', 'zone')),
				equipment_id   TEXT,
				equipment_name TEXT,
				zone           TEXT,
				title          TEXT NOT NULL,
				description    TEXT NOT NULL DEFAULT '',
				scheduled_date TEXT NOT NULL,
				priority       TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
				assigned_to    TEXT,
				status         TEXT NOT NULL CHECK (status IN ('scheduled', 'completed')),
				created_at     TEXT NOT NULL,
				updated_at     TEXT NOT NULL,
				CHECK ((target_type = 'equipment' AND equipment_id IS NOT NULL AND zone IS NULL)
					OR (target_type = 'zone' AND zone IS NOT NULL AND equipment_id IS NULL))
			)`,
			`CREATE TABLE IF NOT EXISTS staff_members (
				id              TEXT PRIMARY KEY,
				organization_id TEXT NOT NULL,
				name            TEXT NOT NULL,
				position        TEXT NOT NULL DEFAULT '',
				email           TEXT,
				phone           TEXT,
				status          TEXT NOT NULL CHECK (status IN ('active', 'inactive')),
				created_at      TEXT NOT NULL,
				updated_at      TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_log_entries_timestamp ON log_entries(timestamp)`,
			`CREATE INDEX IF NOT EXISTS idx_scheduled_maintenance_date ON scheduled_maintenance(scheduled_date)`,
			`CREATE INDEX IF NOT EXISTS idx_staff_members_org ON staff_members(organization_id)`,
		},
	},
}

// Migrate applies all pending schema migrations in order. Each step is
// recorded in schema_migrations so re-running is a no-op.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current sql.NullInt64
	if err := cp.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && int64(m.version) <= current.Int64 {
			continue
		}

		err := cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.statements {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("migration %d failed: %w", m.version, err)
				}
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				m.version, formatTime(time.Now()))
			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}
