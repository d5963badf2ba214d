package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent and re-run on every
// open; ALTER TABLE additions tolerate an existing column.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS curricula (
		id                     TEXT PRIMARY KEY,
		owner_id               TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		primary_goal           TEXT NOT NULL,
		specific_area          TEXT NOT NULL DEFAULT '',
		self_assessment        TEXT NOT NULL DEFAULT '',
		experience_description TEXT NOT NULL DEFAULT '',
		hours_per_week         TEXT NOT NULL DEFAULT '',
		pace                   TEXT NOT NULL DEFAULT '',
		learning_style         TEXT NOT NULL DEFAULT '',
		difficulty             TEXT NOT NULL DEFAULT '',
		tools                  TEXT NOT NULL DEFAULT '',
		age_range              TEXT NOT NULL DEFAULT '',
		status                 TEXT NOT NULL DEFAULT '',
		feedback               TEXT NOT NULL DEFAULT '',
		generated_text         TEXT NOT NULL,
		provenance             TEXT NOT NULL
		                       CHECK(provenance IN ('generated','fallback')),
		domain                 TEXT NOT NULL DEFAULT '',
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_curricula_owner ON curricula(owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS curriculum_languages (
		curriculum_id TEXT NOT NULL REFERENCES curricula(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		name          TEXT NOT NULL,
		priority      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (curriculum_id, position)
	)`,

	`ALTER TABLE curricula ADD COLUMN model TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS curriculum_self_assessment (
		curriculum_id TEXT NOT NULL REFERENCES curricula(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		tag           TEXT NOT NULL,
		PRIMARY KEY (curriculum_id, position)
	)`,
}
