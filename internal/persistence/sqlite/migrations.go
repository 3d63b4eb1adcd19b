package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations are applied in order exactly once; schema_migrations records
// the versions already present in the database file.
var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS employees (
				id TEXT PRIMARY KEY,
				display_name TEXT NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1
			)`,
			`CREATE TABLE IF NOT EXISTS appointments (
				id TEXT PRIMARY KEY,
				employee_id TEXT NOT NULL,
				date TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				customer_name TEXT NOT NULL,
				status INTEGER NOT NULL DEFAULT 0,
				FOREIGN KEY (employee_id) REFERENCES employees(id) DEFERRABLE INITIALLY DEFERRED
			)`,
			`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
			`CREATE INDEX IF NOT EXISTS idx_appointments_employee ON appointments(employee_id)`,
			`CREATE TABLE IF NOT EXISTS absences (
				id TEXT PRIMARY KEY,
				employee_id TEXT NOT NULL,
				date TEXT NOT NULL,
				absence_type INTEGER NOT NULL DEFAULT 0,
				note TEXT NOT NULL DEFAULT '',
				FOREIGN KEY (employee_id) REFERENCES employees(id) DEFERRABLE INITIALLY DEFERRED
			)`,
			`CREATE INDEX IF NOT EXISTS idx_absences_date ON absences(date)`,
		},
	},
	{
		version: 2,
		name:    "recurrence rules and exceptions",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS recurrence_rules (
				id TEXT PRIMARY KEY,
				employee_id TEXT NOT NULL,
				weekday INTEGER NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				customer_name TEXT NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1,
				interval_weeks INTEGER NOT NULL DEFAULT 1,
				anchor_date TEXT NOT NULL,
				FOREIGN KEY (employee_id) REFERENCES employees(id) DEFERRABLE INITIALLY DEFERRED
			)`,
			`CREATE TABLE IF NOT EXISTS recurrence_exceptions (
				id TEXT PRIMARY KEY,
				rule_id TEXT NOT NULL,
				employee_id TEXT NOT NULL,
				date TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				customer_name TEXT NOT NULL,
				FOREIGN KEY (rule_id) REFERENCES recurrence_rules(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_exceptions_rule ON recurrence_exceptions(rule_id)`,
			`CREATE INDEX IF NOT EXISTS idx_exceptions_date ON recurrence_exceptions(date)`,
		},
	},
	{
		version: 3,
		name:    "status overrides",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS status_overrides (
				id TEXT PRIMARY KEY,
				employee_id TEXT NOT NULL,
				date TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				customer_name TEXT NOT NULL,
				status INTEGER NOT NULL,
				FOREIGN KEY (employee_id) REFERENCES employees(id) DEFERRABLE INITIALLY DEFERRED
			)`,
			`CREATE INDEX IF NOT EXISTS idx_overrides_date ON status_overrides(date)`,
		},
	},
}

// Migrate brings the database schema up to the latest version.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := s.pool.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := s.pool.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate schema_migrations: %w", err)
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
				}
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
				return fmt.Errorf("migration %d (%s): record: %w", m.version, m.name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
