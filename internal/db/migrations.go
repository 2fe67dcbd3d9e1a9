package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: the refresh scheduler and rescue matcher scan by expiry.
	`CREATE INDEX IF NOT EXISTS idx_inventory_items_expiry
	     ON inventory_items(expiry_date) WHERE expiry_date IS NOT NULL`,
	// Migration 2: waste history is listed newest first.
	`CREATE INDEX IF NOT EXISTS idx_waste_records_date
	     ON waste_records(date_discarded)`,
}

// Migrate ensures the schema and runs all migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
