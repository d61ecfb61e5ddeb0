package database

import (
	"context"
	"fmt"
)

// Optimize refreshes planner statistics for the catalog tables
// (PRAGMA optimize, ANALYZE TABLE or ANALYZE depending on the engine).
func (db *DB) Optimize(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	for _, stmt := range db.dialect.MaintenanceStatements(Tables) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to optimize database: %w", err)
		}
	}

	return nil
}
