package database

import (
	"database/sql"
	"fmt"
)

// initSchema creates the territories table. Schema changes are additive;
// CREATE IF NOT EXISTS keeps startup idempotent.
func initSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS territories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			ring_json TEXT NOT NULL,
			wkt TEXT NOT NULL,
			area_m2 REAL NOT NULL,
			point_count INTEGER NOT NULL,
			min_lat REAL NOT NULL,
			min_lon REAL NOT NULL,
			max_lat REAL NOT NULL,
			max_lon REAL NOT NULL,
			session_started_at TIMESTAMP NOT NULL,
			claimed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_territories_owner ON territories(owner_id);
		CREATE INDEX IF NOT EXISTS idx_territories_bbox ON territories(min_lat, max_lat, min_lon, max_lon);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
