package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for the shared place-search cache.
// The embedded SQLite schema lives with the place repository; this one is
// for deployments where several instances share a cache database.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init cache schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS place_search_cache (
        query TEXT NOT NULL,
        position INTEGER NOT NULL,
        place_id INTEGER NOT NULL,
        name TEXT NOT NULL,
        category TEXT NOT NULL DEFAULT '',
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        image_url TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (query, position)
    );
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init cache schema: create place_search_cache: %w", err)
	}

	return nil
}
