package cache

import (
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLPlaceCache is a Postgres-backed cache mapping normalized search
// queries to their resolved place lists. Result order is preserved via an
// explicit position column.
type SQLPlaceCache struct {
	DB *sql.DB
}

func NewSQLPlaceCache(db *sql.DB) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db}
}

// Fetch the cached result list for a query.
func (s *SQLPlaceCache) Get(
	ctx context.Context,
	query string,
) (_ []domain.Place, _ bool, err error) {
	defer obs.Time(ctx, "place.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("place cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false, errors.New("get place cache: query must not be empty")
	}

	q := `
	SELECT place_id, name, category, lat, lon, description, image_url
    FROM place_search_cache
    WHERE query = $1
    ORDER BY position;
	`

	rows, err := s.DB.QueryContext(ctx, q, query)
	if err != nil {
		return nil, false, fmt.Errorf("get place cache: query place_search_cache table: %w", err)
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(
			&p.PlaceID, &p.Name, &p.Category,
			&p.Coordinate.Latitude, &p.Coordinate.Longitude,
			&p.Description, &p.ImageURL,
		); err != nil {
			return nil, false, fmt.Errorf("get place cache: scan rows: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("get place cache: row iteration: %w", err)
	}

	return out, len(out) > 0, nil
}

// Store the result list for a query, replacing any previous entry.
func (s *SQLPlaceCache) Put(ctx context.Context, query string, places []domain.Place) error {
	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("insert place cache: query must not be empty")
	}

	if len(places) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert place cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM place_search_cache WHERE query = $1;`, query); err != nil {
		return fmt.Errorf("insert place cache: clear stale rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO place_search_cache (query, position, place_id, name, category, lat, lon, description, image_url)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`)
	if err != nil {
		return fmt.Errorf("insert place cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range places {
		if _, err := stmt.ExecContext(
			ctx, query, i, p.PlaceID, p.Name, p.Category,
			p.Coordinate.Latitude, p.Coordinate.Longitude,
			p.Description, p.ImageURL,
		); err != nil {
			return fmt.Errorf("insert place cache query=%q position=%d: %w", query, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert place cache commit: %w", err)
	}

	return nil
}
