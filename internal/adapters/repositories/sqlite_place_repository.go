package repositories

import (
	"campus-nav-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the PlaceSearcher port, serving the
// seeded campus place directory when no remote search backend is
// configured.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

// Return places whose name or category matches the query, names first.
func (s *SqlitePlaceRepository) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search places: query must be non-empty")
	}

	pattern := "%" + strings.ToLower(query) + "%"

	q := `
	SELECT
		place_id,
		name,
		category,
		lat,
		lon,
		description,
		image_url
	FROM places
	WHERE LOWER(name) LIKE ? OR LOWER(category) LIKE ?
	ORDER BY
		CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END,
		name
	LIMIT 20;
	`
	rows, err := s.DB.QueryContext(ctx, q, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 8)
	for rows.Next() {
		var p domain.Place
		err := rows.Scan(
			&p.PlaceID, &p.Name, &p.Category,
			&p.Coordinate.Latitude, &p.Coordinate.Longitude,
			&p.Description, &p.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("search places: scan row: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search places: row iteration: %w", err)
	}

	return places, nil
}
