package repository

import (
	"context"
	"fmt"

	"tracker78-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationRepository handles database operations for locations
type LocationRepository struct {
	db *pgxpool.Pool
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create inserts a recorded location
func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	query := `
		INSERT INTO locations (id, user_id, circle_id, latitude, longitude, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		loc.ID, loc.UserID, loc.CircleID, loc.Latitude, loc.Longitude, loc.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// LatestByUser retrieves the most recent location of a user
func (r *LocationRepository) LatestByUser(ctx context.Context, userID string) (*models.Location, error) {
	query := `
		SELECT id, user_id, circle_id, latitude, longitude, recorded_at
		FROM locations
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	var loc models.Location
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&loc.ID, &loc.UserID, &loc.CircleID, &loc.Latitude, &loc.Longitude, &loc.RecordedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("location not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get latest location: %w", err)
	}
	return &loc, nil
}

// LatestByCircle retrieves each member's most recent location in a circle
func (r *LocationRepository) LatestByCircle(ctx context.Context, circleID string) ([]*models.Location, error) {
	query := `
		SELECT DISTINCT ON (user_id) id, user_id, circle_id, latitude, longitude, recorded_at
		FROM locations
		WHERE circle_id = $1
		ORDER BY user_id, recorded_at DESC
	`
	return r.queryLocations(ctx, query, circleID)
}

// LatestByUsers retrieves the most recent location for each of the given users
func (r *LocationRepository) LatestByUsers(ctx context.Context, userIDs []string) ([]*models.Location, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT DISTINCT ON (user_id) id, user_id, circle_id, latitude, longitude, recorded_at
		FROM locations
		WHERE user_id = ANY($1)
		ORDER BY user_id, recorded_at DESC
	`
	return r.queryLocations(ctx, query, userIDs)
}

func (r *LocationRepository) queryLocations(ctx context.Context, query string, args ...any) ([]*models.Location, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(
			&loc.ID, &loc.UserID, &loc.CircleID, &loc.Latitude, &loc.Longitude, &loc.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, &loc)
	}
	return locations, rows.Err()
}
