package repository

import (
	"context"
	"fmt"

	"tracker78-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CircleRepository handles database operations for circles
type CircleRepository struct {
	db *pgxpool.Pool
}

// NewCircleRepository creates a new circle repository
func NewCircleRepository(db *pgxpool.Pool) *CircleRepository {
	return &CircleRepository{db: db}
}

// Create creates a new circle
func (r *CircleRepository) Create(ctx context.Context, circle *models.Circle) error {
	query := `
		INSERT INTO circles (id, name, description, join_code, created_by, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		circle.ID, circle.Name, circle.Description, circle.JoinCode,
		circle.CreatedBy, circle.IsActive, circle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create circle: %w", err)
	}
	return nil
}

// GetByID retrieves a circle by ID
func (r *CircleRepository) GetByID(ctx context.Context, id string) (*models.Circle, error) {
	query := `
		SELECT id, name, description, join_code, created_by, is_active, created_at
		FROM circles
		WHERE id = $1 AND is_active
	`
	var circle models.Circle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&circle.ID, &circle.Name, &circle.Description, &circle.JoinCode,
		&circle.CreatedBy, &circle.IsActive, &circle.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("circle not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	return &circle, nil
}

// GetByJoinCode retrieves a circle by its join code
func (r *CircleRepository) GetByJoinCode(ctx context.Context, code string) (*models.Circle, error) {
	query := `
		SELECT id, name, description, join_code, created_by, is_active, created_at
		FROM circles
		WHERE join_code = $1 AND is_active
	`
	var circle models.Circle
	err := r.db.QueryRow(ctx, query, code).Scan(
		&circle.ID, &circle.Name, &circle.Description, &circle.JoinCode,
		&circle.CreatedBy, &circle.IsActive, &circle.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("circle not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get circle by join code: %w", err)
	}
	return &circle, nil
}

// JoinCodeExists checks if a join code is already taken
func (r *CircleRepository) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM circles WHERE join_code = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check join code existence: %w", err)
	}
	return exists, nil
}

// AddMember inserts a member snapshot into a circle
func (r *CircleRepository) AddMember(ctx context.Context, member *models.CircleMember) error {
	query := `
		INSERT INTO circle_members (circle_id, user_id, name, contact, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		member.CircleID, member.UserID, member.Name, member.Contact, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add circle member: %w", err)
	}
	return nil
}

// RemoveMember deletes a member from a circle
func (r *CircleRepository) RemoveMember(ctx context.Context, circleID, userID string) error {
	query := `DELETE FROM circle_members WHERE circle_id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, circleID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove circle member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member not found")
	}
	return nil
}

// ListMembers retrieves the member snapshots of a circle
func (r *CircleRepository) ListMembers(ctx context.Context, circleID string) ([]*models.CircleMember, error) {
	query := `
		SELECT circle_id, user_id, name, contact, joined_at
		FROM circle_members
		WHERE circle_id = $1
		ORDER BY joined_at
	`
	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circle members: %w", err)
	}
	defer rows.Close()

	var members []*models.CircleMember
	for rows.Next() {
		var member models.CircleMember
		if err := rows.Scan(
			&member.CircleID, &member.UserID, &member.Name, &member.Contact, &member.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan circle member: %w", err)
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

// IsMember checks if a user belongs to a circle
func (r *CircleRepository) IsMember(ctx context.Context, circleID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM circle_members WHERE circle_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, circleID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check circle membership: %w", err)
	}
	return exists, nil
}
