package repository

import (
	"context"
	"fmt"

	"tracker78-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendRepository handles database operations for friends
type FriendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// Create creates a new friend entry
func (r *FriendRepository) Create(ctx context.Context, friend *models.Friend) error {
	query := `
		INSERT INTO friends (id, user_id, friend_user_id, name, contact, contact_type, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		friend.ID, friend.UserID, friend.FriendUserID, friend.Name,
		friend.Contact, friend.ContactType, friend.IsActive, friend.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create friend: %w", err)
	}
	return nil
}

// GetByID retrieves a friend entry by ID
func (r *FriendRepository) GetByID(ctx context.Context, id string) (*models.Friend, error) {
	query := `
		SELECT id, user_id, friend_user_id, name, contact, contact_type, is_active, created_at
		FROM friends
		WHERE id = $1 AND is_active
	`
	var friend models.Friend
	err := r.db.QueryRow(ctx, query, id).Scan(
		&friend.ID, &friend.UserID, &friend.FriendUserID, &friend.Name,
		&friend.Contact, &friend.ContactType, &friend.IsActive, &friend.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("friend not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return &friend, nil
}

// ListByUser retrieves the active friends of a user
func (r *FriendRepository) ListByUser(ctx context.Context, userID string) ([]*models.Friend, error) {
	query := `
		SELECT id, user_id, friend_user_id, name, contact, contact_type, is_active, created_at
		FROM friends
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		var friend models.Friend
		if err := rows.Scan(
			&friend.ID, &friend.UserID, &friend.FriendUserID, &friend.Name,
			&friend.Contact, &friend.ContactType, &friend.IsActive, &friend.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, &friend)
	}
	return friends, rows.Err()
}

// ContactExists checks if a user already tracks a contact
func (r *FriendRepository) ContactExists(ctx context.Context, userID, contact string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = $1 AND contact = $2 AND is_active)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, contact).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contact existence: %w", err)
	}
	return exists, nil
}

// Deactivate soft-deletes a friend entry
func (r *FriendRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE friends SET is_active = false WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("friend not found")
	}
	return nil
}
