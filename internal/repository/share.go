package repository

import (
	"context"
	"fmt"
	"time"

	"tracker78-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ShareRepository handles database operations for location sharing grants
type ShareRepository struct {
	db *pgxpool.Pool
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{db: db}
}

// Set upserts a grant from owner to friend
func (r *ShareRepository) Set(ctx context.Context, ownerID, friendID string, enabled bool) error {
	query := `
		INSERT INTO location_shares (owner_id, friend_id, enabled, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, friend_id)
		DO UPDATE SET enabled = $3, updated_at = $4
	`
	_, err := r.db.Exec(ctx, query, ownerID, friendID, enabled, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update location share: %w", err)
	}
	return nil
}

// ListForFriend lists enabled grants whose friend side is the given user
func (r *ShareRepository) ListForFriend(ctx context.Context, friendID string) ([]*models.LocationShare, error) {
	query := `
		SELECT owner_id, friend_id, enabled, updated_at
		FROM location_shares
		WHERE friend_id = $1 AND enabled
		ORDER BY updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.LocationShare
	for rows.Next() {
		var share models.LocationShare
		if err := rows.Scan(&share.OwnerID, &share.FriendID, &share.Enabled, &share.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, &share)
	}
	return shares, rows.Err()
}

// ViewerIDs lists who may currently see the owner's location
func (r *ShareRepository) ViewerIDs(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT friend_id FROM location_shares WHERE owner_id = $1 AND enabled`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list viewers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan viewer: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// OwnerIDs lists enabled grant owners sharing with the given user
func (r *ShareRepository) OwnerIDs(ctx context.Context, friendID string) ([]string, error) {
	query := `SELECT owner_id FROM location_shares WHERE friend_id = $1 AND enabled`
	rows, err := r.db.Query(ctx, query, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share owners: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan share owner: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
