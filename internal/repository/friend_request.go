package repository

import (
	"context"
	"fmt"
	"time"

	"tracker78-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendRequestRepository handles database operations for friend requests
type FriendRequestRepository struct {
	db *pgxpool.Pool
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db *pgxpool.Pool) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// Create creates a new friend request
func (r *FriendRequestRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, sender_id, recipient_id, recipient_contact, contact_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.SenderID, req.RecipientID, req.RecipientContact,
		req.ContactType, req.Status, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// GetByID retrieves a friend request by ID
func (r *FriendRequestRepository) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	query := `
		SELECT id, sender_id, recipient_id, recipient_contact, contact_type, status, created_at, resolved_at
		FROM friend_requests
		WHERE id = $1
	`
	var req models.FriendRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.SenderID, &req.RecipientID, &req.RecipientContact,
		&req.ContactType, &req.Status, &req.CreatedAt, &req.ResolvedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("friend request not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

// ListPendingForRecipient retrieves pending requests addressed to a user
func (r *FriendRequestRepository) ListPendingForRecipient(ctx context.Context, recipientID string) ([]*models.FriendRequest, error) {
	query := `
		SELECT id, sender_id, recipient_id, recipient_contact, contact_type, status, created_at, resolved_at
		FROM friend_requests
		WHERE recipient_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.FriendRequest
	for rows.Next() {
		var req models.FriendRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.RecipientID, &req.RecipientContact,
			&req.ContactType, &req.Status, &req.CreatedAt, &req.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// PendingExists checks if a sender already has a pending request to a contact
func (r *FriendRequestRepository) PendingExists(ctx context.Context, senderID, contact string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE sender_id = $1 AND recipient_contact = $2 AND status = 'pending'
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, senderID, contact).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return exists, nil
}

// Resolve sets the final status of a pending request
func (r *FriendRequestRepository) Resolve(ctx context.Context, id string, status models.FriendRequestStatus) error {
	query := `
		UPDATE friend_requests
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = 'pending'
	`
	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to resolve friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("friend request not pending")
	}
	return nil
}
