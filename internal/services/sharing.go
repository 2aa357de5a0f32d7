package services

import (
	"context"

	"tracker78-backend/internal/models"
)

type shareStore interface {
	Set(ctx context.Context, ownerID, friendID string, enabled bool) error
	ListForFriend(ctx context.Context, friendID string) ([]*models.LocationShare, error)
	ViewerIDs(ctx context.Context, ownerID string) ([]string, error)
	OwnerIDs(ctx context.Context, friendID string) ([]string, error)
}

// SharingService manages location sharing grants. The owner of a grant is
// the user whose location becomes visible; the friend is who may see it.
type SharingService struct {
	shares shareStore
	users  userStore
}

// NewSharingService creates a new sharing service
func NewSharingService(shares shareStore, users userStore) *SharingService {
	return &SharingService{
		shares: shares,
		users:  users,
	}
}

// Enable turns on sharing from owner to friend
func (s *SharingService) Enable(ctx context.Context, ownerID, friendID string) error {
	if _, err := s.users.GetByID(ctx, friendID); err != nil {
		return ErrNotFound
	}
	return s.shares.Set(ctx, ownerID, friendID, true)
}

// Disable turns off sharing from owner to friend
func (s *SharingService) Disable(ctx context.Context, ownerID, friendID string) error {
	return s.shares.Set(ctx, ownerID, friendID, false)
}

// SharedWithMe lists the grants currently shared with the user
func (s *SharingService) SharedWithMe(ctx context.Context, userID string) ([]*models.LocationShare, error) {
	return s.shares.ListForFriend(ctx, userID)
}

// ViewerIDs lists who may currently see the owner's location
func (s *SharingService) ViewerIDs(ctx context.Context, ownerID string) ([]string, error) {
	return s.shares.ViewerIDs(ctx, ownerID)
}

// SharerIDs lists the users currently sharing their location with the user
func (s *SharingService) SharerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.shares.OwnerIDs(ctx, userID)
}
