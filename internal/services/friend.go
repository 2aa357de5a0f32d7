package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracker78-backend/internal/contact"
	"tracker78-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrDuplicateContact = errors.New("contact already tracked")
	ErrInvalidContact   = errors.New("invalid contact")
)

type friendStore interface {
	Create(ctx context.Context, friend *models.Friend) error
	GetByID(ctx context.Context, id string) (*models.Friend, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Friend, error)
	ContactExists(ctx context.Context, userID, contact string) (bool, error)
	Deactivate(ctx context.Context, id string) error
}

// FriendService handles friend-list business logic
type FriendService struct {
	friends friendStore
	users   userStore
}

// NewFriendService creates a new friend service
func NewFriendService(friends friendStore, users userStore) *FriendService {
	return &FriendService{
		friends: friends,
		users:   users,
	}
}

// AddFriend adds a contact to a user's friend list. One active entry per
// contact string per user; a duplicate fails without side effects.
func (s *FriendService) AddFriend(ctx context.Context, userID, name, contactStr string) (*models.Friend, error) {
	if !contact.Valid(contactStr) {
		return nil, ErrInvalidContact
	}

	exists, err := s.friends.ContactExists(ctx, userID, contactStr)
	if err != nil {
		return nil, fmt.Errorf("failed to check contact: %w", err)
	}
	if exists {
		return nil, ErrDuplicateContact
	}

	friend := &models.Friend{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Contact:     contactStr,
		ContactType: contact.Classify(contactStr),
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	// Link to a registered account when the contact is a known email
	if friend.ContactType == contact.TypeEmail {
		if account, err := s.users.GetByEmail(ctx, contactStr); err == nil {
			friend.FriendUserID = &account.ID
		}
	}

	if err := s.friends.Create(ctx, friend); err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}

	return friend, nil
}

// ListFriends returns a user's active friends
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]*models.Friend, error) {
	return s.friends.ListByUser(ctx, userID)
}

// RemoveFriend deactivates a friend entry owned by the user
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	friend, err := s.friends.GetByID(ctx, friendID)
	if err != nil {
		return ErrNotFound
	}
	if friend.UserID != userID {
		return fmt.Errorf("friend does not belong to user")
	}
	return s.friends.Deactivate(ctx, friendID)
}

// SharedFriendIDs returns the registered user IDs of the user's friends,
// for location fan-out.
func (s *FriendService) SharedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	friends, err := s.friends.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, f := range friends {
		if f.FriendUserID != nil {
			ids = append(ids, *f.FriendUserID)
		}
	}
	return ids, nil
}
