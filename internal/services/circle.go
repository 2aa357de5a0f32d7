package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracker78-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrAlreadyMember = errors.New("user is already a member of this circle")
	ErrNotMember     = errors.New("user is not a member of this circle")
)

type circleStore interface {
	Create(ctx context.Context, circle *models.Circle) error
	GetByID(ctx context.Context, id string) (*models.Circle, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Circle, error)
	JoinCodeExists(ctx context.Context, code string) (bool, error)
	AddMember(ctx context.Context, member *models.CircleMember) error
	RemoveMember(ctx context.Context, circleID, userID string) error
	ListMembers(ctx context.Context, circleID string) ([]*models.CircleMember, error)
	IsMember(ctx context.Context, circleID, userID string) (bool, error)
}

// CircleService handles circle business logic
type CircleService struct {
	circles circleStore
	users   userStore
}

// NewCircleService creates a new circle service
func NewCircleService(circles circleStore, users userStore) *CircleService {
	return &CircleService{
		circles: circles,
		users:   users,
	}
}

// GenerateJoinCode generates a unique 6-character join code
func (s *CircleService) GenerateJoinCode(ctx context.Context) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateCode()
		exists, err := s.circles.JoinCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique join code after %d attempts", maxAttempts)
}

// CreateCircle creates a circle with the creator as its first member
func (s *CircleService) CreateCircle(ctx context.Context, creatorID, name, description string) (*models.Circle, error) {
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, ErrNotFound
	}

	code, err := s.GenerateJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	circle := &models.Circle{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		JoinCode:    code,
		CreatedBy:   creatorID,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.circles.Create(ctx, circle); err != nil {
		return nil, fmt.Errorf("failed to create circle: %w", err)
	}

	// Member rows are snapshots taken at join time
	member := &models.CircleMember{
		CircleID: circle.ID,
		UserID:   creator.ID,
		Name:     creator.Name,
		Contact:  creator.Email,
		JoinedAt: time.Now(),
	}
	if err := s.circles.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator to circle: %w", err)
	}

	return circle, nil
}

// JoinByCode adds a user to the circle behind a join code
func (s *CircleService) JoinByCode(ctx context.Context, userID, code string) (*models.Circle, error) {
	if len(code) != 6 {
		return nil, fmt.Errorf("join code must be 6 characters")
	}

	circle, err := s.circles.GetByJoinCode(ctx, code)
	if err != nil {
		return nil, ErrNotFound
	}

	isMember, err := s.circles.IsMember(ctx, circle.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	member := &models.CircleMember{
		CircleID: circle.ID,
		UserID:   user.ID,
		Name:     user.Name,
		Contact:  user.Email,
		JoinedAt: time.Now(),
	}
	if err := s.circles.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return circle, nil
}

// Members lists the member snapshots of a circle the user belongs to
func (s *CircleService) Members(ctx context.Context, circleID, userID string) ([]*models.CircleMember, error) {
	isMember, err := s.circles.IsMember(ctx, circleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotMember
	}
	return s.circles.ListMembers(ctx, circleID)
}

// Leave removes the user from a circle
func (s *CircleService) Leave(ctx context.Context, circleID, userID string) error {
	isMember, err := s.circles.IsMember(ctx, circleID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotMember
	}
	return s.circles.RemoveMember(ctx, circleID, userID)
}

// MemberIDs returns the user IDs of a circle's members
func (s *CircleService) MemberIDs(ctx context.Context, circleID string) ([]string, error) {
	members, err := s.circles.ListMembers(ctx, circleID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}
