package services

import (
	"context"
	"fmt"
	"time"

	"tracker78-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type locationStore interface {
	Create(ctx context.Context, loc *models.Location) error
	LatestByUser(ctx context.Context, userID string) (*models.Location, error)
	LatestByCircle(ctx context.Context, circleID string) ([]*models.Location, error)
	LatestByUsers(ctx context.Context, userIDs []string) ([]*models.Location, error)
}

type geoCache interface {
	SetLatest(ctx context.Context, loc *models.Location) error
	Latest(ctx context.Context, userID string) (*models.Location, error)
	Touch(ctx context.Context, userID string) error
}

type locationBroadcaster interface {
	BroadcastLocation(viewerIDs []string, loc *models.Location)
}

// LocationService handles location ingest and queries
type LocationService struct {
	locations locationStore
	cache     geoCache
	circles   *CircleService
	sharing   *SharingService
	hub       locationBroadcaster
}

// NewLocationService creates a new location service
func NewLocationService(
	locations locationStore,
	cache geoCache,
	circles *CircleService,
	sharing *SharingService,
	hub locationBroadcaster,
) *LocationService {
	return &LocationService{
		locations: locations,
		cache:     cache,
		circles:   circles,
		sharing:   sharing,
		hub:       hub,
	}
}

// Update records the user's position, refreshes the cache and pushes the
// update to everyone the user shares location with.
func (s *LocationService) Update(ctx context.Context, userID string, circleID *string, lat, lng float64) (*models.Location, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("coordinates out of range")
	}

	loc := &models.Location{
		ID:         uuid.New().String(),
		UserID:     userID,
		CircleID:   circleID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: time.Now(),
	}

	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, err
	}

	// Cache refresh is best effort; the row is already durable
	if err := s.cache.SetLatest(ctx, loc); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to cache location")
	}
	if err := s.cache.Touch(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to touch presence")
	}

	viewers, err := s.sharing.ViewerIDs(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to resolve viewers")
	} else if len(viewers) > 0 && s.hub != nil {
		s.hub.BroadcastLocation(viewers, loc)
	}

	return loc, nil
}

// Latest returns a user's most recent position, cache first
func (s *LocationService) Latest(ctx context.Context, userID string) (*models.Location, error) {
	if cached, err := s.cache.Latest(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	loc, err := s.locations.LatestByUser(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return loc, nil
}

// CircleLatest returns each member's latest position for a circle the
// caller belongs to. Positions reported against the circle take priority;
// members without a circle-tagged report fall back to their overall latest.
func (s *LocationService) CircleLatest(ctx context.Context, circleID, userID string) ([]*models.Location, error) {
	isMember, err := s.circles.circles.IsMember(ctx, circleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrNotMember
	}

	tagged, err := s.locations.LatestByCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(tagged))
	for _, loc := range tagged {
		seen[loc.UserID] = true
	}

	memberIDs, err := s.circles.MemberIDs(ctx, circleID)
	if err != nil {
		return nil, err
	}
	var untagged []string
	for _, id := range memberIDs {
		if !seen[id] {
			untagged = append(untagged, id)
		}
	}
	if len(untagged) == 0 {
		return tagged, nil
	}
	rest, err := s.locations.LatestByUsers(ctx, untagged)
	if err != nil {
		return nil, err
	}
	return append(tagged, rest...), nil
}

// FriendsLatest returns the latest position of every user currently sharing
// their location with the caller.
func (s *LocationService) FriendsLatest(ctx context.Context, userID string) ([]*models.Location, error) {
	sharers, err := s.sharing.SharerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sharers) == 0 {
		return nil, nil
	}
	return s.locations.LatestByUsers(ctx, sharers)
}
