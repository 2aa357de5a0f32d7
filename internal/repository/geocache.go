package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tracker78-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	geoKey         = "locations:geo"
	latestKeyFmt   = "locations:latest:%s"
	presenceKeyFmt = "presence:%s"
	presenceTTL    = 90 * time.Second
)

// GeoCache caches each user's latest position and presence in Redis so that
// hot reads (map refresh, friends-latest) skip Postgres.
type GeoCache struct {
	rdb *redis.Client
}

// NewGeoCache creates a new geo cache
func NewGeoCache(rdb *redis.Client) *GeoCache {
	return &GeoCache{rdb: rdb}
}

// SetLatest records a user's newest position
func (c *GeoCache) SetLatest(ctx context.Context, loc *models.Location) error {
	if err := c.rdb.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      loc.UserID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}).Err(); err != nil {
		return fmt.Errorf("failed to geoadd location: %w", err)
	}

	key := fmt.Sprintf(latestKeyFmt, loc.UserID)
	if err := c.rdb.HSet(ctx, key, map[string]any{
		"id":          loc.ID,
		"latitude":    strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		"recorded_at": loc.RecordedAt.Format(time.RFC3339Nano),
	}).Err(); err != nil {
		return fmt.Errorf("failed to cache latest location: %w", err)
	}
	return nil
}

// Latest returns a user's cached position, or nil on a cache miss
func (c *GeoCache) Latest(ctx context.Context, userID string) (*models.Location, error) {
	key := fmt.Sprintf(latestKeyFmt, userID)
	fields, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached location: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(fields["latitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("bad cached latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(fields["longitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("bad cached longitude: %w", err)
	}
	recordedAt, err := time.Parse(time.RFC3339Nano, fields["recorded_at"])
	if err != nil {
		return nil, fmt.Errorf("bad cached timestamp: %w", err)
	}

	return &models.Location{
		ID:         fields["id"],
		UserID:     userID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: recordedAt,
	}, nil
}

// Touch marks a user as recently active
func (c *GeoCache) Touch(ctx context.Context, userID string) error {
	key := fmt.Sprintf(presenceKeyFmt, userID)
	if err := c.rdb.Set(ctx, key, "1", presenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to touch presence: %w", err)
	}
	return nil
}

// IsOnline reports whether a user was active within the presence window
func (c *GeoCache) IsOnline(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf(presenceKeyFmt, userID)
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence: %w", err)
	}
	return n > 0, nil
}
