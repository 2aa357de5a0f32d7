package client

import (
	"context"
	"net/http"
)

// UpdateLocationRequest is the request body for UpdateLocation
type UpdateLocationRequest struct {
	CircleID  *string `json:"circle_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateLocation reports the signed-in user's current position
func (c *Client) UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*Location, error) {
	var loc Location
	if err := c.do(ctx, http.MethodPost, "/locations", req, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// LatestLocation fetches a user's most recent position
func (c *Client) LatestLocation(ctx context.Context, userID string) (*Location, error) {
	var loc Location
	if err := c.do(ctx, http.MethodGet, "/locations/users/"+userID+"/latest", nil, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// CircleLocations fetches the latest position of every circle member
func (c *Client) CircleLocations(ctx context.Context, circleID string) ([]Location, error) {
	var locs []Location
	if err := c.do(ctx, http.MethodGet, "/locations/circles/"+circleID, nil, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// FriendsLatest fetches the latest position of everyone sharing with the
// signed-in user. A 404 from a backend without the endpoint resolves to an
// empty list.
func (c *Client) FriendsLatest(ctx context.Context) ([]Location, error) {
	var locs []Location
	if err := c.do(ctx, http.MethodGet, "/locations/friends/latest", nil, &locs); err != nil {
		if IsKind(err, KindNotFound) {
			c.log.Debug().Str("kind", KindNotReady.String()).Msg("friends latest endpoint not rolled out, returning empty list")
			return []Location{}, nil
		}
		return nil, err
	}
	if locs == nil {
		locs = []Location{}
	}
	return locs, nil
}
