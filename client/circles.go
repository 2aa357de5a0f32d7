package client

import (
	"context"
	"net/http"
)

// CreateCircleRequest is the request body for CreateCircle
type CreateCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCircle creates a circle with the signed-in user as first member
func (c *Client) CreateCircle(ctx context.Context, req CreateCircleRequest) (*Circle, error) {
	var circle Circle
	if err := c.do(ctx, http.MethodPost, "/circles", req, &circle); err != nil {
		return nil, err
	}
	return &circle, nil
}

// joinCircleRequest is the request body for JoinCircle
type joinCircleRequest struct {
	JoinCode string `json:"join_code"`
}

// JoinCircle joins a circle by its 6-character join code
func (c *Client) JoinCircle(ctx context.Context, joinCode string) (*Circle, error) {
	var circle Circle
	if err := c.do(ctx, http.MethodPost, "/circles/join", joinCircleRequest{JoinCode: joinCode}, &circle); err != nil {
		return nil, err
	}
	return &circle, nil
}

// CircleMembers lists the member snapshots of a circle the signed-in user
// belongs to
func (c *Client) CircleMembers(ctx context.Context, circleID string) ([]CircleMember, error) {
	var members []CircleMember
	if err := c.do(ctx, http.MethodGet, "/circles/"+circleID+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// LeaveCircle removes the signed-in user from a circle
func (c *Client) LeaveCircle(ctx context.Context, circleID string) error {
	return c.do(ctx, http.MethodPost, "/circles/"+circleID+"/leave", nil, nil)
}
