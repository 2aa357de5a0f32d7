package client

import (
	"context"
	"net/http"
)

// AddFriendRequest is the request body for AddFriend
type AddFriendRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// AddFriend adds a tracked contact for the signed-in user
func (c *Client) AddFriend(ctx context.Context, req AddFriendRequest) (*Friend, error) {
	var friend Friend
	if err := c.do(ctx, http.MethodPost, "/friends", req, &friend); err != nil {
		return nil, err
	}
	return &friend, nil
}

// Friends lists the signed-in user's tracked contacts
func (c *Client) Friends(ctx context.Context) ([]Friend, error) {
	var friends []Friend
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// RemoveFriend stops tracking a contact
func (c *Client) RemoveFriend(ctx context.Context, friendID string) error {
	return c.do(ctx, http.MethodDelete, "/friends/"+friendID, nil, nil)
}
