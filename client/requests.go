package client

import (
	"context"
	"net/http"
)

// SendRequestBody is the request body for SendFriendRequest
type SendRequestBody struct {
	Contact string `json:"contact"`
}

// SendFriendRequest asks a contact to share their location
func (c *Client) SendFriendRequest(ctx context.Context, contact string) (*PendingRequest, error) {
	var req PendingRequest
	if err := c.do(ctx, http.MethodPost, "/friend-requests", SendRequestBody{Contact: contact}, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// PendingRequests lists requests waiting on the signed-in user. Backends
// that predate this endpoint answer 404; that is treated as "nothing
// pending", not an error.
func (c *Client) PendingRequests(ctx context.Context) ([]PendingRequest, error) {
	var requests []PendingRequest
	if err := c.do(ctx, http.MethodGet, "/friend-requests/pending", nil, &requests); err != nil {
		if IsKind(err, KindNotFound) {
			c.log.Debug().Str("kind", KindNotReady.String()).Msg("pending requests endpoint not rolled out, returning empty list")
			return []PendingRequest{}, nil
		}
		return nil, err
	}
	if requests == nil {
		requests = []PendingRequest{}
	}
	return requests, nil
}

// AcceptResult is returned by AcceptFriendRequest
type AcceptResult struct {
	RequestID string `json:"request_id"`
	FriendID  string `json:"friend_id"`
	SenderID  string `json:"sender_id"`
}

// AcceptFriendRequest accepts a pending request, converting it into a
// friend entry on the sender's side
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID string) (*AcceptResult, error) {
	var result AcceptResult
	if err := c.do(ctx, http.MethodPost, "/friend-requests/"+requestID+"/accept", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RejectFriendRequest declines a pending request
func (c *Client) RejectFriendRequest(ctx context.Context, requestID string) error {
	return c.do(ctx, http.MethodPost, "/friend-requests/"+requestID+"/reject", nil, nil)
}
