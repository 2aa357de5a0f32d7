package client

import (
	"context"
	"net/http"
	"net/url"
)

// SearchUsers finds users whose name or email matches the term. A 404 from
// a backend without the endpoint resolves to an empty list.
func (c *Client) SearchUsers(ctx context.Context, term string) ([]Account, error) {
	var users []Account
	path := "/users/search?q=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		if IsKind(err, KindNotFound) {
			c.log.Debug().Str("kind", KindNotReady.String()).Msg("user search endpoint not rolled out, returning empty list")
			return []Account{}, nil
		}
		return nil, err
	}
	if users == nil {
		users = []Account{}
	}
	return users, nil
}

// UserProfile fetches a user's public profile by id
func (c *Client) UserProfile(ctx context.Context, userID string) (*Account, error) {
	var user Account
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AvatarUploadRequest is the request body for RequestAvatarUpload
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// RequestAvatarUpload asks the backend for a presigned avatar upload URL
func (c *Client) RequestAvatarUpload(ctx context.Context, contentType string) (*AvatarUpload, error) {
	var upload AvatarUpload
	if err := c.do(ctx, http.MethodPost, "/users/avatar", AvatarUploadRequest{ContentType: contentType}, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}
