package client

import (
	"context"
	"net/http"
)

// Account fetches the current account from the backend and caches it.
// On failure the last cached account is returned when one exists, so a
// flaky network does not log the user out; a 401 has already cleared the
// cache by the time the fallback runs.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodGet, "/account", nil, &account)
	if err == nil {
		c.cacheAccount(&account)
		return &account, nil
	}

	if cached := c.cachedAccount(); cached != nil {
		c.log.Debug().Err(err).Msg("account fetch failed, serving cached identity")
		return cached, nil
	}
	return nil, err
}

// CurrentUserID returns the signed-in user's id, or empty when no session
// exists. Errors are swallowed: a missing identity is the normal logged-out
// state, not a failure.
func (c *Client) CurrentUserID(ctx context.Context) string {
	account, err := c.Account(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("no current identity")
		return ""
	}
	return account.ID
}

// IsAuthenticated reports whether a signed-in identity can be resolved
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.CurrentUserID(ctx) != ""
}
