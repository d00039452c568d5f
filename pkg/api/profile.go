package api

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// GetProfile fetches the profile of userID, or the viewer's own profile when
// userID is empty.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	logger.Debug("Fetching profile", "user_id", userID)

	req := c.request(ctx)
	path := "/user/profile"
	if userID != "" {
		req.SetPathParam("id", userID)
		path = "/user/profile/{id}"
	}

	var profile Profile
	resp, err := req.Get(path)
	if err := decode(resp, err, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
