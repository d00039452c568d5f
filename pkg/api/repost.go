package api

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// ListReposts lists the viewer's own reposts. There is no per-user variant.
func (c *Client) ListReposts(ctx context.Context) ([]Repost, error) {
	logger.Debug("Listing reposts")

	var reposts []Repost
	resp, err := c.request(ctx).Get("/reposts/user")
	if err := decode(resp, err, &reposts); err != nil {
		return nil, err
	}

	return reposts, nil
}

// CreateRepost reposts postID into the viewer's repost list. The body of
// the response is not needed; callers re-fetch the list.
func (c *Client) CreateRepost(ctx context.Context, postID string) error {
	logger.Debug("Creating repost", "post_id", postID)

	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		SetBody(map[string]interface{}{}).
		Post("/reposts/{id}")

	return CheckResponse(resp, err)
}
