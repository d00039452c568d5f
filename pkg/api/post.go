package api

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// ListPosts lists the posts of userID, or the viewer's own posts when userID
// is empty.
func (c *Client) ListPosts(ctx context.Context, userID string) ([]Post, error) {
	logger.Debug("Listing posts", "user_id", userID)

	req := c.request(ctx)
	path := "/posts/user"
	if userID != "" {
		req.SetPathParam("id", userID)
		path = "/posts/user/{id}"
	}

	var posts []Post
	resp, err := req.Get(path)
	if err := decode(resp, err, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// LikePost adds the viewer to the post's liker set
func (c *Client) LikePost(ctx context.Context, postID string) error {
	logger.Debug("Liking post", "post_id", postID)

	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		SetBody(map[string]interface{}{}).
		Patch("/posts/{id}/like")

	return CheckResponse(resp, err)
}

// UnlikePost removes the viewer from the post's liker set
func (c *Client) UnlikePost(ctx context.Context, postID string) error {
	logger.Debug("Unliking post", "post_id", postID)

	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		SetBody(map[string]interface{}{}).
		Patch("/posts/{id}/unlike")

	return CheckResponse(resp, err)
}

// DeletePost deletes a post by ID
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		Delete("/posts/{id}")

	return CheckResponse(resp, err)
}
