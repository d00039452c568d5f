package api

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// ListComments retrieves the comment thread of a post
func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	logger.Debug("Getting comments", "post_id", postID)

	var comments []Comment
	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		Get("/posts/{id}/comments")
	if err := decode(resp, err, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// AddComment posts text as a new comment and returns the stored comment
func (c *Client) AddComment(ctx context.Context, postID, text string) (*Comment, error) {
	logger.Debug("Creating comment", "post_id", postID)

	var comment Comment
	resp, err := c.request(ctx).
		SetPathParam("id", postID).
		SetHeader("Content-Type", "application/json").
		SetBody(CreateCommentRequest{Comment: text}).
		Post("/posts/{id}/comment")
	if err := decode(resp, err, &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}
