package service

import (
	"context"

	clierrors "github.com/snapshare/cli/pkg/errors"
	"github.com/snapshare/cli/pkg/logger"
)

// CommentService provides operations for managing comments
type CommentService struct {
	env *Env
}

// NewCommentService creates a new comment service
func NewCommentService(env *Env) *CommentService {
	return &CommentService{env: env}
}

// List prints postID's comment thread
func (cs *CommentService) List(ctx context.Context, postID string) error {
	v := cs.env.View("")
	if err := v.OpenComments(ctx, postID); err != nil {
		return err
	}
	defer v.CloseComments()

	return cs.env.Out.Comments(v.Snapshot().Thread.Comments)
}

// Add posts text on postID and prints the created comment. Empty text is
// read from the prompt; if it is still empty nothing is sent and a
// validation error is returned.
func (cs *CommentService) Add(ctx context.Context, postID, text string) error {
	if text == "" {
		var err error
		text, err = cs.env.Prompt.PromptString("Comment: ")
		if err != nil {
			return err
		}
	}
	if text == "" {
		return clierrors.ValidationError("comment", "cannot be empty")
	}

	v := cs.env.View("")
	if err := v.OpenComments(ctx, postID); err != nil {
		return err
	}
	defer v.CloseComments()

	v.SetDraft(text)
	if err := v.SubmitComment(ctx); err != nil {
		return err
	}

	thread := v.Snapshot().Thread
	logger.Debug("Comment thread updated", "post_id", postID, "count", len(thread.Comments))

	cs.env.printer().Success("✓ Comment added")
	last := thread.Comments[len(thread.Comments)-1]
	return cs.env.Out.Comment(&last)
}
