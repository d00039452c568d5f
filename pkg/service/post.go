package service

import (
	"context"
	"errors"
	"fmt"

	clierrors "github.com/snapshare/cli/pkg/errors"
	"github.com/snapshare/cli/pkg/logger"
	"github.com/snapshare/cli/pkg/profileview"
)

// PostService provides post-related operations
type PostService struct {
	env *Env
}

// NewPostService creates a new post service
func NewPostService(env *Env) *PostService {
	return &PostService{env: env}
}

// List prints userID's posts with the viewer's like state
func (ps *PostService) List(ctx context.Context, userID string) error {
	v := ps.env.View(userID)
	if err := v.LoadPosts(ctx); err != nil {
		return err
	}
	st := v.Snapshot()
	return ps.env.Out.Posts(st.Posts, st.ViewerID)
}

// Like likes postID, owned by ownerID, when want is true and unlikes it
// otherwise. Nothing is sent if the post is already in that state.
func (ps *PostService) Like(ctx context.Context, postID, ownerID string, want bool) error {
	logger.Debug("Setting like", "post_id", postID, "owner_id", ownerID, "like", want)

	v := ps.env.View(ownerID)
	if err := v.LoadPosts(ctx); err != nil {
		return err
	}
	if !hasPost(v.Snapshot(), postID) {
		return clierrors.NotFoundError("Post", postID)
	}

	if ps.env.Session.ViewerID() == "" {
		return clierrors.AuthError("Viewer is unknown").
			WithSuggestion("Run 'snapshare auth login' again so your user id is stored.")
	}

	liked := v.IsLiked(postID)
	verb := map[bool]string{true: "liked", false: "not liked"}
	if liked == want {
		ps.env.printer().Warning("Post %s is already %s", postID, verb[want])
		return nil
	}

	if err := v.ToggleLike(ctx, postID, liked); err != nil {
		return err
	}

	st := v.Snapshot()
	for _, p := range st.Posts {
		if p.ID == postID {
			ps.env.printer().Success("✓ Post %s is now %s (%d like%s)", postID, verb[st.IsLiked(p)], len(p.LikedBy), pluralize(len(p.LikedBy)))
			return nil
		}
	}
	ps.env.printer().Success("✓ Post %s is now %s", postID, verb[want])
	return nil
}

// Delete deletes one of the viewer's own posts after confirmation. yes skips
// the prompt.
func (ps *PostService) Delete(ctx context.Context, postID string, yes bool) error {
	v := ps.env.View("")
	if err := v.LoadPosts(ctx); err != nil {
		return err
	}

	if err := v.RequestDelete(postID); err != nil {
		if errors.Is(err, profileview.ErrUnknownPost) {
			return clierrors.NotFoundError("Post", postID)
		}
		return err
	}

	if !yes {
		title := postID
		for _, p := range v.Snapshot().Posts {
			if p.ID == postID && p.Title != "" {
				title = truncate(p.Title, 40)
			}
		}
		ok, err := ps.env.Prompt.PromptConfirm(fmt.Sprintf("Delete post %q?", title))
		if err != nil {
			v.CancelDelete()
			return err
		}
		if !ok {
			v.CancelDelete()
			ps.env.printer().Info("Cancelled")
			return nil
		}
	}

	if err := v.ConfirmDelete(ctx); err != nil {
		var opErr *profileview.OpError
		if errors.As(err, &opErr) && opErr.Message == profileview.MsgLoadPosts {
			// the post is gone; only the refresh failed
			ps.env.printer().Success("✓ Post %s deleted", postID)
		}
		return err
	}

	left := len(v.Snapshot().Posts)
	ps.env.printer().Success("✓ Post %s deleted (%d post%s left)", postID, left, pluralize(left))
	return nil
}

// Repost shares postID into the viewer's reposts and prints them
func (ps *PostService) Repost(ctx context.Context, postID string) error {
	v := ps.env.View("")
	if err := v.Repost(ctx, postID); err != nil {
		return err
	}
	ps.env.printer().Success("✓ Reposted %s", postID)
	return ps.env.Out.Reposts(v.Snapshot().Reposts)
}

// Reposts prints the viewer's reposts
func (ps *PostService) Reposts(ctx context.Context) error {
	v := ps.env.View("")
	if err := v.LoadReposts(ctx); err != nil {
		return err
	}
	return ps.env.Out.Reposts(v.Snapshot().Reposts)
}

func hasPost(st profileview.State, postID string) bool {
	for _, p := range st.Posts {
		if p.ID == postID {
			return true
		}
	}
	return false
}
