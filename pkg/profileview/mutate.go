package profileview

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// ToggleLike unlikes postID when liked is true and likes it otherwise, then
// re-fetches the post list. The list is not edited locally; a failed toggle
// leaves it as it was. A second toggle of the same post while the first is
// still running returns ErrInFlight.
func (v *View) ToggleLike(ctx context.Context, postID string, liked bool) error {
	v.mu.Lock()
	if v.liking[postID] {
		v.mu.Unlock()
		return ErrInFlight
	}
	v.liking[postID] = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.liking, postID)
		v.mu.Unlock()
	}()

	var err error
	if liked {
		err = v.api.UnlikePost(ctx, postID)
	} else {
		err = v.api.LikePost(ctx, postID)
	}
	if err != nil {
		return v.fail(resPosts, MsgLike, err)
	}

	logger.Debug("Like toggled", "post_id", postID, "liked", !liked)
	return v.LoadPosts(ctx)
}

// ConfirmDelete sends the delete awaiting confirmation. On success the post
// is removed locally at once and the list is re-fetched. On failure nothing
// is removed and no re-fetch happens.
func (v *View) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	postID := v.deleteTarget
	if postID == "" || !v.popModal(ModalDelete) {
		v.mu.Unlock()
		return ErrNoPendingDelete
	}
	v.deleteTarget = ""
	v.mu.Unlock()

	if err := v.api.DeletePost(ctx, postID); err != nil {
		return v.fail(resPosts, MsgDelete, err)
	}

	v.mu.Lock()
	kept := v.posts[:0:0]
	for _, p := range v.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	v.posts = kept
	// a list fetched before the delete would bring the post back
	v.gen[resPosts]++
	if v.selected == postID {
		v.selected = ""
		v.popModal(ModalImage)
	}
	v.succeed(resPosts)
	v.mu.Unlock()

	logger.Info("Post deleted", "post_id", postID)
	return v.LoadPosts(ctx)
}

// Repost shares postID into the viewer's reposts and re-fetches them.
// Duplicates are left for the server to reject.
func (v *View) Repost(ctx context.Context, postID string) error {
	if err := v.api.CreateRepost(ctx, postID); err != nil {
		return v.fail(resReposts, MsgRepost, err)
	}
	logger.Info("Reposted", "post_id", postID)
	return v.LoadReposts(ctx)
}
