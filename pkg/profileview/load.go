package profileview

import (
	"context"

	"github.com/snapshare/cli/pkg/logger"
)

// Load fetches the subject's profile and, once it arrives, their posts and
// the viewer's reposts. A failed profile fetch leaves earlier state intact
// and skips the list loads.
func (v *View) Load(ctx context.Context) error {
	g := v.begin(resProfile)

	profile, err := v.api.GetProfile(ctx, v.subjectID)
	if err != nil {
		return v.failLoad(resProfile, g, MsgLoadProfile, err)
	}

	v.mu.Lock()
	if v.stale(resProfile, g) {
		v.mu.Unlock()
		return nil
	}
	v.profile = *profile
	v.loaded = true
	v.succeed(resProfile)
	v.mu.Unlock()

	logger.Debug("Profile loaded", "subject_id", v.subjectID, "username", profile.Username)

	// Each list surfaces its own message; the first failure is returned.
	postsErr := v.LoadPosts(ctx)
	repostsErr := v.LoadReposts(ctx)
	if postsErr != nil {
		return postsErr
	}
	return repostsErr
}

// LoadPosts replaces the post list with the subject's posts
func (v *View) LoadPosts(ctx context.Context) error {
	g := v.begin(resPosts)

	posts, err := v.api.ListPosts(ctx, v.subjectID)
	if err != nil {
		return v.failLoad(resPosts, g, MsgLoadPosts, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stale(resPosts, g) {
		return nil
	}
	v.posts = posts
	v.succeed(resPosts)

	// the image modal cannot outlive its post
	if v.selected != "" {
		if _, ok := v.findPost(v.selected); !ok {
			v.selected = ""
			v.popModal(ModalImage)
		}
	}
	return nil
}

// LoadReposts replaces the repost list. Reposts are always the viewer's own,
// whichever profile is shown.
func (v *View) LoadReposts(ctx context.Context) error {
	g := v.begin(resReposts)

	reposts, err := v.api.ListReposts(ctx)
	if err != nil {
		return v.failLoad(resReposts, g, MsgLoadReposts, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stale(resReposts, g) {
		return nil
	}
	v.reposts = reposts
	v.succeed(resReposts)
	return nil
}
