package service

import (
	"context"
	"fmt"

	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/logger"
	"github.com/snapshare/cli/pkg/output"
)

// Tab names accepted by Show
const (
	ShowPosts   = "posts"
	ShowReposts = "reposts"
	ShowAll     = "all"
)

type ProfileService struct {
	env *Env
}

// NewProfileService creates a new profile service
func NewProfileService(env *Env) *ProfileService {
	return &ProfileService{env: env}
}

// profileDocument is the JSON shape of Show
type profileDocument struct {
	Profile api.Profile   `json:"profile"`
	Posts   *[]api.Post   `json:"posts,omitempty"`
	Reposts *[]api.Repost `json:"reposts,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Show prints userID's profile followed by the list for tab. An empty
// userID shows the viewer's own profile.
func (s *ProfileService) Show(ctx context.Context, userID, tab string) error {
	switch tab {
	case ShowPosts, ShowReposts, ShowAll:
	default:
		return fmt.Errorf("unknown tab %q: use posts, reposts or all", tab)
	}

	logger.Debug("Showing profile", "user_id", userID, "tab", tab)

	v := s.env.View(userID)
	loadErr := v.Load(ctx)
	st := v.Snapshot()
	if !st.Loaded {
		return loadErr
	}

	p := s.env.printer()
	if p.Format() == output.FormatJSON {
		doc := profileDocument{Profile: st.Profile, Error: st.Error}
		if tab != ShowReposts {
			posts := nonNilPosts(st.Posts)
			doc.Posts = &posts
		}
		if tab != ShowPosts {
			reposts := nonNilReposts(st.Reposts)
			doc.Reposts = &reposts
		}
		if err := p.JSON(doc); err != nil {
			return err
		}
		return loadErr
	}

	if err := s.env.Out.Profile(&st.Profile); err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}

	if tab != ShowReposts {
		fmt.Fprintf(p.Writer(), "\nPosts (%d):\n", len(st.Posts))
		if err := s.env.Out.Posts(st.Posts, st.ViewerID); err != nil {
			return err
		}
	}
	if tab != ShowPosts {
		fmt.Fprintf(p.Writer(), "\nReposts (%d):\n", len(st.Reposts))
		if err := s.env.Out.Reposts(st.Reposts); err != nil {
			return err
		}
	}
	return nil
}

func nonNilPosts(posts []api.Post) []api.Post {
	if posts == nil {
		return []api.Post{}
	}
	return posts
}

func nonNilReposts(reposts []api.Repost) []api.Repost {
	if reposts == nil {
		return []api.Repost{}
	}
	return reposts
}
