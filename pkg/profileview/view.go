// Package profileview is the state machine behind the profile screen: the
// subject's profile, their posts, the viewer's reposts, the active tab, the
// modal stack, the open comment thread and the last error message.
//
// Methods are safe for concurrent use. Network calls run outside the lock and
// every list carries a request generation, so a response that was overtaken
// by a newer request for the same list is dropped instead of applied.
package profileview

import (
	"context"
	"errors"
	"sync"

	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/logger"
)

// User-facing failure messages
const (
	MsgLoadProfile   = "Failed to load profile."
	MsgLoadPosts     = "Failed to load posts."
	MsgLoadReposts   = "Failed to load reposts."
	MsgLike          = "Failed to update like status."
	MsgDelete        = "Failed to delete post."
	MsgRepost        = "Failed to repost."
	MsgLoadComments  = "Failed to load comments."
	MsgSubmitComment = "Failed to submit comment."
)

// Empty-list placeholders
const (
	NoPosts    = "No posts available."
	NoReposts  = "No reposts available."
	NoComments = "No comments available."
)

var (
	// ErrModalOpen is returned when another modal currently holds the screen
	ErrModalOpen = errors.New("another dialog is open")
	// ErrNoPendingDelete is returned by ConfirmDelete outside the confirm step
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	// ErrThreadClosed is returned when submitting without an open comment thread
	ErrThreadClosed = errors.New("comment thread is not open")
	// ErrInFlight is returned when the same like toggle is already running
	ErrInFlight = errors.New("request already in flight")
	// ErrUnknownPost is returned when a post id is not in the loaded list
	ErrUnknownPost = errors.New("post not in list")
)

// API is the subset of the REST client the view drives
type API interface {
	GetProfile(ctx context.Context, userID string) (*api.Profile, error)
	ListPosts(ctx context.Context, userID string) ([]api.Post, error)
	ListReposts(ctx context.Context) ([]api.Repost, error)
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
	DeletePost(ctx context.Context, postID string) error
	CreateRepost(ctx context.Context, postID string) error
	ListComments(ctx context.Context, postID string) ([]api.Comment, error)
	AddComment(ctx context.Context, postID, text string) (*api.Comment, error)
}

// OpError carries the user-facing message of a failed operation together
// with its cause
type OpError struct {
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Message + " " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

type resource int

const (
	resProfile resource = iota
	resPosts
	resReposts
	resComments
	resourceCount
)

func (r resource) String() string {
	switch r {
	case resProfile:
		return "profile"
	case resPosts:
		return "posts"
	case resReposts:
		return "reposts"
	case resComments:
		return "comments"
	}
	return "unknown"
}

// Thread is an open comment thread
type Thread struct {
	PostID   string
	Comments []api.Comment
}

// View holds the screen state for one subject user
type View struct {
	api       API
	subjectID string
	viewerID  string

	mu           sync.Mutex
	gen          [resourceCount]uint64
	profile      api.Profile
	loaded       bool
	posts        []api.Post
	reposts      []api.Repost
	tab          Tab
	modals       []Modal
	selected     string
	deleteTarget string
	thread       *Thread
	threadGen    uint64
	draft        string
	errMsg       string
	errOrigin    resource
	liking       map[string]bool
}

// New creates a view of subjectID's profile as seen by viewerID. An empty
// subjectID means the viewer's own profile.
func New(client API, subjectID, viewerID string) *View {
	return &View{
		api:       client,
		subjectID: subjectID,
		viewerID:  viewerID,
		tab:       TabPosts,
		liking:    make(map[string]bool),
	}
}

// SubjectID is the user whose profile is shown, empty for self
func (v *View) SubjectID() string {
	return v.subjectID
}

// ViewerID is the logged-in user
func (v *View) ViewerID() string {
	return v.viewerID
}

// begin starts a request for r and returns its generation
func (v *View) begin(r resource) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen[r]++
	return v.gen[r]
}

// stale reports whether g was overtaken. Callers hold v.mu.
func (v *View) stale(r resource, g uint64) bool {
	if g != v.gen[r] {
		logger.Debug("Dropping stale response", "resource", r.String(), "generation", g, "latest", v.gen[r])
		return true
	}
	return false
}

// fail records msg as the visible error of r and wraps cause
func (v *View) fail(r resource, msg string, cause error) error {
	logger.Error(msg, "subject_id", v.subjectID, "resource", r.String(), "error", cause)
	v.mu.Lock()
	v.errMsg = msg
	v.errOrigin = r
	v.mu.Unlock()
	return &OpError{Message: msg, Err: cause}
}

// failLoad is fail for a fetch started at generation g. A failure that a
// newer request overtook leaves the visible error alone.
func (v *View) failLoad(r resource, g uint64, msg string, cause error) error {
	v.mu.Lock()
	if v.stale(r, g) {
		v.mu.Unlock()
		logger.Debug(msg, "subject_id", v.subjectID, "resource", r.String(), "error", cause)
		return &OpError{Message: msg, Err: cause}
	}
	v.mu.Unlock()
	return v.fail(r, msg, cause)
}

// succeed clears the visible error if it was raised for r. A profile load
// refreshes everything and clears any error. Callers hold v.mu.
func (v *View) succeed(r resource) {
	if r == resProfile || v.errOrigin == r {
		v.errMsg = ""
	}
}

// State is an immutable copy of the view for rendering
type State struct {
	Profile      api.Profile
	Loaded       bool
	Posts        []api.Post
	Reposts      []api.Repost
	Tab          Tab
	Modals       []Modal
	Selected     *api.Post
	DeleteTarget string
	Thread       *Thread
	Draft        string
	Error        string
	ViewerID     string
}

// Snapshot copies the current state
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := State{
		Profile:      v.profile,
		Loaded:       v.loaded,
		Posts:        append([]api.Post(nil), v.posts...),
		Reposts:      append([]api.Repost(nil), v.reposts...),
		Tab:          v.tab,
		Modals:       append([]Modal(nil), v.modals...),
		DeleteTarget: v.deleteTarget,
		Draft:        v.draft,
		Error:        v.errMsg,
		ViewerID:     v.viewerID,
	}
	if v.selected != "" {
		if p, ok := v.findPost(v.selected); ok {
			s.Selected = &p
		}
	}
	if v.thread != nil {
		s.Thread = &Thread{
			PostID:   v.thread.PostID,
			Comments: append([]api.Comment(nil), v.thread.Comments...),
		}
	}
	return s
}

// IsLiked reports whether the viewer is in p's liker set
func (s State) IsLiked(p api.Post) bool {
	return p.IsLikedBy(s.ViewerID)
}

// ActiveModal is the modal on top of the stack
func (s State) ActiveModal() (Modal, bool) {
	if len(s.Modals) == 0 {
		return 0, false
	}
	return s.Modals[len(s.Modals)-1], true
}

// IsOpen reports whether m is anywhere on the stack
func (s State) IsOpen(m Modal) bool {
	for _, open := range s.Modals {
		if open == m {
			return true
		}
	}
	return false
}

// IsLiked reports whether the viewer likes the loaded post postID
func (v *View) IsLiked(postID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.findPost(postID)
	return ok && p.IsLikedBy(v.viewerID)
}

// findPost looks postID up in the loaded list. Callers hold v.mu.
func (v *View) findPost(postID string) (api.Post, bool) {
	for _, p := range v.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return api.Post{}, false
}
