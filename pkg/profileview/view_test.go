package profileview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/snapshare/cli/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory server. Every call is counted by name; failing
// names return errBoom.
type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	failing  map[string]bool
	profile  api.Profile
	posts    []api.Post
	reposts  []api.Repost
	comments map[string][]api.Comment
	author   *api.UserRef

	// hook runs inside ListPosts before it answers, outside the lock
	hook func(n int)
	// commentsHook does the same for ListComments
	commentsHook func(n int)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls:    make(map[string]int),
		failing:  make(map[string]bool),
		profile:  api.Profile{ID: "u1", Username: "maria"},
		comments: make(map[string][]api.Comment),
		posts: []api.Post{
			{ID: "p1", Title: "Dunes", ImageURL: "dunes.jpg", LikedBy: []string{"u2"}, User: &api.UserRef{ID: "u1"}},
			{ID: "p2", Title: "Sea", ImageURL: "sea.jpg", LikedBy: []string{}, User: &api.UserRef{ID: "u1"}},
		},
	}
}

func (f *fakeAPI) call(name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.failing[name] {
		return f.calls[name], errBoom
	}
	return f.calls[name], nil
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) fail(name string, on bool) {
	f.mu.Lock()
	f.failing[name] = on
	f.mu.Unlock()
}

func (f *fakeAPI) GetProfile(ctx context.Context, userID string) (*api.Profile, error) {
	if _, err := f.call("GetProfile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profile
	return &p, nil
}

func (f *fakeAPI) ListPosts(ctx context.Context, userID string) ([]api.Post, error) {
	n, err := f.call("ListPosts")
	if f.hook != nil {
		f.hook(n)
	}
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Post, len(f.posts))
	for i, p := range f.posts {
		p.LikedBy = append([]string(nil), p.LikedBy...)
		out[i] = p
	}
	return out, nil
}

func (f *fakeAPI) ListReposts(ctx context.Context) ([]api.Repost, error) {
	if _, err := f.call("ListReposts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Repost(nil), f.reposts...), nil
}

func (f *fakeAPI) setLike(postID, userID string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID != postID {
			continue
		}
		kept := []string{}
		for _, id := range p.LikedBy {
			if id != userID {
				kept = append(kept, id)
			}
		}
		if on {
			kept = append(kept, userID)
		}
		f.posts[i].LikedBy = kept
	}
}

func (f *fakeAPI) LikePost(ctx context.Context, postID string) error {
	if _, err := f.call("LikePost"); err != nil {
		return err
	}
	f.setLike(postID, "viewer", true)
	return nil
}

func (f *fakeAPI) UnlikePost(ctx context.Context, postID string) error {
	if _, err := f.call("UnlikePost"); err != nil {
		return err
	}
	f.setLike(postID, "viewer", false)
	return nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID string) error {
	if _, err := f.call("DeletePost"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := []api.Post{}
	for _, p := range f.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	f.posts = kept
	return nil
}

func (f *fakeAPI) CreateRepost(ctx context.Context, postID string) error {
	if _, err := f.call("CreateRepost"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reposts = append(f.reposts, api.Repost{ID: "r-" + postID, Caption: postID})
	return nil
}

func (f *fakeAPI) ListComments(ctx context.Context, postID string) ([]api.Comment, error) {
	n, err := f.call("ListComments")
	if f.commentsHook != nil {
		f.commentsHook(n)
	}
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Comment(nil), f.comments[postID]...), nil
}

func (f *fakeAPI) AddComment(ctx context.Context, postID, text string) (*api.Comment, error) {
	if _, err := f.call("AddComment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := api.Comment{ID: "c-new", Comment: text, MadeBy: f.author}
	f.comments[postID] = append(f.comments[postID], c)
	return &c, nil
}

func loadedView(t *testing.T) (*View, *fakeAPI) {
	t.Helper()
	f := newFakeAPI()
	v := New(f, "u1", "viewer")
	require.NoError(t, v.Load(context.Background()))
	return v, f
}

func TestLoad(t *testing.T) {
	v, f := loadedView(t)
	s := v.Snapshot()

	assert.True(t, s.Loaded)
	assert.Equal(t, "maria", s.Profile.Username)
	assert.Len(t, s.Posts, 2)
	assert.Empty(t, s.Reposts)
	assert.Equal(t, TabPosts, s.Tab)
	assert.Empty(t, s.Error)
	assert.Equal(t, 1, f.count("GetProfile"))
	assert.Equal(t, 1, f.count("ListPosts"))
	assert.Equal(t, 1, f.count("ListReposts"))
}

func TestLoadProfileFailureKeepsState(t *testing.T) {
	v, f := loadedView(t)
	f.fail("GetProfile", true)

	err := v.Load(context.Background())
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, MsgLoadProfile, opErr.Message)
	assert.ErrorIs(t, err, errBoom)

	s := v.Snapshot()
	assert.Equal(t, MsgLoadProfile, s.Error)
	assert.Equal(t, "maria", s.Profile.Username)
	assert.Len(t, s.Posts, 2)
	// the list loaders are skipped
	assert.Equal(t, 1, f.count("ListPosts"))
}

func TestLoadListFailureSurvivesOtherList(t *testing.T) {
	f := newFakeAPI()
	f.fail("ListPosts", true)
	v := New(f, "u1", "viewer")

	err := v.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgLoadPosts, v.Snapshot().Error)
	assert.Equal(t, 1, f.count("ListReposts"))
}

func TestNoPosts(t *testing.T) {
	f := newFakeAPI()
	f.posts = nil
	v := New(f, "", "viewer")
	require.NoError(t, v.Load(context.Background()))
	assert.Empty(t, v.Snapshot().Posts)
}

func TestIsLikedMatchesLikerSet(t *testing.T) {
	v, _ := loadedView(t)
	s := v.Snapshot()
	for _, p := range s.Posts {
		want := false
		for _, id := range p.LikedBy {
			if id == "viewer" {
				want = true
			}
		}
		assert.Equal(t, want, s.IsLiked(p), p.ID)
		assert.Equal(t, want, v.IsLiked(p.ID), p.ID)
	}
	assert.False(t, v.IsLiked("missing"))
}

func TestToggleLike(t *testing.T) {
	v, f := loadedView(t)
	ctx := context.Background()

	require.False(t, v.IsLiked("p2"))
	require.NoError(t, v.ToggleLike(ctx, "p2", false))
	assert.True(t, v.IsLiked("p2"))
	assert.Equal(t, 1, f.count("LikePost"))
	assert.Equal(t, 2, f.count("ListPosts"))

	require.NoError(t, v.ToggleLike(ctx, "p2", true))
	assert.False(t, v.IsLiked("p2"))
	assert.Equal(t, 1, f.count("UnlikePost"))
	assert.Equal(t, 3, f.count("ListPosts"))
}

func TestToggleLikeFailure(t *testing.T) {
	v, f := loadedView(t)
	before := v.Snapshot().Posts
	f.fail("LikePost", true)

	err := v.ToggleLike(context.Background(), "p2", false)
	require.Error(t, err)

	s := v.Snapshot()
	assert.Equal(t, MsgLike, s.Error)
	assert.Equal(t, before, s.Posts)
	assert.False(t, s.IsLiked(s.Posts[1]))
	assert.Equal(t, 1, f.count("ListPosts"), "no re-fetch after a failed toggle")
}

func TestToggleLikeInFlight(t *testing.T) {
	f := newFakeAPI()
	v := New(f, "u1", "viewer")
	require.NoError(t, v.Load(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	f.hook = func(n int) {
		if n == 2 {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- v.ToggleLike(context.Background(), "p1", false) }()
	<-entered

	assert.ErrorIs(t, v.ToggleLike(context.Background(), "p1", false), ErrInFlight)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.count("LikePost"))

	// released once the first toggle finished
	f.hook = nil
	assert.NoError(t, v.ToggleLike(context.Background(), "p1", true))
}

func TestStalePostsResponseIsDropped(t *testing.T) {
	f := newFakeAPI()
	v := New(f, "u1", "viewer")
	require.NoError(t, v.Load(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	f.hook = func(n int) {
		if n == 2 {
			close(entered)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- v.LoadPosts(context.Background()) }()
	<-entered

	// the server changes and a newer load lands first
	f.mu.Lock()
	f.posts = f.posts[:1]
	f.mu.Unlock()
	require.NoError(t, v.LoadPosts(context.Background()))
	require.Len(t, v.Snapshot().Posts, 1)

	// the blocked request now answers with two posts
	f.mu.Lock()
	f.posts = newFakeAPI().posts
	f.mu.Unlock()
	close(release)
	require.NoError(t, <-done)

	assert.Len(t, v.Snapshot().Posts, 1)
}

func TestStalePostsFailureKeepsError(t *testing.T) {
	f := newFakeAPI()
	v := New(f, "u1", "viewer")
	require.NoError(t, v.Load(context.Background()))

	entered := make(chan struct{})
	release := make(chan struct{})
	f.hook = func(n int) {
		if n == 2 {
			close(entered)
			<-release
		}
	}

	f.fail("ListPosts", true)
	done := make(chan error, 1)
	go func() { done <- v.LoadPosts(context.Background()) }()
	<-entered

	f.fail("ListPosts", false)
	require.NoError(t, v.LoadPosts(context.Background()))

	close(release)
	err := <-done
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, MsgLoadPosts, opErr.Message)

	s := v.Snapshot()
	assert.Empty(t, s.Error)
	assert.Len(t, s.Posts, 2)
}

func TestCommentsFailureAfterCloseIsDropped(t *testing.T) {
	v, f := loadedView(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.commentsHook = func(n int) {
		if n == 1 {
			close(entered)
			<-release
		}
	}
	f.fail("ListComments", true)

	done := make(chan error, 1)
	go func() { done <- v.OpenComments(context.Background(), "p1") }()
	<-entered
	v.CloseComments()

	close(release)
	assert.Error(t, <-done)

	s := v.Snapshot()
	assert.Empty(t, s.Error)
	assert.Nil(t, s.Thread)
	assert.Empty(t, s.Modals)
}

func TestSelectTabIsLocal(t *testing.T) {
	v, f := loadedView(t)
	before := f.total()
	posts := v.Snapshot().Posts

	v.SelectTab(TabReposts)
	assert.Equal(t, TabReposts, v.Snapshot().Tab)
	v.SelectTab(TabPosts)
	v.SelectTab(Tab("bogus"))

	s := v.Snapshot()
	assert.Equal(t, TabPosts, s.Tab)
	assert.Equal(t, posts, s.Posts)
	assert.Equal(t, before, f.total())
}

func TestDeleteFlow(t *testing.T) {
	v, f := loadedView(t)
	ctx := context.Background()

	assert.ErrorIs(t, v.ConfirmDelete(ctx), ErrNoPendingDelete)
	assert.ErrorIs(t, v.RequestDelete("missing"), ErrUnknownPost)

	require.NoError(t, v.RequestDelete("p1"))
	s := v.Snapshot()
	assert.Equal(t, "p1", s.DeleteTarget)
	m, ok := s.ActiveModal()
	require.True(t, ok)
	assert.Equal(t, ModalDelete, m)
	assert.Equal(t, 0, f.count("DeletePost"))

	v.CancelDelete()
	s = v.Snapshot()
	assert.Empty(t, s.DeleteTarget)
	assert.Empty(t, s.Modals)
	assert.Equal(t, 0, f.count("DeletePost"))

	require.NoError(t, v.RequestDelete("p1"))
	require.NoError(t, v.ConfirmDelete(ctx))
	s = v.Snapshot()
	for _, p := range s.Posts {
		assert.NotEqual(t, "p1", p.ID)
	}
	assert.Len(t, s.Posts, 1)
	assert.Empty(t, s.Modals)
	assert.Equal(t, 1, f.count("DeletePost"))
	assert.Equal(t, 2, f.count("ListPosts"))

	// a second confirm has nothing to send
	assert.ErrorIs(t, v.ConfirmDelete(ctx), ErrNoPendingDelete)
	assert.Equal(t, 1, f.count("DeletePost"))
}

func TestDeleteFailureKeepsPost(t *testing.T) {
	v, f := loadedView(t)
	f.fail("DeletePost", true)

	require.NoError(t, v.RequestDelete("p1"))
	require.Error(t, v.ConfirmDelete(context.Background()))

	s := v.Snapshot()
	assert.Len(t, s.Posts, 2)
	assert.Equal(t, MsgDelete, s.Error)
	assert.Empty(t, s.Modals)
	assert.Equal(t, 1, f.count("ListPosts"))
}

func TestDeleteSurvivesFailedRefetch(t *testing.T) {
	v, f := loadedView(t)
	f.fail("ListPosts", true)

	require.NoError(t, v.RequestDelete("p1"))
	err := v.ConfirmDelete(context.Background())
	require.Error(t, err)

	s := v.Snapshot()
	assert.Len(t, s.Posts, 1)
	assert.Equal(t, "p2", s.Posts[0].ID)
	assert.Equal(t, MsgLoadPosts, s.Error)
}

func TestImageModal(t *testing.T) {
	v, _ := loadedView(t)

	assert.ErrorIs(t, v.OpenImage("missing"), ErrUnknownPost)
	require.NoError(t, v.OpenImage("p1"))
	assert.ErrorIs(t, v.OpenImage("p2"), ErrModalOpen)

	s := v.Snapshot()
	require.NotNil(t, s.Selected)
	assert.Equal(t, "p1", s.Selected.ID)
	assert.True(t, s.IsOpen(ModalImage))

	// delete stacks over the image and takes the image with it
	require.NoError(t, v.RequestDelete("p1"))
	assert.ErrorIs(t, v.RequestDelete("p2"), ErrModalOpen)
	require.NoError(t, v.ConfirmDelete(context.Background()))

	s = v.Snapshot()
	assert.Nil(t, s.Selected)
	assert.Empty(t, s.Modals)
}

func TestCloseImage(t *testing.T) {
	v, _ := loadedView(t)
	require.NoError(t, v.OpenImage("p2"))
	v.CloseImage()

	s := v.Snapshot()
	assert.Nil(t, s.Selected)
	assert.False(t, s.IsOpen(ModalImage))
	_, ok := s.ActiveModal()
	assert.False(t, ok)
}

func TestRepost(t *testing.T) {
	v, f := loadedView(t)

	require.NoError(t, v.Repost(context.Background(), "p1"))
	require.NoError(t, v.Repost(context.Background(), "p1"))

	s := v.Snapshot()
	assert.Len(t, s.Reposts, 2, "duplicates are the server's call")
	assert.Equal(t, 3, f.count("ListReposts"))

	f.fail("CreateRepost", true)
	require.Error(t, v.Repost(context.Background(), "p2"))
	assert.Equal(t, MsgRepost, v.Snapshot().Error)
	assert.Equal(t, 3, f.count("ListReposts"))
}

func TestCommentThread(t *testing.T) {
	v, f := loadedView(t)
	ctx := context.Background()

	assert.ErrorIs(t, v.SubmitComment(ctx), ErrThreadClosed)

	require.NoError(t, v.OpenComments(ctx, "p1"))
	s := v.Snapshot()
	require.NotNil(t, s.Thread)
	assert.Equal(t, "p1", s.Thread.PostID)
	assert.Empty(t, s.Thread.Comments)
	assert.True(t, s.IsOpen(ModalComments))

	// empty draft sends nothing
	require.NoError(t, v.SubmitComment(ctx))
	assert.Equal(t, 0, f.count("AddComment"))
	assert.Empty(t, v.Snapshot().Thread.Comments)

	v.SetDraft("hello")
	require.NoError(t, v.SubmitComment(ctx))
	s = v.Snapshot()
	require.Len(t, s.Thread.Comments, 1)
	assert.Equal(t, "hello", s.Thread.Comments[0].Comment)
	assert.Equal(t, api.UnknownUser, s.Thread.Comments[0].AuthorName())
	assert.Empty(t, s.Draft)
	assert.Equal(t, 1, f.count("ListComments"), "submitting does not re-fetch")

	v.CloseComments()
	s = v.Snapshot()
	assert.Nil(t, s.Thread)
	assert.Empty(t, s.Modals)

	// reopening fetches from scratch
	f.author = &api.UserRef{ID: "viewer", Username: "leo"}
	require.NoError(t, v.OpenComments(ctx, "p1"))
	assert.Equal(t, 2, f.count("ListComments"))
	assert.Len(t, v.Snapshot().Thread.Comments, 1)
}

func TestCommentAuthorName(t *testing.T) {
	v, f := loadedView(t)
	f.author = &api.UserRef{ID: "viewer", Username: "leo"}
	ctx := context.Background()

	require.NoError(t, v.OpenComments(ctx, "p2"))
	v.SetDraft("  spaced  ")
	require.NoError(t, v.SubmitComment(ctx))

	c := v.Snapshot().Thread.Comments[0]
	assert.Equal(t, "leo", c.AuthorName())
	assert.Equal(t, "  spaced  ", c.Comment, "text is sent untrimmed")
}

func TestOpenCommentsFailure(t *testing.T) {
	v, f := loadedView(t)
	f.fail("ListComments", true)

	require.Error(t, v.OpenComments(context.Background(), "p1"))
	s := v.Snapshot()
	assert.Nil(t, s.Thread)
	assert.Empty(t, s.Modals)
	assert.Equal(t, MsgLoadComments, s.Error)

	f.fail("ListComments", false)
	require.NoError(t, v.OpenComments(context.Background(), "p1"))
	assert.Empty(t, v.Snapshot().Error)
}

func TestSubmitCommentFailure(t *testing.T) {
	v, f := loadedView(t)
	ctx := context.Background()
	require.NoError(t, v.OpenComments(ctx, "p1"))
	f.fail("AddComment", true)

	v.SetDraft("hello")
	require.Error(t, v.SubmitComment(ctx))

	s := v.Snapshot()
	assert.Empty(t, s.Thread.Comments)
	assert.Equal(t, "hello", s.Draft)
	assert.Equal(t, MsgSubmitComment, s.Error)
}

func TestCommentsOverImage(t *testing.T) {
	v, _ := loadedView(t)
	ctx := context.Background()

	require.NoError(t, v.OpenImage("p1"))
	require.NoError(t, v.OpenComments(ctx, "p1"))
	assert.ErrorIs(t, v.RequestDelete("p1"), ErrModalOpen)
	assert.ErrorIs(t, v.OpenComments(ctx, "p2"), ErrModalOpen)

	m, _ := v.Snapshot().ActiveModal()
	assert.Equal(t, ModalComments, m)

	v.CloseComments()
	m, ok := v.Snapshot().ActiveModal()
	require.True(t, ok)
	assert.Equal(t, ModalImage, m)
}

func TestErrorClearedBySameResource(t *testing.T) {
	v, f := loadedView(t)
	ctx := context.Background()

	f.fail("LikePost", true)
	require.Error(t, v.ToggleLike(ctx, "p1", false))

	// an unrelated success leaves the message up
	require.NoError(t, v.LoadReposts(ctx))
	assert.Equal(t, MsgLike, v.Snapshot().Error)

	require.NoError(t, v.LoadPosts(ctx))
	assert.Empty(t, v.Snapshot().Error)
}

func TestModalString(t *testing.T) {
	assert.Equal(t, "image", ModalImage.String())
	assert.Equal(t, "delete", ModalDelete.String())
	assert.Equal(t, "comments", ModalComments.String())
	assert.Equal(t, "unknown", Modal(42).String())
}
