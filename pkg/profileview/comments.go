package profileview

import (
	"context"

	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/logger"
)

// OpenComments fetches postID's comments and opens the thread. If the fetch
// fails the thread stays closed.
func (v *View) OpenComments(ctx context.Context, postID string) error {
	v.mu.Lock()
	if v.thread != nil || !v.canStack() {
		v.mu.Unlock()
		return ErrModalOpen
	}
	v.gen[resComments]++
	g := v.gen[resComments]
	v.mu.Unlock()

	comments, err := v.api.ListComments(ctx, postID)
	if err != nil {
		return v.failLoad(resComments, g, MsgLoadComments, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stale(resComments, g) {
		return nil
	}
	if v.thread != nil || !v.canStack() {
		return ErrModalOpen
	}
	if comments == nil {
		comments = []api.Comment{}
	}
	v.thread = &Thread{PostID: postID, Comments: comments}
	v.threadGen = g
	v.draft = ""
	v.pushModal(ModalComments)
	v.succeed(resComments)

	logger.Debug("Comment thread opened", "post_id", postID, "count", len(comments))
	return nil
}

// SetDraft replaces the pending comment text
func (v *View) SetDraft(text string) {
	v.mu.Lock()
	v.draft = text
	v.mu.Unlock()
}

// SubmitComment posts the draft to the open thread and appends the created
// comment locally. An empty draft sends nothing. The text is sent as typed.
func (v *View) SubmitComment(ctx context.Context) error {
	v.mu.Lock()
	if v.thread == nil {
		v.mu.Unlock()
		return ErrThreadClosed
	}
	text := v.draft
	if text == "" {
		v.mu.Unlock()
		return nil
	}
	postID := v.thread.PostID
	tg := v.threadGen
	v.mu.Unlock()

	created, err := v.api.AddComment(ctx, postID, text)
	if err != nil {
		return v.fail(resComments, MsgSubmitComment, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// the thread was closed or replaced while the request ran
	if v.thread == nil || v.threadGen != tg {
		logger.Debug("Dropping comment for closed thread", "post_id", postID)
		return nil
	}
	if created == nil {
		created = &api.Comment{Comment: text}
	}
	v.thread.Comments = append(v.thread.Comments, *created)
	if v.draft == text {
		v.draft = ""
	}
	v.succeed(resComments)

	logger.Info("Comment added", "post_id", postID)
	return nil
}

// CloseComments discards the thread. Reopening fetches it again.
func (v *View) CloseComments() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.popModal(ModalComments)
	v.thread = nil
	v.draft = ""
	// a fetch still running for this thread must not reopen it
	v.gen[resComments]++
}
