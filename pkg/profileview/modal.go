package profileview

// Tab selects which list the screen shows
type Tab string

const (
	TabPosts   Tab = "posts"
	TabReposts Tab = "reposts"
)

// Modal is one of the dialogs that can sit over the lists
type Modal int

const (
	ModalImage Modal = iota
	ModalDelete
	ModalComments
)

func (m Modal) String() string {
	switch m {
	case ModalImage:
		return "image"
	case ModalDelete:
		return "delete"
	case ModalComments:
		return "comments"
	}
	return "unknown"
}

// SelectTab switches the visible list. It never touches the network.
func (v *View) SelectTab(t Tab) {
	if t != TabPosts && t != TabReposts {
		return
	}
	v.mu.Lock()
	v.tab = t
	v.mu.Unlock()
}

// canStack reports whether a confirm or thread dialog may open now: the
// screen must be clear or only showing an image. Callers hold v.mu.
func (v *View) canStack() bool {
	n := len(v.modals)
	return n == 0 || (n == 1 && v.modals[0] == ModalImage)
}

// pushModal puts m on top. Callers hold v.mu.
func (v *View) pushModal(m Modal) {
	v.modals = append(v.modals, m)
}

// popModal removes the topmost m and everything tied to it. Callers hold v.mu.
func (v *View) popModal(m Modal) bool {
	for i := len(v.modals) - 1; i >= 0; i-- {
		if v.modals[i] == m {
			v.modals = append(v.modals[:i], v.modals[i+1:]...)
			return true
		}
	}
	return false
}

// OpenImage shows postID enlarged with its like and repost actions
func (v *View) OpenImage(postID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.findPost(postID); !ok {
		return ErrUnknownPost
	}
	if len(v.modals) != 0 {
		return ErrModalOpen
	}
	v.selected = postID
	v.pushModal(ModalImage)
	return nil
}

// CloseImage closes the enlarged image
func (v *View) CloseImage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.popModal(ModalImage) {
		v.selected = ""
	}
}

// RequestDelete asks for confirmation before postID is deleted. Nothing is
// sent until ConfirmDelete.
func (v *View) RequestDelete(postID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.findPost(postID); !ok {
		return ErrUnknownPost
	}
	if !v.canStack() {
		return ErrModalOpen
	}
	v.deleteTarget = postID
	v.pushModal(ModalDelete)
	return nil
}

// CancelDelete dismisses the confirmation without a request
func (v *View) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.popModal(ModalDelete) {
		v.deleteTarget = ""
	}
}
