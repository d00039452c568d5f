// Package tui is the interactive profile screen
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/logger"
	"github.com/snapshare/cli/pkg/profileview"
)

// Operation names carried by opMsg
const (
	opLoad     = "load"
	opLike     = "like"
	opDelete   = "delete"
	opRepost   = "repost"
	opComments = "comments"
	opComment  = "comment"
)

// opMsg is sent when a view operation started by a key press returns
type opMsg struct {
	op  string
	err error
}

// Model is the bubbletea model for one profile
type Model struct {
	ctx        context.Context
	view       *profileview.View
	uploadsURL string
	keys       KeyMap
	spinner    spinner.Model
	input      textinput.Model
	cursor     int
	busy       int
	status     string
	width      int
	height     int
}

// New creates the screen for view. uploadsURL resolves image filenames.
func New(ctx context.Context, view *profileview.View, uploadsURL string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Placeholder = "Write a comment..."
	in.CharLimit = 500

	return Model{
		ctx:        ctx,
		view:       view,
		uploadsURL: uploadsURL,
		keys:       DefaultKeyMap(),
		spinner:    s,
		input:      in,
		busy:       1,
	}
}

// Run starts the screen and blocks until the user quits
func Run(ctx context.Context, view *profileview.View, uploadsURL string) error {
	p := tea.NewProgram(New(ctx, view, uploadsURL), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init loads the profile
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(opLoad, m.view.Load), m.spinner.Tick)
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opMsg{op: op, err: fn(ctx)}
	}
}

// start counts op as in flight and returns its command
func (m *Model) start(op string, fn func(context.Context) error) tea.Cmd {
	m.busy++
	m.status = ""
	return m.run(op, fn)
}

// Update handles messages for the profile screen
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opMsg:
		return m.finish(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		s := m.view.Snapshot()
		top, open := s.ActiveModal()
		if !open {
			return m.updateList(msg, s)
		}
		switch top {
		case profileview.ModalComments:
			return m.updateComments(msg)
		case profileview.ModalDelete:
			return m.updateDelete(msg)
		default:
			return m.updateImage(msg, s)
		}
	}
	return m, nil
}

func (m Model) finish(msg opMsg) (tea.Model, tea.Cmd) {
	if m.busy > 0 {
		m.busy--
	}

	var opErr *profileview.OpError
	switch {
	case msg.err == nil:
		m.status = doneText(msg.op)
	case errors.As(msg.err, &opErr):
		// the view already carries the message
		m.status = ""
	case errors.Is(msg.err, profileview.ErrInFlight):
		m.status = "Still working on that one."
	case errors.Is(msg.err, profileview.ErrModalOpen):
		m.status = "Close the open dialog first."
	default:
		logger.Debug("Operation failed", "op", msg.op, "error", msg.err)
		m.status = msg.err.Error()
	}

	m.clampCursor(m.view.Snapshot())

	if msg.err != nil {
		return m, nil
	}
	switch msg.op {
	case opComments:
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case opComment:
		m.input.Reset()
	}
	return m, nil
}

func doneText(op string) string {
	switch op {
	case opDelete:
		return "Post deleted."
	case opRepost:
		return "Reposted."
	case opComment:
		return "Comment added."
	}
	return ""
}

func (m Model) updateList(msg tea.KeyMsg, s profileview.State) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.itemCount(s)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Tab):
		if s.Tab == profileview.TabPosts {
			m.view.SelectTab(profileview.TabReposts)
		} else {
			m.view.SelectTab(profileview.TabPosts)
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.start(opLoad, m.view.Load)
		return m, cmd

	default:
		p, ok := m.current(s)
		if !ok {
			return m, nil
		}
		return m.postAction(msg, s, p)
	}
	return m, nil
}

// postAction handles the keys that act on one post, from the list or the
// image dialog
func (m Model) postAction(msg tea.KeyMsg, s profileview.State, p api.Post) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open) && !s.IsOpen(profileview.ModalImage):
		if err := m.view.OpenImage(p.ID); err != nil {
			m.status = err.Error()
		}

	case key.Matches(msg, m.keys.Like):
		liked := s.IsLiked(p)
		cmd := m.start(opLike, func(ctx context.Context) error {
			return m.view.ToggleLike(ctx, p.ID, liked)
		})
		return m, cmd

	case key.Matches(msg, m.keys.Repost):
		cmd := m.start(opRepost, func(ctx context.Context) error {
			return m.view.Repost(ctx, p.ID)
		})
		return m, cmd

	case key.Matches(msg, m.keys.Comments):
		cmd := m.start(opComments, func(ctx context.Context) error {
			return m.view.OpenComments(ctx, p.ID)
		})
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if p.OwnerID() != "" && p.OwnerID() != s.ViewerID {
			m.status = "You can only delete your own posts."
			return m, nil
		}
		if err := m.view.RequestDelete(p.ID); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m Model) updateImage(msg tea.KeyMsg, s profileview.State) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
		m.view.CloseImage()
		return m, nil
	}
	if s.Selected == nil {
		return m, nil
	}
	return m.postAction(msg, s, *s.Selected)
}

func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.start(opDelete, m.view.ConfirmDelete)
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		m.view.CancelDelete()
	}
	return m, nil
}

func (m Model) updateComments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// typed letters belong to the input, so only these two bindings apply
	switch {
	case key.Matches(msg, m.keys.Close):
		m.view.CloseComments()
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.input.Value() == "" {
			return m, nil
		}
		m.view.SetDraft(m.input.Value())
		cmd := m.start(opComment, m.view.SubmitComment)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) itemCount(s profileview.State) int {
	if s.Tab == profileview.TabReposts {
		return len(s.Reposts)
	}
	return len(s.Posts)
}

// current is the post under the cursor. Reposts have no actions.
func (m Model) current(s profileview.State) (api.Post, bool) {
	if s.Tab != profileview.TabPosts || m.cursor >= len(s.Posts) {
		return api.Post{}, false
	}
	return s.Posts[m.cursor], true
}

func (m *Model) clampCursor(s profileview.State) {
	if n := m.itemCount(s); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
