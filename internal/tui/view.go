package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/formatter"
	"github.com/snapshare/cli/pkg/profileview"
)

var (
	accent = lipgloss.Color("#E1306C")
	muted  = lipgloss.Color("241")

	spinnerStyle  = lipgloss.NewStyle().Foreground(accent)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	dangerStyle   = modalStyle.BorderForeground(lipgloss.Color("196"))
	commentAuthor = lipgloss.NewStyle().Bold(true)
)

// View renders the screen
func (m Model) View() string {
	s := m.view.Snapshot()
	var b strings.Builder

	if !s.Loaded {
		if s.Error != "" {
			b.WriteString(errorStyle.Render(s.Error) + "\n\n")
			b.WriteString(mutedStyle.Render("R retry · q quit") + "\n")
			return b.String()
		}
		return m.spinner.View() + " Loading profile...\n"
	}

	b.WriteString(m.header(s))
	b.WriteString("\n")
	if s.Error != "" {
		b.WriteString(errorStyle.Render(s.Error) + "\n")
	}
	b.WriteString(m.tabs(s) + "\n\n")

	if s.Tab == profileview.TabReposts {
		b.WriteString(m.reposts(s))
	} else {
		b.WriteString(m.posts(s))
	}

	for _, md := range s.Modals {
		b.WriteString("\n")
		switch md {
		case profileview.ModalImage:
			b.WriteString(m.imageModal(s))
		case profileview.ModalDelete:
			b.WriteString(dangerStyle.Render("Delete this post? This cannot be undone.\n\n" +
				mutedStyle.Render("y delete · n cancel")))
		case profileview.ModalComments:
			b.WriteString(m.commentsModal(s))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.busy > 0 {
		b.WriteString(m.spinner.View() + " ")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	if _, open := s.ActiveModal(); !open {
		b.WriteString(mutedStyle.Render("↑/↓ move · tab switch · enter image · l like · r repost · c comments · d delete · R refresh · q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) header(s profileview.State) string {
	p := s.Profile
	lines := []string{nameStyle.Render(p.Username)}
	if p.Bio != "" {
		lines = append(lines, p.Bio)
	}
	if loc := p.Location(); loc != "" {
		lines = append(lines, mutedStyle.Render(loc))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) tabs(s profileview.State) string {
	posts, reposts := inactiveTab, inactiveTab
	if s.Tab == profileview.TabReposts {
		reposts = activeTab
	} else {
		posts = activeTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		posts.Render(fmt.Sprintf("Posts (%d)", len(s.Posts))),
		reposts.Render(fmt.Sprintf("Reposts (%d)", len(s.Reposts))),
	)
}

func (m Model) posts(s profileview.State) string {
	if len(s.Posts) == 0 {
		return mutedStyle.Render(profileview.NoPosts) + "\n"
	}
	var b strings.Builder
	for i, p := range s.Posts {
		line := fmt.Sprintf("%s %s (%d)", formatter.LikeMarker(s.IsLiked(p)), p.Title, len(p.LikedBy))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if p.Description != "" {
			b.WriteString("    " + mutedStyle.Render(p.Description) + "\n")
		}
	}
	return b.String()
}

func (m Model) reposts(s profileview.State) string {
	if len(s.Reposts) == 0 {
		return mutedStyle.Render(profileview.NoReposts) + "\n"
	}
	var b strings.Builder
	for i, r := range s.Reposts {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		b.WriteString(prefix + r.Caption + "\n")
		if img := api.ImageURL(m.uploadsURL, r.ImageURL); img != "" {
			b.WriteString("    " + mutedStyle.Render(img) + "\n")
		}
	}
	return b.String()
}

func (m Model) imageModal(s profileview.State) string {
	p := s.Selected
	if p == nil {
		return ""
	}
	lines := []string{
		nameStyle.Render(p.Title),
		mutedStyle.Render(api.ImageURL(m.uploadsURL, p.ImageURL)),
	}
	if p.Description != "" {
		lines = append(lines, p.Description)
	}
	lines = append(lines,
		fmt.Sprintf("%s %d likes", formatter.LikeMarker(s.IsLiked(*p)), len(p.LikedBy)),
		"",
		mutedStyle.Render("l like · r repost · c comments · d delete · esc close"),
	)
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) commentsModal(s profileview.State) string {
	var lines []string
	lines = append(lines, nameStyle.Render("Comments"))
	if s.Thread == nil || len(s.Thread.Comments) == 0 {
		lines = append(lines, mutedStyle.Render(profileview.NoComments))
	} else {
		for _, c := range s.Thread.Comments {
			lines = append(lines, commentAuthor.Render(c.AuthorName())+": "+c.Comment)
		}
	}
	lines = append(lines, "", m.input.View(), mutedStyle.Render(helpLine(m.keys.Submit, m.keys.Close)))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

// helpLine joins the help text of bindings
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
