// Package formatter renders profile screen data through the output printer
package formatter

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/output"
	"github.com/snapshare/cli/pkg/profileview"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

// Like markers
const (
	Liked    = "♥"
	NotLiked = "♡"
)

// Formatter turns API objects into printer calls
type Formatter struct {
	p          *output.Printer
	uploadsURL string
}

// New creates a formatter. uploadsURL resolves post image filenames.
func New(p *output.Printer, uploadsURL string) *Formatter {
	return &Formatter{p: p, uploadsURL: uploadsURL}
}

// Printer returns the underlying printer
func (f *Formatter) Printer() *output.Printer {
	return f.p
}

// LikeMarker is the heart shown next to a post
func LikeMarker(liked bool) string {
	if liked {
		return Liked
	}
	return NotLiked
}

// Profile prints a user's profile card
func (f *Formatter) Profile(p *api.Profile) error {
	return f.p.Record("Profile", p, []output.Field{
		{Key: "ID", Value: p.ID},
		{Key: "Username", Value: p.Username},
		{Key: "Email", Value: p.Email},
		{Key: "Bio", Value: p.Bio},
		{Key: "Location", Value: p.Location()},
		{Key: "Photo", Value: p.Photo},
	})
}

// Posts prints the post list with the viewer's like state
func (f *Formatter) Posts(posts []api.Post, viewerID string) error {
	rows := make([][]string, 0, len(posts))
	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		liked := p.IsLikedBy(viewerID)
		image := api.ImageURL(f.uploadsURL, p.ImageURL)
		rows = append(rows, []string{
			p.ID, p.Title, LikeMarker(liked), strconv.Itoa(len(p.LikedBy)), image,
		})
		line := fmt.Sprintf("%s %s  %s (%d)  [%s]", LikeMarker(liked), p.Title, p.Description, len(p.LikedBy), p.ID)
		if image != "" {
			line += "\n    " + image
		}
		lines = append(lines, line)
	}
	if posts == nil {
		posts = []api.Post{}
	}
	return f.p.List(posts, []string{"ID", "Title", "Liked", "Likes", "Image"}, rows, lines, profileview.NoPosts)
}

// Reposts prints the viewer's reposts
func (f *Formatter) Reposts(reposts []api.Repost) error {
	rows := make([][]string, 0, len(reposts))
	lines := make([]string, 0, len(reposts))
	for _, r := range reposts {
		image := api.ImageURL(f.uploadsURL, r.ImageURL)
		rows = append(rows, []string{r.ID, r.Caption, image})
		lines = append(lines, fmt.Sprintf("%s  [%s]\n    %s", r.Caption, r.ID, image))
	}
	if reposts == nil {
		reposts = []api.Repost{}
	}
	return f.p.List(reposts, []string{"ID", "Caption", "Image"}, rows, lines, profileview.NoReposts)
}

// Comments prints a comment thread
func (f *Formatter) Comments(comments []api.Comment) error {
	rows := make([][]string, 0, len(comments))
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{c.ID, c.AuthorName(), c.Comment})
		lines = append(lines, Bold.Sprint(c.AuthorName())+": "+c.Comment)
	}
	if comments == nil {
		comments = []api.Comment{}
	}
	return f.p.List(comments, []string{"ID", "Author", "Comment"}, rows, lines, profileview.NoComments)
}

// Comment prints one created comment
func (f *Formatter) Comment(c *api.Comment) error {
	return f.p.Record("Comment", c, []output.Field{
		{Key: "ID", Value: c.ID},
		{Key: "Author", Value: c.AuthorName()},
		{Key: "Comment", Value: c.Comment},
	})
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}
