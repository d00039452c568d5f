package api

import (
	"bytes"

	json "github.com/json-iterator/go"
)

// UnknownUser is shown when a comment's author record is missing
const UnknownUser = "Unknown User"

// Profile is a user's public profile
type Profile struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Photo    string `json:"photo"`
}

// Location joins city and country, skipping empty parts
func (p Profile) Location() string {
	switch {
	case p.City != "" && p.Country != "":
		return p.City + ", " + p.Country
	case p.City != "":
		return p.City
	default:
		return p.Country
	}
}

// UserRef is a reference to a user that the API sends either as a bare id
// string or as an embedded user object.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
}

// UnmarshalJSON accepts "id" and {"_id": ..., "username": ...}
func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &u.ID)
	}

	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UserRef(p)
	return nil
}

// Post is an image post
type Post struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	LikedBy     []string `json:"likedBy"`
	User        *UserRef `json:"user,omitempty"`
}

// IsLikedBy reports whether userID is in the post's liker set
func (p Post) IsLikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// OwnerID returns the id of the post's owner, empty when absent
func (p Post) OwnerID() string {
	if p.User == nil {
		return ""
	}
	return p.User.ID
}

// Repost is the viewer's reference to another post
type Repost struct {
	ID       string `json:"_id"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

// Comment is a single comment on a post
type Comment struct {
	ID      string   `json:"_id"`
	Comment string   `json:"comment"`
	MadeBy  *UserRef `json:"madeBy"`
}

// AuthorName is the author's username, or UnknownUser when it was not resolved
func (c Comment) AuthorName() string {
	if c.MadeBy == nil || c.MadeBy.Username == "" {
		return UnknownUser
	}
	return c.MadeBy.Username
}

// CreateCommentRequest is the body of a comment submission
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

// ErrorResponse is the error body the API sends on failure
type ErrorResponse struct {
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
