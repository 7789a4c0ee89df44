package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// PostResponse is the wire form of one CMS post.
type PostResponse struct {
	ID          int64      `json:"id"`
	AuthorID    int64      `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body"`
	State       string     `json:"state"`
	Revision    int64      `json:"revision"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewPostResponse maps a post onto the wire form.
func NewPostResponse(p *model.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Slug:        p.Slug,
		Body:        p.Body,
		State:       string(p.State),
		Revision:    p.Revision,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreatePostRequest opens a new draft.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SaveDraftRequest is the autosave payload. Revision must echo the
// value the editor last received.
type SaveDraftRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Revision int64  `json:"revision"`
}

// DraftConflictResponse accompanies a 409: the server-side copy the
// editor needs to merge against.
type DraftConflictResponse struct {
	Error   string       `json:"error"`
	Current PostResponse `json:"current"`
}
