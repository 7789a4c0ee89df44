package model

import "time"

// PostState describes editorial lifecycle.
type PostState string

const (
	PostStateDraft     PostState = "draft"
	PostStatePublished PostState = "published"
)

// Post is a blog/CMS entry. Revision increments on every saved draft and
// guards concurrent editors: a save must echo the revision it last saw.
type Post struct {
	ID          int64
	AuthorID    int64
	Title       string
	Slug        string
	Body        string
	State       PostState
	Revision    int64
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostDraft is the payload of an autosave.
type PostDraft struct {
	Title    string
	Body     string
	Revision int64
}
