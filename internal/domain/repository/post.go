package repository

import (
	"context"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// PostRepository describes persistence operations for CMS posts.
type PostRepository interface {
	Create(ctx context.Context, authorID int64, title, slug, body string) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, state *model.PostState) ([]model.Post, error)
	// SaveDraft applies an autosave guarded by revision; a stale revision
	// returns ErrRevisionConflict together with the current post.
	SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error)
	Publish(ctx context.Context, id int64) (*model.Post, error)
	Unpublish(ctx context.Context, id int64) (*model.Post, error)
}
