package usecase

import (
	"context"
	"regexp"
	"strings"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// PostUseCase manages CMS posts and their autosave flow.
type PostUseCase struct {
	posts repository.PostRepository
}

// NewPostUseCase constructs PostUseCase.
func NewPostUseCase(posts repository.PostRepository) *PostUseCase {
	return &PostUseCase{posts: posts}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create opens a new draft for the author.
func (u *PostUseCase) Create(ctx context.Context, authorID int64, title, body string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainErrors.ErrInvalidField
	}
	return u.posts.Create(ctx, authorID, title, Slugify(title), body)
}

// Get fetches a post by identifier.
func (u *PostUseCase) Get(ctx context.Context, id int64) (*model.Post, error) {
	return u.posts.GetByID(ctx, id)
}

// List returns posts newest first, optionally filtered by state.
func (u *PostUseCase) List(ctx context.Context, state *model.PostState) ([]model.Post, error) {
	return u.posts.List(ctx, state)
}

// SaveDraft applies an autosave. The draft must echo the revision the
// editor last saw; a stale revision comes back as ErrRevisionConflict
// together with the current copy so the editor can merge.
func (u *PostUseCase) SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, domainErrors.ErrInvalidField
	}
	return u.posts.SaveDraft(ctx, id, draft)
}

// Publish makes a draft publicly visible.
func (u *PostUseCase) Publish(ctx context.Context, id int64) (*model.Post, error) {
	return u.posts.Publish(ctx, id)
}

// Unpublish takes a published post back to draft.
func (u *PostUseCase) Unpublish(ctx context.Context, id int64) (*model.Post, error) {
	return u.posts.Unpublish(ctx, id)
}
