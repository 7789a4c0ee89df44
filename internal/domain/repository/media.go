package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// MediaRepository describes persistence operations for gallery images.
type MediaRepository interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error)
	// ListAfter returns up to limit images older than the cursor position
	// ordered by (created_at desc, id desc). A zero time means start.
	ListAfter(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]model.Image, error)
	MarkUploaded(ctx context.Context, id uuid.UUID) error
	SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey string) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClaimPending returns uploaded images still awaiting a thumbnail
	// and moves them to the processing state in the same transaction,
	// so neither a concurrent instance nor a later tick claims them twice.
	ClaimPending(ctx context.Context, limit int) ([]model.Image, error)
}
