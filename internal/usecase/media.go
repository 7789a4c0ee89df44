package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// MediaOptions tunes the gallery upload flow.
type MediaOptions struct {
	PresignTTL     time.Duration
	MaxUploadBytes int64
}

// PendingUpload is the result of registering a new image: the row plus
// the URL the browser PUTs the bytes to.
type PendingUpload struct {
	Image     *model.Image
	UploadURL string
}

// ImageDetail carries an image with time-limited download URLs.
type ImageDetail struct {
	Image    *model.Image
	URL      string
	ThumbURL string
}

// Only formats the thumbnailer can decode are accepted at upload time.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

const defaultGalleryLimit = 24
const maxGalleryLimit = 100

// MediaUseCase manages the gallery backed by object storage.
type MediaUseCase struct {
	media  repository.MediaRepository
	store  objectstore.Store
	opts   MediaOptions
	logger *slog.Logger
}

// NewMediaUseCase constructs MediaUseCase.
func NewMediaUseCase(media repository.MediaRepository, store objectstore.Store, opts MediaOptions, logger *slog.Logger) *MediaUseCase {
	return &MediaUseCase{media: media, store: store, opts: opts, logger: logger}
}

// RegisterUpload creates a pending image row and presigns the PUT URL
// the client uploads the original to.
func (u *MediaUseCase) RegisterUpload(ctx context.Context, title, contentType string, byteSize int64) (*PendingUpload, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, domainErrors.ErrUnsupportedMedia
	}
	if byteSize <= 0 || byteSize > u.opts.MaxUploadBytes {
		return nil, domainErrors.ErrUnsupportedMedia
	}

	id := uuid.New()
	img, err := u.media.Create(ctx, &model.Image{
		ID:          id,
		Title:       strings.TrimSpace(title),
		ObjectKey:   fmt.Sprintf("media/%s/original.%s", id, ext),
		ContentType: contentType,
		ByteSize:    byteSize,
		State:       model.ImageStatePending,
	})
	if err != nil {
		return nil, err
	}

	uploadURL, err := u.store.PresignPut(ctx, img.ObjectKey, u.opts.PresignTTL)
	if err != nil {
		return nil, err
	}
	return &PendingUpload{Image: img, UploadURL: uploadURL}, nil
}

// CompleteUpload marks the original as uploaded so the thumbnailer
// picks the image up.
func (u *MediaUseCase) CompleteUpload(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	if err := u.media.MarkUploaded(ctx, id); err != nil {
		return nil, err
	}
	return u.media.GetByID(ctx, id)
}

// List returns one gallery page. An empty cursor starts from the
// newest image; the returned cursor is empty on the last page.
func (u *MediaUseCase) List(ctx context.Context, cursor string, limit int) (*model.ImagePage, error) {
	if limit < 1 {
		limit = defaultGalleryLimit
	}
	if limit > maxGalleryLimit {
		limit = maxGalleryLimit
	}

	var before time.Time
	var beforeID uuid.UUID
	if cursor != "" {
		var err error
		before, beforeID, err = DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
	}

	// Fetch one extra row to learn whether another page exists.
	images, err := u.media.ListAfter(ctx, before, beforeID, limit+1)
	if err != nil {
		return nil, err
	}

	page := &model.ImagePage{Images: images}
	if len(images) > limit {
		page.Images = images[:limit]
		last := page.Images[limit-1]
		page.NextCursor = EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

// Get returns the image with presigned download URLs.
func (u *MediaUseCase) Get(ctx context.Context, id uuid.UUID) (*ImageDetail, error) {
	img, err := u.media.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ImageDetail{Image: img}
	if img.Uploaded {
		detail.URL, err = u.store.PresignGet(ctx, img.ObjectKey, u.opts.PresignTTL)
		if err != nil {
			return nil, err
		}
	}
	if img.ThumbKey != "" {
		detail.ThumbURL, err = u.store.PresignGet(ctx, img.ThumbKey, u.opts.PresignTTL)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// Delete removes the row and both stored objects. Missing objects are
// logged and skipped so a half-uploaded image can still be deleted.
func (u *MediaUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := u.media.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.media.Delete(ctx, id); err != nil {
		return err
	}

	for _, key := range []string{img.ObjectKey, img.ThumbKey} {
		if key == "" {
			continue
		}
		if err := u.store.Remove(ctx, key); err != nil {
			u.logger.Warn("object removal failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
