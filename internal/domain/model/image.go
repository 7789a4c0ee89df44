package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageState tracks upload and post-processing progress.
type ImageState string

const (
	ImageStatePending    ImageState = "pending"
	ImageStateProcessing ImageState = "processing"
	ImageStateReady      ImageState = "ready"
	ImageStateFailed     ImageState = "failed"
)

// Image is a gallery item stored in object storage. ThumbKey is empty
// until the thumbnailer has run.
type Image struct {
	ID          uuid.UUID
	Title       string
	ObjectKey   string
	ThumbKey    string
	ContentType string
	ByteSize    int64
	State       ImageState
	Uploaded    bool
	CreatedAt   time.Time
}

// ImagePage is one slice of the cursor-paginated gallery.
type ImagePage struct {
	Images     []Image
	NextCursor string
}
