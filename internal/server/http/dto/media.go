package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// ImageResponse is the wire form of one gallery image.
type ImageResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ContentType string    `json:"content_type"`
	ByteSize    int64     `json:"byte_size"`
	State       string    `json:"state"`
	Uploaded    bool      `json:"uploaded"`
	CreatedAt   time.Time `json:"created_at"`
	URL         string    `json:"url,omitempty"`
	ThumbURL    string    `json:"thumb_url,omitempty"`
}

// NewImageResponse maps an image onto the wire form.
func NewImageResponse(img *model.Image) ImageResponse {
	return ImageResponse{
		ID:          img.ID.String(),
		Title:       img.Title,
		ContentType: img.ContentType,
		ByteSize:    img.ByteSize,
		State:       string(img.State),
		Uploaded:    img.Uploaded,
		CreatedAt:   img.CreatedAt,
	}
}

// RegisterUploadRequest announces an upcoming browser upload.
type RegisterUploadRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
}

// RegisterUploadResponse returns the created row and the URL the
// browser PUTs the original to.
type RegisterUploadResponse struct {
	Image     ImageResponse `json:"image"`
	UploadURL string        `json:"upload_url"`
}

// ImagePageResponse is one slice of the infinite scroll. NextCursor is
// empty on the last page.
type ImagePageResponse struct {
	Images     []ImageResponse `json:"images"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
