package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// ExportJobResponse is the wire form of one queued export.
type ExportJobResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Fields      []string   `json:"fields"`
	Status      string     `json:"status"`
	Progress    int64      `json:"progress"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	DownloadURL string     `json:"download_url,omitempty"`
}

// NewExportJobResponse maps an export job onto the wire form.
func NewExportJobResponse(job *model.ExportJob, downloadURL string) ExportJobResponse {
	return ExportJobResponse{
		ID:          job.ID.String(),
		Kind:        string(job.Kind),
		Fields:      job.Fields,
		Status:      string(job.Status),
		Progress:    job.Progress,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		FinishedAt:  job.FinishedAt,
		DownloadURL: downloadURL,
	}
}

// CreateExportRequest queues a CSV export.
type CreateExportRequest struct {
	Kind   string   `json:"kind"`
	Fields []string `json:"fields"`
}
