package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// ExportRepository manages queued CSV export jobs.
type ExportRepository interface {
	Create(ctx context.Context, job *model.ExportJob) (*model.ExportJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ExportJob, error)
	// ClaimPending marks up to limit pending jobs running and returns
	// them, skipping jobs locked by concurrent claimers.
	ClaimPending(ctx context.Context, limit int) ([]model.ExportJob, error)
	SetProgress(ctx context.Context, id uuid.UUID, rows int64) error
	Finish(ctx context.Context, id uuid.UUID, objectKey string) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
}
