package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// ExportStatus is a job snapshot with a download URL once finished.
type ExportStatus struct {
	Job         *model.ExportJob
	DownloadURL string
}

// ExportUseCase queues CSV export jobs and reports their progress. The
// actual file is produced by a background worker.
type ExportUseCase struct {
	exports    repository.ExportRepository
	store      objectstore.Store
	presignTTL time.Duration
}

// NewExportUseCase constructs ExportUseCase.
func NewExportUseCase(exports repository.ExportRepository, store objectstore.Store, presignTTL time.Duration) *ExportUseCase {
	return &ExportUseCase{exports: exports, store: store, presignTTL: presignTTL}
}

// Create queues a new export. Fields must come from the per-kind
// allow-list; an empty selection exports every allowed column.
func (u *ExportUseCase) Create(ctx context.Context, kind model.ExportKind, fields []string, requestedBy int64) (*model.ExportJob, error) {
	allowed, ok := model.ExportFields[kind]
	if !ok {
		return nil, domainErrors.ErrInvalidField
	}
	if len(fields) == 0 {
		fields = append([]string(nil), allowed...)
	}
	for _, f := range fields {
		if !model.ValidExportField(kind, f) {
			return nil, domainErrors.ErrInvalidField
		}
	}

	return u.exports.Create(ctx, &model.ExportJob{
		ID:          uuid.New(),
		Kind:        kind,
		Fields:      fields,
		Status:      model.ExportPending,
		RequestedBy: requestedBy,
	})
}

// Get returns the job and, once done, a presigned download URL.
func (u *ExportUseCase) Get(ctx context.Context, id uuid.UUID) (*ExportStatus, error) {
	job, err := u.exports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &ExportStatus{Job: job}
	if job.Status == model.ExportDone && job.ObjectKey != "" {
		status.DownloadURL, err = u.store.PresignGet(ctx, job.ObjectKey, u.presignTTL)
		if err != nil {
			return nil, err
		}
	}
	return status, nil
}
