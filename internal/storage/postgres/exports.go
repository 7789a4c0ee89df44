package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type exportRepository struct {
	storage *Storage
}

const exportColumns = `id, kind, fields, status, progress, object_key, error, requested_by, created_at, finished_at`

func scanExport(row pgx.Row) (*model.ExportJob, error) {
	var job model.ExportJob
	err := row.Scan(&job.ID, &job.Kind, &job.Fields, &job.Status, &job.Progress,
		&job.ObjectKey, &job.Error, &job.RequestedBy, &job.CreatedAt, &job.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *exportRepository) Create(ctx context.Context, job *model.ExportJob) (*model.ExportJob, error) {
	const query = `INSERT INTO export_jobs (id, kind, fields, requested_by)
                   VALUES ($1, $2, $3, $4)
                   RETURNING ` + exportColumns
	return scanExport(r.storage.pool.QueryRow(ctx, query, job.ID, job.Kind, job.Fields, job.RequestedBy))
}

func (r *exportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExportJob, error) {
	const query = `SELECT ` + exportColumns + ` FROM export_jobs WHERE id=$1`
	return scanExport(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *exportRepository) ClaimPending(ctx context.Context, limit int) ([]model.ExportJob, error) {
	const selectQuery = `SELECT ` + exportColumns + `
                         FROM export_jobs
                         WHERE status='pending'
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var jobs []model.ExportJob
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var job model.ExportJob
			if err := rows.Scan(&job.ID, &job.Kind, &job.Fields, &job.Status, &job.Progress,
				&job.ObjectKey, &job.Error, &job.RequestedBy, &job.CreatedAt, &job.FinishedAt); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE export_jobs SET status='running' WHERE id=$1`, job.ID); err != nil {
				return err
			}
			job.Status = model.ExportRunning
			jobs = append(jobs, job)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *exportRepository) SetProgress(ctx context.Context, id uuid.UUID, rows int64) error {
	const query = `UPDATE export_jobs SET progress=$1 WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, rows, id)
	return err
}

func (r *exportRepository) Finish(ctx context.Context, id uuid.UUID, objectKey string) error {
	const query = `UPDATE export_jobs SET status='done', object_key=$1, finished_at=NOW() WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, objectKey, id)
	return err
}

func (r *exportRepository) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	const query = `UPDATE export_jobs SET status='failed', error=$1, finished_at=NOW() WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, reason, id)
	return err
}
