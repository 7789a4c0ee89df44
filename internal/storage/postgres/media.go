package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type mediaRepository struct {
	storage *Storage
}

const imageColumns = `id, title, object_key, thumb_key, content_type, byte_size, state, uploaded, created_at`

func scanImage(row pgx.Row) (*model.Image, error) {
	var img model.Image
	err := row.Scan(&img.ID, &img.Title, &img.ObjectKey, &img.ThumbKey, &img.ContentType,
		&img.ByteSize, &img.State, &img.Uploaded, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *mediaRepository) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	const query = `INSERT INTO images (id, title, object_key, content_type, byte_size, state)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + imageColumns
	return scanImage(r.storage.pool.QueryRow(ctx, query,
		img.ID, img.Title, img.ObjectKey, img.ContentType, img.ByteSize, model.ImageStatePending))
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	const query = `SELECT ` + imageColumns + ` FROM images WHERE id=$1`
	return scanImage(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *mediaRepository) ListAfter(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images`
	var args []any
	if !before.IsZero() {
		query += ` WHERE (created_at, id) < ($1, $2)`
		args = append(args, before, beforeID)
	}
	if len(args) == 0 {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $1`
		args = append(args, limit)
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.Title, &img.ObjectKey, &img.ThumbKey, &img.ContentType,
			&img.ByteSize, &img.State, &img.Uploaded, &img.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mediaRepository) MarkUploaded(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE images SET uploaded=TRUE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *mediaRepository) SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey string) error {
	const query = `UPDATE images SET thumb_key=$1, state='ready' WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, thumbKey, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *mediaRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE images SET state='failed' WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM images WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *mediaRepository) ClaimPending(ctx context.Context, limit int) ([]model.Image, error) {
	const selectQuery = `SELECT ` + imageColumns + `
                         FROM images
                         WHERE state='pending' AND uploaded=TRUE
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var images []model.Image
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var img model.Image
			if err := rows.Scan(&img.ID, &img.Title, &img.ObjectKey, &img.ThumbKey, &img.ContentType,
				&img.ByteSize, &img.State, &img.Uploaded, &img.CreatedAt); err != nil {
				return err
			}
			images = append(images, img)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		// Flip the claim before the locks go away with the commit, so a
		// concurrent instance or the next tick never picks these up again.
		for i := range images {
			if _, err := tx.Exec(ctx, `UPDATE images SET state='processing' WHERE id=$1`, images[i].ID); err != nil {
				return err
			}
			images[i].State = model.ImageStateProcessing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}
