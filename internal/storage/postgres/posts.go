package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type postRepository struct {
	storage *Storage
}

const postColumns = `id, author_id, title, slug, body, state, revision, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Body, &p.State,
		&p.Revision, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Create(ctx context.Context, authorID int64, title, slug, body string) (*model.Post, error) {
	const query = `INSERT INTO posts (author_id, title, slug, body) VALUES ($1, $2, $3, $4)
                   RETURNING ` + postColumns
	post, err := scanPost(r.storage.pool.QueryRow(ctx, query, authorID, title, slug, body))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id=$1`
	return scanPost(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *postRepository) List(ctx context.Context, state *model.PostState) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	var args []any
	if state != nil {
		query += ` WHERE state=$1`
		args = append(args, *state)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Body, &p.State,
			&p.Revision, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postRepository) SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	const query = `UPDATE posts
                   SET title=$1, body=$2, revision=revision+1, updated_at=NOW()
                   WHERE id=$3 AND revision=$4
                   RETURNING ` + postColumns
	post, err := scanPost(r.storage.pool.QueryRow(ctx, query, draft.Title, draft.Body, id, draft.Revision))
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	// No row matched: either the post is gone or the revision is stale.
	// Return the current copy alongside the conflict so the editor can
	// reconcile.
	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return current, domainErrors.ErrRevisionConflict
}

func (r *postRepository) Publish(ctx context.Context, id int64) (*model.Post, error) {
	const query = `UPDATE posts
                   SET state='published', published_at=NOW(), revision=revision+1, updated_at=NOW()
                   WHERE id=$1 AND state='draft'
                   RETURNING ` + postColumns
	post, err := scanPost(r.storage.pool.QueryRow(ctx, query, id))
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domainErrors.ErrInvalidStateTransition
}

func (r *postRepository) Unpublish(ctx context.Context, id int64) (*model.Post, error) {
	const query = `UPDATE posts
                   SET state='draft', published_at=NULL, revision=revision+1, updated_at=NOW()
                   WHERE id=$1 AND state='published'
                   RETURNING ` + postColumns
	post, err := scanPost(r.storage.pool.QueryRow(ctx, query, id))
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domainErrors.ErrInvalidStateTransition
}
