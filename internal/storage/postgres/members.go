package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type memberRepository struct {
	storage *Storage
}

const memberColumns = `id, email, name, password_hash, role, state, board_position, membership_type, joined_at, created_at, updated_at`

func scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.Email, &m.Name, &m.PasswordHash, &m.Role, &m.State,
		&m.BoardPosition, &m.MembershipType, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	const query = `INSERT INTO members (email, name, password_hash, role, state, board_position, membership_type, joined_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
                   RETURNING ` + memberColumns
	row := r.storage.pool.QueryRow(ctx, query,
		m.Email, m.Name, m.PasswordHash, m.Role, m.State, m.BoardPosition, m.MembershipType)
	created, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE email=$1`
	return scanMember(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE id=$1`
	return scanMember(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *memberRepository) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	where, args := buildMemberWhere(filter)

	countQuery := `SELECT COUNT(*) FROM members` + where
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	listQuery := `SELECT ` + memberColumns + ` FROM members` + where +
		fmt.Sprintf(` ORDER BY joined_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.PasswordHash, &m.Role, &m.State,
			&m.BoardPosition, &m.MembershipType, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func buildMemberWhere(filter model.MemberFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		add(`(name ILIKE $%[1]d OR email ILIKE $%[1]d)`, "%"+q+"%")
	}
	if len(filter.States) > 0 {
		add(`state = ANY($%d)`, enumStrings(filter.States))
	}
	if len(filter.Roles) > 0 {
		add(`role = ANY($%d)`, enumStrings(filter.Roles))
	}
	if len(filter.BoardPositions) > 0 {
		add(`board_position = ANY($%d)`, filter.BoardPositions)
	}
	if len(filter.MembershipTypes) > 0 {
		add(`membership_type = ANY($%d)`, enumStrings(filter.MembershipTypes))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (r *memberRepository) Update(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Role != nil {
		set("role", *patch.Role)
	}
	if patch.State != nil {
		set("state", *patch.State)
	}
	if patch.BoardPosition != nil {
		set("board_position", *patch.BoardPosition)
	} else if patch.ClearBoard {
		sets = append(sets, "board_position=NULL")
	}
	if patch.MembershipType != nil {
		set("membership_type", *patch.MembershipType)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE members SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), memberColumns)

	return scanMember(r.storage.pool.QueryRow(ctx, query, args...))
}

func (r *memberRepository) ListBatch(ctx context.Context, offset, limit int) ([]model.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.storage.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.PasswordHash, &m.Role, &m.State,
			&m.BoardPosition, &m.MembershipType, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
