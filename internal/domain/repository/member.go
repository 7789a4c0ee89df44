package repository

import (
	"context"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// MemberRepository describes persistence operations for members.
type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error)
	Update(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error)
	ListBatch(ctx context.Context, offset, limit int) ([]model.Member, error)
}
