package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
)

// MemberDetail bundles a member with the related records the detail
// page shows alongside.
type MemberDetail struct {
	Member       *model.Member
	Subscription *model.Subscription
	Totals       *model.LedgerTotals
}

// MemberUseCase manages the membership roster.
type MemberUseCase struct {
	members       repository.MemberRepository
	subscriptions repository.SubscriptionRepository
	ledger        repository.LedgerRepository
	hasher        pkgAuth.PasswordHasher
}

// NewMemberUseCase constructs MemberUseCase.
func NewMemberUseCase(
	members repository.MemberRepository,
	subscriptions repository.SubscriptionRepository,
	ledger repository.LedgerRepository,
	hasher pkgAuth.PasswordHasher,
) *MemberUseCase {
	return &MemberUseCase{members: members, subscriptions: subscriptions, ledger: ledger, hasher: hasher}
}

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// List returns a roster page plus the total match count.
func (u *MemberUseCase) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	return u.members.List(ctx, filter)
}

// Create registers a new member in pending state.
func (u *MemberUseCase) Create(ctx context.Context, email, name, password string, role model.Role, membership model.MembershipType) (*model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if !membership.Valid() {
		membership = model.MembershipRegular
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return u.members.Create(ctx, &model.Member{
		Email:          email,
		Name:           name,
		PasswordHash:   hash,
		Role:           role,
		State:          model.MemberStatePending,
		MembershipType: membership,
	})
}

// Get returns the member together with subscription and balance totals.
func (u *MemberUseCase) Get(ctx context.Context, id int64) (*MemberDetail, error) {
	m, err := u.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &MemberDetail{Member: m}

	sub, err := u.subscriptions.GetByMember(ctx, id)
	switch {
	case err == nil:
		detail.Subscription = sub
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}

	totals, err := u.ledger.MemberTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Totals = totals

	return detail, nil
}

// Update applies a partial change. A state change must follow the
// membership lifecycle or the whole patch is rejected.
func (u *MemberUseCase) Update(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error) {
	if patch.State != nil {
		current, err := u.members.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if *patch.State != current.State && !current.State.CanTransitionTo(*patch.State) {
			return nil, domainErrors.ErrInvalidStateTransition
		}
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, domainErrors.ErrInvalidField
	}
	if patch.MembershipType != nil && !patch.MembershipType.Valid() {
		return nil, domainErrors.ErrInvalidField
	}
	return u.members.Update(ctx, id, patch)
}
