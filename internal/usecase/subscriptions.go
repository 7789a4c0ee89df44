package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// SubscriptionOptions tunes plan change behavior.
type SubscriptionOptions struct {
	// DowngradeCredit is booked to the ledger when a member moves to a
	// cheaper plan, compensating the already-paid difference.
	DowngradeCredit decimal.Decimal
	Currency        string
}

// SubscriptionUseCase manages membership plans.
type SubscriptionUseCase struct {
	subscriptions repository.SubscriptionRepository
	members       repository.MemberRepository
	opts          SubscriptionOptions
	logger        *slog.Logger
}

// NewSubscriptionUseCase constructs SubscriptionUseCase.
func NewSubscriptionUseCase(
	subscriptions repository.SubscriptionRepository,
	members repository.MemberRepository,
	opts SubscriptionOptions,
	logger *slog.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptions: subscriptions,
		members:       members,
		opts:          opts,
		logger:        logger,
	}
}

// ChangePlan moves the member to a new plan. A downgrade additionally
// books a compensation credit to the ledger.
func (u *SubscriptionUseCase) ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType) (*model.Subscription, error) {
	if !plan.Valid() {
		return nil, domainErrors.ErrInvalidField
	}

	m, err := u.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// The credit rides in the same transaction as the plan change so a
	// failed booking never leaves a downgraded member uncompensated.
	var credit *repository.PlanCredit
	if plan.Rank() < m.MembershipType.Rank() && u.opts.DowngradeCredit.IsPositive() {
		credit = &repository.PlanCredit{
			Amount:   u.opts.DowngradeCredit,
			Currency: u.opts.Currency,
			Note:     "plan downgrade " + string(m.MembershipType) + " to " + string(plan),
		}
	}

	sub, err := u.subscriptions.ChangePlan(ctx, memberID, plan, credit)
	if err != nil {
		if credit != nil {
			u.logger.Error("plan change with downgrade credit failed",
				slog.Int64("member_id", memberID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	return sub, nil
}

// Get returns the member's subscription.
func (u *SubscriptionUseCase) Get(ctx context.Context, memberID int64) (*model.Subscription, error) {
	return u.subscriptions.GetByMember(ctx, memberID)
}
