package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// PlanCredit is a compensation ledger entry booked together with a plan
// change. A nil credit means the change is plain.
type PlanCredit struct {
	Amount   decimal.Decimal
	Currency string
	Note     string
}

// SubscriptionRepository manages per-member plan records.
type SubscriptionRepository interface {
	GetByMember(ctx context.Context, memberID int64) (*model.Subscription, error)
	// ChangePlan upserts the subscription, mirrors the plan onto the
	// member row, and books the credit when one is given. All of it
	// commits as one transaction or not at all.
	ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType, credit *PlanCredit) (*model.Subscription, error)
}
