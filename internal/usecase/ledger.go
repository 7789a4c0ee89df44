package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/adapter/payment"
	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// LedgerUseCase manages the money ledger and talks to the payment
// processor for refunds.
type LedgerUseCase struct {
	ledger    repository.LedgerRepository
	members   repository.MemberRepository
	processor payment.Client
	currency  string
	logger    *slog.Logger
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(
	ledger repository.LedgerRepository,
	members repository.MemberRepository,
	processor payment.Client,
	currency string,
	logger *slog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{ledger: ledger, members: members, processor: processor, currency: currency, logger: logger}
}

// List returns ledger entries plus totals for the filtered window.
func (u *LedgerUseCase) List(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	if filter.Kind != nil && !filter.Kind.Valid() {
		return nil, nil, domainErrors.ErrInvalidField
	}
	return u.ledger.List(ctx, filter)
}

// RecordPayment books an incoming payment.
func (u *LedgerUseCase) RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, reference, note string) (*model.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if _, err := u.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return u.ledger.RecordPayment(ctx, memberID, amount, u.currency, reference, note)
}

// RecordCredit books a manual balance adjustment.
func (u *LedgerUseCase) RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, note string) (*model.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if _, err := u.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return u.ledger.RecordCredit(ctx, memberID, amount, u.currency, note, "")
}

// Refund captures the refund at the processor and then books it. The
// cap against captured payments is checked twice: a cheap pre-check
// before talking to the processor, and the authoritative transactional
// check when the entry is recorded.
func (u *LedgerUseCase) Refund(ctx context.Context, memberID int64, amount decimal.Decimal, reference string) (*model.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if _, err := u.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	totals, err := u.ledger.MemberTotals(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if totals.Refunded.Add(amount).GreaterThan(totals.Paid) {
		return nil, domainErrors.ErrRefundExceedsPayments
	}

	receipt, err := u.processor.CaptureRefund(ctx, payment.RefundRequest{
		MemberID:  memberID,
		Amount:    amount,
		Currency:  u.currency,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	entry, err := u.ledger.RecordRefund(ctx, memberID, amount, u.currency, reference)
	if err != nil {
		// The processor already moved the money. Loud log so the
		// books can be reconciled by hand.
		u.logger.Error("refund captured but not recorded",
			slog.Int64("member_id", memberID),
			slog.String("amount", amount.String()),
			slog.String("receipt_id", receipt.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return entry, nil
}

// MemberSummary returns paid/refunded/credited totals for one member.
func (u *LedgerUseCase) MemberSummary(ctx context.Context, memberID int64) (*model.LedgerTotals, error) {
	if _, err := u.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return u.ledger.MemberTotals(ctx, memberID)
}
