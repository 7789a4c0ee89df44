package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// LedgerRepository manages the append-only payment/refund/credit ledger.
type LedgerRepository interface {
	// RecordPayment and RecordCredit append unconditionally.
	RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference, note string) (*model.LedgerEntry, error)
	RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, currency, note, reference string) (*model.LedgerEntry, error)
	// RecordRefund appends only while total refunds stay within captured
	// payments for the member, checked in the same transaction.
	RecordRefund(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference string) (*model.LedgerEntry, error)
	List(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error)
	MemberTotals(ctx context.Context, memberID int64) (*model.LedgerTotals, error)
	ListBatch(ctx context.Context, offset, limit int) ([]model.LedgerEntry, error)
}
