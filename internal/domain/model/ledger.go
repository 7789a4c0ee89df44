package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies ledger entries.
type EntryKind string

const (
	EntryPayment EntryKind = "payment"
	EntryRefund  EntryKind = "refund"
	EntryCredit  EntryKind = "credit"
)

// Valid reports whether the value is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryPayment, EntryRefund, EntryCredit:
		return true
	}
	return false
}

// LedgerEntry is an immutable money movement. Amount is stored positive;
// the kind decides its sign in summaries.
type LedgerEntry struct {
	ID          int64
	MemberID    int64
	Kind        EntryKind
	Amount      decimal.Decimal
	Currency    string
	Reference   string
	Note        string
	ProcessedAt time.Time
}

// LedgerFilter narrows ledger listings.
type LedgerFilter struct {
	MemberID *int64
	Kind     *EntryKind
	From     *time.Time
	To       *time.Time
	Page     int
	PerPage  int
}

// LedgerTotals aggregates amounts for a filtered window or member.
type LedgerTotals struct {
	Paid     decimal.Decimal
	Refunded decimal.Decimal
	Credited decimal.Decimal
}

// Net returns paid - refunded + credited.
func (t LedgerTotals) Net() decimal.Decimal {
	return t.Paid.Sub(t.Refunded).Add(t.Credited)
}
