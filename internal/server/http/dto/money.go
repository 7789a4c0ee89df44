package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// LedgerEntryResponse is the wire form of one money movement. Amounts
// travel as decimal strings to keep cents exact.
type LedgerEntryResponse struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Reference   string    `json:"reference,omitempty"`
	Note        string    `json:"note,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// NewLedgerEntryResponse maps a ledger entry onto the wire form.
func NewLedgerEntryResponse(e *model.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		MemberID:    e.MemberID,
		Kind:        string(e.Kind),
		Amount:      e.Amount.StringFixed(2),
		Currency:    e.Currency,
		Reference:   e.Reference,
		Note:        e.Note,
		ProcessedAt: e.ProcessedAt,
	}
}

// TotalsResponse aggregates a ledger window.
type TotalsResponse struct {
	Paid     string `json:"paid"`
	Refunded string `json:"refunded"`
	Credited string `json:"credited"`
	Net      string `json:"net"`
}

// NewTotalsResponse maps ledger totals onto the wire form.
func NewTotalsResponse(t *model.LedgerTotals) TotalsResponse {
	return TotalsResponse{
		Paid:     t.Paid.StringFixed(2),
		Refunded: t.Refunded.StringFixed(2),
		Credited: t.Credited.StringFixed(2),
		Net:      t.Net().StringFixed(2),
	}
}

// LedgerListResponse is one ledger page with window totals.
type LedgerListResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Totals  TotalsResponse        `json:"totals"`
}

// PaymentRequest books an incoming payment.
type PaymentRequest struct {
	MemberID  int64  `json:"member_id"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

// RefundRequest sends money back to a member.
type RefundRequest struct {
	MemberID  int64  `json:"member_id"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

// CreditRequest books a manual adjustment.
type CreditRequest struct {
	MemberID int64  `json:"member_id"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}
