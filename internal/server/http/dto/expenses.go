package dto

import (
	"time"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// ExpenseResponse is the wire form of one reimbursement request.
type ExpenseResponse struct {
	ID            int64      `json:"id"`
	MemberID      int64      `json:"member_id"`
	Description   string     `json:"description"`
	Amount        string     `json:"amount"`
	IBAN          string     `json:"iban"`
	AccountHolder string     `json:"account_holder"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	DecisionNote  string     `json:"decision_note,omitempty"`
}

// NewExpenseResponse maps an expense report onto the wire form.
func NewExpenseResponse(r *model.ExpenseReport) ExpenseResponse {
	return ExpenseResponse{
		ID:            r.ID,
		MemberID:      r.MemberID,
		Description:   r.Description,
		Amount:        r.Amount.StringFixed(2),
		IBAN:          r.IBAN,
		AccountHolder: r.AccountHolder,
		Status:        string(r.Status),
		SubmittedAt:   r.SubmittedAt,
		DecidedAt:     r.DecidedAt,
		DecisionNote:  r.DecisionNote,
	}
}

// SubmitExpenseRequest files a new reimbursement.
type SubmitExpenseRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	IBAN          string `json:"iban"`
	AccountHolder string `json:"account_holder"`
	ReceiptKey    string `json:"receipt_key"`
}

// DecideExpenseRequest approves or rejects with an optional note.
type DecideExpenseRequest struct {
	Note string `json:"note"`
}
