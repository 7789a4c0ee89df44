package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus describes the reimbursement workflow.
type ExpenseStatus string

const (
	ExpenseSubmitted ExpenseStatus = "submitted"
	ExpenseApproved  ExpenseStatus = "approved"
	ExpenseRejected  ExpenseStatus = "rejected"
	ExpensePaid      ExpenseStatus = "paid"
)

// ExpenseReport is a reimbursement request with the payout bank account.
type ExpenseReport struct {
	ID            int64
	MemberID      int64
	Description   string
	Amount        decimal.Decimal
	IBAN          string
	AccountHolder string
	ReceiptKey    string
	Status        ExpenseStatus
	SubmittedAt   time.Time
	DecidedAt     *time.Time
	DecidedBy     *int64
	DecisionNote  string
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	MemberID *int64
	Status   *ExpenseStatus
}
