package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// ExpenseUseCase manages the reimbursement workflow.
type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
	currency string
}

// NewExpenseUseCase constructs ExpenseUseCase.
func NewExpenseUseCase(expenses repository.ExpenseRepository, currency string) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, currency: currency}
}

// Submit files a new reimbursement request.
func (u *ExpenseUseCase) Submit(ctx context.Context, memberID int64, description string, amount decimal.Decimal, iban, accountHolder, receiptKey string) (*model.ExpenseReport, error) {
	description = strings.TrimSpace(description)
	accountHolder = strings.TrimSpace(accountHolder)
	if description == "" || accountHolder == "" {
		return nil, domainErrors.ErrInvalidField
	}
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if !ValidateIBAN(iban) {
		return nil, domainErrors.ErrInvalidIBAN
	}

	return u.expenses.Create(ctx, &model.ExpenseReport{
		MemberID:      memberID,
		Description:   description,
		Amount:        amount,
		IBAN:          strings.ToUpper(strings.ReplaceAll(iban, " ", "")),
		AccountHolder: accountHolder,
		ReceiptKey:    receiptKey,
		Status:        model.ExpenseSubmitted,
	})
}

// List returns reports visible to the caller. Non-staff see only their
// own; staff may filter by member and status.
func (u *ExpenseUseCase) List(ctx context.Context, callerID int64, callerRole model.Role, filter model.ExpenseFilter) ([]model.ExpenseReport, error) {
	if !callerRole.CanManage() {
		filter.MemberID = &callerID
	}
	return u.expenses.List(ctx, filter)
}

// Get returns one report, restricted to its owner for non-staff.
func (u *ExpenseUseCase) Get(ctx context.Context, id, callerID int64, callerRole model.Role) (*model.ExpenseReport, error) {
	report, err := u.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !callerRole.CanManage() && report.MemberID != callerID {
		return nil, domainErrors.ErrForbidden
	}
	return report, nil
}

// Approve moves a submitted report to approved.
func (u *ExpenseUseCase) Approve(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	return u.expenses.Decide(ctx, id, model.ExpenseApproved, deciderID, note)
}

// Reject moves a submitted report to rejected.
func (u *ExpenseUseCase) Reject(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	return u.expenses.Decide(ctx, id, model.ExpenseRejected, deciderID, note)
}

// MarkPaid records the payout: the report flips to paid and a matching
// credit lands on the member's ledger, both in one transaction.
func (u *ExpenseUseCase) MarkPaid(ctx context.Context, id int64) (*model.ExpenseReport, error) {
	return u.expenses.MarkPaid(ctx, id, u.currency)
}
