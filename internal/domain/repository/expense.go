package repository

import (
	"context"

	"github.com/openlodge/clubadmin/internal/domain/model"
)

// ExpenseRepository describes persistence operations for expense reports.
type ExpenseRepository interface {
	Create(ctx context.Context, report *model.ExpenseReport) (*model.ExpenseReport, error)
	GetByID(ctx context.Context, id int64) (*model.ExpenseReport, error)
	List(ctx context.Context, filter model.ExpenseFilter) ([]model.ExpenseReport, error)
	// Decide moves a submitted report to approved or rejected.
	Decide(ctx context.Context, id int64, status model.ExpenseStatus, deciderID int64, note string) (*model.ExpenseReport, error)
	// MarkPaid flips an approved report to paid and books the payout
	// credit on the member's ledger in the same transaction.
	MarkPaid(ctx context.Context, id int64, currency string) (*model.ExpenseReport, error)
}
