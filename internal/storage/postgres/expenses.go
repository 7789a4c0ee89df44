package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type expenseRepository struct {
	storage *Storage
}

const expenseColumns = `id, member_id, description, amount::text, iban, account_holder, receipt_key, status, submitted_at, decided_at, decided_by, decision_note`

func scanExpense(row pgx.Row) (*model.ExpenseReport, error) {
	var e model.ExpenseReport
	var amount string
	err := row.Scan(&e.ID, &e.MemberID, &e.Description, &amount, &e.IBAN, &e.AccountHolder,
		&e.ReceiptKey, &e.Status, &e.SubmittedAt, &e.DecidedAt, &e.DecidedBy, &e.DecisionNote)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	return &e, nil
}

func (r *expenseRepository) Create(ctx context.Context, report *model.ExpenseReport) (*model.ExpenseReport, error) {
	const query = `INSERT INTO expense_reports (member_id, description, amount, iban, account_holder, receipt_key)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + expenseColumns
	return scanExpense(r.storage.pool.QueryRow(ctx, query,
		report.MemberID, report.Description, report.Amount.String(), report.IBAN, report.AccountHolder, report.ReceiptKey))
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*model.ExpenseReport, error) {
	const query = `SELECT ` + expenseColumns + ` FROM expense_reports WHERE id=$1`
	return scanExpense(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *expenseRepository) List(ctx context.Context, filter model.ExpenseFilter) ([]model.ExpenseReport, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense_reports`
	var conditions []string
	var args []any

	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		conditions = append(conditions, fmt.Sprintf("member_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ExpenseReport
	for rows.Next() {
		var e model.ExpenseReport
		var amount string
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Description, &amount, &e.IBAN, &e.AccountHolder,
			&e.ReceiptKey, &e.Status, &e.SubmittedAt, &e.DecidedAt, &e.DecidedBy, &e.DecisionNote); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		e.Amount = parsed
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *expenseRepository) Decide(ctx context.Context, id int64, status model.ExpenseStatus, deciderID int64, note string) (*model.ExpenseReport, error) {
	const query = `UPDATE expense_reports
                   SET status=$1, decided_at=NOW(), decided_by=$2, decision_note=$3
                   WHERE id=$4 AND status='submitted'
                   RETURNING ` + expenseColumns
	report, err := scanExpense(r.storage.pool.QueryRow(ctx, query, status, deciderID, note, id))
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domainErrors.ErrInvalidStateTransition
}

func (r *expenseRepository) MarkPaid(ctx context.Context, id int64, currency string) (*model.ExpenseReport, error) {
	var report *model.ExpenseReport
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE expense_reports
                       SET status='paid'
                       WHERE id=$1 AND status='approved'
                       RETURNING ` + expenseColumns
		var err error
		report, err = scanExpense(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		// The payout credit commits together with the status flip, so a
		// paid report without a ledger trail can never exist.
		const book = `INSERT INTO ledger_entries (member_id, kind, amount, currency, reference, note)
                      VALUES ($1, $2, $3, $4, $5, $6)`
		_, err = tx.Exec(ctx, book, report.MemberID, model.EntryCredit,
			report.Amount.String(), currency, fmt.Sprintf("expense:%d", report.ID), "expense reimbursement")
		return err
	})
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domainErrors.ErrInvalidStateTransition
}
