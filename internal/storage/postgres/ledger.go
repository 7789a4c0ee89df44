package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
)

type ledgerRepository struct {
	storage *Storage
}

// Amounts travel as text between Go and NUMERIC columns so no float
// conversion ever happens.
const ledgerColumns = `id, member_id, kind, amount::text, currency, reference, note, processed_at`

func scanEntry(row pgx.Row) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	var amount string
	err := row.Scan(&e.ID, &e.MemberID, &e.Kind, &amount, &e.Currency, &e.Reference, &e.Note, &e.ProcessedAt)
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

func (r *ledgerRepository) insert(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, memberID int64, kind model.EntryKind, amount decimal.Decimal, currency, reference, note string) (*model.LedgerEntry, error) {
	const query = `INSERT INTO ledger_entries (member_id, kind, amount, currency, reference, note)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + ledgerColumns
	return scanEntry(q.QueryRow(ctx, query, memberID, kind, amount.String(), currency, reference, note))
}

func (r *ledgerRepository) RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference, note string) (*model.LedgerEntry, error) {
	return r.insert(ctx, r.storage.pool, memberID, model.EntryPayment, amount, currency, reference, note)
}

func (r *ledgerRepository) RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, currency, note, reference string) (*model.LedgerEntry, error) {
	return r.insert(ctx, r.storage.pool, memberID, model.EntryCredit, amount, currency, reference, note)
}

func (r *ledgerRepository) RecordRefund(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference string) (*model.LedgerEntry, error) {
	var entry *model.LedgerEntry
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Serialize concurrent refunds for the same member.
		const lock = `SELECT id FROM members WHERE id=$1 FOR UPDATE`
		var id int64
		if err := tx.QueryRow(ctx, lock, memberID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const totals = `SELECT
                COALESCE(SUM(amount) FILTER (WHERE kind='payment'), 0)::text,
                COALESCE(SUM(amount) FILTER (WHERE kind='refund'), 0)::text
            FROM ledger_entries WHERE member_id=$1`
		var paidStr, refundedStr string
		if err := tx.QueryRow(ctx, totals, memberID).Scan(&paidStr, &refundedStr); err != nil {
			return err
		}
		paid, err := decimal.NewFromString(paidStr)
		if err != nil {
			return fmt.Errorf("parse paid total: %w", err)
		}
		refunded, err := decimal.NewFromString(refundedStr)
		if err != nil {
			return fmt.Errorf("parse refunded total: %w", err)
		}

		if refunded.Add(amount).GreaterThan(paid) {
			return domainErrors.ErrRefundExceedsPayments
		}

		entry, err = r.insert(ctx, tx, memberID, model.EntryRefund, amount, currency, reference, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) List(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error) {
	where, args := buildLedgerWhere(filter)

	totalsQuery := `SELECT
            COALESCE(SUM(amount) FILTER (WHERE kind='payment'), 0)::text,
            COALESCE(SUM(amount) FILTER (WHERE kind='refund'), 0)::text,
            COALESCE(SUM(amount) FILTER (WHERE kind='credit'), 0)::text
        FROM ledger_entries` + where
	var paidStr, refundedStr, creditedStr string
	if err := r.storage.pool.QueryRow(ctx, totalsQuery, args...).Scan(&paidStr, &refundedStr, &creditedStr); err != nil {
		return nil, nil, err
	}
	totals, err := parseTotals(paidStr, refundedStr, creditedStr)
	if err != nil {
		return nil, nil, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	listQuery := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where +
		fmt.Sprintf(` ORDER BY processed_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}
	return entries, totals, nil
}

func buildLedgerWhere(filter model.LedgerFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.MemberID != nil {
		add(`member_id = $%d`, *filter.MemberID)
	}
	if filter.Kind != nil {
		add(`kind = $%d`, *filter.Kind)
	}
	if filter.From != nil {
		add(`processed_at >= $%d`, *filter.From)
	}
	if filter.To != nil {
		add(`processed_at < $%d`, *filter.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func parseTotals(paid, refunded, credited string) (*model.LedgerTotals, error) {
	var t model.LedgerTotals
	var err error
	if t.Paid, err = decimal.NewFromString(paid); err != nil {
		return nil, fmt.Errorf("parse paid total: %w", err)
	}
	if t.Refunded, err = decimal.NewFromString(refunded); err != nil {
		return nil, fmt.Errorf("parse refunded total: %w", err)
	}
	if t.Credited, err = decimal.NewFromString(credited); err != nil {
		return nil, fmt.Errorf("parse credited total: %w", err)
	}
	return &t, nil
}

func collectEntries(rows pgx.Rows) ([]model.LedgerEntry, error) {
	var result []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		var amount string
		var processedAt time.Time
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Kind, &amount, &e.Currency, &e.Reference, &e.Note, &processedAt); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		e.Amount = parsed
		e.ProcessedAt = processedAt
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ledgerRepository) MemberTotals(ctx context.Context, memberID int64) (*model.LedgerTotals, error) {
	const query = `SELECT
            COALESCE(SUM(amount) FILTER (WHERE kind='payment'), 0)::text,
            COALESCE(SUM(amount) FILTER (WHERE kind='refund'), 0)::text,
            COALESCE(SUM(amount) FILTER (WHERE kind='credit'), 0)::text
        FROM ledger_entries WHERE member_id=$1`
	var paidStr, refundedStr, creditedStr string
	if err := r.storage.pool.QueryRow(ctx, query, memberID).Scan(&paidStr, &refundedStr, &creditedStr); err != nil {
		return nil, err
	}
	return parseTotals(paidStr, refundedStr, creditedStr)
}

func (r *ledgerRepository) ListBatch(ctx context.Context, offset, limit int) ([]model.LedgerEntry, error) {
	const query = `SELECT ` + ledgerColumns + ` FROM ledger_entries ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.storage.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}
