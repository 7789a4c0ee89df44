package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

type subscriptionRepository struct {
	storage *Storage
}

func (r *subscriptionRepository) GetByMember(ctx context.Context, memberID int64) (*model.Subscription, error) {
	const query = `SELECT id, member_id, plan, status, started_at, renews_at
                   FROM subscriptions WHERE member_id=$1`
	var s model.Subscription
	err := r.storage.pool.QueryRow(ctx, query, memberID).
		Scan(&s.ID, &s.MemberID, &s.Plan, &s.Status, &s.StartedAt, &s.RenewsAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepository) ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType, credit *repository.PlanCredit) (*model.Subscription, error) {
	var s model.Subscription
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsert = `INSERT INTO subscriptions (member_id, plan, status)
                        VALUES ($1, $2, 'active')
                        ON CONFLICT (member_id) DO UPDATE
                        SET plan = EXCLUDED.plan, status = 'active'
                        RETURNING id, member_id, plan, status, started_at, renews_at`
		if err := tx.QueryRow(ctx, upsert, memberID, plan).
			Scan(&s.ID, &s.MemberID, &s.Plan, &s.Status, &s.StartedAt, &s.RenewsAt); err != nil {
			return err
		}

		// Keep the denormalized membership type on the member row in step.
		const mirror = `UPDATE members SET membership_type=$1, updated_at=NOW() WHERE id=$2`
		tag, err := tx.Exec(ctx, mirror, plan, memberID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		if credit != nil {
			const book = `INSERT INTO ledger_entries (member_id, kind, amount, currency, reference, note)
                          VALUES ($1, $2, $3, $4, '', $5)`
			if _, err := tx.Exec(ctx, book, memberID, model.EntryCredit, credit.Amount.String(), credit.Currency, credit.Note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
