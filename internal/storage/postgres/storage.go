package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

// pool abstracts pgxpool.Pool so tests can substitute a mock.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Members() repository.MemberRepository {
	return &memberRepository{storage: s}
}

func (s *Storage) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) Posts() repository.PostRepository {
	return &postRepository{storage: s}
}

func (s *Storage) Media() repository.MediaRepository {
	return &mediaRepository{storage: s}
}

func (s *Storage) Expenses() repository.ExpenseRepository {
	return &expenseRepository{storage: s}
}

func (s *Storage) Exports() repository.ExportRepository {
	return &exportRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS members (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            password_hash TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'member',
            state TEXT NOT NULL DEFAULT 'pending',
            board_position TEXT,
            membership_type TEXT NOT NULL DEFAULT 'regular',
            joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
            id SERIAL PRIMARY KEY,
            member_id BIGINT UNIQUE NOT NULL REFERENCES members(id),
            plan TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'active',
            started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            renews_at TIMESTAMPTZ NOT NULL DEFAULT NOW() + INTERVAL '1 month'
        )`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
            id SERIAL PRIMARY KEY,
            member_id BIGINT NOT NULL REFERENCES members(id),
            kind TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            currency TEXT NOT NULL,
            reference TEXT NOT NULL DEFAULT '',
            note TEXT NOT NULL DEFAULT '',
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS posts (
            id SERIAL PRIMARY KEY,
            author_id BIGINT NOT NULL REFERENCES members(id),
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            body TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT 'draft',
            revision BIGINT NOT NULL DEFAULT 1,
            published_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS images (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            object_key TEXT NOT NULL,
            thumb_key TEXT NOT NULL DEFAULT '',
            content_type TEXT NOT NULL,
            byte_size BIGINT NOT NULL,
            state TEXT NOT NULL DEFAULT 'pending',
            uploaded BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS expense_reports (
            id SERIAL PRIMARY KEY,
            member_id BIGINT NOT NULL REFERENCES members(id),
            description TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            iban TEXT NOT NULL,
            account_holder TEXT NOT NULL,
            receipt_key TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'submitted',
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            decided_at TIMESTAMPTZ,
            decided_by BIGINT,
            decision_note TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS export_jobs (
            id UUID PRIMARY KEY,
            kind TEXT NOT NULL,
            fields TEXT[] NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            progress BIGINT NOT NULL DEFAULT 0,
            object_key TEXT NOT NULL DEFAULT '',
            error TEXT NOT NULL DEFAULT '',
            requested_by BIGINT NOT NULL REFERENCES members(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            finished_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_members_joined ON members(joined_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_member ON ledger_entries(member_id, processed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_processed ON ledger_entries(processed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_images_cursor ON images(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_member ON expense_reports(member_id, submitted_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_export_jobs_status ON export_jobs(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
