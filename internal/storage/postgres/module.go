package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.MemberRepository { return s.Members() },
		func(s *Storage) repository.SubscriptionRepository { return s.Subscriptions() },
		func(s *Storage) repository.LedgerRepository { return s.Ledger() },
		func(s *Storage) repository.PostRepository { return s.Posts() },
		func(s *Storage) repository.MediaRepository { return s.Media() },
		func(s *Storage) repository.ExpenseRepository { return s.Expenses() },
		func(s *Storage) repository.ExportRepository { return s.Exports() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
