package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/adapter/payment"
	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewMemberUseCase,
	NewPostUseCase,
	newSubscriptionUseCase,
	newLedgerUseCase,
	newMediaUseCase,
	newExpenseUseCase,
	newExportUseCase,
)

func newSubscriptionUseCase(
	subscriptions repository.SubscriptionRepository,
	members repository.MemberRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *SubscriptionUseCase {
	return NewSubscriptionUseCase(subscriptions, members, SubscriptionOptions{
		DowngradeCredit: cfg.PlanDowngradeCredit,
		Currency:        cfg.Currency,
	}, logger)
}

func newLedgerUseCase(
	ledger repository.LedgerRepository,
	members repository.MemberRepository,
	processor payment.Client,
	cfg *config.Config,
	logger *slog.Logger,
) *LedgerUseCase {
	return NewLedgerUseCase(ledger, members, processor, cfg.Currency, logger)
}

func newMediaUseCase(
	media repository.MediaRepository,
	store objectstore.Store,
	cfg *config.Config,
	logger *slog.Logger,
) *MediaUseCase {
	return NewMediaUseCase(media, store, MediaOptions{
		PresignTTL:     cfg.PresignTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, logger)
}

func newExpenseUseCase(
	expenses repository.ExpenseRepository,
	cfg *config.Config,
) *ExpenseUseCase {
	return NewExpenseUseCase(expenses, cfg.Currency)
}

func newExportUseCase(
	exports repository.ExportRepository,
	store objectstore.Store,
	cfg *config.Config,
) *ExportUseCase {
	return NewExportUseCase(exports, store, cfg.PresignTTL)
}
