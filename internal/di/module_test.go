package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/adapter/payment"
	"github.com/openlodge/clubadmin/internal/app"
	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	"github.com/openlodge/clubadmin/internal/storage/postgres"
	"github.com/openlodge/clubadmin/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		TokenSecret:        "secret",
		TokenStrategy:      "jwt",
		TokenTTL:           time.Minute,
		ShutdownTimeout:    time.Millisecond,
		ExportPollInterval: time.Millisecond,
		ThumbPollInterval:  time.Millisecond,
		ExportBatchSize:    1,
		ThumbMaxEdge:       64,
		WorkerPoolSize:     1,
		Currency:           "EUR",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.AdminFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&objectstore.MinioStore{}),
			fx.Replace(objectstore.Store(&test.ObjectStoreStub{})),
			fx.Replace(payment.Client(&test.PaymentClientStub{})),
			fx.Replace(repository.MemberRepository(test.NewMemberRepositoryStub())),
			fx.Replace(repository.SubscriptionRepository(&test.SubscriptionRepositoryStub{})),
			fx.Replace(repository.LedgerRepository(&test.LedgerRepositoryStub{})),
			fx.Replace(repository.PostRepository(test.NewPostRepositoryStub())),
			fx.Replace(repository.MediaRepository(test.NewMediaRepositoryStub())),
			fx.Replace(repository.ExpenseRepository(test.NewExpenseRepositoryStub())),
			fx.Replace(repository.ExportRepository(test.NewExportRepositoryStub())),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected admin facade instance")
	}
}
