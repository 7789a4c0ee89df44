package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	"github.com/openlodge/clubadmin/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewAdminFacade,
		newHTTPServer,
		newExportProcessor,
		newThumbnailer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type exportWorkerParams struct {
	fx.In

	Exports repository.ExportRepository
	Members repository.MemberRepository
	Ledger  repository.LedgerRepository
	Store   objectstore.Store
	Metrics *metrics.Metrics
	Config  *config.Config
	Logger  *slog.Logger
}

func newExportProcessor(p exportWorkerParams) *worker.ExportProcessor {
	return worker.NewExportProcessor(
		p.Exports,
		p.Members,
		p.Ledger,
		p.Store,
		p.Metrics,
		p.Config.ExportPollInterval,
		p.Config.ExportBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type thumbWorkerParams struct {
	fx.In

	Media   repository.MediaRepository
	Store   objectstore.Store
	Metrics *metrics.Metrics
	Config  *config.Config
	Logger  *slog.Logger
}

func newThumbnailer(p thumbWorkerParams) *worker.Thumbnailer {
	return worker.NewThumbnailer(
		p.Media,
		p.Store,
		p.Metrics,
		p.Config.ThumbPollInterval,
		p.Config.ThumbMaxEdge,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Shutdowner  fx.Shutdowner
	Logger      *slog.Logger
	Server      *http.Server
	Exporter    *worker.ExportProcessor
	Thumbnailer *worker.Thumbnailer
	Config      *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting clubadmin", slog.String("addr", p.Server.Addr))
			p.Exporter.Start(ctx)
			p.Thumbnailer.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Exporter.Stop()
			p.Thumbnailer.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("clubadmin stopped")
			return nil
		},
	})
}
