package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	testhelpers "github.com/openlodge/clubadmin/internal/test"
	"github.com/openlodge/clubadmin/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestWorkers() (*worker.ExportProcessor, *worker.Thumbnailer) {
	exporter := worker.NewExportProcessor(
		testhelpers.NewExportRepositoryStub(),
		testhelpers.NewMemberRepositoryStub(),
		&testhelpers.LedgerRepositoryStub{},
		testhelpers.NewObjectStoreStub(),
		metrics.New(),
		10*time.Millisecond, 1, 1,
		discardLogger(),
	)
	thumbnailer := worker.NewThumbnailer(
		testhelpers.NewMediaRepositoryStub(),
		testhelpers.NewObjectStoreStub(),
		metrics.New(),
		10*time.Millisecond, 64, 1,
		discardLogger(),
	)
	return exporter, thumbnailer
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewWorkersUseConfig(t *testing.T) {
	cfg := &config.Config{
		ExportPollInterval: time.Second,
		ExportBatchSize:    10,
		ThumbPollInterval:  time.Second,
		ThumbMaxEdge:       128,
		WorkerPoolSize:     2,
	}

	exporter := newExportProcessor(exportWorkerParams{
		Exports: testhelpers.NewExportRepositoryStub(),
		Members: testhelpers.NewMemberRepositoryStub(),
		Ledger:  &testhelpers.LedgerRepositoryStub{},
		Store:   testhelpers.NewObjectStoreStub(),
		Metrics: metrics.New(),
		Config:  cfg,
		Logger:  discardLogger(),
	})
	if exporter == nil {
		t.Fatal("expected export processor instance")
	}

	thumbnailer := newThumbnailer(thumbWorkerParams{
		Media:   testhelpers.NewMediaRepositoryStub(),
		Store:   testhelpers.NewObjectStoreStub(),
		Metrics: metrics.New(),
		Config:  cfg,
		Logger:  discardLogger(),
	})
	if thumbnailer == nil {
		t.Fatal("expected thumbnailer instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	exporter, thumbnailer := newTestWorkers()
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:   recorder,
		Shutdowner:  shutdowner,
		Logger:      discardLogger(),
		Server:      server,
		Exporter:    exporter,
		Thumbnailer: thumbnailer,
		Config:      cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "bad addr"}
	exporter, thumbnailer := newTestWorkers()

	registerLifecycle(lifecycleParams{
		Lifecycle:   recorder,
		Shutdowner:  shutdowner,
		Logger:      discardLogger(),
		Server:      server,
		Exporter:    exporter,
		Thumbnailer: thumbnailer,
		Config:      &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdowner to be invoked on listen error")
	}

	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("on stop failed: %v", err)
	}
}
