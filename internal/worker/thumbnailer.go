package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
)

// Thumbnailer renders thumbnails for uploaded gallery images. It polls
// for images whose original landed in object storage and fits each one
// into a bounding box, writing the result next to the original.
type Thumbnailer struct {
	media    repository.MediaRepository
	store    objectstore.Store
	metrics  *metrics.Metrics
	interval time.Duration
	maxEdge  int
	workers  int
	logger   *slog.Logger

	jobs   chan model.Image
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewThumbnailer constructs the thumbnail worker pool.
func NewThumbnailer(
	media repository.MediaRepository,
	store objectstore.Store,
	m *metrics.Metrics,
	interval time.Duration,
	maxEdge, workers int,
	logger *slog.Logger,
) *Thumbnailer {
	if workers <= 0 {
		workers = 1
	}
	if maxEdge <= 0 {
		maxEdge = 256
	}
	return &Thumbnailer{
		media:    media,
		store:    store,
		metrics:  m,
		interval: interval,
		maxEdge:  maxEdge,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan model.Image, workers),
	}
}

// Start launches background processing.
func (t *Thumbnailer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	for i := 0; i < t.workers; i++ {
		t.wg.Add(1)
		go t.worker(runCtx)
	}

	t.wg.Add(1)
	go t.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (t *Thumbnailer) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Thumbnailer) dispatch(ctx context.Context) {
	defer t.wg.Done()
	defer close(t.jobs)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.claimAndDispatch(ctx)
		}
	}
}

func (t *Thumbnailer) claimAndDispatch(ctx context.Context) {
	images, err := t.media.ClaimPending(ctx, t.workers)
	if err != nil {
		t.logger.Error("claim pending images failed", slog.String("error", err.Error()))
		return
	}
	for _, img := range images {
		select {
		case <-ctx.Done():
			return
		case t.jobs <- img:
		}
	}
}

func (t *Thumbnailer) worker(ctx context.Context) {
	defer t.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case img, ok := <-t.jobs:
			if !ok {
				return
			}
			t.Run(ctx, img)
		}
	}
}

// Run renders the thumbnail for one claimed image.
func (t *Thumbnailer) Run(ctx context.Context, img model.Image) {
	if err := t.render(ctx, img); err != nil {
		t.logger.Error("thumbnail failed",
			slog.String("image_id", img.ID.String()),
			slog.String("error", err.Error()),
		)
		if failErr := t.media.MarkFailed(ctx, img.ID); failErr != nil {
			t.logger.Error("mark image failed errored", slog.String("image_id", img.ID.String()), slog.String("error", failErr.Error()))
		}
		t.metrics.RecordJob("thumbnail", "failed")
		return
	}
	t.metrics.RecordJob("thumbnail", "done")
}

func (t *Thumbnailer) render(ctx context.Context, img model.Image) error {
	original, err := t.store.Get(ctx, img.ObjectKey)
	if err != nil {
		return err
	}
	defer original.Close()

	decoded, err := imaging.Decode(original, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode %s: %w", img.ObjectKey, err)
	}

	thumb := imaging.Fit(decoded, t.maxEdge, t.maxEdge, imaging.Lanczos)

	format, key := thumbTarget(img.ObjectKey)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}

	if err := t.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), thumbContentType(format)); err != nil {
		return err
	}
	return t.media.SetThumbnail(ctx, img.ID, key)
}

// thumbTarget keeps PNG sources lossless and renders everything else
// as JPEG. The thumb sits in the image's directory under a fixed name.
func thumbTarget(objectKey string) (imaging.Format, string) {
	dir := path.Dir(objectKey)
	if strings.HasSuffix(strings.ToLower(objectKey), ".png") {
		return imaging.PNG, dir + "/thumb.png"
	}
	return imaging.JPEG, dir + "/thumb.jpg"
}

func thumbContentType(format imaging.Format) string {
	if format == imaging.PNG {
		return "image/png"
	}
	return "image/jpeg"
}
