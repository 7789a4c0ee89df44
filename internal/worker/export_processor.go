package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openlodge/clubadmin/internal/adapter/objectstore"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
)

// ExportProcessor drains queued CSV exports. A dispatcher claims
// pending jobs on a ticker and hands them to a small worker pool; each
// job streams its dataset batch by batch into one CSV object.
type ExportProcessor struct {
	exports   repository.ExportRepository
	members   repository.MemberRepository
	ledger    repository.LedgerRepository
	store     objectstore.Store
	metrics   *metrics.Metrics
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan model.ExportJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExportProcessor constructs the export worker pool.
func NewExportProcessor(
	exports repository.ExportRepository,
	members repository.MemberRepository,
	ledger repository.LedgerRepository,
	store objectstore.Store,
	m *metrics.Metrics,
	interval time.Duration,
	batchSize, workers int,
	logger *slog.Logger,
) *ExportProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ExportProcessor{
		exports:   exports,
		members:   members,
		ledger:    ledger,
		store:     store,
		metrics:   m,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.ExportJob, workers),
	}
}

// Start launches background processing.
func (p *ExportProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *ExportProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ExportProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.claimAndDispatch(ctx)
		}
	}
}

func (p *ExportProcessor) claimAndDispatch(ctx context.Context) {
	jobs, err := p.exports.ClaimPending(ctx, p.workers)
	if err != nil {
		p.logger.Error("claim export jobs failed", slog.String("error", err.Error()))
		return
	}
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- job:
		}
	}
}

func (p *ExportProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.Run(ctx, job)
		}
	}
}

// Run produces the CSV for one claimed job and stores it.
func (p *ExportProcessor) Run(ctx context.Context, job model.ExportJob) {
	rows, err := p.produce(ctx, job)
	if err != nil {
		p.logger.Error("export job failed",
			slog.String("job_id", job.ID.String()),
			slog.String("kind", string(job.Kind)),
			slog.String("error", err.Error()),
		)
		if failErr := p.exports.Fail(ctx, job.ID, err.Error()); failErr != nil {
			p.logger.Error("mark export failed errored", slog.String("job_id", job.ID.String()), slog.String("error", failErr.Error()))
		}
		p.metrics.RecordJob("export", "failed")
		return
	}

	p.metrics.AddExportRows(int(rows))
	p.metrics.RecordJob("export", "done")
	p.logger.Info("export job finished",
		slog.String("job_id", job.ID.String()),
		slog.String("kind", string(job.Kind)),
		slog.Int64("rows", rows),
	)
}

func (p *ExportProcessor) produce(ctx context.Context, job model.ExportJob) (int64, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(job.Fields); err != nil {
		return 0, err
	}

	var rows int64
	offset := 0
	for {
		n, err := p.writeBatch(ctx, w, job, offset)
		if err != nil {
			return rows, err
		}
		if n == 0 {
			break
		}
		rows += int64(n)
		offset += n
		if err := p.exports.SetProgress(ctx, job.ID, rows); err != nil {
			return rows, err
		}
		if n < p.batchSize {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, err
	}

	key := fmt.Sprintf("exports/%s/%s.csv", job.Kind, job.ID)
	if err := p.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv"); err != nil {
		return rows, err
	}
	return rows, p.exports.Finish(ctx, job.ID, key)
}

func (p *ExportProcessor) writeBatch(ctx context.Context, w *csv.Writer, job model.ExportJob, offset int) (int, error) {
	switch job.Kind {
	case model.ExportMembers:
		members, err := p.members.ListBatch(ctx, offset, p.batchSize)
		if err != nil {
			return 0, err
		}
		for _, m := range members {
			if err := w.Write(memberRecord(m, job.Fields)); err != nil {
				return 0, err
			}
		}
		return len(members), nil
	case model.ExportLedger:
		entries, err := p.ledger.ListBatch(ctx, offset, p.batchSize)
		if err != nil {
			return 0, err
		}
		for _, e := range entries {
			if err := w.Write(ledgerRecord(e, job.Fields)); err != nil {
				return 0, err
			}
		}
		return len(entries), nil
	default:
		return 0, fmt.Errorf("unknown export kind %q", job.Kind)
	}
}

func memberRecord(m model.Member, fields []string) []string {
	record := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			record = append(record, fmt.Sprintf("%d", m.ID))
		case "email":
			record = append(record, m.Email)
		case "name":
			record = append(record, m.Name)
		case "role":
			record = append(record, string(m.Role))
		case "state":
			record = append(record, string(m.State))
		case "board_position":
			if m.BoardPosition != nil {
				record = append(record, *m.BoardPosition)
			} else {
				record = append(record, "")
			}
		case "membership_type":
			record = append(record, string(m.MembershipType))
		case "joined_at":
			record = append(record, m.JoinedAt.UTC().Format(time.RFC3339))
		default:
			record = append(record, "")
		}
	}
	return record
}

func ledgerRecord(e model.LedgerEntry, fields []string) []string {
	record := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			record = append(record, fmt.Sprintf("%d", e.ID))
		case "member_id":
			record = append(record, fmt.Sprintf("%d", e.MemberID))
		case "kind":
			record = append(record, string(e.Kind))
		case "amount":
			record = append(record, e.Amount.StringFixed(2))
		case "currency":
			record = append(record, e.Currency)
		case "reference":
			record = append(record, e.Reference)
		case "note":
			record = append(record, e.Note)
		case "processed_at":
			record = append(record, e.ProcessedAt.UTC().Format(time.RFC3339))
		default:
			record = append(record, "")
		}
	}
	return record
}
