package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	testhelpers "github.com/openlodge/clubadmin/internal/test"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newExportFixture(batchSize int) (*ExportProcessor, *testhelpers.ExportRepositoryStub, *testhelpers.MemberRepositoryStub, *testhelpers.LedgerRepositoryStub, *testhelpers.ObjectStoreStub) {
	exports := testhelpers.NewExportRepositoryStub()
	members := testhelpers.NewMemberRepositoryStub()
	ledger := &testhelpers.LedgerRepositoryStub{}
	store := testhelpers.NewObjectStoreStub()
	p := NewExportProcessor(exports, members, ledger, store, metrics.New(), 10*time.Millisecond, batchSize, 1, silentLogger())
	return p, exports, members, ledger, store
}

func seedExportJob(t *testing.T, exports *testhelpers.ExportRepositoryStub, kind model.ExportKind, fields []string) model.ExportJob {
	t.Helper()
	job, err := exports.Create(context.Background(), &model.ExportJob{
		ID:     uuid.New(),
		Kind:   kind,
		Fields: fields,
		Status: model.ExportRunning,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return *job
}

func TestExportProcessorRunMembers(t *testing.T) {
	p, exports, members, _, store := newExportFixture(2)

	pos := "treasurer"
	members.BatchFn = func(ctx context.Context, offset, limit int) ([]model.Member, error) {
		all := []model.Member{
			{ID: 1, Email: "a@example.org", Name: "A", Role: model.RoleAdmin, State: model.MemberStateActive, BoardPosition: &pos},
			{ID: 2, Email: "b@example.org", Name: "B", Role: model.RoleMember, State: model.MemberStatePending},
			{ID: 3, Email: "c@example.org", Name: "C", Role: model.RoleMember, State: model.MemberStateActive},
		}
		if offset >= len(all) {
			return nil, nil
		}
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		return all[offset:end], nil
	}

	job := seedExportJob(t, exports, model.ExportMembers, []string{"id", "email", "board_position"})
	p.Run(context.Background(), job)

	stored, err := exports.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("job lookup failed: %v", err)
	}
	if stored.Status != model.ExportDone {
		t.Fatalf("expected done, got %s (%s)", stored.Status, stored.Error)
	}
	if stored.Progress != 3 {
		t.Fatalf("unexpected progress: %d", stored.Progress)
	}

	obj, err := store.Get(context.Background(), stored.ObjectKey)
	if err != nil {
		t.Fatalf("csv object missing: %v", err)
	}
	records, err := csv.NewReader(obj).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if records[0][2] != "board_position" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][2] != "treasurer" || records[2][2] != "" {
		t.Fatalf("board position column wrong: %v", records)
	}
}

func TestExportProcessorRunLedger(t *testing.T) {
	p, exports, _, ledger, store := newExportFixture(10)

	ledger.BatchFn = func(ctx context.Context, offset, limit int) ([]model.LedgerEntry, error) {
		if offset > 0 {
			return nil, nil
		}
		return []model.LedgerEntry{
			{ID: 1, MemberID: 9, Kind: model.EntryPayment, Amount: decimal.RequireFromString("12.5"), Currency: "EUR"},
		}, nil
	}

	job := seedExportJob(t, exports, model.ExportLedger, []string{"member_id", "kind", "amount"})
	p.Run(context.Background(), job)

	stored, _ := exports.GetByID(context.Background(), job.ID)
	if stored.Status != model.ExportDone {
		t.Fatalf("expected done, got %s (%s)", stored.Status, stored.Error)
	}

	obj, err := store.Get(context.Background(), stored.ObjectKey)
	if err != nil {
		t.Fatalf("csv object missing: %v", err)
	}
	data, _ := io.ReadAll(obj)
	if !strings.Contains(string(data), "9,payment,12.50") {
		t.Fatalf("unexpected csv contents:\n%s", data)
	}
}

func TestExportProcessorRunFailure(t *testing.T) {
	p, exports, members, _, _ := newExportFixture(10)
	members.BatchFn = func(context.Context, int, int) ([]model.Member, error) {
		return nil, io.ErrUnexpectedEOF
	}

	job := seedExportJob(t, exports, model.ExportMembers, []string{"id"})
	p.Run(context.Background(), job)

	stored, _ := exports.GetByID(context.Background(), job.ID)
	if stored.Status != model.ExportFailed || stored.Error == "" {
		t.Fatalf("expected failed job with reason, got %+v", stored)
	}
}

func TestExportProcessorStartStop(t *testing.T) {
	p, exports, members, _, _ := newExportFixture(10)
	members.BatchFn = func(context.Context, int, int) ([]model.Member, error) { return nil, nil }

	job, err := exports.Create(context.Background(), &model.ExportJob{
		ID:     uuid.New(),
		Kind:   model.ExportMembers,
		Fields: []string{"id"},
		Status: model.ExportPending,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}

	p.Start(context.Background())
	deadline := time.After(2 * time.Second)
	for {
		stored, _ := exports.GetByID(context.Background(), job.ID)
		if stored.Status == model.ExportDone {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("job never finished, status %s", stored.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
	p.Stop()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailerRun(t *testing.T) {
	media := testhelpers.NewMediaRepositoryStub()
	store := testhelpers.NewObjectStoreStub()
	th := NewThumbnailer(media, store, metrics.New(), 10*time.Millisecond, 64, 1, silentLogger())

	img := model.Image{
		ID:        uuid.New(),
		ObjectKey: "media/z/original.png",
		Uploaded:  true,
		State:     model.ImageStatePending,
	}
	if _, err := media.Create(context.Background(), &img); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	store.Objects[img.ObjectKey] = pngBytes(t, 640, 480)

	th.Run(context.Background(), img)

	stored, err := media.GetByID(context.Background(), img.ID)
	if err != nil {
		t.Fatalf("image lookup failed: %v", err)
	}
	if stored.State != model.ImageStateReady || stored.ThumbKey != "media/z/thumb.png" {
		t.Fatalf("unexpected image after run: %+v", stored)
	}

	obj, err := store.Get(context.Background(), stored.ThumbKey)
	if err != nil {
		t.Fatalf("thumb object missing: %v", err)
	}
	decoded, err := png.Decode(obj)
	if err != nil {
		t.Fatalf("thumb not png: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() > 64 || bounds.Dy() > 64 {
		t.Fatalf("thumb not fitted: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestThumbnailerRunMarksFailed(t *testing.T) {
	media := testhelpers.NewMediaRepositoryStub()
	store := testhelpers.NewObjectStoreStub()
	th := NewThumbnailer(media, store, metrics.New(), 10*time.Millisecond, 64, 1, silentLogger())

	img := model.Image{
		ID:        uuid.New(),
		ObjectKey: "media/bad/original.jpg",
		Uploaded:  true,
		State:     model.ImageStatePending,
	}
	if _, err := media.Create(context.Background(), &img); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	store.Objects[img.ObjectKey] = []byte("not an image")

	th.Run(context.Background(), img)

	stored, _ := media.GetByID(context.Background(), img.ID)
	if stored.State != model.ImageStateFailed {
		t.Fatalf("expected failed state, got %s", stored.State)
	}
}
