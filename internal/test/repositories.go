package test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	"github.com/openlodge/clubadmin/internal/domain/repository"
)

// MemberRepositoryStub stores members in-memory for tests.
type MemberRepositoryStub struct {
	ByEmail map[string]*model.Member
	ByID    map[int64]*model.Member
	Next    int64
	Err     error

	UpdateFn func(context.Context, int64, model.MemberPatch) (*model.Member, error)
	ListFn   func(context.Context, model.MemberFilter) ([]model.Member, int64, error)
	BatchFn  func(context.Context, int, int) ([]model.Member, error)
}

// NewMemberRepositoryStub constructs stub repository with initialized maps.
func NewMemberRepositoryStub() *MemberRepositoryStub {
	return &MemberRepositoryStub{
		ByEmail: make(map[string]*model.Member),
		ByID:    make(map[int64]*model.Member),
		Next:    1,
	}
}

// Seed inserts a member directly, bypassing Create.
func (s *MemberRepositoryStub) Seed(m *model.Member) *model.Member {
	if m.ID == 0 {
		m.ID = s.Next
		s.Next++
	} else if m.ID >= s.Next {
		s.Next = m.ID + 1
	}
	s.ByEmail[m.Email] = m
	s.ByID[m.ID] = m
	return m
}

func (s *MemberRepositoryStub) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[m.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *m
	stored.ID = s.Next
	s.Next++
	stored.CreatedAt = time.Now()
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

func (s *MemberRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if m, ok := s.ByEmail[email]; ok {
		return m, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MemberRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if m, ok := s.ByID[id]; ok {
		return m, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MemberRepositoryStub) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	var out []model.Member
	for _, m := range s.ByID {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (s *MemberRepositoryStub) Update(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	m, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Role != nil {
		m.Role = *patch.Role
	}
	if patch.State != nil {
		m.State = *patch.State
	}
	if patch.ClearBoard {
		m.BoardPosition = nil
	} else if patch.BoardPosition != nil {
		m.BoardPosition = patch.BoardPosition
	}
	if patch.MembershipType != nil {
		m.MembershipType = *patch.MembershipType
	}
	return m, nil
}

func (s *MemberRepositoryStub) ListBatch(ctx context.Context, offset, limit int) ([]model.Member, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, offset, limit)
	}
	return nil, nil
}

// LedgerRecordCall captures one append to the ledger stub.
type LedgerRecordCall struct {
	MemberID  int64
	Kind      model.EntryKind
	Amount    decimal.Decimal
	Reference string
	Note      string
}

// LedgerRepositoryStub lets tests control ledger data.
type LedgerRepositoryStub struct {
	Entries []model.LedgerEntry
	Totals  *model.LedgerTotals
	Calls   []LedgerRecordCall

	RecordRefundFn func(context.Context, int64, decimal.Decimal, string, string) (*model.LedgerEntry, error)
	RecordCreditFn func(context.Context, int64, decimal.Decimal, string, string, string) (*model.LedgerEntry, error)
	ListFn         func(context.Context, model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error)
	TotalsFn       func(context.Context, int64) (*model.LedgerTotals, error)
	BatchFn        func(context.Context, int, int) ([]model.LedgerEntry, error)
}

func (s *LedgerRepositoryStub) record(memberID int64, kind model.EntryKind, amount decimal.Decimal, reference, note string) *model.LedgerEntry {
	s.Calls = append(s.Calls, LedgerRecordCall{MemberID: memberID, Kind: kind, Amount: amount, Reference: reference, Note: note})
	entry := model.LedgerEntry{
		ID:          int64(len(s.Calls)),
		MemberID:    memberID,
		Kind:        kind,
		Amount:      amount,
		Reference:   reference,
		Note:        note,
		ProcessedAt: time.Now(),
	}
	s.Entries = append(s.Entries, entry)
	return &entry
}

func (s *LedgerRepositoryStub) RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference, note string) (*model.LedgerEntry, error) {
	return s.record(memberID, model.EntryPayment, amount, reference, note), nil
}

func (s *LedgerRepositoryStub) RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, currency, note, reference string) (*model.LedgerEntry, error) {
	if s.RecordCreditFn != nil {
		return s.RecordCreditFn(ctx, memberID, amount, currency, note, reference)
	}
	return s.record(memberID, model.EntryCredit, amount, reference, note), nil
}

func (s *LedgerRepositoryStub) RecordRefund(ctx context.Context, memberID int64, amount decimal.Decimal, currency, reference string) (*model.LedgerEntry, error) {
	if s.RecordRefundFn != nil {
		return s.RecordRefundFn(ctx, memberID, amount, currency, reference)
	}
	return s.record(memberID, model.EntryRefund, amount, reference, ""), nil
}

func (s *LedgerRepositoryStub) List(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	totals := s.Totals
	if totals == nil {
		totals = &model.LedgerTotals{}
	}
	return s.Entries, totals, nil
}

func (s *LedgerRepositoryStub) MemberTotals(ctx context.Context, memberID int64) (*model.LedgerTotals, error) {
	if s.TotalsFn != nil {
		return s.TotalsFn(ctx, memberID)
	}
	if s.Totals == nil {
		return &model.LedgerTotals{}, nil
	}
	return s.Totals, nil
}

func (s *LedgerRepositoryStub) ListBatch(ctx context.Context, offset, limit int) ([]model.LedgerEntry, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, offset, limit)
	}
	return nil, nil
}

// SubscriptionRepositoryStub lets tests control plan records.
type SubscriptionRepositoryStub struct {
	Subs    map[int64]*model.Subscription
	Credits []repository.PlanCredit

	// CreditErr makes ChangePlan fail whenever a credit is requested,
	// leaving Subs untouched like a rolled-back transaction would.
	CreditErr error

	ChangePlanFn func(context.Context, int64, model.MembershipType, *repository.PlanCredit) (*model.Subscription, error)
}

func NewSubscriptionRepositoryStub() *SubscriptionRepositoryStub {
	return &SubscriptionRepositoryStub{Subs: make(map[int64]*model.Subscription)}
}

func (s *SubscriptionRepositoryStub) GetByMember(ctx context.Context, memberID int64) (*model.Subscription, error) {
	if sub, ok := s.Subs[memberID]; ok {
		return sub, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *SubscriptionRepositoryStub) ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType, credit *repository.PlanCredit) (*model.Subscription, error) {
	if s.ChangePlanFn != nil {
		return s.ChangePlanFn(ctx, memberID, plan, credit)
	}
	if credit != nil {
		if s.CreditErr != nil {
			return nil, s.CreditErr
		}
		s.Credits = append(s.Credits, *credit)
	}
	sub, ok := s.Subs[memberID]
	if !ok {
		sub = &model.Subscription{ID: int64(len(s.Subs) + 1), MemberID: memberID, Status: model.SubscriptionActive, StartedAt: time.Now()}
		s.Subs[memberID] = sub
	}
	sub.Plan = plan
	return sub, nil
}

// PostRepositoryStub stores posts in-memory for tests.
type PostRepositoryStub struct {
	Posts map[int64]*model.Post
	Next  int64

	SaveDraftFn func(context.Context, int64, model.PostDraft) (*model.Post, error)
}

func NewPostRepositoryStub() *PostRepositoryStub {
	return &PostRepositoryStub{Posts: make(map[int64]*model.Post), Next: 1}
}

func (s *PostRepositoryStub) Create(ctx context.Context, authorID int64, title, slug, body string) (*model.Post, error) {
	p := &model.Post{
		ID:       s.Next,
		AuthorID: authorID,
		Title:    title,
		Slug:     slug,
		Body:     body,
		State:    model.PostStateDraft,
		Revision: 1,
	}
	s.Next++
	s.Posts[p.ID] = p
	return p, nil
}

func (s *PostRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	if p, ok := s.Posts[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PostRepositoryStub) List(ctx context.Context, state *model.PostState) ([]model.Post, error) {
	var out []model.Post
	for _, p := range s.Posts {
		if state == nil || p.State == *state {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *PostRepositoryStub) SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	if s.SaveDraftFn != nil {
		return s.SaveDraftFn(ctx, id, draft)
	}
	p, ok := s.Posts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if p.Revision != draft.Revision {
		return p, domainErrors.ErrRevisionConflict
	}
	p.Title = draft.Title
	p.Body = draft.Body
	p.Revision++
	return p, nil
}

func (s *PostRepositoryStub) Publish(ctx context.Context, id int64) (*model.Post, error) {
	p, ok := s.Posts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if p.State != model.PostStateDraft {
		return nil, domainErrors.ErrInvalidStateTransition
	}
	now := time.Now()
	p.State = model.PostStatePublished
	p.PublishedAt = &now
	return p, nil
}

func (s *PostRepositoryStub) Unpublish(ctx context.Context, id int64) (*model.Post, error) {
	p, ok := s.Posts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if p.State != model.PostStatePublished {
		return nil, domainErrors.ErrInvalidStateTransition
	}
	p.State = model.PostStateDraft
	p.PublishedAt = nil
	return p, nil
}

// MediaRepositoryStub stores gallery rows in-memory for tests.
type MediaRepositoryStub struct {
	Images  map[uuid.UUID]*model.Image
	Deleted []uuid.UUID

	ListAfterFn    func(context.Context, time.Time, uuid.UUID, int) ([]model.Image, error)
	ClaimPendingFn func(context.Context, int) ([]model.Image, error)
}

func NewMediaRepositoryStub() *MediaRepositoryStub {
	return &MediaRepositoryStub{Images: make(map[uuid.UUID]*model.Image)}
}

func (s *MediaRepositoryStub) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	stored := *img
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.Images[stored.ID] = &stored
	return &stored, nil
}

func (s *MediaRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	if img, ok := s.Images[id]; ok {
		return img, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MediaRepositoryStub) ListAfter(ctx context.Context, before time.Time, beforeID uuid.UUID, limit int) ([]model.Image, error) {
	if s.ListAfterFn != nil {
		return s.ListAfterFn(ctx, before, beforeID, limit)
	}
	var out []model.Image
	for _, img := range s.Images {
		out = append(out, *img)
	}
	return out, nil
}

func (s *MediaRepositoryStub) MarkUploaded(ctx context.Context, id uuid.UUID) error {
	img, ok := s.Images[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	img.Uploaded = true
	return nil
}

func (s *MediaRepositoryStub) SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey string) error {
	img, ok := s.Images[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	img.ThumbKey = thumbKey
	img.State = model.ImageStateReady
	return nil
}

func (s *MediaRepositoryStub) MarkFailed(ctx context.Context, id uuid.UUID) error {
	img, ok := s.Images[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	img.State = model.ImageStateFailed
	return nil
}

func (s *MediaRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.Images[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Images, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

func (s *MediaRepositoryStub) ClaimPending(ctx context.Context, limit int) ([]model.Image, error) {
	if s.ClaimPendingFn != nil {
		return s.ClaimPendingFn(ctx, limit)
	}
	var out []model.Image
	for _, img := range s.Images {
		if img.State == model.ImageStatePending && img.Uploaded {
			img.State = model.ImageStateProcessing
			out = append(out, *img)
		}
	}
	return out, nil
}

// ExpenseRepositoryStub stores reports in-memory for tests.
type ExpenseRepositoryStub struct {
	Reports map[int64]*model.ExpenseReport
	Next    int64
	Credits []LedgerRecordCall

	// CreditErr makes MarkPaid fail and leave the report untouched,
	// like a rolled-back transaction would.
	CreditErr error
}

func NewExpenseRepositoryStub() *ExpenseRepositoryStub {
	return &ExpenseRepositoryStub{Reports: make(map[int64]*model.ExpenseReport), Next: 1}
}

func (s *ExpenseRepositoryStub) Create(ctx context.Context, report *model.ExpenseReport) (*model.ExpenseReport, error) {
	stored := *report
	stored.ID = s.Next
	s.Next++
	stored.SubmittedAt = time.Now()
	s.Reports[stored.ID] = &stored
	return &stored, nil
}

func (s *ExpenseRepositoryStub) GetByID(ctx context.Context, id int64) (*model.ExpenseReport, error) {
	if r, ok := s.Reports[id]; ok {
		return r, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ExpenseRepositoryStub) List(ctx context.Context, filter model.ExpenseFilter) ([]model.ExpenseReport, error) {
	var out []model.ExpenseReport
	for _, r := range s.Reports {
		if filter.MemberID != nil && r.MemberID != *filter.MemberID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *ExpenseRepositoryStub) Decide(ctx context.Context, id int64, status model.ExpenseStatus, deciderID int64, note string) (*model.ExpenseReport, error) {
	r, ok := s.Reports[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if r.Status != model.ExpenseSubmitted {
		return nil, domainErrors.ErrInvalidStateTransition
	}
	now := time.Now()
	r.Status = status
	r.DecidedAt = &now
	r.DecidedBy = &deciderID
	r.DecisionNote = note
	return r, nil
}

func (s *ExpenseRepositoryStub) MarkPaid(ctx context.Context, id int64, currency string) (*model.ExpenseReport, error) {
	r, ok := s.Reports[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if r.Status != model.ExpenseApproved {
		return nil, domainErrors.ErrInvalidStateTransition
	}
	if s.CreditErr != nil {
		return nil, s.CreditErr
	}
	r.Status = model.ExpensePaid
	s.Credits = append(s.Credits, LedgerRecordCall{
		MemberID:  r.MemberID,
		Kind:      model.EntryCredit,
		Amount:    r.Amount,
		Reference: fmt.Sprintf("expense:%d", r.ID),
		Note:      "expense reimbursement",
	})
	return r, nil
}

// ExportRepositoryStub stores export jobs in-memory for tests.
type ExportRepositoryStub struct {
	Jobs map[uuid.UUID]*model.ExportJob

	ClaimPendingFn func(context.Context, int) ([]model.ExportJob, error)
	Progress       []int64
}

func NewExportRepositoryStub() *ExportRepositoryStub {
	return &ExportRepositoryStub{Jobs: make(map[uuid.UUID]*model.ExportJob)}
}

func (s *ExportRepositoryStub) Create(ctx context.Context, job *model.ExportJob) (*model.ExportJob, error) {
	stored := *job
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.CreatedAt = time.Now()
	s.Jobs[stored.ID] = &stored
	return &stored, nil
}

func (s *ExportRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.ExportJob, error) {
	if j, ok := s.Jobs[id]; ok {
		return j, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ExportRepositoryStub) ClaimPending(ctx context.Context, limit int) ([]model.ExportJob, error) {
	if s.ClaimPendingFn != nil {
		return s.ClaimPendingFn(ctx, limit)
	}
	var out []model.ExportJob
	for _, j := range s.Jobs {
		if j.Status == model.ExportPending {
			j.Status = model.ExportRunning
			out = append(out, *j)
		}
	}
	return out, nil
}

func (s *ExportRepositoryStub) SetProgress(ctx context.Context, id uuid.UUID, rows int64) error {
	j, ok := s.Jobs[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	j.Progress = rows
	s.Progress = append(s.Progress, rows)
	return nil
}

func (s *ExportRepositoryStub) Finish(ctx context.Context, id uuid.UUID, objectKey string) error {
	j, ok := s.Jobs[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	now := time.Now()
	j.Status = model.ExportDone
	j.ObjectKey = objectKey
	j.FinishedAt = &now
	return nil
}

func (s *ExportRepositoryStub) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	j, ok := s.Jobs[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	j.Status = model.ExportFailed
	j.Error = reason
	return nil
}
