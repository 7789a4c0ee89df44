package test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/usecase"
)

// ConsoleFacadeStub provides controllable behaviour for every handler
// endpoint. Override the matching Fn field to change a single call; the
// defaults return plausible fixed data.
type ConsoleFacadeStub struct {
	LoginFn      func(context.Context, string, string) (*model.Member, string, error)
	ParseTokenFn func(string) (pkgAuth.Claims, error)

	ListMembersFn  func(context.Context, model.MemberFilter) ([]model.Member, int64, error)
	CreateMemberFn func(context.Context, string, string, string, model.Role, model.MembershipType) (*model.Member, error)
	GetMemberFn    func(context.Context, int64) (*usecase.MemberDetail, error)
	UpdateMemberFn func(context.Context, int64, model.MemberPatch) (*model.Member, error)
	ChangePlanFn   func(context.Context, int64, model.MembershipType) (*model.Subscription, error)

	LedgerFn        func(context.Context, model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error)
	RecordPaymentFn func(context.Context, int64, decimal.Decimal, string, string) (*model.LedgerEntry, error)
	RecordCreditFn  func(context.Context, int64, decimal.Decimal, string) (*model.LedgerEntry, error)
	RefundFn        func(context.Context, int64, decimal.Decimal, string) (*model.LedgerEntry, error)
	MemberSummaryFn func(context.Context, int64) (*model.LedgerTotals, error)

	CreatePostFn    func(context.Context, int64, string, string) (*model.Post, error)
	GetPostFn       func(context.Context, int64) (*model.Post, error)
	ListPostsFn     func(context.Context, *model.PostState) ([]model.Post, error)
	SaveDraftFn     func(context.Context, int64, model.PostDraft) (*model.Post, error)
	PublishPostFn   func(context.Context, int64) (*model.Post, error)
	UnpublishPostFn func(context.Context, int64) (*model.Post, error)

	RegisterUploadFn func(context.Context, string, string, int64) (*usecase.PendingUpload, error)
	CompleteUploadFn func(context.Context, uuid.UUID) (*model.Image, error)
	ListImagesFn     func(context.Context, string, int) (*model.ImagePage, error)
	GetImageFn       func(context.Context, uuid.UUID) (*usecase.ImageDetail, error)
	DeleteImageFn    func(context.Context, uuid.UUID) error

	SubmitExpenseFn   func(context.Context, int64, string, decimal.Decimal, string, string, string) (*model.ExpenseReport, error)
	ListExpensesFn    func(context.Context, int64, model.Role, model.ExpenseFilter) ([]model.ExpenseReport, error)
	GetExpenseFn      func(context.Context, int64, int64, model.Role) (*model.ExpenseReport, error)
	ApproveExpenseFn  func(context.Context, int64, int64, string) (*model.ExpenseReport, error)
	RejectExpenseFn   func(context.Context, int64, int64, string) (*model.ExpenseReport, error)
	MarkExpensePaidFn func(context.Context, int64) (*model.ExpenseReport, error)

	CreateExportFn func(context.Context, model.ExportKind, []string, int64) (*model.ExportJob, error)
	GetExportFn    func(context.Context, uuid.UUID) (*usecase.ExportStatus, error)
}

// Login delegates to LoginFn or returns a staff member with a fixed token.
func (s ConsoleFacadeStub) Login(ctx context.Context, email, password string) (*model.Member, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Member{ID: 1, Email: email, Role: model.RoleStaff, State: model.MemberStateActive}, "token", nil
}

// ParseToken delegates to ParseTokenFn or accepts everything as admin.
func (s ConsoleFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return pkgAuth.Claims{MemberID: 1, Role: model.RoleAdmin}, nil
}

func (s ConsoleFacadeStub) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	if s.ListMembersFn != nil {
		return s.ListMembersFn(ctx, filter)
	}
	return []model.Member{{ID: 1, Email: "a@example.org", Role: model.RoleMember, State: model.MemberStateActive, MembershipType: model.MembershipRegular}}, 1, nil
}

func (s ConsoleFacadeStub) CreateMember(ctx context.Context, email, name, password string, role model.Role, membership model.MembershipType) (*model.Member, error) {
	if s.CreateMemberFn != nil {
		return s.CreateMemberFn(ctx, email, name, password, role, membership)
	}
	return &model.Member{ID: 2, Email: email, Name: name, Role: role, State: model.MemberStatePending, MembershipType: membership}, nil
}

func (s ConsoleFacadeStub) GetMember(ctx context.Context, id int64) (*usecase.MemberDetail, error) {
	if s.GetMemberFn != nil {
		return s.GetMemberFn(ctx, id)
	}
	return &usecase.MemberDetail{
		Member: &model.Member{ID: id, Email: "a@example.org", Role: model.RoleMember, State: model.MemberStateActive, MembershipType: model.MembershipRegular},
		Totals: &model.LedgerTotals{},
	}, nil
}

func (s ConsoleFacadeStub) UpdateMember(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error) {
	if s.UpdateMemberFn != nil {
		return s.UpdateMemberFn(ctx, id, patch)
	}
	return &model.Member{ID: id, State: model.MemberStateActive, Role: model.RoleMember, MembershipType: model.MembershipRegular}, nil
}

func (s ConsoleFacadeStub) ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType) (*model.Subscription, error) {
	if s.ChangePlanFn != nil {
		return s.ChangePlanFn(ctx, memberID, plan)
	}
	return &model.Subscription{ID: 1, MemberID: memberID, Plan: plan, Status: model.SubscriptionActive}, nil
}

func (s ConsoleFacadeStub) Ledger(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error) {
	if s.LedgerFn != nil {
		return s.LedgerFn(ctx, filter)
	}
	return []model.LedgerEntry{{ID: 1, MemberID: 1, Kind: model.EntryPayment, Amount: decimal.NewFromInt(10), Currency: "EUR"}}, &model.LedgerTotals{Paid: decimal.NewFromInt(10)}, nil
}

func (s ConsoleFacadeStub) RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, reference, note string) (*model.LedgerEntry, error) {
	if s.RecordPaymentFn != nil {
		return s.RecordPaymentFn(ctx, memberID, amount, reference, note)
	}
	return &model.LedgerEntry{ID: 1, MemberID: memberID, Kind: model.EntryPayment, Amount: amount, Currency: "EUR", Reference: reference, Note: note}, nil
}

func (s ConsoleFacadeStub) RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, note string) (*model.LedgerEntry, error) {
	if s.RecordCreditFn != nil {
		return s.RecordCreditFn(ctx, memberID, amount, note)
	}
	return &model.LedgerEntry{ID: 2, MemberID: memberID, Kind: model.EntryCredit, Amount: amount, Currency: "EUR", Note: note}, nil
}

func (s ConsoleFacadeStub) Refund(ctx context.Context, memberID int64, amount decimal.Decimal, reference string) (*model.LedgerEntry, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, memberID, amount, reference)
	}
	return &model.LedgerEntry{ID: 3, MemberID: memberID, Kind: model.EntryRefund, Amount: amount, Currency: "EUR", Reference: reference}, nil
}

func (s ConsoleFacadeStub) MemberSummary(ctx context.Context, memberID int64) (*model.LedgerTotals, error) {
	if s.MemberSummaryFn != nil {
		return s.MemberSummaryFn(ctx, memberID)
	}
	return &model.LedgerTotals{Paid: decimal.NewFromInt(10)}, nil
}

func (s ConsoleFacadeStub) CreatePost(ctx context.Context, authorID int64, title, body string) (*model.Post, error) {
	if s.CreatePostFn != nil {
		return s.CreatePostFn(ctx, authorID, title, body)
	}
	return &model.Post{ID: 1, AuthorID: authorID, Title: title, Body: body, State: model.PostStateDraft, Revision: 1}, nil
}

func (s ConsoleFacadeStub) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	if s.GetPostFn != nil {
		return s.GetPostFn(ctx, id)
	}
	return &model.Post{ID: id, Title: "Hello", State: model.PostStateDraft, Revision: 1}, nil
}

func (s ConsoleFacadeStub) ListPosts(ctx context.Context, state *model.PostState) ([]model.Post, error) {
	if s.ListPostsFn != nil {
		return s.ListPostsFn(ctx, state)
	}
	return []model.Post{{ID: 1, Title: "Hello", State: model.PostStateDraft, Revision: 1}}, nil
}

func (s ConsoleFacadeStub) SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	if s.SaveDraftFn != nil {
		return s.SaveDraftFn(ctx, id, draft)
	}
	return &model.Post{ID: id, Title: draft.Title, Body: draft.Body, State: model.PostStateDraft, Revision: draft.Revision + 1}, nil
}

func (s ConsoleFacadeStub) PublishPost(ctx context.Context, id int64) (*model.Post, error) {
	if s.PublishPostFn != nil {
		return s.PublishPostFn(ctx, id)
	}
	return &model.Post{ID: id, State: model.PostStatePublished, Revision: 1}, nil
}

func (s ConsoleFacadeStub) UnpublishPost(ctx context.Context, id int64) (*model.Post, error) {
	if s.UnpublishPostFn != nil {
		return s.UnpublishPostFn(ctx, id)
	}
	return &model.Post{ID: id, State: model.PostStateDraft, Revision: 1}, nil
}

func (s ConsoleFacadeStub) RegisterUpload(ctx context.Context, title, contentType string, byteSize int64) (*usecase.PendingUpload, error) {
	if s.RegisterUploadFn != nil {
		return s.RegisterUploadFn(ctx, title, contentType, byteSize)
	}
	img := &model.Image{ID: uuid.New(), Title: title, ContentType: contentType, ByteSize: byteSize, State: model.ImageStatePending}
	return &usecase.PendingUpload{Image: img, UploadURL: "https://storage.test/put/" + img.ID.String()}, nil
}

func (s ConsoleFacadeStub) CompleteUpload(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	if s.CompleteUploadFn != nil {
		return s.CompleteUploadFn(ctx, id)
	}
	return &model.Image{ID: id, State: model.ImageStatePending, Uploaded: true}, nil
}

func (s ConsoleFacadeStub) ListImages(ctx context.Context, cursor string, limit int) (*model.ImagePage, error) {
	if s.ListImagesFn != nil {
		return s.ListImagesFn(ctx, cursor, limit)
	}
	return &model.ImagePage{Images: []model.Image{{ID: uuid.New(), State: model.ImageStateReady, Uploaded: true}}}, nil
}

func (s ConsoleFacadeStub) GetImage(ctx context.Context, id uuid.UUID) (*usecase.ImageDetail, error) {
	if s.GetImageFn != nil {
		return s.GetImageFn(ctx, id)
	}
	return &usecase.ImageDetail{Image: &model.Image{ID: id, State: model.ImageStateReady, Uploaded: true}, URL: "https://storage.test/get/" + id.String()}, nil
}

func (s ConsoleFacadeStub) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if s.DeleteImageFn != nil {
		return s.DeleteImageFn(ctx, id)
	}
	return nil
}

func (s ConsoleFacadeStub) SubmitExpense(ctx context.Context, memberID int64, description string, amount decimal.Decimal, iban, accountHolder, receiptKey string) (*model.ExpenseReport, error) {
	if s.SubmitExpenseFn != nil {
		return s.SubmitExpenseFn(ctx, memberID, description, amount, iban, accountHolder, receiptKey)
	}
	return &model.ExpenseReport{ID: 1, MemberID: memberID, Description: description, Amount: amount, IBAN: iban, AccountHolder: accountHolder, ReceiptKey: receiptKey, Status: model.ExpenseSubmitted}, nil
}

func (s ConsoleFacadeStub) ListExpenses(ctx context.Context, callerID int64, callerRole model.Role, filter model.ExpenseFilter) ([]model.ExpenseReport, error) {
	if s.ListExpensesFn != nil {
		return s.ListExpensesFn(ctx, callerID, callerRole, filter)
	}
	return []model.ExpenseReport{{ID: 1, MemberID: callerID, Status: model.ExpenseSubmitted, Amount: decimal.NewFromInt(5)}}, nil
}

func (s ConsoleFacadeStub) GetExpense(ctx context.Context, id, callerID int64, callerRole model.Role) (*model.ExpenseReport, error) {
	if s.GetExpenseFn != nil {
		return s.GetExpenseFn(ctx, id, callerID, callerRole)
	}
	return &model.ExpenseReport{ID: id, MemberID: callerID, Status: model.ExpenseSubmitted, Amount: decimal.NewFromInt(5)}, nil
}

func (s ConsoleFacadeStub) ApproveExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	if s.ApproveExpenseFn != nil {
		return s.ApproveExpenseFn(ctx, id, deciderID, note)
	}
	return &model.ExpenseReport{ID: id, Status: model.ExpenseApproved, DecidedBy: &deciderID, DecisionNote: note}, nil
}

func (s ConsoleFacadeStub) RejectExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	if s.RejectExpenseFn != nil {
		return s.RejectExpenseFn(ctx, id, deciderID, note)
	}
	return &model.ExpenseReport{ID: id, Status: model.ExpenseRejected, DecidedBy: &deciderID, DecisionNote: note}, nil
}

func (s ConsoleFacadeStub) MarkExpensePaid(ctx context.Context, id int64) (*model.ExpenseReport, error) {
	if s.MarkExpensePaidFn != nil {
		return s.MarkExpensePaidFn(ctx, id)
	}
	return &model.ExpenseReport{ID: id, Status: model.ExpensePaid}, nil
}

func (s ConsoleFacadeStub) CreateExport(ctx context.Context, kind model.ExportKind, fields []string, requestedBy int64) (*model.ExportJob, error) {
	if s.CreateExportFn != nil {
		return s.CreateExportFn(ctx, kind, fields, requestedBy)
	}
	return &model.ExportJob{ID: uuid.New(), Kind: kind, Fields: fields, Status: model.ExportPending, RequestedBy: requestedBy}, nil
}

func (s ConsoleFacadeStub) GetExport(ctx context.Context, id uuid.UUID) (*usecase.ExportStatus, error) {
	if s.GetExportFn != nil {
		return s.GetExportFn(ctx, id)
	}
	return &usecase.ExportStatus{Job: &model.ExportJob{ID: id, Kind: model.ExportMembers, Status: model.ExportPending}}, nil
}
