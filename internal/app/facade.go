package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/usecase"
)

// AdminFacade aggregates the use cases behind one surface the HTTP
// layer talks to.
type AdminFacade struct {
	auth          *usecase.AuthUseCase
	members       *usecase.MemberUseCase
	subscriptions *usecase.SubscriptionUseCase
	ledger        *usecase.LedgerUseCase
	posts         *usecase.PostUseCase
	media         *usecase.MediaUseCase
	expenses      *usecase.ExpenseUseCase
	exports       *usecase.ExportUseCase
}

// NewAdminFacade constructs AdminFacade.
func NewAdminFacade(
	auth *usecase.AuthUseCase,
	members *usecase.MemberUseCase,
	subscriptions *usecase.SubscriptionUseCase,
	ledger *usecase.LedgerUseCase,
	posts *usecase.PostUseCase,
	media *usecase.MediaUseCase,
	expenses *usecase.ExpenseUseCase,
	exports *usecase.ExportUseCase,
) *AdminFacade {
	return &AdminFacade{
		auth:          auth,
		members:       members,
		subscriptions: subscriptions,
		ledger:        ledger,
		posts:         posts,
		media:         media,
		expenses:      expenses,
		exports:       exports,
	}
}

func (f *AdminFacade) Login(ctx context.Context, email, password string) (*model.Member, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *AdminFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	return f.members.List(ctx, filter)
}

func (f *AdminFacade) CreateMember(ctx context.Context, email, name, password string, role model.Role, membership model.MembershipType) (*model.Member, error) {
	return f.members.Create(ctx, email, name, password, role, membership)
}

func (f *AdminFacade) GetMember(ctx context.Context, id int64) (*usecase.MemberDetail, error) {
	return f.members.Get(ctx, id)
}

func (f *AdminFacade) UpdateMember(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error) {
	return f.members.Update(ctx, id, patch)
}

func (f *AdminFacade) ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType) (*model.Subscription, error) {
	return f.subscriptions.ChangePlan(ctx, memberID, plan)
}

func (f *AdminFacade) Ledger(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error) {
	return f.ledger.List(ctx, filter)
}

func (f *AdminFacade) RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, reference, note string) (*model.LedgerEntry, error) {
	return f.ledger.RecordPayment(ctx, memberID, amount, reference, note)
}

func (f *AdminFacade) RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, note string) (*model.LedgerEntry, error) {
	return f.ledger.RecordCredit(ctx, memberID, amount, note)
}

func (f *AdminFacade) Refund(ctx context.Context, memberID int64, amount decimal.Decimal, reference string) (*model.LedgerEntry, error) {
	return f.ledger.Refund(ctx, memberID, amount, reference)
}

func (f *AdminFacade) MemberSummary(ctx context.Context, memberID int64) (*model.LedgerTotals, error) {
	return f.ledger.MemberSummary(ctx, memberID)
}

func (f *AdminFacade) CreatePost(ctx context.Context, authorID int64, title, body string) (*model.Post, error) {
	return f.posts.Create(ctx, authorID, title, body)
}

func (f *AdminFacade) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	return f.posts.Get(ctx, id)
}

func (f *AdminFacade) ListPosts(ctx context.Context, state *model.PostState) ([]model.Post, error) {
	return f.posts.List(ctx, state)
}

func (f *AdminFacade) SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	return f.posts.SaveDraft(ctx, id, draft)
}

func (f *AdminFacade) PublishPost(ctx context.Context, id int64) (*model.Post, error) {
	return f.posts.Publish(ctx, id)
}

func (f *AdminFacade) UnpublishPost(ctx context.Context, id int64) (*model.Post, error) {
	return f.posts.Unpublish(ctx, id)
}

func (f *AdminFacade) RegisterUpload(ctx context.Context, title, contentType string, byteSize int64) (*usecase.PendingUpload, error) {
	return f.media.RegisterUpload(ctx, title, contentType, byteSize)
}

func (f *AdminFacade) CompleteUpload(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	return f.media.CompleteUpload(ctx, id)
}

func (f *AdminFacade) ListImages(ctx context.Context, cursor string, limit int) (*model.ImagePage, error) {
	return f.media.List(ctx, cursor, limit)
}

func (f *AdminFacade) GetImage(ctx context.Context, id uuid.UUID) (*usecase.ImageDetail, error) {
	return f.media.Get(ctx, id)
}

func (f *AdminFacade) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return f.media.Delete(ctx, id)
}

func (f *AdminFacade) SubmitExpense(ctx context.Context, memberID int64, description string, amount decimal.Decimal, iban, accountHolder, receiptKey string) (*model.ExpenseReport, error) {
	return f.expenses.Submit(ctx, memberID, description, amount, iban, accountHolder, receiptKey)
}

func (f *AdminFacade) ListExpenses(ctx context.Context, callerID int64, callerRole model.Role, filter model.ExpenseFilter) ([]model.ExpenseReport, error) {
	return f.expenses.List(ctx, callerID, callerRole, filter)
}

func (f *AdminFacade) GetExpense(ctx context.Context, id, callerID int64, callerRole model.Role) (*model.ExpenseReport, error) {
	return f.expenses.Get(ctx, id, callerID, callerRole)
}

func (f *AdminFacade) ApproveExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	return f.expenses.Approve(ctx, id, deciderID, note)
}

func (f *AdminFacade) RejectExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error) {
	return f.expenses.Reject(ctx, id, deciderID, note)
}

func (f *AdminFacade) MarkExpensePaid(ctx context.Context, id int64) (*model.ExpenseReport, error) {
	return f.expenses.MarkPaid(ctx, id)
}

func (f *AdminFacade) CreateExport(ctx context.Context, kind model.ExportKind, fields []string, requestedBy int64) (*model.ExportJob, error) {
	return f.exports.Create(ctx, kind, fields, requestedBy)
}

func (f *AdminFacade) GetExport(ctx context.Context, id uuid.UUID) (*usecase.ExportStatus, error) {
	return f.exports.Get(ctx, id)
}
