package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/domain/model"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (*model.Member, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// MemberFacade covers the roster endpoints.
type MemberFacade interface {
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error)
	CreateMember(ctx context.Context, email, name, password string, role model.Role, membership model.MembershipType) (*model.Member, error)
	GetMember(ctx context.Context, id int64) (*usecase.MemberDetail, error)
	UpdateMember(ctx context.Context, id int64, patch model.MemberPatch) (*model.Member, error)
	ChangePlan(ctx context.Context, memberID int64, plan model.MembershipType) (*model.Subscription, error)
}

// MoneyFacade covers the ledger endpoints.
type MoneyFacade interface {
	Ledger(ctx context.Context, filter model.LedgerFilter) ([]model.LedgerEntry, *model.LedgerTotals, error)
	RecordPayment(ctx context.Context, memberID int64, amount decimal.Decimal, reference, note string) (*model.LedgerEntry, error)
	RecordCredit(ctx context.Context, memberID int64, amount decimal.Decimal, note string) (*model.LedgerEntry, error)
	Refund(ctx context.Context, memberID int64, amount decimal.Decimal, reference string) (*model.LedgerEntry, error)
	MemberSummary(ctx context.Context, memberID int64) (*model.LedgerTotals, error)
}

// PostFacade covers the CMS endpoints.
type PostFacade interface {
	CreatePost(ctx context.Context, authorID int64, title, body string) (*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, state *model.PostState) ([]model.Post, error)
	SaveDraft(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error)
	PublishPost(ctx context.Context, id int64) (*model.Post, error)
	UnpublishPost(ctx context.Context, id int64) (*model.Post, error)
}

// MediaFacade covers the gallery endpoints.
type MediaFacade interface {
	RegisterUpload(ctx context.Context, title, contentType string, byteSize int64) (*usecase.PendingUpload, error)
	CompleteUpload(ctx context.Context, id uuid.UUID) (*model.Image, error)
	ListImages(ctx context.Context, cursor string, limit int) (*model.ImagePage, error)
	GetImage(ctx context.Context, id uuid.UUID) (*usecase.ImageDetail, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

// ExpenseFacade covers the reimbursement endpoints.
type ExpenseFacade interface {
	SubmitExpense(ctx context.Context, memberID int64, description string, amount decimal.Decimal, iban, accountHolder, receiptKey string) (*model.ExpenseReport, error)
	ListExpenses(ctx context.Context, callerID int64, callerRole model.Role, filter model.ExpenseFilter) ([]model.ExpenseReport, error)
	GetExpense(ctx context.Context, id, callerID int64, callerRole model.Role) (*model.ExpenseReport, error)
	ApproveExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error)
	RejectExpense(ctx context.Context, id, deciderID int64, note string) (*model.ExpenseReport, error)
	MarkExpensePaid(ctx context.Context, id int64) (*model.ExpenseReport, error)
}

// ExportFacade covers the CSV export endpoints.
type ExportFacade interface {
	CreateExport(ctx context.Context, kind model.ExportKind, fields []string, requestedBy int64) (*model.ExportJob, error)
	GetExport(ctx context.Context, id uuid.UUID) (*usecase.ExportStatus, error)
}

// ConsoleFacade aggregates the full set of operations used across handlers.
type ConsoleFacade interface {
	AuthFacade
	MemberFacade
	MoneyFacade
	PostFacade
	MediaFacade
	ExpenseFacade
	ExportFacade
}
