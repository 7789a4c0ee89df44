package usecase_test

import (
	. "github.com/openlodge/clubadmin/internal/usecase"

	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openlodge/clubadmin/internal/adapter/payment"
	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	testhelpers "github.com/openlodge/clubadmin/internal/test"
)

func newLedgerFixture() (*LedgerUseCase, *testhelpers.MemberRepositoryStub, *testhelpers.LedgerRepositoryStub, *testhelpers.PaymentClientStub) {
	members := testhelpers.NewMemberRepositoryStub()
	ledger := &testhelpers.LedgerRepositoryStub{}
	processor := &testhelpers.PaymentClientStub{}
	uc := NewLedgerUseCase(ledger, members, processor, "EUR", silentLogger())
	return uc, members, ledger, processor
}

func TestLedgerRecordPayment(t *testing.T) {
	uc, members, ledger, _ := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "a@example.org"})

	entry, err := uc.RecordPayment(context.Background(), m.ID, decimal.RequireFromString("30.00"), "invoice-1", "yearly dues")
	if err != nil {
		t.Fatalf("record payment returned error: %v", err)
	}
	if entry.Kind != model.EntryPayment {
		t.Fatalf("unexpected kind: %s", entry.Kind)
	}
	if len(ledger.Calls) != 1 || ledger.Calls[0].Reference != "invoice-1" {
		t.Fatalf("unexpected ledger calls: %+v", ledger.Calls)
	}
}

func TestLedgerRecordPaymentRejectsNonPositive(t *testing.T) {
	uc, members, _, _ := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "b@example.org"})

	for _, raw := range []string{"0", "-1.50"} {
		if _, err := uc.RecordPayment(context.Background(), m.ID, decimal.RequireFromString(raw), "", ""); err != domainErrors.ErrInvalidAmount {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestLedgerRecordPaymentUnknownMember(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()
	if _, err := uc.RecordPayment(context.Background(), 404, decimal.New(1, 0), "", ""); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRefundCapturesThenRecords(t *testing.T) {
	uc, members, ledger, processor := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "c@example.org"})
	ledger.Totals = &model.LedgerTotals{Paid: decimal.RequireFromString("50.00")}

	entry, err := uc.Refund(context.Background(), m.ID, decimal.RequireFromString("20.00"), "invoice-2")
	if err != nil {
		t.Fatalf("refund returned error: %v", err)
	}
	if entry.Kind != model.EntryRefund {
		t.Fatalf("unexpected kind: %s", entry.Kind)
	}
	if len(processor.Captured) != 1 {
		t.Fatalf("expected one processor capture, got %d", len(processor.Captured))
	}
	if processor.Captured[0].Currency != "EUR" {
		t.Fatalf("unexpected currency: %s", processor.Captured[0].Currency)
	}
}

func TestLedgerRefundOverCapStopsBeforeProcessor(t *testing.T) {
	uc, members, ledger, processor := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "d@example.org"})
	ledger.Totals = &model.LedgerTotals{
		Paid:     decimal.RequireFromString("50.00"),
		Refunded: decimal.RequireFromString("45.00"),
	}

	if _, err := uc.Refund(context.Background(), m.ID, decimal.RequireFromString("10.00"), ""); err != domainErrors.ErrRefundExceedsPayments {
		t.Fatalf("expected ErrRefundExceedsPayments, got %v", err)
	}
	if len(processor.Captured) != 0 {
		t.Fatalf("processor must not be called when the cap fails, got %d captures", len(processor.Captured))
	}
}

func TestLedgerRefundProcessorFailure(t *testing.T) {
	uc, members, ledger, processor := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "e@example.org"})
	ledger.Totals = &model.LedgerTotals{Paid: decimal.RequireFromString("50.00")}
	processor.CaptureFn = func(context.Context, payment.RefundRequest) (*payment.RefundReceipt, error) {
		return nil, payment.ErrRefundRejected
	}

	if _, err := uc.Refund(context.Background(), m.ID, decimal.New(1, 0), ""); !errors.Is(err, payment.ErrRefundRejected) {
		t.Fatalf("expected processor rejection, got %v", err)
	}
	if len(ledger.Calls) != 0 {
		t.Fatalf("nothing may be booked when capture fails, got %+v", ledger.Calls)
	}
}

func TestLedgerRefundRecordRace(t *testing.T) {
	uc, members, ledger, _ := newLedgerFixture()
	m := members.Seed(&model.Member{Email: "f@example.org"})
	ledger.Totals = &model.LedgerTotals{Paid: decimal.RequireFromString("50.00")}
	ledger.RecordRefundFn = func(context.Context, int64, decimal.Decimal, string, string) (*model.LedgerEntry, error) {
		return nil, domainErrors.ErrRefundExceedsPayments
	}

	if _, err := uc.Refund(context.Background(), m.ID, decimal.New(1, 0), ""); err != domainErrors.ErrRefundExceedsPayments {
		t.Fatalf("expected transactional cap error, got %v", err)
	}
}

func TestLedgerListValidatesKind(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()
	bad := model.EntryKind("transfer")
	if _, _, err := uc.List(context.Background(), model.LedgerFilter{Kind: &bad}); err != domainErrors.ErrInvalidField {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}
