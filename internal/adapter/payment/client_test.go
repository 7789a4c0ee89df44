package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	if _, err := NewHTTPClient(":://bad", discardLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
	if _, err := NewHTTPClient("/relative", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCaptureRefund_OK(t *testing.T) {
	var got refundPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/refunds" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(refundResponse{ID: "re_1", Status: "succeeded"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	receipt, err := client.CaptureRefund(context.Background(), RefundRequest{
		MemberID:  7,
		Amount:    decimal.RequireFromString("12.50"),
		Currency:  "EUR",
		Reference: "invoice-3",
	})
	if err != nil {
		t.Fatalf("capture refund: %v", err)
	}
	if receipt.ID != "re_1" || receipt.Status != "succeeded" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if got.Amount != "12.5" || got.MemberID != 7 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestCaptureRefund_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CaptureRefund(context.Background(), RefundRequest{MemberID: 1, Amount: decimal.New(1, 0), Currency: "EUR"})
	if !errors.Is(err, ErrRefundRejected) {
		t.Fatalf("expected ErrRefundRejected, got %v", err)
	}
}

func TestCaptureRefund_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CaptureRefund(context.Background(), RefundRequest{MemberID: 1, Amount: decimal.New(1, 0), Currency: "EUR"})
	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if tooMany.RetryAfter != 7*time.Second {
		t.Fatalf("unexpected retry after: %s", tooMany.RetryAfter)
	}
}

func TestCaptureRefund_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CaptureRefund(context.Background(), RefundRequest{MemberID: 1, Amount: decimal.New(1, 0), Currency: "EUR"}); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("unexpected default: %s", d)
	}
	if d := parseRetryAfter("12"); d != 12*time.Second {
		t.Fatalf("unexpected seconds parse: %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("unexpected fallback: %s", d)
	}
}
