package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrRefundRejected indicates the processor refused the refund.
var ErrRefundRejected = errors.New("refund rejected by processor")

// TooManyRequestsError represents rate limiting signal from the processor.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// GatewayError signals an unexpected answer from the processor.
type GatewayError struct {
	Status string
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %s", e.Status)
}

// RefundRequest describes a refund to capture at the processor.
type RefundRequest struct {
	MemberID  int64
	Amount    decimal.Decimal
	Currency  string
	Reference string
}

// RefundReceipt is the processor's confirmation.
type RefundReceipt struct {
	ID     string
	Status string
}

// Client exposes operations against the payment processor.
type Client interface {
	CaptureRefund(ctx context.Context, req RefundRequest) (*RefundReceipt, error)
}

// HTTPClient implements Client via the processor's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type refundPayload struct {
	MemberID  int64  `json:"member_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewHTTPClient creates HTTP processor client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CaptureRefund asks the processor to move money back to the member.
func (c *HTTPClient) CaptureRefund(ctx context.Context, req RefundRequest) (*RefundReceipt, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/refunds")

	body, err := json.Marshal(refundPayload{
		MemberID:  req.MemberID,
		Amount:    req.Amount.String(),
		Currency:  req.Currency,
		Reference: req.Reference,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var receipt refundResponse
		if err := json.Unmarshal(data, &receipt); err != nil {
			return nil, err
		}
		return &RefundReceipt{ID: receipt.ID, Status: receipt.Status}, nil
	case http.StatusUnprocessableEntity:
		return nil, ErrRefundRejected
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		data, _ := io.ReadAll(resp.Body)
		c.logger.Error("refund capture failed", slog.Int("status", resp.StatusCode), slog.String("body", string(data)))
		return nil, GatewayError{Status: resp.Status}
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
