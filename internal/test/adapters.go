package test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/openlodge/clubadmin/internal/adapter/payment"
)

// PaymentClientStub simulates the payment processor.
type PaymentClientStub struct {
	CaptureFn func(context.Context, payment.RefundRequest) (*payment.RefundReceipt, error)
	Captured  []payment.RefundRequest
}

// CaptureRefund records the request and returns a canned receipt.
func (s *PaymentClientStub) CaptureRefund(ctx context.Context, req payment.RefundRequest) (*payment.RefundReceipt, error) {
	s.Captured = append(s.Captured, req)
	if s.CaptureFn != nil {
		return s.CaptureFn(ctx, req)
	}
	return &payment.RefundReceipt{ID: fmt.Sprintf("re_%d", len(s.Captured)), Status: "succeeded"}, nil
}

// ObjectStoreStub keeps objects in-memory and presigns fake URLs.
type ObjectStoreStub struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Removed []string

	PresignPutFn func(context.Context, string, time.Duration) (string, error)
	PresignGetFn func(context.Context, string, time.Duration) (string, error)
	PutFn        func(context.Context, string, io.Reader, int64, string) error
	RemoveErr    error
}

// NewObjectStoreStub constructs a stub with an initialized object map.
func NewObjectStoreStub() *ObjectStoreStub {
	return &ObjectStoreStub{Objects: make(map[string][]byte)}
}

func (s *ObjectStoreStub) PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.PresignPutFn != nil {
		return s.PresignPutFn(ctx, key, ttl)
	}
	return "https://storage.test/put/" + key, nil
}

func (s *ObjectStoreStub) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.PresignGetFn != nil {
		return s.PresignGetFn(ctx, key, ttl)
	}
	return "https://storage.test/get/" + key, nil
}

func (s *ObjectStoreStub) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.PutFn != nil {
		return s.PutFn(ctx, key, r, size, contentType)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return nil
}

func (s *ObjectStoreStub) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *ObjectStoreStub) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removed = append(s.Removed, key)
	delete(s.Objects, key)
	return s.RemoveErr
}
