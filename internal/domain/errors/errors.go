package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrRefundExceedsPayments  = errors.New("refund exceeds captured payments")
	ErrInvalidDateRange       = errors.New("invalid date range")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrRevisionConflict       = errors.New("revision conflict")
	ErrInvalidCursor          = errors.New("invalid cursor")
	ErrInvalidIBAN            = errors.New("invalid IBAN")
	ErrInvalidField           = errors.New("invalid export field")
	ErrUnsupportedMedia       = errors.New("unsupported media")
)
