package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error. Every kind maps to exactly one HTTP status.
type Kind string

const (
	KindInvalidInput            Kind = "INVALID_INPUT"
	KindValidationFailed        Kind = "VALIDATION_FAILED"
	KindDataNotFound            Kind = "DATA_NOT_FOUND"
	KindInvalidState            Kind = "INVALID_STATE"
	KindInsufficientStock       Kind = "INSUFFICIENT_STOCK"
	KindInsufficientReservation Kind = "INSUFFICIENT_RESERVATION"
	KindStockNotFound           Kind = "STOCK_NOT_FOUND"
	KindInboundNotDeletable     Kind = "INBOUND_NOT_DELETABLE"
	KindDuplicateData           Kind = "DUPLICATE_DATA"
	KindInternal                Kind = "INTERNAL_ERROR"
)

// Error is a typed domain error. Raised at the point of detection and
// propagated unmodified to the API boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the user-safe message of err. Untyped errors get a
// generic message so internals never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

var statusByKind = map[Kind]int{
	KindInvalidInput:            http.StatusBadRequest,
	KindValidationFailed:        http.StatusBadRequest,
	KindDataNotFound:            http.StatusNotFound,
	KindInvalidState:            http.StatusBadRequest,
	KindInsufficientStock:       http.StatusBadRequest,
	KindInsufficientReservation: http.StatusBadRequest,
	KindStockNotFound:           http.StatusNotFound,
	KindInboundNotDeletable:     http.StatusBadRequest,
	KindDuplicateData:           http.StatusConflict,
	KindInternal:                http.StatusInternalServerError,
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	if s, ok := statusByKind[KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
