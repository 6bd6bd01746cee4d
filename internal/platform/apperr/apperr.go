package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories the scoring engine can
// surface. Presentation layers map kinds to transport status codes with a
// lookup table; nothing in the call chain inspects error text.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindDataIncomplete     Kind = "data_incomplete"
	KindCalculationFailure Kind = "calculation_failure"
	KindNoBenchmark        Kind = "no_benchmark"
	KindStaleQueued        Kind = "stale_queued"
	KindInvalidInput       Kind = "invalid_input"
	KindInternal           Kind = "internal"
)

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("app error (%s)", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Newf(kind Kind, code string, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
