// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Kind classifies a failed polling cycle.
type Kind int

const (
	KindUnknown Kind = iota
	KindEndpointUnavailable
	KindMalformedResponse
	KindHomeworksNotFound
	KindNameNotFound
	KindStatusNotFound
	KindUnexpectedStatus
)

func (k Kind) String() string {
	switch k {
	case KindEndpointUnavailable:
		return "endpoint unavailable"
	case KindMalformedResponse:
		return "malformed response"
	case KindHomeworksNotFound:
		return "homeworks not found"
	case KindNameNotFound:
		return "name not found"
	case KindStatusNotFound:
		return "status not found"
	case KindUnexpectedStatus:
		return "unexpected status"
	default:
		return "unknown"
	}
}

// Error is a recoverable cycle error: one of the kinds above plus a human-readable detail.
type Error struct {
	Kind   Kind
	Detail string
	Err    error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a cycle error without an underlying cause.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// WrapError builds a cycle error that keeps cause reachable through errors.Is/As.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var hwErr *Error
	if errors.As(err, &hwErr) {
		return hwErr.Kind
	}
	return KindUnknown
}
