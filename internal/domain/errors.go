package domain

import (
	"time"

	"github.com/cockroachdb/errors"
)

// RetryAfter is advertised to callers when the search backend is out of quota.
const RetryAfter = 900 * time.Second

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRateLimited  = errors.New("search rate limit exceeded")
)

// ErrorKind is the coarse category an error belongs to, used by transports to
// pick a status without looking at error text.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Kind classifies err by the sentinel it was marked with.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// InvalidInput returns a validation error whose message is safe to show to callers.
func InvalidInput(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}

// RateLimited marks cause as a rate-limit failure.
func RateLimited(cause error) error {
	if cause == nil {
		return ErrRateLimited
	}
	return errors.Mark(cause, ErrRateLimited)
}
