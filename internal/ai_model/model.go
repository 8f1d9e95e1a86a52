package ai_model

import (
	"context"
	"errors"
	"fmt"
)

// Gateway estimates the nutritional content of a food photo.
type Gateway interface {
	// Analyze returns the trimmed model reply. An empty reply with a nil
	// error means the model produced nothing usable.
	Analyze(ctx context.Context, image []byte) (string, error)
}

type ErrorKind int

const (
	Unknown ErrorKind = iota
	RateLimited
	ServiceUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case ServiceUnavailable:
		return "service_unavailable"
	default:
		return "unknown"
	}
}

// DiagnosticLimit caps the error text shown to end users.
const DiagnosticLimit = 180

// Error is the classified failure returned by a Gateway.
type Error struct {
	Kind ErrorKind
	Err  error
}

func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Diagnostic is the underlying message cut to DiagnosticLimit characters.
func (e *Error) Diagnostic() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return Truncate(msg, DiagnosticLimit)
}

// KindOf reports the classification of err; unclassified errors are Unknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
