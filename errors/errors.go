// Package errors provides error handling for zappy.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to errors
//
// Usage:
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "export ZAPPY_API_KEY=<key>")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"
	"io"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors shared across zappy.
// Wrap these with errors.Wrap() or errors.Mark() to add context while preserving the type.
// Is matches leaf errors by type and message, so New("missing API credential")
// elsewhere would also count as ErrMissingCredential; never reuse these messages.
var (
	// ErrMissingCredential indicates the API key needed for an authenticated call is not configured
	ErrMissingCredential = New("missing API credential")

	// ErrMalformedResponse indicates the service answered with a payload that breaks its own contract
	ErrMalformedResponse = New("malformed response")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrInvalidArgument indicates a command argument was rejected before any request was made
	ErrInvalidArgument = New("invalid argument")
)

// IsMissingCredential checks if an error is or wraps ErrMissingCredential
func IsMissingCredential(err error) bool {
	return err != nil && Is(err, ErrMissingCredential)
}

// IsMalformedResponse checks if an error is or wraps ErrMalformedResponse
func IsMalformedResponse(err error) bool {
	return err != nil && Is(err, ErrMalformedResponse)
}

// NewMalformedResponseError marks a formatted message as ErrMalformedResponse
func NewMalformedResponseError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMalformedResponse)
}

// Fprint writes err followed by any attached hints, one per line.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
