// internal/fault/fault.go
//
// Typed error taxonomy shared by the registry, master store, and content
// layer.
//
// Context
// -------
// Components raise one of four kinds; the HTTP layer maps them to status
// codes and user-safe messages.  Kinds, not messages, drive the mapping, so
// internal detail never leaks to the client:
//
//   • Validation     – missing or malformed caller input (400).
//   • Authentication – bad credentials or inactive account (401).  The
//     message is always the same generic string so callers cannot probe
//     which check failed.
//   • Configuration  – the master record is missing data the operation
//     requires, e.g. a servant admin without a connection string (500).
//   • Upstream       – a tenant or master database is unreachable (502).
//
// Error messages must never carry connection strings or passwords.  Use
// Redact for anything that might be a credential.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport-level mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindConfiguration
	KindUpstream
)

// Error pairs a Kind with a caller-safe message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed caller input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Authentication returns the one generic credential failure.  The message
// is fixed so unknown-user and wrong-password are indistinguishable.
func Authentication() *Error {
	return &Error{Kind: KindAuthentication, Msg: "invalid credentials"}
}

// Configuration reports a data-integrity problem in the master database.
func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// Upstream wraps a database or network failure as transient.
func Upstream(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf walks the error chain and returns the first Kind found, or
// KindUnknown when the chain holds no *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind anywhere in its chain.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// Redact replaces a sensitive value with a fixed marker for diagnostics.
// Connection strings and passwords go through here before any log call.
func Redact(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}
