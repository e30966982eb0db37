package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserInactive   = errors.New("user account is inactive")
	ErrDuplicateUser  = errors.New("phone or email already in use")
	ErrRoleNotAllowed = errors.New("role not allowed for caller")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Persistence and infrastructure errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrLockNotHeld   = errors.New("lock is held by another request")
	ErrGatewayFailed = errors.New("payment gateway request failed")
	ErrBadSignature  = errors.New("payment signature mismatch")
)

// ErrorKind classifies failures for the transport layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindForbidden
	KindSoftGate
	KindNotFound
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindSoftGate:
		return "soft_gate"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Soft gate flags returned to clients instead of an error status.
const (
	FlagNoValidRecord = "no_valid_record"
	FlagNoCurrentFlat = "no_current_flat"
)

// Error is a classified workflow failure. Code selects the user facing message.
type Error struct {
	Kind   ErrorKind
	Code   Code
	Flag   string
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and code so that sentinels below
// survive re-wrapping with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Message returns the user facing text for the error code.
func (e *Error) Message() string {
	return e.Code.Message()
}

// WithCause returns a copy of e carrying err as its cause.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// Forbidden is returned when the caller holds none of the acceptable roles.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden}
}

// Validation builds a user correctable failure reported under non_field_errors.
func Validation(code Code) *Error {
	return &Error{Kind: KindValidation, Code: code}
}

// FieldErrors builds a validation failure with per-field messages.
func FieldErrors(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Code: CodeSomethingWentWrong, Fields: fields}
}

// NotFound is returned when a filtered fetch comes back empty.
func NotFound() *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound}
}

// SoftGate signals that a role is held but its linked record is missing.
func SoftGate(flag string, code Code) *Error {
	return &Error{Kind: KindSoftGate, Code: code, Flag: flag}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeSomethingWentWrong, Err: err}
}

// Context resolver outcomes.
var (
	ErrNoCurrentFlat          = SoftGate(FlagNoCurrentFlat, CodeCurrentFlatNotFound)
	ErrNoValidGuardRecord     = SoftGate(FlagNoValidRecord, CodeNotValidGuardRecord)
	ErrNoValidCommitteeRecord = SoftGate(FlagNoValidRecord, CodeNotValidCommitteeRecord)
)

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed), errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionExpired):
		return KindUnauthorized
	}
	return KindInternal
}

// AsError classifies any error into an *Error.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	switch KindOf(err) {
	case KindNotFound:
		return NotFound().WithCause(err)
	case KindUnauthorized:
		return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Err: err}
	}
	return Internal(err)
}
