package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a ledger failure. Every rejected operation carries exactly one.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindInvalidOperation Kind = "invalid_operation"
	KindInvalidState     Kind = "invalid_state"
	KindExpired          Kind = "expired"
	KindAlreadyVoted     Kind = "already_voted"
	KindInvalidArgument  Kind = "invalid_argument"
	KindDuplicate        Kind = "duplicate"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// StatusCode maps the kind onto the envelope error code.
func (k Kind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindInvalidOperation:
		return http.StatusForbidden
	case KindInvalidState, KindExpired, KindInvalidArgument:
		return http.StatusBadRequest
	case KindAlreadyVoted, KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed failure returned by every ledger operation.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error of the same kind with no message, so that
// errors.Is(err, &Error{Kind: KindNotFound}) works as a kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// Lifecycle causes. They are wrapped by InvalidState errors so callers can
// distinguish, for example, "not ready" from "already executed".
var (
	ErrNotReady           = errors.New("proposal is not ready for execution")
	ErrAlreadyExecuted    = errors.New("proposal already executed")
	ErrProposalClosed     = errors.New("proposal is not open for voting")
	ErrAlreadyRevoked     = errors.New("key already revoked")
	ErrAlreadyDistributed = errors.New("pair already distributed")
	ErrAlreadySold        = errors.New("listing already sold")
)

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// NotFound reports an unknown ID in a registry.
func NotFound(registry Registry, id EntityID) error {
	return newError(KindNotFound, fmt.Sprintf("%s %s not found", registry, id), nil)
}

// Unauthorized reports a sender that failed the ownership check.
func Unauthorized(msg string) error {
	return newError(KindUnauthorized, msg, nil)
}

// InvalidOperation reports an operation the sender may never perform on the record.
func InvalidOperation(msg string) error {
	return newError(KindInvalidOperation, msg, nil)
}

// InvalidState reports a transition that is illegal in the current lifecycle phase.
func InvalidState(msg string, cause error) error {
	return newError(KindInvalidState, msg, cause)
}

// Expired reports a failed temporal validity check.
func Expired(msg string) error {
	return newError(KindExpired, msg, nil)
}

// AlreadyVoted reports a second vote from the same sender.
func AlreadyVoted(id EntityID, sender Sender) error {
	return newError(KindAlreadyVoted, fmt.Sprintf("%s already voted on proposal %s", sender, id), nil)
}

// InvalidArgument reports malformed input.
func InvalidArgument(msg string) error {
	return newError(KindInvalidArgument, msg, nil)
}

// Duplicate reports a command that was already processed.
func Duplicate(msg string) error {
	return newError(KindDuplicate, msg, nil)
}

// KindOf extracts the Kind from err. The second result is false when err is not
// a ledger error (an infrastructure failure, for instance).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a ledger error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// StatusCode returns the envelope code for err: 0 for nil, 500 for errors that are
// not ledger errors.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}
	k, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	return k.StatusCode()
}
