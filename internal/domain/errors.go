package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrSelfJoin  = errors.New("cannot join your own carpool")
)

// ValidationError reports a malformed or missing input field. It is detected
// before any storage call happens, so nothing is persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a state-machine or capacity violation. CurrentStatus
// carries the status the join request actually held when the operation failed,
// so callers can explain why (e.g. a double-clicked approval).
type ConflictError struct {
	Reason        string
	CurrentStatus JoinRequestStatus
}

func (e *ConflictError) Error() string {
	if e.CurrentStatus != "" {
		return fmt.Sprintf("%s (current status: %s)", e.Reason, e.CurrentStatus)
	}
	return e.Reason
}

func NewCarpoolFullError() *ConflictError {
	return &ConflictError{Reason: "carpool is full"}
}

func NewAlreadyRequestedError(status JoinRequestStatus) *ConflictError {
	return &ConflictError{Reason: "a join request for this carpool already exists", CurrentStatus: status}
}

func NewNotPendingError(status JoinRequestStatus) *ConflictError {
	return &ConflictError{Reason: "join request is not pending", CurrentStatus: status}
}

func NewNotApprovedError(status JoinRequestStatus) *ConflictError {
	return &ConflictError{Reason: "passenger is not an approved member of this carpool", CurrentStatus: status}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
