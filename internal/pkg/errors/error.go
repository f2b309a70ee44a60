package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal server error")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrBadRequest     = errors.New("bad request")
)

// StoreError reports a failed remote table operation (list, insert or
// update). The adapter surfaces failures once and never retries.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps a remote persistence failure.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// SyncError is a banner-grade condition raised by the lead collection
// when a remote confirmation fails. The optimistic local mutation it
// refers to is not rolled back.
type SyncError struct {
	Op      string
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// NewSyncError wraps a store failure with a user-facing message.
func NewSyncError(op, message string, err error) *SyncError {
	return &SyncError{Op: op, Message: message, Err: err}
}

// AIError reports a failed or unusable enrichment response. Enrichment
// failures never touch the lead collection.
type AIError struct {
	Op  string
	Err error
}

func (e *AIError) Error() string {
	return fmt.Sprintf("ai %s failed: %v", e.Op, e.Err)
}

func (e *AIError) Unwrap() error { return e.Err }

// NewAIError wraps an enrichment failure.
func NewAIError(op string, err error) *AIError {
	return &AIError{Op: op, Err: err}
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
