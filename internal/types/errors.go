package types

import "fmt"

// ErrValidation indicates an upload was rejected before reaching the store
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates no analysis is stored under ID.
// Cause is set when a value existed but could not be decoded.
type ErrNotFound struct {
	ID    string
	Cause error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

func (e *ErrNotFound) Unwrap() error {
	return e.Cause
}

// ErrStorageDecode indicates a stored value is malformed
type ErrStorageDecode struct {
	Key   string
	Cause error
}

func (e *ErrStorageDecode) Error() string {
	return fmt.Sprintf("failed to decode stored value %s: %v", e.Key, e.Cause)
}

func (e *ErrStorageDecode) Unwrap() error {
	return e.Cause
}
