package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidIdentity = errors.New("invalid product identity")
)

// A ValidationError is returned when a required field is absent, empty or
// has the wrong type.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// A StorageError wraps a failure reported by the document database.
//
// Error returns the database text unchanged.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// A GatewayError is returned when the payment gateway rejects a request or
// cannot be reached. StatusCode is zero for transport failures.
type GatewayError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway: %v", e.Err)
	}
	if e.Code == "" {
		return fmt.Sprintf("payment gateway: status %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("payment gateway: %s: %s", e.Code, e.Description)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
