/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidFeedParameters is returned when a feed kind is invoked
	// without its required scoping parameter
	ErrInvalidFeedParameters = errors.New("invalid feed parameters")

	// ErrQueryFailed is returned when a store-level scan or lookup fails
	ErrQueryFailed = errors.New("query failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidFeedParametersError reports a feed request that cannot be built,
// e.g. a per-channel feed without a channel id. It is fatal to the request
// and never retried.
type InvalidFeedParametersError struct {
	Kind    string
	Missing string
}

func (e *InvalidFeedParametersError) Error() string {
	return fmt.Sprintf("feed kind %q requires a %s parameter", e.Kind, e.Missing)
}

func (e *InvalidFeedParametersError) Is(target error) bool {
	return target == ErrInvalidFeedParameters
}

// QueryError represents a store-level failure during a partition scan or a
// cache read/write. The engine surfaces it without retrying; retry policy
// belongs to the store client.
type QueryError struct {
	Operation string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Operation, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewInvalidFeedParametersError creates a new InvalidFeedParametersError
func NewInvalidFeedParametersError(kind, missing string) error {
	return &InvalidFeedParametersError{Kind: kind, Missing: missing}
}

// NewQueryError wraps a store failure with the operation that issued it
func NewQueryError(operation string, err error) error {
	return &QueryError{Operation: operation, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidFeedParameters checks if an error is an invalid feed parameters error
func IsInvalidFeedParameters(err error) bool {
	return errors.Is(err, ErrInvalidFeedParameters)
}

// IsQueryFailed checks if an error is a store-level query failure
func IsQueryFailed(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
