// Package errors provides custom error types for the whitelink system.
// These errors enable programmatic error checking around the three stores the
// bot keeps in sync: the link table on disk, Discord roles and the game
// server whitelist.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the whitelink system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport indicates the RCON connection could not be used
	ErrTransport = errors.New("transport failure")

	// ErrPersistence indicates the link table could not be read or written
	ErrPersistence = errors.New("persistence failure")

	// ErrPermission indicates a directory mutation could not be carried out
	ErrPermission = errors.New("permission denied")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TransportError represents a failed RCON connect or send.
type TransportError struct {
	Operation string // "dial", "execute" or "close"
	Address   string
	Command   string
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("rcon %s %s (%q): %v", e.Operation, e.Address, e.Command, e.Err)
	}
	return fmt.Sprintf("rcon %s %s: %v", e.Operation, e.Address, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a new TransportError
func NewTransportError(operation, address, command string, err error) *TransportError {
	return &TransportError{
		Operation: operation,
		Address:   address,
		Command:   command,
		Err:       err,
	}
}

// PersistenceError represents a failure reading or writing the link table.
type PersistenceError struct {
	Operation string // "read", "parse", "write"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("link table %s failed for %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("link table %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(operation, path string, err error) *PersistenceError {
	return &PersistenceError{Operation: operation, Path: path, Err: err}
}

// PermissionError represents a role mutation that could not be resolved or applied.
type PermissionError struct {
	Action   string // "add_role", "remove_role"
	MemberID string
	RoleID   string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *PermissionError) Error() string {
	msg := fmt.Sprintf("%s for member %s (role %s)", e.Action, e.MemberID, e.RoleID)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(action, memberID, roleID, message string, err error) *PermissionError {
	return &PermissionError{
		Action:   action,
		MemberID: memberID,
		RoleID:   roleID,
		Message:  message,
		Err:      err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransport checks if an error came from the RCON transport
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsPersistence checks if an error came from the link table store
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsPermission checks if an error is a role mutation failure
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsCanceled reports whether err is a cancellation, including a canceled
// context.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapPersistence wraps an error as a PersistenceError
func WrapPersistence(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewPersistenceError(operation, path, err)
}

// WrapTransport wraps an error as a TransportError
func WrapTransport(operation, address, command string, err error) error {
	if err == nil {
		return nil
	}
	return NewTransportError(operation, address, command, err)
}
