package domain

import "fmt"

// Error types for consistent error handling across the backend.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates malformed user input, caught before any write.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrCollaborator indicates a failure of an external collaborator
// (persistence or AI service).
type ErrCollaborator struct {
	Service string
	Err     error
}

func (e *ErrCollaborator) Error() string {
	return fmt.Sprintf("collaborator error [%s]: %v", e.Service, e.Err)
}

func (e *ErrCollaborator) Unwrap() error {
	return e.Err
}

// ErrParse indicates an unparseable AI response. It is recovered
// locally by substituting a placeholder result and never reaches the
// HTTP surface.
type ErrParse struct {
	Source string
	Err    error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Source, e.Err)
}

func (e *ErrParse) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrUnauthorized indicates an invalid or missing token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict indicates an operation that would violate an invariant,
// such as deleting the last CASH payment method.
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
