// Package shared holds cross-cutting domain primitives: the error
// taxonomy, session handling, request context helpers and pagination.
package shared

import "errors"

// Client-observable error taxonomy. Services return these (usually
// wrapped) and the HTTP layer maps them onto status codes.
var (
	// ErrValidation indicates rejected input: missing fields, numeric
	// ranges, empty line items.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden indicates a role-gated action attempted by an
	// ineligible user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition indicates a status-machine precondition
	// violation on the entity itself.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrPrecondition indicates the action requires another entity in a
	// specific state, e.g. an order from an unapproved quotation.
	ErrPrecondition = errors.New("precondition failed")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrUnauthorized indicates a missing, expired or revoked token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
