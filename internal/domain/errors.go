package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalogue errors
	ErrMsgUnknownItem   = "unknown item"
	ErrMsgDuplicateItem = "duplicate item"

	// Claim errors
	ErrMsgAlreadyDiscovered = "item already discovered"
	ErrMsgInsufficientRank  = "insufficient rank"
	ErrMsgLocationMismatch  = "location proof mismatch"

	// Authorization errors
	ErrMsgNotAuthorized = "not authorized"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgProfileExists   = "profile already exists"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnknownItem   = errors.New(ErrMsgUnknownItem)
	ErrDuplicateItem = errors.New(ErrMsgDuplicateItem)

	ErrAlreadyDiscovered = errors.New(ErrMsgAlreadyDiscovered)
	ErrInsufficientRank  = errors.New(ErrMsgInsufficientRank)
	ErrLocationMismatch  = errors.New(ErrMsgLocationMismatch)

	ErrNotAuthorized = errors.New(ErrMsgNotAuthorized)

	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrProfileExists   = errors.New(ErrMsgProfileExists)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
