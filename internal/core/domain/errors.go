package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownKind indicates a catalogue kind that storedesk does not manage.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrRemoteUnavailable indicates every request variant against the remote
	// backend failed.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")

	// ErrRateLimited indicates the remote backend rejected the request with 429.
	ErrRateLimited = errors.New("rate limited")
)
