package model

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or is not
	// owned by the caller. Ownership failures are not distinguished so
	// that existence never leaks across users.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when an operation violates the
	// interview lifecycle, e.g. continuing or ending an ended session.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict is returned when a concurrent writer modified the
	// entity between read and write. The caller may retry.
	ErrConflict = errors.New("concurrent modification")
)

var (
	// ErrRemoteUnavailable marks transient question service failures
	// (network errors, timeouts). No local state was mutated, the same
	// call is safe to retry.
	ErrRemoteUnavailable = errors.New("question service unavailable")
	// ErrRemoteRejected marks input the question service refused.
	ErrRemoteRejected = errors.New("question service rejected input")
	// ErrRemoteSessionExpired marks a remote session id the question
	// service no longer recognizes. The interview must be restarted.
	ErrRemoteSessionExpired = errors.New("question service session expired")
)
