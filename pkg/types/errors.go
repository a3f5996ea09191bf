package types

import "errors"

var (
	// ErrUserNotFound indicates no user matched the lookup key.
	ErrUserNotFound = errors.New("userstore: user not found")
	// ErrUserExists indicates a username or email collided with an existing user.
	ErrUserExists = errors.New("userstore: username or email already taken")
	// ErrUsernameRequired indicates a username argument was blank.
	ErrUsernameRequired = errors.New("userstore: username required")
	// ErrEmailRequired indicates an email argument was blank.
	ErrEmailRequired = errors.New("userstore: email required")
	// ErrInvalidPagination indicates a negative limit or offset.
	ErrInvalidPagination = errors.New("userstore: limit and offset must be non-negative")
	// ErrMissingSessionProvider occurs when a handler was built without a session provider.
	ErrMissingSessionProvider = errors.New("userstore: missing session provider")
	// ErrServiceNotReady indicates the service lacks required dependencies.
	ErrServiceNotReady = errors.New("userstore: service not ready")
	// ErrMissingActivitySink occurs when an activity sink wrapper has no destination.
	ErrMissingActivitySink = errors.New("userstore: missing activity sink")
)
