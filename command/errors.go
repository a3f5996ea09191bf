package command

import (
	"github.com/goliatone/go-userstore/pkg/types"
)

var (
	// ErrUsernameRequired indicates a username argument was blank.
	ErrUsernameRequired = types.ErrUsernameRequired
	// ErrEmailRequired indicates an email argument was blank.
	ErrEmailRequired = types.ErrEmailRequired
	// ErrUserNotFound indicates the requested user was not found.
	ErrUserNotFound = types.ErrUserNotFound
	// ErrUserExists indicates the username or email is already taken.
	ErrUserExists = types.ErrUserExists
)
