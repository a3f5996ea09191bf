package query

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-userstore/pkg/types"
)

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func missingSessionProvider() error {
	return goerrors.Wrap(types.ErrMissingSessionProvider, goerrors.CategoryInternal, "userstore: query not wired").
		WithCode(goerrors.CodeInternal)
}

// readUsers runs a read inside its own session and guarantees a non-nil slice.
func readUsers(ctx context.Context, sessions types.SessionProvider, read func(context.Context, types.UserRepository) ([]types.User, error)) ([]types.User, error) {
	if sessions == nil {
		return nil, missingSessionProvider()
	}
	var users []types.User
	err := sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		found, err := read(ctx, repo)
		if err != nil {
			return err
		}
		users = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []types.User{}
	}
	return users, nil
}
