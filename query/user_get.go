package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserGetInput looks a user up by username.
type UserGetInput struct {
	Username string
}

// Type implements gocommand.Message.
func (UserGetInput) Type() string {
	return "query.user.get"
}

// Validate implements gocommand.Message. Any username is a valid key; an
// unmatched one yields ErrUserNotFound.
func (UserGetInput) Validate() error {
	return nil
}

// UserGetQuery fetches a single user.
type UserGetQuery struct {
	sessions types.SessionProvider
	logger   types.Logger
}

// NewUserGetQuery constructs the lookup query.
func NewUserGetQuery(sessions types.SessionProvider, logger types.Logger) *UserGetQuery {
	return &UserGetQuery{
		sessions: sessions,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[UserGetInput, types.User] = (*UserGetQuery)(nil)

// Query returns the user or types.ErrUserNotFound.
func (q *UserGetQuery) Query(ctx context.Context, input UserGetInput) (types.User, error) {
	if q.sessions == nil {
		return types.User{}, missingSessionProvider()
	}
	if err := input.Validate(); err != nil {
		return types.User{}, err
	}
	var out types.User
	err := q.sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		user, err := repo.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		out = *user
		return nil
	})
	if err != nil {
		q.logger.Debug("user lookup failed", "username", input.Username, "error", err)
		return types.User{}, err
	}
	return out, nil
}
