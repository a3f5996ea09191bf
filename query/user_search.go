package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserSearchInput carries the substring to look for. An empty Query matches
// every user.
type UserSearchInput struct {
	Query string
}

// Type implements gocommand.Message.
func (UserSearchInput) Type() string {
	return "query.user.search"
}

// Validate implements gocommand.Message.
func (UserSearchInput) Validate() error {
	return nil
}

// UserSearchQuery matches users whose username or email contains the query.
type UserSearchQuery struct {
	sessions types.SessionProvider
	logger   types.Logger
}

// NewUserSearchQuery constructs the search query.
func NewUserSearchQuery(sessions types.SessionProvider, logger types.Logger) *UserSearchQuery {
	return &UserSearchQuery{
		sessions: sessions,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[UserSearchInput, []types.User] = (*UserSearchQuery)(nil)

// Query returns the matches ordered by id.
func (q *UserSearchQuery) Query(ctx context.Context, input UserSearchInput) ([]types.User, error) {
	users, err := readUsers(ctx, q.sessions, func(ctx context.Context, repo types.UserRepository) ([]types.User, error) {
		return repo.Search(ctx, input.Query)
	})
	if err != nil {
		return nil, err
	}
	q.logger.Debug("users searched", "query", input.Query, "count", len(users))
	return users, nil
}
