package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserListAllInput requests every user.
type UserListAllInput struct{}

// Type implements gocommand.Message.
func (UserListAllInput) Type() string {
	return "query.user.list_all"
}

// Validate implements gocommand.Message.
func (UserListAllInput) Validate() error {
	return nil
}

// UserListAllQuery returns the full user table ordered by id.
type UserListAllQuery struct {
	sessions types.SessionProvider
	logger   types.Logger
}

// NewUserListAllQuery constructs the list query.
func NewUserListAllQuery(sessions types.SessionProvider, logger types.Logger) *UserListAllQuery {
	return &UserListAllQuery{
		sessions: sessions,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[UserListAllInput, []types.User] = (*UserListAllQuery)(nil)

// Query returns all users; an empty store yields an empty slice.
func (q *UserListAllQuery) Query(ctx context.Context, _ UserListAllInput) ([]types.User, error) {
	users, err := readUsers(ctx, q.sessions, func(ctx context.Context, repo types.UserRepository) ([]types.User, error) {
		return repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	q.logger.Debug("users listed", "count", len(users))
	return users, nil
}

// UserPageInput requests one window of users.
type UserPageInput struct {
	Pagination types.Pagination
}

// Type implements gocommand.Message.
func (UserPageInput) Type() string {
	return "query.user.page"
}

// Validate implements gocommand.Message.
func (input UserPageInput) Validate() error {
	return input.Pagination.Validate()
}

// UserPageQuery returns users in id order bounded by limit and offset.
type UserPageQuery struct {
	sessions types.SessionProvider
	logger   types.Logger
}

// NewUserPageQuery constructs the paginated list query.
func NewUserPageQuery(sessions types.SessionProvider, logger types.Logger) *UserPageQuery {
	return &UserPageQuery{
		sessions: sessions,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[UserPageInput, []types.User] = (*UserPageQuery)(nil)

// Query validates the window and returns at most Limit users.
func (q *UserPageQuery) Query(ctx context.Context, input UserPageInput) ([]types.User, error) {
	if q.sessions == nil {
		return nil, missingSessionProvider()
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	users, err := readUsers(ctx, q.sessions, func(ctx context.Context, repo types.UserRepository) ([]types.User, error) {
		return repo.ListPage(ctx, input.Pagination)
	})
	if err != nil {
		return nil, err
	}
	q.logger.Debug("users paged",
		"limit", input.Pagination.Limit,
		"offset", input.Pagination.Offset,
		"count", len(users),
	)
	return users, nil
}
