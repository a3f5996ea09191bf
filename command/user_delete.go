package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserDeleteInput identifies the user to remove. Result receives the deleted
// record.
type UserDeleteInput struct {
	Username string
	Result   *types.User
}

// Type implements gocommand.Message.
func (UserDeleteInput) Type() string {
	return "command.user.delete"
}

// Validate implements gocommand.Message.
func (UserDeleteInput) Validate() error {
	return nil
}

// UserDeleteCommand removes a user by username.
type UserDeleteCommand struct {
	sessions types.SessionProvider
	clock    types.Clock
	sink     types.ActivitySink
	logger   types.Logger
}

// UserDeleteCommandConfig wires dependencies for the delete command.
type UserDeleteCommandConfig struct {
	Sessions types.SessionProvider
	Clock    types.Clock
	Activity types.ActivitySink
	Logger   types.Logger
}

// NewUserDeleteCommand constructs the delete handler.
func NewUserDeleteCommand(cfg UserDeleteCommandConfig) *UserDeleteCommand {
	return &UserDeleteCommand{
		sessions: cfg.Sessions,
		clock:    safeClock(cfg.Clock),
		sink:     safeActivitySink(cfg.Activity),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserDeleteInput] = (*UserDeleteCommand)(nil)

// Execute deletes the user or returns ErrUserNotFound.
func (c *UserDeleteCommand) Execute(ctx context.Context, input UserDeleteInput) error {
	if c.sessions == nil {
		return missingSessionProvider()
	}
	if err := input.Validate(); err != nil {
		return err
	}

	var deleted *types.User
	err := c.sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		user, err := repo.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, user); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		c.logger.Debug("user delete rejected", "username", input.Username, "error", err)
		return err
	}

	logActivity(ctx, c.sink, c.logger, recordFor(c.clock, "user.deleted", *deleted))

	if input.Result != nil {
		*input.Result = *deleted
	}
	return nil
}
