package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/activity"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserCreateInput captures the payload for user creation.
type UserCreateInput struct {
	Username string
	Email    string
	Password string
	Result   *types.User
}

// Type implements gocommand.Message.
func (UserCreateInput) Type() string {
	return "command.user.create"
}

// Validate implements gocommand.Message.
func (input UserCreateInput) Validate() error {
	switch {
	case blank(input.Username):
		return ErrUsernameRequired
	case blank(input.Email):
		return ErrEmailRequired
	default:
		return nil
	}
}

// UserCreateCommand inserts a new user.
type UserCreateCommand struct {
	sessions types.SessionProvider
	clock    types.Clock
	sink     types.ActivitySink
	logger   types.Logger
}

// UserCreateCommandConfig wires dependencies for the create command.
type UserCreateCommandConfig struct {
	Sessions types.SessionProvider
	Clock    types.Clock
	Activity types.ActivitySink
	Logger   types.Logger
}

// NewUserCreateCommand constructs the create handler.
func NewUserCreateCommand(cfg UserCreateCommandConfig) *UserCreateCommand {
	return &UserCreateCommand{
		sessions: cfg.Sessions,
		clock:    safeClock(cfg.Clock),
		sink:     safeActivitySink(cfg.Activity),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserCreateInput] = (*UserCreateCommand)(nil)

// Execute inserts the user inside a session. A username or email collision
// rolls the session back and returns an error wrapping ErrUserExists.
func (c *UserCreateCommand) Execute(ctx context.Context, input UserCreateInput) error {
	if c.sessions == nil {
		return missingSessionProvider()
	}
	if err := input.Validate(); err != nil {
		return err
	}

	var created *types.User
	err := c.sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		user, err := repo.Create(ctx, &types.User{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		c.logger.Debug("user create rejected", "username", input.Username, "error", err)
		return err
	}

	logActivity(ctx, c.sink, c.logger, recordFor(c.clock, "user.created", *created))
	c.logger.Debug("user created", "user", activity.SanitizeUser(*created))

	if input.Result != nil {
		*input.Result = *created
	}
	return nil
}
