package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/activity"
	"github.com/goliatone/go-userstore/pkg/types"
)

// UserChangeEmailInput identifies the user and the replacement email.
type UserChangeEmailInput struct {
	Username string
	Email    string
	Result   *types.User
}

// Type implements gocommand.Message.
func (UserChangeEmailInput) Type() string {
	return "command.user.change_email"
}

// Validate implements gocommand.Message. The username is not checked: an
// unknown or blank username is reported as ErrUserNotFound.
func (input UserChangeEmailInput) Validate() error {
	if blank(input.Email) {
		return ErrEmailRequired
	}
	return nil
}

// UserChangeEmailCommand replaces a user's email address.
type UserChangeEmailCommand struct {
	sessions types.SessionProvider
	clock    types.Clock
	sink     types.ActivitySink
	logger   types.Logger
}

// UserChangeEmailCommandConfig wires dependencies for the change email command.
type UserChangeEmailCommandConfig struct {
	Sessions types.SessionProvider
	Clock    types.Clock
	Activity types.ActivitySink
	Logger   types.Logger
}

// NewUserChangeEmailCommand constructs the change email handler.
func NewUserChangeEmailCommand(cfg UserChangeEmailCommandConfig) *UserChangeEmailCommand {
	return &UserChangeEmailCommand{
		sessions: cfg.Sessions,
		clock:    safeClock(cfg.Clock),
		sink:     safeActivitySink(cfg.Activity),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[UserChangeEmailInput] = (*UserChangeEmailCommand)(nil)

// Execute looks the user up and stores the new email in the same session.
// Returns ErrUserNotFound when the username is unknown. An email that
// collides with another user fails with an error wrapping ErrUserExists.
func (c *UserChangeEmailCommand) Execute(ctx context.Context, input UserChangeEmailInput) error {
	if c.sessions == nil {
		return missingSessionProvider()
	}
	if err := input.Validate(); err != nil {
		return err
	}

	var previous string
	var updated *types.User
	err := c.sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		user, err := repo.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		previous = user.Email
		updated, err = repo.UpdateEmail(ctx, user, input.Email)
		return err
	})
	if err != nil {
		c.logger.Debug("email change rejected", "username", input.Username, "error", err)
		return err
	}

	logActivity(ctx, c.sink, c.logger, recordFor(c.clock, "user.email_changed", *updated,
		activity.WithData(map[string]any{"previous_email": previous}),
	))

	if input.Result != nil {
		*input.Result = *updated
	}
	return nil
}
