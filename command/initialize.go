package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-userstore/pkg/types"
)

// InitializeInput resets the store. Result receives the seeded user.
type InitializeInput struct {
	Result *types.User
}

// Type implements gocommand.Message.
func (InitializeInput) Type() string {
	return "command.store.initialize"
}

// Validate implements gocommand.Message.
func (InitializeInput) Validate() error {
	return nil
}

// InitializeCommand drops and recreates the schema, then inserts the seed user.
type InitializeCommand struct {
	sessions types.SessionProvider
	seed     types.User
	clock    types.Clock
	sink     types.ActivitySink
	logger   types.Logger
}

// InitializeCommandConfig wires dependencies for the initialize command. Seed
// defaults to types.SeedUser.
type InitializeCommandConfig struct {
	Sessions types.SessionProvider
	Seed     *types.User
	Clock    types.Clock
	Activity types.ActivitySink
	Logger   types.Logger
}

// NewInitializeCommand constructs the initialize handler.
func NewInitializeCommand(cfg InitializeCommandConfig) *InitializeCommand {
	seed := types.SeedUser()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return &InitializeCommand{
		sessions: cfg.Sessions,
		seed:     seed,
		clock:    safeClock(cfg.Clock),
		sink:     safeActivitySink(cfg.Activity),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[InitializeInput] = (*InitializeCommand)(nil)

// Execute wipes every user and leaves the seed user as the only record.
func (c *InitializeCommand) Execute(ctx context.Context, input InitializeInput) error {
	if c.sessions == nil {
		return missingSessionProvider()
	}

	if err := c.sessions.ResetSchema(ctx); err != nil {
		c.logger.Error("schema reset failed", err)
		return err
	}

	var seeded *types.User
	err := c.sessions.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		seed := c.seed
		user, err := repo.Create(ctx, &seed)
		if err != nil {
			return err
		}
		seeded = user
		return nil
	})
	if err != nil {
		c.logger.Error("seed insert failed", err, "username", c.seed.Username)
		return err
	}

	logActivity(ctx, c.sink, c.logger, recordFor(c.clock, "store.initialized", *seeded))
	c.logger.Info("store initialized", "seed", seeded.Username)

	if input.Result != nil {
		*input.Result = *seeded
	}
	return nil
}
