package service

import (
	"context"

	"github.com/goliatone/go-userstore/command"
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/goliatone/go-userstore/query"
)

// Service is the entry point for go-userstore. It wires the session provider,
// activity sink and logger supplied by the host into command/query facades.
type Service struct {
	cfg      Config
	commands Commands
	queries  Queries
}

// Commands exposes the service command handlers.
type Commands struct {
	Initialize      *command.InitializeCommand
	UserCreate      *command.UserCreateCommand
	UserChangeEmail *command.UserChangeEmailCommand
	UserDelete      *command.UserDeleteCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	UserGet     *query.UserGetQuery
	UserListAll *query.UserListAllQuery
	UserSearch  *query.UserSearchQuery
	UserPage    *query.UserPageQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun-backed provider, in-memory fakes, custom sinks).
type Config struct {
	Sessions     types.SessionProvider
	ActivitySink types.ActivitySink
	Clock        types.Clock
	Logger       types.Logger
	// Seed overrides the user inserted by the initialize command.
	Seed *types.User
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	s := &Service{cfg: normalizeConfig(cfg)}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil && s.cfg.Sessions != nil
}

// HealthCheck opens an empty session to confirm the provider is usable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	return s.cfg.Sessions.WithSession(ctx, func(context.Context, types.UserRepository) error {
		return nil
	})
}

// ActivitySink returns the configured sink.
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	return Commands{
		Initialize: command.NewInitializeCommand(command.InitializeCommandConfig{
			Sessions: s.cfg.Sessions,
			Seed:     s.cfg.Seed,
			Clock:    s.cfg.Clock,
			Activity: s.cfg.ActivitySink,
			Logger:   s.cfg.Logger,
		}),
		UserCreate: command.NewUserCreateCommand(command.UserCreateCommandConfig{
			Sessions: s.cfg.Sessions,
			Clock:    s.cfg.Clock,
			Activity: s.cfg.ActivitySink,
			Logger:   s.cfg.Logger,
		}),
		UserChangeEmail: command.NewUserChangeEmailCommand(command.UserChangeEmailCommandConfig{
			Sessions: s.cfg.Sessions,
			Clock:    s.cfg.Clock,
			Activity: s.cfg.ActivitySink,
			Logger:   s.cfg.Logger,
		}),
		UserDelete: command.NewUserDeleteCommand(command.UserDeleteCommandConfig{
			Sessions: s.cfg.Sessions,
			Clock:    s.cfg.Clock,
			Activity: s.cfg.ActivitySink,
			Logger:   s.cfg.Logger,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		UserGet:     query.NewUserGetQuery(s.cfg.Sessions, s.cfg.Logger),
		UserListAll: query.NewUserListAllQuery(s.cfg.Sessions, s.cfg.Logger),
		UserSearch:  query.NewUserSearchQuery(s.cfg.Sessions, s.cfg.Logger),
		UserPage:    query.NewUserPageQuery(s.cfg.Sessions, s.cfg.Logger),
	}
}
