// Package cli maps userstore commands to the service handlers and prints
// their outcomes.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-userstore/activity"
	"github.com/goliatone/go-userstore/adapter/glogger"
	"github.com/goliatone/go-userstore/config"
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/goliatone/go-userstore/service"
	"github.com/goliatone/go-userstore/store"
	"github.com/google/uuid"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// CLI is the kong grammar. Global flags override the USERSTORE_ environment.
type CLI struct {
	Driver   string `help:"Database driver (sqlite or postgres)." placeholder:"DRIVER"`
	DSN      string `name:"dsn" help:"Database DSN; a file path for sqlite." placeholder:"DSN"`
	DebugSQL bool   `name:"debug-sql" help:"Print every SQL statement to stderr."`
	Verbose  bool   `short:"v" help:"Enable verbose logging."`

	Initialize  InitializeCmd  `cmd:"" help:"Recreate the database and insert a default user (bob)."`
	GetUser     GetUserCmd     `cmd:"" help:"Get a user by username."`
	GetAllUsers GetAllUsersCmd `cmd:"" help:"Get all users."`
	ChangeEmail ChangeEmailCmd `cmd:"" help:"Change a user's email."`
	CreateUser  CreateUserCmd  `cmd:"" help:"Create a new user."`
	DeleteUser  DeleteUserCmd  `cmd:"" help:"Delete a user by username."`
	SearchUser  SearchUserCmd  `cmd:"" help:"Search for users by partial username or email match."`
	ListUsers   ListUsersCmd   `cmd:"" help:"List users with pagination support."`
}

func (c *CLI) apply(cfg *config.Config) {
	if c.Driver != "" {
		cfg.Database.Driver = c.Driver
	}
	if c.DSN != "" {
		cfg.Database.DSN = c.DSN
	}
	if c.DebugSQL {
		cfg.Database.Debug = true
	}
	if c.Verbose {
		cfg.Verbose = true
	}
}

// App is bound to every command's Run method.
type App struct {
	ctx     context.Context
	out     io.Writer
	service *service.Service
	logger  types.Logger
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// Run parses args, executes one command and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var root CLI
	exitCode := -1
	parser, err := kong.New(&root,
		kong.Name("userstore"),
		kong.Description("CRUD and search operations against a single-table user store."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.UsageOnError(),
		kong.Vars{"default_limit": strconv.Itoa(types.DefaultPageLimit)},
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		return exitFailure
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	root.apply(cfg)
	if kctx.Command() == "initialize" {
		// the schema is recreated anyway
		cfg.Database.AutoMigrate = true
	}

	logger := newLogger(cfg.Verbose)
	provider, err := store.Open(ctx, cfg.Database,
		store.WithLogger(logger),
		store.WithDebugWriter(stderr),
	)
	if err != nil {
		logger.Error("open store failed", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Error("close store failed", err)
		}
	}()

	app := &App{
		ctx: ctx,
		out: stdout,
		service: service.New(service.Config{
			Sessions:     provider,
			ActivitySink: activity.NewLoggerSink(logger),
			Logger:       logger,
		}),
		logger: logger,
	}
	logger.Debug("command selected", "command", kctx.Command(), "driver", cfg.Database.Driver)

	if err := kctx.Run(app); err != nil {
		logger.Error("command failed", err, "command", kctx.Command())
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func newLogger(verbose bool) types.Logger {
	if !verbose {
		return types.NopLogger{}
	}
	return glogger.NewPretty("cli", "invocation_id", uuid.NewString())
}
