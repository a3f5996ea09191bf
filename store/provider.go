package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-userstore/config"
	"github.com/goliatone/go-userstore/migrations"
	"github.com/goliatone/go-userstore/pkg/types"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"
)

// Provider owns the database handle and scopes every unit of work in a
// transaction. It implements types.SessionProvider.
type Provider struct {
	db      *bun.DB
	dialect migrations.Dialect
	logger  types.Logger
}

// ProviderOption customizes a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	logger      types.Logger
	debugWriter io.Writer
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger types.Logger) ProviderOption {
	return func(o *providerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDebugWriter redirects bundebug output when SQL debugging is enabled.
func WithDebugWriter(w io.Writer) ProviderOption {
	return func(o *providerOptions) {
		if w != nil {
			o.debugWriter = w
		}
	}
}

var _ types.SessionProvider = (*Provider)(nil)

var registerModels sync.Once

// NewProvider wraps an already opened Bun database.
func NewProvider(db *bun.DB, dialect migrations.Dialect, opts ...ProviderOption) (*Provider, error) {
	if db == nil {
		return nil, errors.New("store: db required")
	}
	options := applyOptions(opts)
	return &Provider{
		db:      db,
		dialect: dialect,
		logger:  options.logger,
	}, nil
}

// persistenceConfig hands cfg to go-persistence-bun with the driver
// normalized. SQL debugging stays with the provider's own query hook so its
// output follows WithDebugWriter.
type persistenceConfig struct {
	config.Database
	dialect migrations.Dialect
}

func (c persistenceConfig) GetDriver() string { return string(c.dialect) }
func (c persistenceConfig) GetDebug() bool    { return false }

// Open connects to the configured database, verifies it answers within the
// ping timeout and brings the schema up to date (or validates it when
// automatic migrations are disabled).
func Open(ctx context.Context, cfg config.Database, opts ...ProviderOption) (*Provider, error) {
	dialect, err := migrations.ParseDialect(cfg.GetDriver())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "userstore: invalid database driver").
			WithCode(goerrors.CodeBadRequest)
	}
	options := applyOptions(opts)

	sqldb, err := openSQL(dialect, cfg.GetDSN())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: open database").
			WithCode(goerrors.CodeInternal)
	}

	registerModels.Do(func() {
		persistence.RegisterModel((*Record)(nil))
	})
	client, err := persistence.New(persistenceConfig{Database: cfg, dialect: dialect}, sqldb, bunDialect(dialect))
	if err != nil {
		_ = sqldb.Close()
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: open database").
			WithCode(goerrors.CodeInternal)
	}
	db := client.DB()
	if cfg.GetDebug() {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.WithWriter(options.debugWriter),
		))
	}

	provider, err := NewProvider(db, dialect, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := provider.ping(ctx, cfg.GetPingTimeout()); err != nil {
		_ = provider.Close()
		return nil, err
	}

	if cfg.GetAutoMigrate() {
		source, err := migrations.Source()
		if err != nil {
			_ = provider.Close()
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: load migrations").
				WithCode(goerrors.CodeInternal)
		}
		client.RegisterDialectMigrations(
			source,
			persistence.WithDialectSourceLabel("."),
			persistence.WithValidationTargets("postgres", "sqlite"),
		)
		if err := client.ValidateDialects(ctx); err != nil {
			provider.logger.Error("migration dialect validation failed", err)
		}
		err = client.Migrate(ctx)
		if err == nil {
			if report := client.Report(); report != nil && !report.IsZero() {
				provider.logger.Info("migrations applied", "report", report.String())
			}
		}
	} else {
		err = migrations.ValidateSchema(ctx, db.DB, dialect)
	}
	if err != nil {
		_ = provider.Close()
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: prepare schema").
			WithCode(goerrors.CodeInternal)
	}

	provider.logger.Debug("database opened", "driver", string(dialect), "auto_migrate", cfg.GetAutoMigrate())
	return provider, nil
}

func openSQL(dialect migrations.Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case migrations.DialectSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		sqldb.SetMaxOpenConns(1)
		return sqldb, nil
	case migrations.DialectPostgres:
		return sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("store: unsupported dialect %q", dialect)
	}
}

func bunDialect(dialect migrations.Dialect) schema.Dialect {
	if dialect == migrations.DialectPostgres {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}

func applyOptions(opts []ProviderOption) providerOptions {
	options := providerOptions{
		logger:      types.NopLogger{},
		debugWriter: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

func (p *Provider) ping(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.db.PingContext(pingCtx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: database unreachable").
			WithCode(goerrors.CodeInternal)
	}
	return nil
}

// WithSession runs fn inside a transaction bound to a fresh repository. The
// transaction commits when fn returns nil and rolls back on error or panic.
func (p *Provider) WithSession(ctx context.Context, fn types.SessionFunc) error {
	if fn == nil {
		return errors.New("store: session func required")
	}
	return p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		repo, err := NewRepository(RepositoryConfig{DB: p.db, Conn: tx})
		if err != nil {
			return err
		}
		return fn(ctx, repo)
	})
}

// ResetSchema drops the users table and recreates it empty from the Record
// model, restarting generated ids.
func (p *Provider) ResetSchema(ctx context.Context) error {
	err := p.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDropTable().Model((*Record)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewCreateTable().Model((*Record)(nil)).Exec(ctx)
		return err
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "userstore: reset schema").
			WithCode(goerrors.CodeInternal)
	}
	p.logger.Info("schema reset", "driver", string(p.dialect))
	return nil
}

// DB exposes the underlying Bun handle.
func (p *Provider) DB() *bun.DB {
	return p.db
}

// Dialect reports the backend the provider talks to.
func (p *Provider) Dialect() migrations.Dialect {
	return p.dialect
}

// Close releases the database handle.
func (p *Provider) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
