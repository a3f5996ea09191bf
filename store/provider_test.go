package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-userstore/config"
	"github.com/goliatone/go-userstore/migrations"
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestProvider_WithSessionCommits(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	err := provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		_, err := repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"})
		return err
	})
	require.NoError(t, err)

	require.Equal(t, []string{"alice"}, listUsernames(t, provider))
}

func TestProvider_WithSessionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)
	boom := errors.New("boom")

	err := provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		if _, err := repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, listUsernames(t, provider))
}

func TestProvider_WithSessionRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	require.Panics(t, func() {
		_ = provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
			_, _ = repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"})
			panic("kaboom")
		})
	})
	require.Empty(t, listUsernames(t, provider))
}

func TestProvider_DuplicateCreateLeavesNoPartialEffect(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	err := provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		_, err := repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"})
		return err
	})
	require.NoError(t, err)

	err = provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		if _, err := repo.Create(ctx, &types.User{Username: "carl", Email: "carl@example.com", Password: "pw"}); err != nil {
			return err
		}
		_, err := repo.Create(ctx, &types.User{Username: "alice", Email: "dup@example.com", Password: "pw"})
		return err
	})
	require.ErrorIs(t, err, types.ErrUserExists)
	require.Equal(t, []string{"alice"}, listUsernames(t, provider))
}

func TestProvider_ResetSchema(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)

	err := provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		_, err := repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"})
		return err
	})
	require.NoError(t, err)

	require.NoError(t, provider.ResetSchema(ctx))
	require.Empty(t, listUsernames(t, provider))
}

func TestProvider_ResetSchemaRestartsIDsAndKeepsConstraints(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)
	create := func(username, email string) (*types.User, error) {
		var created *types.User
		err := provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
			user, err := repo.Create(ctx, &types.User{Username: username, Email: email, Password: "pw"})
			created = user
			return err
		})
		return created, err
	}

	_, err := create("alice", "alice@example.com")
	require.NoError(t, err)
	_, err = create("carl", "carl@example.com")
	require.NoError(t, err)

	require.NoError(t, provider.ResetSchema(ctx))
	require.NoError(t, migrations.ValidateSchema(ctx, provider.DB().DB, migrations.DialectSQLite))

	first, err := create("bob", "bob@gmail.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)

	_, err = create("bob", "other@example.com")
	require.ErrorIs(t, err, types.ErrUserExists)
	_, err = create("other", "bob@gmail.com")
	require.ErrorIs(t, err, types.ErrUserExists)
}

func TestPersistenceConfig_NormalizesDriverAndLeavesDebugToProvider(t *testing.T) {
	cfg := persistenceConfig{
		Database: config.Database{Driver: "sqlite3", DSN: "users.db", Debug: true, PingTimeout: time.Second},
		dialect:  migrations.DialectSQLite,
	}

	require.Equal(t, "sqlite", cfg.GetDriver())
	require.False(t, cfg.GetDebug())
	require.Equal(t, "users.db", cfg.GetServer())
	require.Equal(t, time.Second, cfg.GetPingTimeout())
}

func TestProvider_WithSessionRequiresFunc(t *testing.T) {
	provider := newTestProvider(t)
	require.Error(t, provider.WithSession(context.Background(), nil))
}

func TestOpen_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	cfg := config.Database{
		Driver:      "sqlite",
		DSN:         filepath.Join(t.TempDir(), "users.db"),
		AutoMigrate: true,
		PingTimeout: time.Second,
	}

	provider, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, migrations.DialectSQLite, provider.Dialect())
	err = provider.WithSession(ctx, func(ctx context.Context, repo types.UserRepository) error {
		_, err := repo.Create(ctx, &types.User{Username: "alice", Email: "alice@example.com", Password: "pw"})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, provider.Close())

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.Equal(t, []string{"alice"}, listUsernames(t, reopened))
}

func TestOpen_DebugWritesSQL(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	provider, err := Open(ctx, config.Database{
		Driver:      "sqlite",
		DSN:         filepath.Join(t.TempDir(), "users.db"),
		Debug:       true,
		AutoMigrate: true,
	}, WithDebugWriter(&buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	listUsernames(t, provider)
	require.Contains(t, buf.String(), "SELECT")
}

func TestOpen_ValidatesSchemaWithoutAutoMigrate(t *testing.T) {
	_, err := Open(context.Background(), config.Database{
		Driver:      "sqlite",
		DSN:         filepath.Join(t.TempDir(), "users.db"),
		AutoMigrate: false,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "prepare schema")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "oracle", DSN: "x"})

	var richErr *goerrors.Error
	require.True(t, errors.As(err, &richErr))
	require.Equal(t, goerrors.CategoryValidation, richErr.Category)
}

func TestNewProvider_RequiresDB(t *testing.T) {
	_, err := NewProvider(nil, migrations.DialectSQLite)
	require.Error(t, err)
}

func TestProvider_RollbackOnQueryFailure(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	provider, err := NewProvider(db, migrations.DialectSQLite)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = provider.WithSession(context.Background(), func(ctx context.Context, repo types.UserRepository) error {
		_, err := repo.GetByUsername(ctx, "alice")
		return err
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, types.ErrUserNotFound)

	var richErr *goerrors.Error
	require.True(t, errors.As(err, &richErr))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvider_CommitOnSuccess(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	provider, err := NewProvider(db, migrations.DialectSQLite)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password"}).
		AddRow(1, "bob", "bob@gmail.com", "bobpass")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	mock.ExpectCommit()

	var got *types.User
	err = provider.WithSession(context.Background(), func(ctx context.Context, repo types.UserRepository) error {
		user, err := repo.GetByUsername(ctx, "bob")
		got = user
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "bob@gmail.com", got.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvider_BeginFailurePropagates(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	provider, err := NewProvider(db, migrations.DialectSQLite)
	require.NoError(t, err)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err = provider.WithSession(context.Background(), func(context.Context, types.UserRepository) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "database is locked")
	require.False(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	provider, err := NewProvider(newTestDB(t), migrations.DialectSQLite)
	require.NoError(t, err)
	return provider
}

func listUsernames(t *testing.T, provider *Provider) []string {
	t.Helper()
	var names []string
	err := provider.WithSession(context.Background(), func(ctx context.Context, repo types.UserRepository) error {
		users, err := repo.ListAll(ctx)
		names = usernames(users)
		return err
	})
	require.NoError(t, err)
	return names
}
