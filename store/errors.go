package store

import (
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

const pgUniqueViolation = "23505"

// mapError converts driver failures into the store's error vocabulary.
// Missing rows become types.ErrUserNotFound, unique violations wrap
// types.ErrUserExists and everything else is an internal error.
func mapError(db *bun.DB, err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
		return types.ErrUserNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", types.ErrUserExists, err)
	}
	mapped := err
	if db != nil {
		mapped = repository.MapDatabaseError(err, repository.DetectDriver(db))
	}
	if repository.IsDuplicatedKey(mapped) {
		return fmt.Errorf("%w: %w", types.ErrUserExists, err)
	}
	return goerrors.Wrap(mapped, goerrors.CategoryInternal, "userstore: "+op+" failed").
		WithCode(goerrors.CodeInternal)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return repository.IsDuplicatedKey(err)
}
