package store

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed user repository.
type RepositoryConfig struct {
	DB *bun.DB
	// Conn overrides the handle queries run on, typically the bun.Tx of the
	// current session. Defaults to DB.
	Conn bun.IDB
}

// Repository implements types.UserRepository using Bun.
type Repository struct {
	db   *bun.DB
	conn bun.IDB
}

// NewRepository constructs the user repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil && cfg.Conn == nil {
		return nil, errors.New("store: db or conn required")
	}
	conn := cfg.Conn
	if conn == nil {
		conn = cfg.DB
	}
	return &Repository{db: cfg.DB, conn: conn}, nil
}

var _ types.UserRepository = (*Repository)(nil)

// GetByUsername returns the user with the given username or types.ErrUserNotFound.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*types.User, error) {
	rec := &Record{}
	err := r.conn.NewSelect().
		Model(rec).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "get user")
	}
	return toDomain(rec), nil
}

// ListAll returns every user ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]types.User, error) {
	var records []Record
	err := r.conn.NewSelect().
		Model(&records).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "list users")
	}
	return toDomainList(records), nil
}

// ListPage returns one window of users ordered by id.
func (r *Repository) ListPage(ctx context.Context, page types.Pagination) ([]types.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.Limit == 0 {
		return []types.User{}, nil
	}
	var records []Record
	err := r.conn.NewSelect().
		Model(&records).
		OrderExpr("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "list users")
	}
	return toDomainList(records), nil
}

// Search returns users whose username or email contains query as a literal
// substring. An empty query matches every user.
func (r *Repository) Search(ctx context.Context, query string) ([]types.User, error) {
	pattern := "%" + escapeLike(query) + "%"
	var records []Record
	err := r.conn.NewSelect().
		Model(&records).
		Where("username LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!'", pattern, pattern).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "search users")
	}
	return toDomainList(records), nil
}

// Create inserts the user and returns it with the generated id.
func (r *Repository) Create(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, errors.New("store: user required")
	}
	rec := fromDomain(*user)
	rec.ID = 0
	_, err := r.conn.NewInsert().
		Model(rec).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "create user")
	}
	return toDomain(rec), nil
}

// UpdateEmail sets a new email on an existing user.
func (r *Repository) UpdateEmail(ctx context.Context, user *types.User, email string) (*types.User, error) {
	if user == nil {
		return nil, types.ErrUserNotFound
	}
	rec := fromDomain(*user)
	rec.Email = email
	res, err := r.conn.NewUpdate().
		Model(rec).
		Column("email").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, mapError(r.db, err, "update email")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, types.ErrUserNotFound
	}
	return toDomain(rec), nil
}

// Delete removes the user row.
func (r *Repository) Delete(ctx context.Context, user *types.User) error {
	if user == nil {
		return types.ErrUserNotFound
	}
	res, err := r.conn.NewDelete().
		Model(fromDomain(*user)).
		WherePK().
		Exec(ctx)
	if err != nil {
		return mapError(r.db, err, "delete user")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrUserNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
