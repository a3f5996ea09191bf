package types

import (
	"context"
	"fmt"
	"time"
)

// User is the single entity managed by the store.
type User struct {
	ID       int64
	Username string
	Email    string
	Password string
}

// String renders the user the way every command prints it.
func (u User) String() string {
	return fmt.Sprintf("id=%d username='%s' email='%s' password='%s'", u.ID, u.Username, u.Email, u.Password)
}

// SeedUser is the record inserted by the initialize command.
func SeedUser() User {
	return User{
		Username: "bob",
		Email:    "bob@gmail.com",
		Password: "bobpass",
	}
}

// Pagination bounds list queries.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	// DefaultPageLimit is the list-users page size when --limit is omitted.
	DefaultPageLimit = 10
)

// Validate rejects negative windows. A zero limit is a valid, empty page.
func (p Pagination) Validate() error {
	if p.Limit < 0 || p.Offset < 0 {
		return ErrInvalidPagination
	}
	return nil
}

// UserRepository is the narrow persistence contract handlers rely on. Every
// implementation is bound to a single session (transaction).
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	ListPage(ctx context.Context, page Pagination) ([]User, error)
	Search(ctx context.Context, query string) ([]User, error)
	Create(ctx context.Context, user *User) (*User, error)
	UpdateEmail(ctx context.Context, user *User, email string) (*User, error)
	Delete(ctx context.Context, user *User) error
}

// SessionFunc runs inside a scoped session. Returning an error rolls the
// session back; returning nil commits it.
type SessionFunc func(ctx context.Context, repo UserRepository) error

// SessionProvider hands out scoped sessions and owns the schema lifecycle.
type SessionProvider interface {
	WithSession(ctx context.Context, fn SessionFunc) error
	ResetSchema(ctx context.Context) error
}

// ActivityRecord describes a completed mutation for audit logging.
type ActivityRecord struct {
	Verb       string
	ObjectType string
	ObjectID   string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink persists activity records.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// NopActivitySink discards every record.
type NopActivitySink struct{}

// Log implements ActivitySink.
func (NopActivitySink) Log(context.Context, ActivityRecord) error { return nil }

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Logger captures basic logging hooks used by handlers.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
