package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-userstore/pkg/types"
)

// Store is an in-memory types.SessionProvider. Each session works on a copy
// of the data which replaces the committed state only when the session
// function returns nil, so failed sessions leave no trace. It is only
// intended for tests.
type Store struct {
	mu     sync.Mutex
	users  map[int64]types.User
	nextID int64

	// Resets counts ResetSchema calls.
	Resets int
	// FailReset makes ResetSchema fail with the given error.
	FailReset error
}

// NewStore provisions an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:  make(map[int64]types.User),
		nextID: 1,
	}
}

var _ types.SessionProvider = (*Store)(nil)

// WithSession runs fn against a snapshot and commits it on success.
func (s *Store) WithSession(ctx context.Context, fn types.SessionFunc) error {
	if fn == nil {
		return errors.New("memory: session func required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := &repository{users: cloneUsers(s.users), nextID: s.nextID}
	if err := fn(ctx, repo); err != nil {
		return err
	}
	s.users = repo.users
	s.nextID = repo.nextID
	return nil
}

// ResetSchema drops every user and restarts id assignment.
func (s *Store) ResetSchema(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resets++
	if s.FailReset != nil {
		return s.FailReset
	}
	s.users = make(map[int64]types.User)
	s.nextID = 1
	return nil
}

// Users returns the committed users ordered by id.
func (s *Store) Users() []types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedUsers(s.users)
}

// Seed commits users directly, assigning ids in order.
func (s *Store) Seed(users ...types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range users {
		user.ID = s.nextID
		s.nextID++
		s.users[user.ID] = user
	}
}

type repository struct {
	users  map[int64]types.User
	nextID int64
}

func (r *repository) GetByUsername(_ context.Context, username string) (*types.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copy := user
			return &copy, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (r *repository) ListAll(context.Context) ([]types.User, error) {
	return sortedUsers(r.users), nil
}

func (r *repository) ListPage(_ context.Context, page types.Pagination) ([]types.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	all := sortedUsers(r.users)
	if page.Offset >= len(all) {
		return []types.User{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset:end], nil
}

func (r *repository) Search(_ context.Context, query string) ([]types.User, error) {
	out := make([]types.User, 0)
	for _, user := range sortedUsers(r.users) {
		if strings.Contains(user.Username, query) || strings.Contains(user.Email, query) {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *repository) Create(_ context.Context, input *types.User) (*types.User, error) {
	if input == nil {
		return nil, errors.New("memory: user required")
	}
	if err := r.checkUnique(0, input.Username, input.Email); err != nil {
		return nil, err
	}
	user := *input
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	copy := user
	return &copy, nil
}

func (r *repository) UpdateEmail(_ context.Context, input *types.User, email string) (*types.User, error) {
	if input == nil {
		return nil, types.ErrUserNotFound
	}
	user, ok := r.users[input.ID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	if err := r.checkUnique(user.ID, "", email); err != nil {
		return nil, err
	}
	user.Email = email
	r.users[user.ID] = user
	copy := user
	return &copy, nil
}

func (r *repository) Delete(_ context.Context, input *types.User) error {
	if input == nil {
		return types.ErrUserNotFound
	}
	if _, ok := r.users[input.ID]; !ok {
		return types.ErrUserNotFound
	}
	delete(r.users, input.ID)
	return nil
}

func (r *repository) checkUnique(skipID int64, username, email string) error {
	for id, user := range r.users {
		if id == skipID {
			continue
		}
		if username != "" && user.Username == username {
			return fmt.Errorf("%w: username %q", types.ErrUserExists, username)
		}
		if email != "" && user.Email == email {
			return fmt.Errorf("%w: email %q", types.ErrUserExists, email)
		}
	}
	return nil
}

func cloneUsers(src map[int64]types.User) map[int64]types.User {
	dst := make(map[int64]types.User, len(src))
	for id, user := range src {
		dst[id] = user
	}
	return dst
}

func sortedUsers(src map[int64]types.User) []types.User {
	out := make([]types.User, 0, len(src))
	for _, user := range src {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
