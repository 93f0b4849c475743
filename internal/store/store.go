// Package store implements the in-memory social graph aggregate and its
// mutation/query API: users, posts, conversations, stories, notifications
// and settings, persisted as a whole after every mutation.
//
// Views (feed order, unread counts, active stories) are derived on demand
// and never cached. Display-time lookups are total: a dangling user
// reference resolves to the deleted-user sentinel instead of failing.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sadat/internal/models"
	"sadat/internal/observability"
	"sadat/internal/persist"

	"github.com/google/uuid"
)

// Store owns the whole aggregate. All mutation goes through its methods;
// there is no ambient global state, so tests construct isolated instances.
//
// The logical actor is a single local user, but the presentation adapter
// serves concurrent requests, so a mutex guards the aggregate.
type Store struct {
	mu      sync.Mutex
	state   *models.State
	adapter persist.Adapter
	log     *observability.StoreLogger

	now          func() time.Time
	newID        func(prefix string) string
	defaultTheme string

	subs   map[int]chan Change
	subsMu sync.Mutex
	nextID int
}

// Option customizes a Store at construction time.
type Option func(*Store)

// WithClock replaces the wall clock. Tests freeze it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the ID generator. Tests use a deterministic one.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithDefaultTheme sets the theme used when initializing a fresh state.
func WithDefaultTheme(theme string) Option {
	return func(s *Store) { s.defaultTheme = theme }
}

// New loads the snapshot from the adapter, or initializes a default state
// (one admin user, empty collections, light theme) when the slot is empty
// or malformed.
func New(ctx context.Context, adapter persist.Adapter, opts ...Option) (*Store, error) {
	s := &Store{
		adapter: adapter,
		log:     observability.NewStoreLogger(),
		now:     func() time.Time { return time.Now().UTC() },
		subs:    map[int]chan Change{},
	}
	s.newID = func(prefix string) string {
		return prefix + "_" + uuid.NewString()
	}
	s.defaultTheme = models.ThemeLight
	for _, opt := range opts {
		opt(s)
	}

	state, err := adapter.Load(ctx)
	switch {
	case err == nil:
		s.state = state
	case errors.Is(err, persist.ErrNoSnapshot):
		s.state = s.defaultState()
		if err := adapter.Save(ctx, s.state); err != nil {
			return nil, fmt.Errorf("save initial state: %w", err)
		}
	default:
		return nil, err
	}

	return s, nil
}

// defaultState builds the first-run state: a single admin user who is also
// the current user.
func (s *Store) defaultState() *models.State {
	state := models.NewState(s.defaultTheme)
	admin := &models.User{
		ID:        s.newID("u"),
		Name:      "Admin",
		Username:  "admin",
		Bio:       "Local administrator",
		Avatar:    models.DefaultAvatar,
		Role:      models.RoleAdmin,
		Saved:     []string{},
		CreatedAt: s.now(),
	}
	state.Users = append(state.Users, admin)
	state.CurrentUserID = admin.ID
	return state
}

// Reset drops the current state and reinitializes the default one.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.defaultState()
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpReset, Entity: "store"})
	return nil
}

// persistLocked writes the whole state through the adapter. Callers hold mu.
func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.adapter.Save(ctx, s.state); err != nil {
		s.log.LogError(ctx, "persist", err)
		return models.NewInternalError(err)
	}
	return nil
}

// resolveUser returns a display-safe copy of the user with the given ID:
// the sentinel for unknown IDs, and the default avatar filled in. Callers
// hold mu.
func (s *Store) resolveUser(id string) *models.User {
	for _, u := range s.state.Users {
		if u.ID == id {
			out := *u
			if out.Avatar == "" {
				out.Avatar = models.DefaultAvatar
			}
			return &out
		}
	}
	return models.DeletedUser(id)
}

// userByID returns the live user record or nil. Callers hold mu.
func (s *Store) userByID(id string) *models.User {
	for _, u := range s.state.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// userByUsername returns the live user record or nil. Callers hold mu.
func (s *Store) userByUsername(username string) *models.User {
	for _, u := range s.state.Users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// postByID returns the live post record or nil. Callers hold mu.
func (s *Store) postByID(id string) *models.Post {
	for _, p := range s.state.Posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
