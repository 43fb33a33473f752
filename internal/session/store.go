// Package session holds the authenticated user for the lifetime of the
// process and mirrors it to device-local storage. Views receive a *Store by
// injection and observe it through Subscribe; nothing reads it as a global.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/storage"
)

// KV is the subset of the device store the session needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	MultiSet(ctx context.Context, pairs ...storage.Pair) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// UserFetcher loads the current user from the backend.
type UserFetcher interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// State is an immutable snapshot of the session.
type State struct {
	User    *api.User
	Loading bool
}

// LoggedIn reports whether a user is present.
func (s State) LoggedIn() bool { return s.User != nil }

type Store struct {
	kv      KV
	fetcher UserFetcher
	log     *slog.Logger

	mu      sync.RWMutex
	user    *api.User
	token   string
	loading bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)
}

func New(kv KV, fetcher UserFetcher, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		kv:      kv,
		fetcher: fetcher,
		log:     log.With(slog.String("component", "session")),
		loading: true,
		subs:    map[int]func(State){},
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{User: copyUser(s.user), Loading: s.loading}
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the bearer token, or "" when logged out. It matches
// api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to be called with every new state. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	st := s.State()
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// replace swaps the whole record under the lock and notifies observers.
func (s *Store) replace(u *api.User, token *string, loading bool) {
	s.mu.Lock()
	s.user = copyUser(u)
	if token != nil {
		s.token = *token
	}
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

// Restore reads the persisted token and user. Any read or decode failure
// leaves the session logged out. Loading is cleared in every case.
func (s *Store) Restore(ctx context.Context) {
	u, token, err := s.readPersisted(ctx)
	if err != nil {
		s.log.Warn("auth state check failed", slog.Any("error", err))
		empty := ""
		s.replace(nil, &empty, false)
		return
	}
	s.replace(u, &token, false)
	if u != nil {
		s.log.Info("session restored", slog.String("user_id", u.ID))
	}
}

func (s *Store) readPersisted(ctx context.Context) (*api.User, string, error) {
	token, okToken, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, "", err
	}
	raw, okUser, err := s.kv.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, "", err
	}
	if !okToken || !okUser || token == "" || raw == "" {
		return nil, "", nil
	}
	var u api.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, "", fmt.Errorf("decode stored user: %w", err)
	}
	return &u, token, nil
}

// Login persists token and user together and sets the user.
func (s *Store) Login(ctx context.Context, u api.User, token string) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	err = s.kv.MultiSet(ctx,
		storage.Pair{Key: storage.KeyToken, Value: token},
		storage.Pair{Key: storage.KeyUser, Value: string(data)},
	)
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.replace(&u, &token, false)
	s.log.Info("logged in", slog.String("user_id", u.ID))
	return nil
}

// SetUser persists only the user record, keeping whatever token is already
// stored, and sets the user.
func (s *Store) SetUser(ctx context.Context, u api.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyUser, string(data)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.replace(&u, nil, false)
	return nil
}

// ApplyStreak stores the streak values the server just returned. longest is
// never allowed below current.
func (s *Store) ApplyStreak(ctx context.Context, current, longest int) error {
	u := s.User()
	if u == nil {
		return nil
	}
	if current < 0 {
		current = 0
	}
	u.CurrentStreak = current
	if longest > u.LongestStreak {
		u.LongestStreak = longest
	}
	if u.LongestStreak < current {
		u.LongestStreak = current
	}
	return s.SetUser(ctx, *u)
}

// Logout clears every persisted session key and the in-memory user. The user
// is cleared even when the storage removal fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	err := s.kv.MultiRemove(ctx, storage.SessionKeys...)
	empty := ""
	s.replace(nil, &empty, false)
	if err != nil {
		s.log.Error("logout: clear storage", slog.Any("error", err))
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// RefreshUser reloads the user from the backend. On any failure the previous
// user is returned unchanged and the error is only logged.
func (s *Store) RefreshUser(ctx context.Context) *api.User {
	prev := s.User()
	if s.fetcher == nil {
		return prev
	}
	u, err := s.fetcher.CurrentUser(ctx)
	if err != nil {
		s.log.Error("error refreshing user", slog.Any("error", err))
		return prev
	}
	if err := s.SetUser(ctx, *u); err != nil {
		s.log.Error("error persisting refreshed user", slog.Any("error", err))
		return prev
	}
	return s.User()
}

func copyUser(u *api.User) *api.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
