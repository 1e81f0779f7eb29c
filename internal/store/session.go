package store

import (
	"context"
	"errors"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/rs/zerolog"
)

// SessionStore holds the authenticated identity and bearer credential for
// one visitor. It hydrates from durable storage on construction so a page
// reload does not force re-authentication.
type SessionStore struct {
	emitter

	api       domain.AuthAPI
	snapshots domain.SnapshotStore
	key       string
	log       zerolog.Logger

	mu      sync.Mutex
	user    *domain.User
	token   string
	loading bool
	errMsg  string
	// seq orders async auth resolutions. Logout bumps it, so a login
	// response that lands after a logout is stale and discarded.
	seq uint64
}

func NewSessionStore(api domain.AuthAPI, snapshots domain.SnapshotStore, visitorID string, log zerolog.Logger) *SessionStore {
	s := &SessionStore{
		api:       api,
		snapshots: snapshots,
		key:       domain.SnapshotKey(domain.SnapshotSession, visitorID),
		log:       log.With().Str("store", "session").Logger(),
	}
	s.hydrate()
	return s
}

func (s *SessionStore) hydrate() {
	var saved domain.Session
	err := s.snapshots.Load(context.Background(), s.key, &saved)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("failed to hydrate session")
		}
		return
	}
	if saved.User != nil && saved.Token != "" {
		s.user = saved.User
		s.token = saved.Token
	}
}

func (s *SessionStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	result, err := s.api.Login(ctx, email, password)
	return s.applyAuthResult(ctx, seq, result, err)
}

func (s *SessionStore) Signup(ctx context.Context, form domain.SignupForm) (*domain.User, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	result, err := s.api.Signup(ctx, form)
	return s.applyAuthResult(ctx, seq, result, err)
}

// applyAuthResult commits an auth response unless a newer attempt or a
// logout superseded it (last writer wins on the async result).
func (s *SessionStore) applyAuthResult(ctx context.Context, seq uint64, result *domain.AuthResult, err error) (*domain.User, error) {
	s.mu.Lock()

	if seq != s.seq {
		s.mu.Unlock()
		s.log.Debug().Msg("discarding stale auth resolution")
		if err != nil {
			return nil, err
		}
		// A logout or newer attempt won the race; the credential is dropped
		// and the caller must not act on it.
		return nil, domain.ErrAuthSuperseded
	}

	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notify()
		return nil, err
	}

	user := result.User
	s.user = &user
	s.token = result.Token
	session := domain.Session{User: &user, Token: result.Token}
	s.mu.Unlock()

	if saveErr := s.snapshots.Save(ctx, s.key, session); saveErr != nil {
		s.log.Warn().Err(saveErr).Msg("failed to persist session")
	}
	s.notify()
	return &user, nil
}

// Logout clears the session and its persisted credential. Saving the cart
// and wishlist under the user's keys is the caller's job and must happen
// before this call.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.seq++ // invalidate any in-flight auth attempt
	s.user = nil
	s.token = ""
	s.errMsg = ""
	s.loading = false
	s.mu.Unlock()

	if err := s.snapshots.Delete(ctx, s.key); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.notify()
}

// Current returns a copy of the session state.
func (s *SessionStore) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var user *domain.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return domain.Session{User: user, Token: s.token}
}

func (s *SessionStore) User() *domain.User {
	return s.Current().User
}

func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
