package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/persist"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthAPI struct {
	mu      sync.Mutex
	result  *domain.AuthResult
	err     error
	release chan struct{} // when set, Login blocks until closed
	calls   int
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	s.mu.Lock()
	s.calls++
	release := s.release
	s.mu.Unlock()
	if release != nil {
		<-release
	}
	return s.result, s.err
}

func (s *stubAuthAPI) Signup(ctx context.Context, form domain.SignupForm) (*domain.AuthResult, error) {
	return s.result, s.err
}

func buyer() *domain.AuthResult {
	return &domain.AuthResult{
		User:  domain.User{ID: "u1", FirstName: "Anita", Email: "anita@example.com", Role: domain.RoleBuyer},
		Token: "tok-abc",
	}
}

func TestSessionLoginSuccess(t *testing.T) {
	snapshots := persist.NewMemoryStore()
	session := NewSessionStore(&stubAuthAPI{result: buyer()}, snapshots, "visitor-1", zerolog.Nop())

	user, err := session.Login(context.Background(), "anita@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "tok-abc", session.Token())

	var saved domain.Session
	key := domain.SnapshotKey(domain.SnapshotSession, "visitor-1")
	require.NoError(t, snapshots.Load(context.Background(), key, &saved))
	assert.Equal(t, "tok-abc", saved.Token)
}

func TestSessionLoginFailureLeavesStateUnchanged(t *testing.T) {
	session := NewSessionStore(&stubAuthAPI{err: errors.New("Invalid credentials")}, persist.NewMemoryStore(), "visitor-1", zerolog.Nop())

	_, err := session.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, "Invalid credentials", session.Err())
	assert.False(t, session.Loading())
}

func TestSessionHydratesFromDurableStorage(t *testing.T) {
	snapshots := persist.NewMemoryStore()
	ctx := context.Background()
	key := domain.SnapshotKey(domain.SnapshotSession, "visitor-1")
	require.NoError(t, snapshots.Save(ctx, key, domain.Session{
		User:  &domain.User{ID: "u1", Role: domain.RoleBuyer},
		Token: "tok-xyz",
	}))

	session := NewSessionStore(&stubAuthAPI{}, snapshots, "visitor-1", zerolog.Nop())
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "tok-xyz", session.Token())
}

func TestSessionLogoutClearsStateAndStorage(t *testing.T) {
	snapshots := persist.NewMemoryStore()
	session := NewSessionStore(&stubAuthAPI{result: buyer()}, snapshots, "visitor-1", zerolog.Nop())
	ctx := context.Background()

	_, err := session.Login(ctx, "a@b.com", "secret")
	require.NoError(t, err)

	session.Logout(ctx)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())

	var saved domain.Session
	key := domain.SnapshotKey(domain.SnapshotSession, "visitor-1")
	assert.ErrorIs(t, snapshots.Load(ctx, key, &saved), domain.ErrNotFound)
}

// A login response that lands after a logout must not resurrect the cleared
// session.
func TestSessionStaleLoginAfterLogoutIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	api := &stubAuthAPI{result: buyer(), release: release}
	session := NewSessionStore(api, persist.NewMemoryStore(), "visitor-1", zerolog.Nop())
	ctx := context.Background()

	done := make(chan struct{})
	var loginUser *domain.User
	var loginErr error
	go func() {
		loginUser, loginErr = session.Login(ctx, "a@b.com", "secret")
		close(done)
	}()

	// Let the login reach the blocked backend call, then log out.
	time.Sleep(20 * time.Millisecond)
	session.Logout(ctx)

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("login did not resolve")
	}

	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())
	// The raced-out caller gets a refusal, never a usable identity.
	assert.Nil(t, loginUser)
	assert.ErrorIs(t, loginErr, domain.ErrAuthSuperseded)
}

// With two racing attempts, only the latest dispatched resolution is applied.
func TestSessionLastWriterWins(t *testing.T) {
	release := make(chan struct{})
	api := &stubAuthAPI{result: buyer(), release: release}
	session := NewSessionStore(api, persist.NewMemoryStore(), "visitor-1", zerolog.Nop())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		session.Login(ctx, "first@b.com", "secret")
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)

	// A second attempt supersedes the first while it is still in flight.
	api.mu.Lock()
	api.release = nil
	api.result = &domain.AuthResult{User: domain.User{ID: "u2", Role: domain.RoleBuyer}, Token: "tok-2"}
	api.mu.Unlock()

	_, err := session.Login(ctx, "second@b.com", "secret")
	require.NoError(t, err)

	close(release)
	<-done

	user := session.User()
	require.NotNil(t, user)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, "tok-2", session.Token())
}
