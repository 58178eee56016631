package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, func() *SessionService) {
	t.Helper()
	repos, store := newTestRepos(t)
	bus := newTestBus()
	svc := NewSessionService(context.Background(), repos.Customers, store, bus, testLogger())

	// reload simulates a server restart over the same store.
	reload := func() *SessionService {
		return NewSessionService(context.Background(), repos.Customers, store, bus, testLogger())
	}
	return svc, reload
}

func TestSessionService_RegisterAndLogin(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	customer, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
	assert.Empty(t, customer.PasswordHash, "public view must not carry the hash")

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, customer.ID, current.ID)

	svc.Logout(ctx)
	_, ok = svc.Current()
	assert.False(t, ok)

	loggedIn, err := svc.Login(ctx, "dana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, loggedIn.ID)
}

func TestSessionService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "dana@example.com", "different")
	assert.Error(t, err)
}

func TestSessionService_LoginEmailIsExactMatch(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)
	svc.Logout(ctx)

	_, err = svc.Login(ctx, "Dana@Example.com", "hunter22")
	assert.Error(t, err, "email comparison is case sensitive")

	_, err = svc.Login(ctx, "dana@example.com", "wrong")
	assert.Error(t, err)
}

func TestSessionService_SurvivesRestart(t *testing.T) {
	svc, reload := newSessionFixture(t)
	ctx := context.Background()

	customer, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)

	restarted := reload()
	current, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, customer.ID, current.ID)
}

func TestSessionService_LogoutClearsMarkerAcrossRestart(t *testing.T) {
	svc, reload := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)
	svc.Logout(ctx)

	restarted := reload()
	_, ok := restarted.Current()
	assert.False(t, ok)
}

func TestSessionService_DropEndsMatchingSessionOnly(t *testing.T) {
	svc, _ := newSessionFixture(t)
	ctx := context.Background()

	customer, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	require.NoError(t, err)

	svc.Drop(ctx, "someone-else")
	_, ok := svc.Current()
	assert.True(t, ok)

	svc.Drop(ctx, customer.ID)
	_, ok = svc.Current()
	assert.False(t, ok)
}
