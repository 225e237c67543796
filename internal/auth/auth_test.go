package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/storage"
	"docspot/internal/store"
	"docspot/internal/users"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(storage.NewMemory(), nil)
	return NewService(st), st
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	u, err := svc.Signup(ctx, "Alice", "alice@demo.com", "secret", users.RolePatient)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "user-"))
	assert.Equal(t, users.RolePatient, u.Role)
	assert.Equal(t, StateAnonymous, svc.State())
	assert.Nil(t, svc.Current())

	all, err := users.Collection(st).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	v, ok, err := st.Backend().Get(ctx, "password_alice@demo.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret", string(v))
}

func TestSignupDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	_, err := svc.Signup(ctx, "Alice", "alice@demo.com", "secret", users.RolePatient)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Alice Again", "alice@demo.com", "other", users.RoleDoctor)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	all, err := users.Collection(st).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// the first credential is untouched
	_, err = svc.Authenticate(ctx, "alice@demo.com", "secret")
	assert.NoError(t, err)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Signup(ctx, "Alice", "alice@demo.com", "secret", "nurse")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Signup(ctx, "", "alice@demo.com", "secret", users.RolePatient)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Signup(ctx, "Alice", "alice@demo.com", "", users.RolePatient)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	created, err := svc.Signup(ctx, "Dr. Who", "who@demo.com", "tardis", users.RoleDoctor)
	require.NoError(t, err)

	u, err := svc.Login(ctx, "who@demo.com", "tardis")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, StateAuthenticated, svc.State())
	assert.Equal(t, created.ID, svc.Current().ID)

	v, ok, err := st.Backend().Get(ctx, SessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, string(v))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	_, err := svc.Signup(ctx, "Dr. Who", "who@demo.com", "tardis", users.RoleDoctor)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "who@demo.com", "dalek")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Equal(t, StateAnonymous, svc.State())

	_, err = svc.Login(ctx, "nobody@demo.com", "tardis")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "", "tardis")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, ok, err := st.Backend().Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginWithoutCredential(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	require.NoError(t, users.Collection(st).Add(ctx, users.User{ID: "user-1", Email: "ghost@demo.com", Role: users.RolePatient}))

	_, err := svc.Login(ctx, "ghost@demo.com", "")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestFailedLoginKeepsSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Signup(ctx, "A", "a@demo.com", "pw", users.RolePatient)
	require.NoError(t, err)
	a, err := svc.Login(ctx, "a@demo.com", "pw")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@demo.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, StateAuthenticated, svc.State())
	assert.Equal(t, a.ID, svc.Current().ID)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	_, err := svc.Signup(ctx, "A", "a@demo.com", "pw", users.RolePatient)
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@demo.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, StateAnonymous, svc.State())
	assert.Nil(t, svc.Current())

	_, ok, err := st.Backend().Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	_, err := svc.Signup(ctx, "A", "a@demo.com", "pw", users.RolePatient)
	require.NoError(t, err)
	a, err := svc.Login(ctx, "a@demo.com", "pw")
	require.NoError(t, err)

	// a fresh client over the same storage picks the session back up
	fresh := NewService(st)
	u, err := fresh.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, a.ID, u.ID)
	assert.Equal(t, StateAuthenticated, fresh.State())
}

func TestRestoreStaleSession(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)
	require.NoError(t, st.Backend().Set(ctx, SessionKey, []byte("user-gone")))

	u, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, StateAnonymous, svc.State())
}

func TestRestoreNoSession(t *testing.T) {
	svc, _ := newService(t)
	u, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	phone := "+1-555-0101"
	_, err := svc.UpdateProfile(ctx, users.Patch{Phone: &phone})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Signup(ctx, "A", "a@demo.com", "pw", users.RolePatient)
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@demo.com", "pw")
	require.NoError(t, err)

	u, err := svc.UpdateProfile(ctx, users.Patch{Phone: &phone, Allergies: []string{"Penicillin"}})
	require.NoError(t, err)
	assert.Equal(t, phone, u.Phone)
	assert.Equal(t, phone, svc.Current().Phone)

	stored, ok, err := users.Collection(st).Get(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, phone, stored.Phone)
	assert.Equal(t, []string{"Penicillin"}, stored.Allergies)
	assert.Equal(t, "a@demo.com", stored.Email)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}
