package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/appointments"
	"docspot/internal/auth"
	"docspot/internal/prescriptions"
	"docspot/internal/storage"
	"docspot/internal/store"
	"docspot/internal/users"
)

func TestGenerateSampleData(t *testing.T) {
	ctx := context.Background()
	st := store.New(storage.NewMemory(), nil)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	wrote, err := GenerateSampleData(ctx, st, now)
	require.NoError(t, err)
	assert.True(t, wrote)

	all, err := users.Collection(st).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	apts, err := appointments.Collection(st).List(ctx)
	require.NoError(t, err)
	require.Len(t, apts, 2)
	assert.Equal(t, "2026-03-11", apts[0].Date)
	assert.Equal(t, "2026-03-12", apts[1].Date)

	presc, err := prescriptions.Collection(st).List(ctx)
	require.NoError(t, err)
	require.Len(t, presc, 1)
	assert.Len(t, presc[0].Medications, 2)

	svc := auth.NewService(st)
	for email, pw := range Passwords {
		_, err := svc.Authenticate(ctx, email, pw)
		assert.NoError(t, err, email)
	}
}

func TestGenerateSampleDataOnlyOnce(t *testing.T) {
	ctx := context.Background()
	st := store.New(storage.NewMemory(), nil)
	require.NoError(t, users.Collection(st).Add(ctx, users.User{ID: "user-1", Email: "x@demo.com", Role: users.RoleAdmin}))

	wrote, err := GenerateSampleData(ctx, st, time.Now())
	require.NoError(t, err)
	assert.False(t, wrote)

	all, err := users.Collection(st).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
