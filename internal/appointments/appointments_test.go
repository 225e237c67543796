package appointments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/storage"
	"docspot/internal/store"
)

func seeded(t *testing.T) *store.Collection[Appointment] {
	t.Helper()
	c := Collection(store.New(storage.NewMemory(), nil))
	require.NoError(t, c.SaveAll(context.Background(), []Appointment{
		{ID: "apt-1", PatientID: "patient-1", DoctorID: "doctor-1", Date: "2026-01-02", Time: "10:00", Status: StatusConfirmed},
		{ID: "apt-2", PatientID: "patient-1", DoctorID: "doctor-2", Date: "2026-01-03", Time: "14:30", Status: StatusScheduled},
		{ID: "apt-3", PatientID: "patient-2", DoctorID: "doctor-1", Date: "2026-01-04", Time: "09:00", Status: StatusScheduled},
	}))
	return c
}

func TestValidate(t *testing.T) {
	ok := Appointment{PatientID: "p", DoctorID: "d", Date: "2026-03-01", Time: "09:30"}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name string
		edit func(*Appointment)
	}{
		{"missing doctor", func(a *Appointment) { a.DoctorID = "" }},
		{"bad date", func(a *Appointment) { a.Date = "03/01/2026" }},
		{"bad time", func(a *Appointment) { a.Time = "9am" }},
		{"bad status", func(a *Appointment) { a.Status = "lost" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ok
			tt.edit(&a)
			assert.Error(t, a.Validate())
		})
	}
}

func TestBook(t *testing.T) {
	a := Book(Appointment{PatientID: "p", DoctorID: "d"})
	assert.True(t, strings.HasPrefix(a.ID, "appointment-"))
	assert.Equal(t, StatusScheduled, a.Status)
	assert.NotEmpty(t, a.CreatedAt)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	got, err := ForPatient(ctx, c, "patient-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = ForDoctor(ctx, c, "doctor-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = ForUser(ctx, c, "doctor-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "apt-2", got[0].ID)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	c := seeded(t)

	a, err := SetStatus(ctx, c, "apt-2", StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, a.Status)

	stored, _, err := c.Get(ctx, "apt-2")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)

	_, err = SetStatus(ctx, c, "apt-2", "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = SetStatus(ctx, c, "apt-404", StatusCancelled)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
