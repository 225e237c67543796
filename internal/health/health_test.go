package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/storage"
	"docspot/internal/store"
)

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	c := Collection(store.New(storage.NewMemory(), nil))

	_, err := Record(Data{})
	assert.Error(t, err)

	hr := 72
	d, err := Record(Data{PatientID: "patient-1", HeartRate: &hr, BloodPressure: &BloodPressure{Systolic: 120, Diastolic: 80}})
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, d))

	got, err := ForPatient(ctx, c, "patient-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].HeartRate)
	assert.Equal(t, 72, *got[0].HeartRate)
	assert.Equal(t, 80, got[0].BloodPressure.Diastolic)
	assert.Nil(t, got[0].Weight)
}
