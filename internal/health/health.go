package health

import (
	"context"
	"errors"
	"time"

	"docspot/internal/store"
)

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Data is one set of health metrics recorded for a patient on a date.
type Data struct {
	ID            string         `json:"id"`
	PatientID     string         `json:"patientId"`
	Date          string         `json:"date"`
	HeartRate     *int           `json:"heartRate,omitempty"`
	BloodPressure *BloodPressure `json:"bloodPressure,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	Height        *float64       `json:"height,omitempty"`
	Temperature   *float64       `json:"temperature,omitempty"`
	BloodSugar    *float64       `json:"bloodSugar,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     string         `json:"createdAt"`
}

func (d Data) GetID() string { return d.ID }

func Collection(st *store.Store) *store.Collection[Data] {
	return store.NewCollection[Data](st, store.HealthDataKey)
}

func Record(d Data) (Data, error) {
	if d.PatientID == "" {
		return d, errors.New("patientId required")
	}
	now := time.Now().UTC()
	d.ID = store.NewID("health")
	if d.Date == "" {
		d.Date = now.Format(time.DateOnly)
	}
	d.CreatedAt = now.Format(time.RFC3339)
	return d, nil
}

func ForPatient(ctx context.Context, c *store.Collection[Data], patientID string) ([]Data, error) {
	return c.Filter(ctx, func(d Data) bool { return d.PatientID == patientID })
}
