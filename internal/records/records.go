package records

import (
	"context"
	"errors"
	"time"

	"docspot/internal/store"
)

type MedicalRecord struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patientId"`
	DoctorID    string   `json:"doctorId"`
	PatientName string   `json:"patientName"`
	DoctorName  string   `json:"doctorName"`
	Date        string   `json:"date"`
	Diagnosis   string   `json:"diagnosis"`
	Symptoms    string   `json:"symptoms"`
	Treatment   string   `json:"treatment"`
	Notes       string   `json:"notes,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

func (r MedicalRecord) GetID() string { return r.ID }

func Collection(st *store.Store) *store.Collection[MedicalRecord] {
	return store.NewCollection[MedicalRecord](st, store.MedicalRecordsKey)
}

func Create(r MedicalRecord) (MedicalRecord, error) {
	if r.PatientID == "" || r.DoctorID == "" {
		return r, errors.New("patientId and doctorId required")
	}
	if r.Diagnosis == "" {
		return r, errors.New("diagnosis required")
	}
	now := time.Now().UTC()
	r.ID = store.NewID("record")
	if r.Date == "" {
		r.Date = now.Format(time.DateOnly)
	}
	r.CreatedAt = now.Format(time.RFC3339)
	return r, nil
}

func ForPatient(ctx context.Context, c *store.Collection[MedicalRecord], patientID string) ([]MedicalRecord, error) {
	return c.Filter(ctx, func(r MedicalRecord) bool { return r.PatientID == patientID })
}
