package prescriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"docspot/internal/store"
)

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

type Prescription struct {
	ID          string       `json:"id"`
	PatientID   string       `json:"patientId"`
	DoctorID    string       `json:"doctorId"`
	PatientName string       `json:"patientName"`
	DoctorName  string       `json:"doctorName"`
	Medications []Medication `json:"medications"`
	Date        string       `json:"date"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

func (p Prescription) GetID() string { return p.ID }

var ErrNoMedications = errors.New("prescription needs at least one medication")

// Frequencies offered when prescribing.
var Frequencies = []string{
	"Once daily", "Twice daily", "Three times daily", "Four times daily",
	"Every 4 hours", "Every 6 hours", "Every 8 hours", "As needed",
}

func Collection(st *store.Store) *store.Collection[Prescription] {
	return store.NewCollection[Prescription](st, store.PrescriptionsKey)
}

// Issue drops blank medication rows, stamps id and dates, and rejects prescriptions left empty.
func Issue(p Prescription) (Prescription, error) {
	if p.PatientID == "" || p.DoctorID == "" {
		return p, errors.New("patientId and doctorId required")
	}
	meds := make([]Medication, 0, len(p.Medications))
	for _, m := range p.Medications {
		if strings.TrimSpace(m.Name) != "" {
			meds = append(meds, m)
		}
	}
	if len(meds) == 0 {
		return p, ErrNoMedications
	}

	now := time.Now().UTC()
	p.Medications = meds
	p.ID = store.NewID("prescription")
	if p.Date == "" {
		p.Date = now.Format(time.DateOnly)
	}
	p.CreatedAt = now.Format(time.RFC3339)
	return p, nil
}

func ForPatient(ctx context.Context, c *store.Collection[Prescription], patientID string) ([]Prescription, error) {
	return c.Filter(ctx, func(p Prescription) bool { return p.PatientID == patientID })
}

func ForDoctor(ctx context.Context, c *store.Collection[Prescription], doctorID string) ([]Prescription, error) {
	return c.Filter(ctx, func(p Prescription) bool { return p.DoctorID == doctorID })
}
