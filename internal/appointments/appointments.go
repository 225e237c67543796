package appointments

import (
	"context"
	"errors"
	"time"

	"docspot/internal"
	"docspot/internal/store"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled}

// Types offered when booking.
var Types = []string{"Regular Checkup", "Follow-up", "Consultation", "Emergency", "Specialist Visit"}

var ErrInvalidStatus = errors.New("invalid appointment status")

func ValidStatus(s Status) bool {
	return internal.Contains(Statuses, s)
}

// Appointment links a patient and a doctor. Names are captured at booking time and not kept in sync.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	DoctorID    string `json:"doctorId"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
	Type        string `json:"type"`
	Status      Status `json:"status"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (a Appointment) GetID() string { return a.ID }

// Validate checks the fields a booking needs.
func (a Appointment) Validate() error {
	if a.PatientID == "" || a.DoctorID == "" {
		return errors.New("patientId and doctorId required")
	}
	if _, err := time.Parse(time.DateOnly, a.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", a.Time); err != nil {
		return errors.New("time must be HH:MM")
	}
	if a.Status != "" && !ValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	return nil
}

func Collection(st *store.Store) *store.Collection[Appointment] {
	return store.NewCollection[Appointment](st, store.AppointmentsKey)
}

// Book fills in id, status and creation time for a new appointment.
func Book(a Appointment) Appointment {
	a.ID = store.NewID("appointment")
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return a
}

func ForPatient(ctx context.Context, c *store.Collection[Appointment], patientID string) ([]Appointment, error) {
	return c.Filter(ctx, func(a Appointment) bool { return a.PatientID == patientID })
}

func ForDoctor(ctx context.Context, c *store.Collection[Appointment], doctorID string) ([]Appointment, error) {
	return c.Filter(ctx, func(a Appointment) bool { return a.DoctorID == doctorID })
}

// ForUser returns the appointments the user takes part in on either side.
func ForUser(ctx context.Context, c *store.Collection[Appointment], userID string) ([]Appointment, error) {
	return c.Filter(ctx, func(a Appointment) bool { return a.PatientID == userID || a.DoctorID == userID })
}

// SetStatus moves an appointment to status and returns the updated record.
func SetStatus(ctx context.Context, c *store.Collection[Appointment], id string, status Status) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	a, ok, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrNotFound
	}
	a.Status = status
	if err := c.Update(ctx, a); err != nil {
		return nil, err
	}
	return &a, nil
}
