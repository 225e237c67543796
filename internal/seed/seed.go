// Package seed fills an empty store with the demo accounts and a little history for them.
package seed

import (
	"context"
	"time"

	"docspot/internal/appointments"
	"docspot/internal/auth"
	"docspot/internal/prescriptions"
	"docspot/internal/store"
	"docspot/internal/users"
)

// Demo passwords, by email.
var Passwords = map[string]string{
	"doctor@demo.com":       "doctor123",
	"michael.chen@demo.com": "doctor123",
	"patient@demo.com":      "patient123",
	"admin@demo.com":        "admin123",
}

// GenerateSampleData seeds the store unless it already holds users. It reports whether it wrote anything.
func GenerateSampleData(ctx context.Context, st *store.Store, now time.Time) (bool, error) {
	userCol := users.Collection(st)
	existing, err := userCol.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	created := now.UTC().Format(time.RFC3339)
	sample := []users.User{
		{
			ID: "doctor-1", Name: "Dr. Sarah Johnson", Email: "doctor@demo.com", Role: users.RoleDoctor,
			Phone: "+1-555-0101", Specialization: "Cardiology", LicenseNumber: "MD12345", Department: "Cardiology",
			CreatedAt: created,
		},
		{
			ID: "doctor-2", Name: "Dr. Michael Chen", Email: "michael.chen@demo.com", Role: users.RoleDoctor,
			Phone: "+1-555-0102", Specialization: "Dermatology", LicenseNumber: "MD12346", Department: "Dermatology",
			CreatedAt: created,
		},
		{
			ID: "patient-1", Name: "Alice Johnson", Email: "patient@demo.com", Role: users.RolePatient,
			Phone: "+1-555-0201", DateOfBirth: "1985-06-15", BloodType: "A+", Allergies: []string{"Penicillin"},
			EmergencyContact: "+1-555-0301", CreatedAt: created,
		},
		{
			ID: "admin-1", Name: "Admin User", Email: "admin@demo.com", Role: users.RoleAdmin,
			Phone: "+1-555-0001", CreatedAt: created,
		},
	}
	if err := userCol.SaveAll(ctx, sample); err != nil {
		return false, err
	}

	creds := auth.NewService(st)
	for _, u := range sample {
		if err := creds.SetPassword(ctx, u.Email, Passwords[u.Email]); err != nil {
			return false, err
		}
	}

	day := 24 * time.Hour
	sampleAppointments := []appointments.Appointment{
		{
			ID: "apt-1", PatientID: "patient-1", DoctorID: "doctor-1",
			PatientName: "Alice Johnson", DoctorName: "Dr. Sarah Johnson",
			Date: now.Add(day).Format(time.DateOnly), Time: "10:00", Type: "Regular Checkup",
			Status: appointments.StatusConfirmed, Notes: "Annual physical examination", CreatedAt: created,
		},
		{
			ID: "apt-2", PatientID: "patient-1", DoctorID: "doctor-2",
			PatientName: "Alice Johnson", DoctorName: "Dr. Michael Chen",
			Date: now.Add(2 * day).Format(time.DateOnly), Time: "14:30", Type: "Consultation",
			Status: appointments.StatusScheduled, Notes: "Skin consultation", CreatedAt: created,
		},
	}
	if err := appointments.Collection(st).SaveAll(ctx, sampleAppointments); err != nil {
		return false, err
	}

	samplePrescriptions := []prescriptions.Prescription{
		{
			ID: "presc-1", PatientID: "patient-1", DoctorID: "doctor-1",
			PatientName: "Alice Johnson", DoctorName: "Dr. Sarah Johnson",
			Medications: []prescriptions.Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily", Duration: "30 days", Instructions: "Take with food"},
				{Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily", Duration: "30 days", Instructions: "Take with meals"},
			},
			Date: now.Format(time.DateOnly), Notes: "Continue current medication regimen", CreatedAt: created,
		},
	}
	if err := prescriptions.Collection(st).SaveAll(ctx, samplePrescriptions); err != nil {
		return false, err
	}

	st.Logger().Infof("seeded %d demo users", len(sample))
	return true, nil
}
