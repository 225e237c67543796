package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"docspot/internal"
	"docspot/internal/appointments"
	"docspot/internal/auth"
	"docspot/internal/prescriptions"
	"docspot/internal/seed"
	"docspot/internal/storage"
	"docspot/internal/store"
	"docspot/internal/users"
)

type app struct {
	store *store.Store
	auth  *auth.Service
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	log.SetLevel(log.WarnLevel)
	ctx := context.Background()

	a, closer, err := open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer()

	switch cmd {
	case "signup":
		err = a.commandSignup(ctx, args)
	case "login":
		err = a.commandLogin(ctx, args)
	case "logout":
		err = a.auth.Logout(ctx)
	case "whoami":
		err = a.commandWhoami()
	case "profile":
		err = a.commandProfile(ctx, args)
	case "users":
		err = a.commandUsers(ctx, args)
	case "appointments":
		err = a.commandAppointments(ctx)
	case "book":
		err = a.commandBook(ctx, args)
	case "status":
		err = a.commandStatus(ctx, args)
	case "prescribe":
		err = a.commandPrescribe(ctx, args)
	case "prescriptions":
		err = a.commandPrescriptions(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		closer()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		closer()
		os.Exit(1)
	}
}

// open wires the configured backend, seeds demo data and resumes the saved session.
func open(ctx context.Context) (*app, func(), error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := storage.Open(ctx, cfg, log.StandardLogger())
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := backend.Close(); err != nil {
			log.Error(err)
		}
	}

	st := store.New(backend, log.StandardLogger())
	if cfg.SeedDemo {
		if _, err := seed.GenerateSampleData(ctx, st, time.Now()); err != nil {
			closer()
			return nil, nil, err
		}
	}

	a := &app{store: st, auth: auth.NewService(st)}
	if _, err := a.auth.Restore(ctx); err != nil {
		closer()
		return nil, nil, err
	}
	return a, closer, nil
}

func (a *app) requireUser() (*users.User, error) {
	u := a.auth.Current()
	if u == nil {
		return nil, errors.New("not signed in, run `docspot login` first")
	}
	return u, nil
}

func (a *app) commandSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	role := fs.String("role", string(users.RolePatient), "patient|doctor|admin")
	fs.Parse(args)

	secret, err := readSecret(*password)
	if err != nil {
		return err
	}
	u, err := a.auth.Signup(ctx, *name, *email, secret, users.Role(*role))
	if err != nil {
		return err
	}
	fmt.Printf("created %s (%s), sign in with `docspot login --email %s`\n", u.ID, u.Role, u.Email)
	return nil
}

func (a *app) commandLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	fs.Parse(args)

	if strings.TrimSpace(*email) == "" {
		return errors.New("--email is required")
	}
	secret, err := readSecret(*password)
	if err != nil {
		return err
	}
	u, err := a.auth.Login(ctx, *email, secret)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func (a *app) commandWhoami() error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	return printJSON(u)
}

func (a *app) commandProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	var patch users.Patch
	name := fs.String("name", "", "Full name")
	phone := fs.String("phone", "", "Phone number")
	address := fs.String("address", "", "Postal address")
	dob := fs.String("dob", "", "Date of birth (YYYY-MM-DD)")
	blood := fs.String("blood-type", "", "Blood type")
	emergency := fs.String("emergency-contact", "", "Emergency contact")
	specialization := fs.String("specialization", "", "Specialization")
	department := fs.String("department", "", "Department")
	allergies := fs.String("allergies", "", "Comma separated allergies")
	fs.Parse(args)

	if _, err := a.requireUser(); err != nil {
		return err
	}

	// only flags given on the command line end up in the patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "phone":
			patch.Phone = phone
		case "address":
			patch.Address = address
		case "dob":
			patch.DateOfBirth = dob
		case "blood-type":
			patch.BloodType = blood
		case "emergency-contact":
			patch.EmergencyContact = emergency
		case "specialization":
			patch.Specialization = specialization
		case "department":
			patch.Department = department
		case "allergies":
			patch.Allergies = splitList(*allergies)
		}
	})

	u, err := a.auth.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	return printJSON(u)
}

func (a *app) commandUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	query := fs.String("q", "", "Search name, email or phone")
	role := fs.String("role", "", "Only users with this role")
	fs.Parse(args)

	col := users.Collection(a.store)
	var (
		all []users.User
		err error
	)
	if *role != "" {
		all, err = users.ByRole(ctx, col, users.Role(*role))
	} else {
		all, err = col.List(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(users.Search(all, *query))
}

func (a *app) commandAppointments(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	list, err := appointments.ForUser(ctx, appointments.Collection(a.store), u.ID)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func (a *app) commandBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	doctorID := fs.String("doctor", "", "Doctor id")
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	at := fs.String("time", "", "Time (HH:MM)")
	kind := fs.String("type", appointments.Types[0], "Appointment type")
	notes := fs.String("notes", "", "Notes for the doctor")
	fs.Parse(args)

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	doctor, ok, err := users.Collection(a.store).Get(ctx, *doctorID)
	if err != nil {
		return err
	}
	if !ok || doctor.Role != users.RoleDoctor {
		return fmt.Errorf("no doctor with id %q", *doctorID)
	}

	apt := appointments.Appointment{
		PatientID: u.ID, PatientName: u.Name,
		DoctorID: doctor.ID, DoctorName: doctor.Name,
		Date: *date, Time: *at, Type: *kind, Notes: *notes,
	}
	if err := apt.Validate(); err != nil {
		return err
	}
	apt = appointments.Book(apt)
	if err := appointments.Collection(a.store).Add(ctx, apt); err != nil {
		return err
	}
	return printJSON(apt)
}

func (a *app) commandStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.String("id", "", "Appointment id")
	status := fs.String("status", "", "scheduled|confirmed|completed|cancelled")
	fs.Parse(args)

	if _, err := a.requireUser(); err != nil {
		return err
	}
	apt, err := appointments.SetStatus(ctx, appointments.Collection(a.store), *id, appointments.Status(*status))
	if err != nil {
		return err
	}
	return printJSON(apt)
}

// medsFlag collects repeated --med name:dosage:frequency:duration values.
type medsFlag []prescriptions.Medication

func (m *medsFlag) String() string { return fmt.Sprint(len(*m)) }

func (m *medsFlag) Set(v string) error {
	parts := strings.SplitN(v, ":", 5)
	for len(parts) < 5 {
		parts = append(parts, "")
	}
	*m = append(*m, prescriptions.Medication{
		Name: parts[0], Dosage: parts[1], Frequency: parts[2], Duration: parts[3], Instructions: parts[4],
	})
	return nil
}

func (a *app) commandPrescribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prescribe", flag.ExitOnError)
	patientID := fs.String("patient", "", "Patient id")
	notes := fs.String("notes", "", "Notes")
	var meds medsFlag
	fs.Var(&meds, "med", "name:dosage:frequency:duration[:instructions], repeatable")
	fs.Parse(args)

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	if u.Role != users.RoleDoctor {
		return errors.New("only doctors can prescribe")
	}
	patient, ok, err := users.Collection(a.store).Get(ctx, *patientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no patient with id %q", *patientID)
	}

	p, err := prescriptions.Issue(prescriptions.Prescription{
		PatientID: patient.ID, PatientName: patient.Name,
		DoctorID: u.ID, DoctorName: u.Name,
		Medications: meds, Notes: *notes,
	})
	if err != nil {
		return err
	}
	if err := prescriptions.Collection(a.store).Add(ctx, p); err != nil {
		return err
	}
	return printJSON(p)
}

func (a *app) commandPrescriptions(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	col := prescriptions.Collection(a.store)
	var list []prescriptions.Prescription
	if u.Role == users.RoleDoctor {
		list, err = prescriptions.ForDoctor(ctx, col, u.ID)
	} else {
		list, err = prescriptions.ForPatient(ctx, col, u.ID)
	}
	if err != nil {
		return err
	}
	return printJSON(list)
}

func readSecret(given string) (string, error) {
	secret := strings.TrimSpace(given)
	if secret != "" {
		return secret, nil
	}
	fmt.Print("Password: ")
	bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Print("\n")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(bytes), nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUsage() {
	fmt.Print(`docspot CLI

Usage:
	docspot signup --name "Jane Doe" --email jane@example.com [--password secret] [--role patient|doctor|admin]
	docspot login --email patient@demo.com [--password secret]
	docspot logout
	docspot whoami
	docspot profile [--name N] [--phone P] [--address A] [--dob YYYY-MM-DD] [--blood-type T] [--allergies a,b]
	docspot users [--q term] [--role patient|doctor|admin]
	docspot appointments
	docspot book --doctor doctor-1 --date 2030-01-02 --time 09:30 [--type Consultation] [--notes text]
	docspot status --id <appointment-id> --status confirmed
	docspot prescribe --patient patient-1 --med "Ibuprofen:200mg:As needed:5 days" [--med ...]
	docspot prescriptions

Storage is chosen with STORE_DRIVER (default file, STORE_PATH docspot.json).
`)
}
