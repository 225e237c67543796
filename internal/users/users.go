package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"docspot/internal"
	"docspot/internal/store"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

var Roles = []Role{RolePatient, RoleDoctor, RoleAdmin}

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrMissingIdentity = errors.New("name and email are required")
)

func ValidRole(r Role) bool {
	return internal.Contains(Roles, r)
}

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"` // email, used as the login name
	Role        Role   `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	// doctors
	Specialization string `json:"specialization,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Department     string `json:"department,omitempty"`
	// patients
	EmergencyContact string   `json:"emergencyContact,omitempty"`
	BloodType        string   `json:"bloodType,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	CreatedAt        string   `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }

// Patch carries the profile fields a user may change about themselves. Nil fields are left alone.
type Patch struct {
	Name             *string  `json:"name,omitempty"`
	Avatar           *string  `json:"avatar,omitempty"`
	Phone            *string  `json:"phone,omitempty"`
	Address          *string  `json:"address,omitempty"`
	DateOfBirth      *string  `json:"dateOfBirth,omitempty"`
	Specialization   *string  `json:"specialization,omitempty"`
	LicenseNumber    *string  `json:"licenseNumber,omitempty"`
	Department       *string  `json:"department,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
	BloodType        *string  `json:"bloodType,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
}

// Apply returns a copy of u with the patch merged in.
func (p Patch) Apply(u User) User {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Name, p.Name)
	set(&u.Avatar, p.Avatar)
	set(&u.Phone, p.Phone)
	set(&u.Address, p.Address)
	set(&u.DateOfBirth, p.DateOfBirth)
	set(&u.Specialization, p.Specialization)
	set(&u.LicenseNumber, p.LicenseNumber)
	set(&u.Department, p.Department)
	set(&u.EmergencyContact, p.EmergencyContact)
	set(&u.BloodType, p.BloodType)
	if p.Allergies != nil {
		u.Allergies = append([]string(nil), p.Allergies...)
	}
	return u
}

// Collection returns the users collection of st.
func Collection(st *store.Store) *store.Collection[User] {
	return store.NewCollection[User](st, store.UsersKey)
}

// New fills in an id and a creation timestamp. prefix is "user" for signups and
// the role name for records created by staff.
func New(prefix, name, email string, role Role) User {
	return User{
		ID:        store.NewID(prefix),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// FromEmail returns the first user with a matching email.
func FromEmail(ctx context.Context, c *store.Collection[User], email string) (*User, bool, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range all {
		if all[i].Email == email {
			return &all[i], true, nil
		}
	}
	return nil, false, nil
}

func ByRole(ctx context.Context, c *store.Collection[User], role Role) ([]User, error) {
	return c.Filter(ctx, func(u User) bool { return u.Role == role })
}

// Search matches name or email case-insensitively, or a phone substring. An empty term matches everyone.
func Search(all []User, term string) []User {
	term = strings.TrimSpace(term)
	if term == "" {
		return all
	}
	lower := strings.ToLower(term)
	out := make([]User, 0, len(all))
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Name), lower) ||
			strings.Contains(strings.ToLower(u.Email), lower) ||
			(u.Phone != "" && strings.Contains(u.Phone, term)) {
			out = append(out, u)
		}
	}
	return out
}

// UpdateProfile applies patch to the stored user with the id.
func UpdateProfile(ctx context.Context, c *store.Collection[User], id string, patch Patch) (*User, error) {
	u, ok, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrNotFound
	}
	u = patch.Apply(u)
	if err := c.Update(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}
