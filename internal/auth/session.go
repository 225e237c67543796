package auth

import (
	"context"
	"strings"

	"docspot/internal/storage"
)

// SessionKey is the slot holding the id of the signed-in user.
const SessionKey = "current_user_id"

// credentialPrefix + email is the slot holding that account's password.
const credentialPrefix = "password_"

// Session is the persisted "who is signed in" slot.
type Session struct {
	backend storage.Backend
}

func (s *Session) Load(ctx context.Context) (string, bool, error) {
	v, ok, err := s.backend.Get(ctx, SessionKey)
	if err != nil || !ok {
		return "", false, err
	}
	id := strings.TrimSpace(string(v))
	return id, id != "", nil
}

func (s *Session) Save(ctx context.Context, userID string) error {
	return s.backend.Set(ctx, SessionKey, []byte(userID))
}

func (s *Session) Clear(ctx context.Context) error {
	return s.backend.Remove(ctx, SessionKey)
}

// Credentials is the password table, one slot per email, kept apart from the user records.
// Passwords are stored as given.
type Credentials struct {
	backend storage.Backend
}

func (c *Credentials) Set(ctx context.Context, email, password string) error {
	return c.backend.Set(ctx, credentialPrefix+email, []byte(password))
}

// Check reports whether password matches the stored credential. A missing credential never matches.
func (c *Credentials) Check(ctx context.Context, email, password string) (bool, error) {
	v, ok, err := c.backend.Get(ctx, credentialPrefix+email)
	if err != nil || !ok {
		return false, err
	}
	return string(v) == password, nil
}

func (c *Credentials) Remove(ctx context.Context, email string) error {
	return c.backend.Remove(ctx, credentialPrefix+email)
}
