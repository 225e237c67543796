package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"docspot/internal"
	"docspot/internal/store"
	"docspot/internal/users"
)

var (
	ErrDuplicateUser    = errors.New("user with this email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotAuthenticated = errors.New("not signed in")
	ErrMissingFields    = errors.New("name, email and password are required")
	ErrInvalidRole      = users.ErrInvalidRole
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Login is the body of a login request.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register is the body of a signup request.
type Register struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     users.Role `json:"role"`
}

// Service tracks the signed-in identity for one client and checks credentials against the store.
type Service struct {
	mu      sync.Mutex
	users   *store.Collection[users.User]
	creds   *Credentials
	session *Session
	logger  *log.Logger

	state   State
	current *users.User
}

func NewService(st *store.Store) *Service {
	return &Service{
		users:   users.Collection(st),
		creds:   &Credentials{backend: st.Backend()},
		session: &Session{backend: st.Backend()},
		logger:  st.Logger(),
	}
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns a copy of the signed-in user, or nil.
func (s *Service) Current() *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Restore resumes the persisted session. A session pointing at a missing user reads as anonymous.
func (s *Service) Restore(ctx context.Context) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state, s.current = StateAnonymous, nil

	id, ok, err := s.session.Load(ctx)
	if err != nil || !ok {
		return nil, err
	}
	u, found, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Warnf("session points at unknown user %s, staying anonymous", id)
		return nil, nil
	}

	s.state, s.current = StateAuthenticated, &u
	out := u
	return &out, nil
}

// CreateAccount stores u and its credential unless another user already has the email.
func (s *Service) CreateAccount(ctx context.Context, u users.User, password string) error {
	if !users.ValidRole(u.Role) {
		return ErrInvalidRole
	}
	if u.Email == "" || password == "" {
		return ErrMissingFields
	}
	_, exists, err := users.FromEmail(ctx, s.users, u.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateUser
	}
	if err := s.users.Add(ctx, u); err != nil {
		return err
	}
	if err := s.creds.Set(ctx, u.Email, password); err != nil {
		return internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.CreateAccount", ID: u.ID, Message: "unable to store credential", Error: err}.ToError()
	}
	s.logger.Info("inserted user with the id " + u.ID)
	return nil
}

// Signup registers a new account. It does not sign the new user in.
func (s *Service) Signup(ctx context.Context, name, email, password string, role users.Role) (*users.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return nil, ErrMissingFields
	}
	u := users.New("user", name, email, role)
	if err := s.CreateAccount(ctx, u, password); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks an email/password pair without touching the session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		internal.ErrorFormat{Package: "internal.auth", Level: log.WarnLevel, Function: "auth.Authenticate", Message: "invalid email address"}.Print()
		return nil, ErrUserNotFound
	}

	u, ok, err := users.FromEmail(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	match, err := s.creds.Check(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !match {
		internal.ErrorFormat{Package: "internal.auth", Level: log.WarnLevel, Function: "auth.Authenticate", ID: u.ID, Message: "invalid password"}.Print()
		return nil, ErrInvalidPassword
	}
	return u, nil
}

// Login authenticates and persists the session. A failed attempt leaves any previous session in place.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevState, prev := s.state, s.current
	s.state = StateAuthenticating

	u, err := s.Authenticate(ctx, email, password)
	if err == nil {
		err = s.session.Save(ctx, u.ID)
	}
	if err != nil {
		s.state, s.current = prevState, prev
		return nil, err
	}

	s.state, s.current = StateAuthenticated, u
	out := *u
	return &out, nil
}

func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state, s.current = StateAnonymous, nil
	return s.session.Clear(ctx)
}

// UpdateProfile merges patch into the signed-in user and persists the result.
func (s *Service) UpdateProfile(ctx context.Context, patch users.Patch) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	updated := patch.Apply(*s.current)
	if err := s.users.Update(ctx, updated); err != nil {
		return nil, internal.ErrorFormat{Package: "internal.auth", Level: log.ErrorLevel, Function: "auth.UpdateProfile", ID: updated.ID, Message: "error updating profile", Error: err}.ToError()
	}
	s.current = &updated
	out := updated
	return &out, nil
}

// SetPassword stores or replaces the credential for email.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	return s.creds.Set(ctx, email, password)
}
