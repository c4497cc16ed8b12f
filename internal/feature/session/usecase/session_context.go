// Package usecase holds the client-side session for the identity service.
package usecase

import (
	"context"
	"log/slog"
	"sync"

	"booking_backend/internal/feature/identity/domain/entity"
)

// StorageKey is the local storage key holding the current user id.
const StorageKey = "currentUser"

// IdentityAPI is the remote identity service as seen by the session.
type IdentityAPI interface {
	RegisterEmail(ctx context.Context, email, password string) (*entity.User, error)
	RegisterPhone(ctx context.Context, phone string) (*entity.User, error)
	RegisterGmail(ctx context.Context) (*entity.User, error)
	LoginEmail(ctx context.Context, email, password string) (*entity.User, error)
	LoginPhone(ctx context.Context, phone string) (*entity.User, error)
	LoginGmail(ctx context.Context) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error)
}

// LocalStorage persists small string values on the client.
// Get returns "" when the key is absent.
type LocalStorage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Context holds the currently authenticated user.
// It is Anonymous while the current user is nil and Authenticated otherwise.
type Context struct {
	api     IdentityAPI
	storage LocalStorage

	mu      sync.RWMutex
	current *entity.User
}

// NewContext creates an anonymous session. Call Bootstrap to restore a saved one.
func NewContext(api IdentityAPI, storage LocalStorage) *Context {
	return &Context{api: api, storage: storage}
}

// Bootstrap restores the user whose id was saved by a previous login.
// Failures are silent: the session stays anonymous.
func (s *Context) Bootstrap(ctx context.Context) {
	id, err := s.storage.Get(StorageKey)
	if err != nil {
		slog.Debug("session storage unreadable", "error", err)
		return
	}
	if id == "" {
		return
	}

	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		slog.Debug("saved session not restored", "user_id", id, "error", err)
		return
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
}

// CurrentUser returns a copy of the current user, or nil when anonymous.
func (s *Context) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *Context) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// LoginWithEmail signs in with email and password. Unknown emails are registered by the service.
func (s *Context) LoginWithEmail(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.api.LoginEmail(ctx, email, password)
	if err != nil {
		return nil, userError(MsgLoginFailed, err)
	}
	return s.signIn(user), nil
}

// LoginWithPhone signs in with a phone number, registering it when unknown.
func (s *Context) LoginWithPhone(ctx context.Context, phone string) (*entity.User, error) {
	user, err := s.api.LoginPhone(ctx, phone)
	if err != nil {
		return nil, userError(MsgLoginFailed, err)
	}
	return s.signIn(user), nil
}

// LoginWithGmail signs in with the Gmail stub account.
func (s *Context) LoginWithGmail(ctx context.Context) (*entity.User, error) {
	user, err := s.api.LoginGmail(ctx)
	if err != nil {
		return nil, userError(MsgLoginFailed, err)
	}
	return s.signIn(user), nil
}

// RegisterWithEmail registers and signs in. A conflict surfaces as "email already registered".
func (s *Context) RegisterWithEmail(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.api.RegisterEmail(ctx, email, password)
	if err != nil {
		return nil, userError(registerMessage(err, MsgEmailTaken), err)
	}
	return s.signIn(user), nil
}

// RegisterWithPhone registers and signs in. A conflict surfaces as "number already registered".
func (s *Context) RegisterWithPhone(ctx context.Context, phone string) (*entity.User, error) {
	user, err := s.api.RegisterPhone(ctx, phone)
	if err != nil {
		return nil, userError(registerMessage(err, MsgPhoneTaken), err)
	}
	return s.signIn(user), nil
}

// RegisterWithGmail registers a Gmail stub account and signs in.
func (s *Context) RegisterWithGmail(ctx context.Context) (*entity.User, error) {
	user, err := s.api.RegisterGmail(ctx)
	if err != nil {
		return nil, userError(MsgRegisterFailed, err)
	}
	return s.signIn(user), nil
}

// UpdateUser applies update to the current user. It does nothing and
// returns (nil, nil) when no user is signed in.
func (s *Context) UpdateUser(ctx context.Context, update entity.ProfileUpdate) (*entity.User, error) {
	s.mu.RLock()
	var id string
	if s.current != nil {
		id = s.current.ID
	}
	s.mu.RUnlock()
	if id == "" {
		return nil, nil
	}

	user, err := s.api.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, userError(MsgUpdateFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a logout or account switch during the call wins
	if s.current == nil || s.current.ID != id {
		return user, nil
	}
	s.current = user
	u := *user
	return &u, nil
}

// Logout forgets the current user locally. No server call is made.
func (s *Context) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Remove(StorageKey); err != nil {
		slog.Warn("failed to clear saved session", "error", err)
	}
}

// signIn records user as current and persists its id.
// A storage failure keeps the in-memory session and is only logged.
func (s *Context) signIn(user *entity.User) *entity.User {
	if err := s.storage.Set(StorageKey, user.ID); err != nil {
		slog.Warn("failed to save session", "user_id", user.ID, "error", err)
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	u := *user
	return &u
}
