package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"booking_backend/internal/feature/identity/domain/entity"
)

// GmailStubEmail is the fixed identity bound to every gmail user until a
// real OAuth flow exists.
const GmailStubEmail = "gmailUser@example.com"

// UserStore abstracts durable storage of the whole user collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserStore interface {
	// LoadAll returns the persisted collection. Missing or corrupt data
	// yields an empty collection, not an error.
	LoadAll(ctx context.Context) ([]entity.User, error)

	// SaveAll replaces the persisted collection with users.
	SaveAll(ctx context.Context, users []entity.User) error
}

// WelcomeNotifier dispatches a best-effort welcome message for a newly created user.
// It must not block the caller and has no way to report failure.
type WelcomeNotifier interface {
	NotifyWelcome(user entity.User)
}

// UpdateUserInput is the body of an update request. Only Profile is
// applied; the identity fields are accepted solely when they are empty or
// repeat the stored value.
type UpdateUserInput struct {
	Profile entity.ProfileUpdate

	ID       *string
	Provider *string
	Email    *string
	Phone    *string
	Password *string
}

// identityUsecase implements registration, login, lookup and update of users.
type identityUsecase struct {
	// mu serializes every load-modify-save cycle against the store.
	mu       sync.Mutex
	users    UserStore
	notifier WelcomeNotifier

	newID    func() string
	now      func() time.Time
	hashCost int
}

// NewIdentityUsecase creates an identityUsecase. notifier may be nil.
func NewIdentityUsecase(users UserStore, notifier WelcomeNotifier) *identityUsecase {
	return &identityUsecase{
		users:    users,
		notifier: notifier,
		newID:    uuid.NewString,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

// RegisterEmail creates an email user, failing with ErrUserAlreadyExists if the address is taken.
func (u *identityUsecase) RegisterEmail(ctx context.Context, email, password string) (*entity.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	hashed, err := hashPassword(password, u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := u.create(ctx, entity.User{
		Provider:     entity.ProviderEmail,
		Email:        email,
		PasswordHash: hashed,
	}, true)
	if err != nil {
		return nil, err
	}
	u.welcome(*user)
	return user, nil
}

// RegisterPhone creates a phone user, failing with ErrUserAlreadyExists if the number is taken.
func (u *identityUsecase) RegisterPhone(ctx context.Context, phone string) (*entity.User, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	user, err := u.create(ctx, entity.User{Provider: entity.ProviderPhone, Phone: phone}, true)
	if err != nil {
		return nil, err
	}
	u.welcome(*user)
	return user, nil
}

// RegisterGmail creates a new user bound to the stub gmail identity.
func (u *identityUsecase) RegisterGmail(ctx context.Context) (*entity.User, error) {
	user, err := u.create(ctx, entity.User{Provider: entity.ProviderGmail, Email: GmailStubEmail}, false)
	if err != nil {
		return nil, err
	}
	u.welcome(*user)
	return user, nil
}

// LoginEmail returns the email user matching email, creating it when unknown.
// An existing user with a different password yields ErrInvalidCredentials.
func (u *identityUsecase) LoginEmail(ctx context.Context, email, password string) (*entity.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.users.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if idx := findByIdentity(users, entity.ProviderEmail, email); idx >= 0 {
		existing := users[idx]
		if !passwordMatches(existing.PasswordHash, password) {
			return nil, ErrInvalidCredentials
		}
		return &existing, nil
	}

	hashed, err := hashPassword(password, u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := u.stamp(entity.User{Provider: entity.ProviderEmail, Email: email, PasswordHash: hashed})
	if err := u.users.SaveAll(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}
	slog.Info("user auto-registered on login", "user_id", user.ID, "provider", user.Provider)
	return &user, nil
}

// LoginPhone returns the phone user matching phone, creating it when unknown.
func (u *identityUsecase) LoginPhone(ctx context.Context, phone string) (*entity.User, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.users.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if idx := findByIdentity(users, entity.ProviderPhone, phone); idx >= 0 {
		existing := users[idx]
		return &existing, nil
	}

	user := u.stamp(entity.User{Provider: entity.ProviderPhone, Phone: phone})
	if err := u.users.SaveAll(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}
	slog.Info("user auto-registered on login", "user_id", user.ID, "provider", user.Provider)
	return &user, nil
}

// LoginGmail creates a new stub gmail user on every call.
func (u *identityUsecase) LoginGmail(ctx context.Context) (*entity.User, error) {
	return u.create(ctx, entity.User{Provider: entity.ProviderGmail, Email: GmailStubEmail}, false)
}

// GetUser returns the user with the given id or ErrUserNotFound.
func (u *identityUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	users, err := u.users.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	idx := findByID(users, id)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	user := users[idx]
	return &user, nil
}

// UpdateUser merges the profile fields of in onto the stored user.
func (u *identityUsecase) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.users.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	idx := findByID(users, id)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	if err := checkIdentityUnchanged(&users[idx], in); err != nil {
		return nil, err
	}
	if in.Profile.IsEmpty() {
		user := users[idx]
		return &user, nil
	}

	in.Profile.ApplyTo(&users[idx])
	users[idx].UpdatedAt = u.now().UTC()
	if err := u.users.SaveAll(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}
	user := users[idx]
	return &user, nil
}

// create appends user to the collection. When unique is set, an existing
// record with the same identity yields ErrUserAlreadyExists.
func (u *identityUsecase) create(ctx context.Context, user entity.User, unique bool) (*entity.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.users.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if unique && findByIdentity(users, user.Provider, user.IdentityKey()) >= 0 {
		return nil, ErrUserAlreadyExists
	}

	user = u.stamp(user)
	if err := u.users.SaveAll(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}
	slog.Info("user registered", "user_id", user.ID, "provider", user.Provider)
	return &user, nil
}

// stamp assigns a fresh id and creation timestamps.
func (u *identityUsecase) stamp(user entity.User) entity.User {
	now := u.now().UTC()
	user.ID = u.newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	return user
}

func (u *identityUsecase) welcome(user entity.User) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifyWelcome(user)
}

func findByID(users []entity.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func findByIdentity(users []entity.User, provider entity.Provider, key string) int {
	for i := range users {
		if users[i].Provider == provider && users[i].IdentityKey() == key {
			return i
		}
	}
	return -1
}

// checkIdentityUnchanged rejects updates that would alter id, provider,
// identifying field or password. Echoing the stored value (or sending an
// empty string) is allowed because profile forms submit the whole record.
func checkIdentityUnchanged(stored *entity.User, in UpdateUserInput) error {
	same := func(field *string, current string) bool {
		return field == nil || *field == "" || *field == current
	}
	switch {
	case !same(in.ID, stored.ID):
		return fmt.Errorf("%w: id", ErrImmutableField)
	case !same(in.Provider, string(stored.Provider)):
		return fmt.Errorf("%w: provider", ErrImmutableField)
	case in.Email != nil && *in.Email != "" && !strings.EqualFold(*in.Email, stored.Email):
		return fmt.Errorf("%w: email", ErrImmutableField)
	case in.Phone != nil && *in.Phone != "" && NormalizePhone(*in.Phone) != stored.Phone:
		return fmt.Errorf("%w: phone", ErrImmutableField)
	case in.Password != nil && *in.Password != "":
		return fmt.Errorf("%w: password", ErrImmutableField)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !IsValidEmail(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func normalizePhone(phone string) (string, error) {
	if !IsValidPhone(phone) {
		return "", ErrInvalidPhone
	}
	return NormalizePhone(phone), nil
}
