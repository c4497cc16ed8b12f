package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"booking_backend/internal/feature/identity/domain/entity"
)

// memoryUserStore is an in-memory UserStore for testing.
// It copies the collection on every call so the usecase cannot alias it.
type memoryUserStore struct {
	mu        sync.Mutex
	users     []entity.User
	saveCount int

	// LoadErr and SaveErr force failures when set.
	LoadErr error
	SaveErr error
}

func (m *memoryUserStore) LoadAll(ctx context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]entity.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *memoryUserStore) SaveAll(ctx context.Context, users []entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.users = make([]entity.User, len(users))
	copy(m.users, users)
	m.saveCount++
	return nil
}

func (m *memoryUserStore) snapshot() []entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.User, len(m.users))
	copy(out, m.users)
	return out
}

// recordingNotifier captures welcome notifications.
type recordingNotifier struct {
	mu    sync.Mutex
	users []entity.User
}

func (r *recordingNotifier) NotifyWelcome(user entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// newTestUsecase builds a usecase with deterministic ids and a cheap bcrypt cost.
func newTestUsecase(store UserStore, notifier WelcomeNotifier) *identityUsecase {
	uc := NewIdentityUsecase(store, notifier)
	var n int
	var mu sync.Mutex
	uc.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("user-%03d", n)
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	uc.hashCost = bcrypt.MinCost
	return uc
}

func strPtr(s string) *string { return &s }

func TestIdentityUsecase_RegisterEmail(t *testing.T) {
	t.Parallel()

	t.Run("success: creates user with hashed password", func(t *testing.T) {
		t.Parallel()
		store := &memoryUserStore{}
		notifier := &recordingNotifier{}
		uc := newTestUsecase(store, notifier)

		user, err := uc.RegisterEmail(context.Background(), "Dana@Example.com", "secret1")
		require.NoError(t, err)

		assert.Equal(t, "user-001", user.ID)
		assert.Equal(t, entity.ProviderEmail, user.Provider)
		assert.Equal(t, "dana@example.com", user.Email)
		assert.NotEqual(t, "secret1", user.PasswordHash, "password must not be stored in plain text")
		assert.True(t, passwordMatches(user.PasswordHash, "secret1"))
		assert.Len(t, store.snapshot(), 1)
		assert.Equal(t, 1, notifier.count())
	})

	t.Run("failure: duplicate email is a conflict and stores one record", func(t *testing.T) {
		t.Parallel()
		store := &memoryUserStore{}
		notifier := &recordingNotifier{}
		uc := newTestUsecase(store, notifier)

		_, err := uc.RegisterEmail(context.Background(), "dana@example.com", "secret1")
		require.NoError(t, err)
		_, err = uc.RegisterEmail(context.Background(), "dana@example.com", "other")

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Len(t, store.snapshot(), 1)
		assert.Equal(t, 1, notifier.count(), "no welcome for rejected registration")
	})

	t.Run("failure: invalid email", func(t *testing.T) {
		t.Parallel()
		uc := newTestUsecase(&memoryUserStore{}, nil)
		_, err := uc.RegisterEmail(context.Background(), "invalid", "secret1")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("failure: empty password", func(t *testing.T) {
		t.Parallel()
		uc := newTestUsecase(&memoryUserStore{}, nil)
		_, err := uc.RegisterEmail(context.Background(), "dana@example.com", "")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("failure: store save error is wrapped", func(t *testing.T) {
		t.Parallel()
		saveErr := errors.New("disk full")
		uc := newTestUsecase(&memoryUserStore{SaveErr: saveErr}, nil)
		_, err := uc.RegisterEmail(context.Background(), "dana@example.com", "secret1")
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestIdentityUsecase_RegisterPhone(t *testing.T) {
	t.Parallel()

	store := &memoryUserStore{}
	uc := newTestUsecase(store, nil)

	user, err := uc.RegisterPhone(context.Background(), "050-123-4567")
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderPhone, user.Provider)
	assert.Equal(t, "0501234567", user.Phone)
	assert.Empty(t, user.Email)

	_, err = uc.RegisterPhone(context.Background(), "0501234567")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = uc.RegisterPhone(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	assert.Len(t, store.snapshot(), 1)
}

func TestIdentityUsecase_Gmail(t *testing.T) {
	t.Parallel()

	store := &memoryUserStore{}
	notifier := &recordingNotifier{}
	uc := newTestUsecase(store, notifier)

	registered, err := uc.RegisterGmail(context.Background())
	require.NoError(t, err)
	first, err := uc.LoginGmail(context.Background())
	require.NoError(t, err)
	second, err := uc.LoginGmail(context.Background())
	require.NoError(t, err)

	for _, u := range []*entity.User{registered, first, second} {
		assert.Equal(t, entity.ProviderGmail, u.Provider)
		assert.Equal(t, GmailStubEmail, u.Email)
	}
	assert.NotEqual(t, first.ID, second.ID, "every gmail login is a new identity")
	assert.Len(t, store.snapshot(), 3)
	assert.Equal(t, 1, notifier.count(), "only registration sends a welcome")
}

func TestIdentityUsecase_LoginEmail(t *testing.T) {
	t.Parallel()

	t.Run("success: register then login returns the same user", func(t *testing.T) {
		t.Parallel()
		uc := newTestUsecase(&memoryUserStore{}, nil)

		registered, err := uc.RegisterEmail(context.Background(), "dana@example.com", "secret1")
		require.NoError(t, err)
		loggedIn, err := uc.LoginEmail(context.Background(), "dana@example.com", "secret1")
		require.NoError(t, err)

		assert.Equal(t, registered.ID, loggedIn.ID)
		assert.Equal(t, "dana@example.com", loggedIn.Email)
	})

	t.Run("failure: wrong password does not mutate the store", func(t *testing.T) {
		t.Parallel()
		store := &memoryUserStore{}
		uc := newTestUsecase(store, nil)

		_, err := uc.RegisterEmail(context.Background(), "dana@example.com", "secret1")
		require.NoError(t, err)
		before := store.snapshot()
		saves := store.saveCount

		_, err = uc.LoginEmail(context.Background(), "dana@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, before, store.snapshot())
		assert.Equal(t, saves, store.saveCount)
	})

	t.Run("success: unknown email is registered transparently", func(t *testing.T) {
		t.Parallel()
		store := &memoryUserStore{}
		notifier := &recordingNotifier{}
		uc := newTestUsecase(store, notifier)

		user, err := uc.LoginEmail(context.Background(), "new@example.com", "pw")
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", user.Email)
		assert.Len(t, store.snapshot(), 1)
		assert.Zero(t, notifier.count())
	})

	t.Run("success: passwords longer than 72 bytes", func(t *testing.T) {
		t.Parallel()
		uc := newTestUsecase(&memoryUserStore{}, nil)
		long := strings.Repeat("סיסמה", 8) // 80 bytes
		require.Greater(t, len(long), 72)

		registered, err := uc.RegisterEmail(context.Background(), "dana@example.com", long)
		require.NoError(t, err)
		loggedIn, err := uc.LoginEmail(context.Background(), "dana@example.com", long)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, loggedIn.ID)

		// same 72-byte prefix, different tail
		_, err = uc.LoginEmail(context.Background(), "dana@example.com", long[:72]+"xxxxxxxx")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		auto, err := uc.LoginEmail(context.Background(), "new@example.com", long)
		require.NoError(t, err)
		again, err := uc.LoginEmail(context.Background(), "new@example.com", long)
		require.NoError(t, err)
		assert.Equal(t, auto.ID, again.ID)
	})
}

func TestIdentityUsecase_LoginPhone(t *testing.T) {
	t.Parallel()

	store := &memoryUserStore{}
	uc := newTestUsecase(store, nil)

	first, err := uc.LoginPhone(context.Background(), "0501234567")
	require.NoError(t, err)
	second, err := uc.LoginPhone(context.Background(), "050 123 4567")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.snapshot(), 1)
}

func TestIdentityUsecase_GetUser(t *testing.T) {
	t.Parallel()

	store := &memoryUserStore{}
	uc := newTestUsecase(store, nil)
	created, err := uc.RegisterPhone(context.Background(), "0501234567")
	require.NoError(t, err)

	found, err := uc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = uc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityUsecase_UpdateUser(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*identityUsecase, *memoryUserStore, *entity.User) {
		t.Helper()
		store := &memoryUserStore{}
		uc := newTestUsecase(store, nil)
		user, err := uc.RegisterEmail(context.Background(), "dana@example.com", "secret1")
		require.NoError(t, err)
		return uc, store, user
	}

	t.Run("success: only firstName changes", func(t *testing.T) {
		t.Parallel()
		uc, _, user := setup(t)

		updated, err := uc.UpdateUser(context.Background(), user.ID, UpdateUserInput{
			Profile: entity.ProfileUpdate{FirstName: strPtr("X")},
		})
		require.NoError(t, err)

		expected := *user
		expected.FirstName = "X"
		assert.Equal(t, &expected, updated)

		found, err := uc.GetUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "X", found.FirstName)
	})

	t.Run("success: echoed identity fields are accepted", func(t *testing.T) {
		t.Parallel()
		uc, _, user := setup(t)

		updated, err := uc.UpdateUser(context.Background(), user.ID, UpdateUserInput{
			Profile: entity.ProfileUpdate{LastName: strPtr("Cohen")},
			ID:      strPtr(user.ID),
			Email:   strPtr("DANA@example.com"),
			Phone:   strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Cohen", updated.LastName)
	})

	t.Run("failure: immutable fields are rejected without saving", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			in   UpdateUserInput
		}{
			{name: "id", in: UpdateUserInput{ID: strPtr("other")}},
			{name: "provider", in: UpdateUserInput{Provider: strPtr("phone")}},
			{name: "email", in: UpdateUserInput{Email: strPtr("other@example.com")}},
			{name: "phone", in: UpdateUserInput{Phone: strPtr("0509999999")}},
			{name: "password", in: UpdateUserInput{Password: strPtr("hijack")}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				uc, store, user := setup(t)
				saves := store.saveCount

				tt.in.Profile.FirstName = strPtr("X")
				_, err := uc.UpdateUser(context.Background(), user.ID, tt.in)

				assert.ErrorIs(t, err, ErrImmutableField)
				assert.Equal(t, saves, store.saveCount)
			})
		}
	})

	t.Run("failure: unknown id", func(t *testing.T) {
		t.Parallel()
		uc, _, _ := setup(t)
		_, err := uc.UpdateUser(context.Background(), "missing", UpdateUserInput{
			Profile: entity.ProfileUpdate{FirstName: strPtr("X")},
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestIdentityUsecase_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	store := &memoryUserStore{}
	uc := newTestUsecase(store, nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterPhone(context.Background(), "0501234567")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrUserAlreadyExists):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, store.snapshot(), 1)
}

func TestIdentityUsecase_LoadError(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("connection refused")
	uc := newTestUsecase(&memoryUserStore{LoadErr: loadErr}, nil)

	_, err := uc.GetUser(context.Background(), "any")
	assert.ErrorIs(t, err, loadErr)
	_, err = uc.LoginPhone(context.Background(), "0501234567")
	assert.ErrorIs(t, err, loadErr)
}
