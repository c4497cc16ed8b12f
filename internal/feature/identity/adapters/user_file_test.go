package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking_backend/internal/feature/identity/domain/entity"
)

// sampleUsers returns a small collection covering every provider.
func sampleUsers() []entity.User {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []entity.User{
		{
			ID:           "u-email",
			Provider:     entity.ProviderEmail,
			Email:        "dana@example.com",
			PasswordHash: "$2a$04$hash",
			FirstName:    "Dana",
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		{
			ID:        "u-phone",
			Provider:  entity.ProviderPhone,
			Phone:     "0501234567",
			LastName:  "Cohen",
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "u-gmail",
			Provider:  entity.ProviderGmail,
			Email:     "gmailUser@example.com",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestUserFile_LoadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    int
	}{
		{name: "missing file", content: nil, want: 0},
		{name: "empty file", content: strPtr(""), want: 0},
		{name: "corrupt file", content: strPtr("{not json"), want: 0},
		{name: "json null", content: strPtr("null"), want: 0},
		{name: "valid array", content: strPtr(`[{"id":"a","provider":"phone","phone":"0501234567"}]`), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "users.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			users, err := NewUserFile(path).LoadAll(context.Background())

			require.NoError(t, err, "unreadable data must be absorbed")
			assert.NotNil(t, users)
			assert.Len(t, users, tt.want)
		})
	}
}

func TestUserFile_SaveAllRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "users.json")
	repo := NewUserFile(path)
	users := sampleUsers()

	require.NoError(t, repo.SaveAll(context.Background(), users))
	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, loaded)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// a no-op read/write cycle leaves the content unchanged
	require.NoError(t, repo.SaveAll(context.Background(), loaded))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestUserFile_SaveAllNil(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, NewUserFile(path).SaveAll(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUserFile_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewUserFile(filepath.Join(t.TempDir(), "users.json"))

	_, err := repo.LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.SaveAll(ctx, sampleUsers()), context.Canceled)
}

func TestUserFile_Ping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.NoError(t, NewUserFile(filepath.Join(dir, "users.json")).Ping(context.Background()))
	assert.NoError(t, NewUserFile(filepath.Join(dir, "later", "users.json")).Ping(context.Background()))

	notDir := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o644))
	assert.Error(t, NewUserFile(filepath.Join(notDir, "users.json")).Ping(context.Background()))
}

func strPtr(s string) *string { return &s }
