package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking_backend/internal/feature/session/usecase"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	impls := map[string]func(t *testing.T) usecase.LocalStorage{
		"memory": func(t *testing.T) usecase.LocalStorage { return NewMemoryStorage() },
		"file": func(t *testing.T) usecase.LocalStorage {
			return NewFileStorage(filepath.Join(t.TempDir(), "nested", "session.json"))
		},
	}

	for name, newStorage := range impls {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newStorage(t)

			got, err := s.Get(usecase.StorageKey)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Set(usecase.StorageKey, "u-1"))
			got, err = s.Get(usecase.StorageKey)
			require.NoError(t, err)
			assert.Equal(t, "u-1", got)

			require.NoError(t, s.Set(usecase.StorageKey, "u-2"))
			got, _ = s.Get(usecase.StorageKey)
			assert.Equal(t, "u-2", got)

			require.NoError(t, s.Remove(usecase.StorageKey))
			got, err = s.Get(usecase.StorageKey)
			require.NoError(t, err)
			assert.Empty(t, got)

			// removing twice is fine
			require.NoError(t, s.Remove(usecase.StorageKey))
		})
	}
}

func TestFileStorage_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileStorage(path).Set(usecase.StorageKey, "u-1"))

	got, err := NewFileStorage(path).Get(usecase.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	s := NewFileStorage(path)

	_, err := s.Get(usecase.StorageKey)
	assert.Error(t, err)

	// a new login overwrites the corrupt file
	require.NoError(t, s.Set(usecase.StorageKey, "u-1"))
	got, err := s.Get(usecase.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)
}

func TestFileStorage_NullFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))
	s := NewFileStorage(path)

	got, err := s.Get(usecase.StorageKey)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set(usecase.StorageKey, "u-1"))
	got, err = s.Get(usecase.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)

	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))
	assert.NoError(t, s.Remove(usecase.StorageKey))
}
