// Package adapters provides UserStore implementations for the identity feature.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/usecase"
)

// userFile stores the user collection as a JSON array in a single file.
type userFile struct {
	path string
}

// Compile-time check to ensure userFile implements UserStore.
var _ usecase.UserStore = (*userFile)(nil)

// NewUserFile creates a file-backed UserStore at path.
func NewUserFile(path string) *userFile {
	return &userFile{path: path}
}

// LoadAll reads the whole collection. A missing, empty or corrupt file is
// treated as an empty collection.
func (r *userFile) LoadAll(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("user file unreadable, using empty collection", "path", r.path, "error", err)
		}
		return []entity.User{}, nil
	}

	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("user file corrupt, using empty collection", "path", r.path, "error", err)
		return []entity.User{}, nil
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// SaveAll writes the collection to a temp file in the same directory and
// renames it over the target, so readers never see a partial write.
func (r *userFile) SaveAll(ctx context.Context, users []entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if users == nil {
		users = []entity.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write users: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace user file: %w", err)
	}
	return nil
}

// Ping reports whether the data directory is reachable.
func (r *userFile) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		// created lazily on first save
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
