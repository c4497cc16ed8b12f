package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/usecase"
)

// saveBatchSize bounds the number of rows per INSERT statement.
const saveBatchSize = 200

// userGorm is a SQL implementation of the UserStore interface.
// It works with any GORM dialect (SQLite, PostgreSQL).
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserStore.
var _ usecase.UserStore = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
// The connection should be opened with TranslateError so duplicate identities map to ErrUserAlreadyExists.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// LoadAll returns every user in insertion order. An empty table yields an empty collection.
func (r *userGorm) LoadAll(ctx context.Context) ([]entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := make([]entity.User, len(models))
	for i := range models {
		users[i] = models[i].ToEntity()
	}
	return users, nil
}

// SaveAll replaces the table contents with users inside a single transaction.
func (r *userGorm) SaveAll(ctx context.Context, users []entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&UserModel{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}

		models := make([]UserModel, len(users))
		for i, u := range users {
			models[i] = UserModelFromEntity(u, i)
		}
		if err := tx.CreateInBatches(models, saveBatchSize).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return usecase.ErrUserAlreadyExists
			}
			return err
		}
		return nil
	})
}

// Ping checks the underlying database connection.
func (r *userGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
