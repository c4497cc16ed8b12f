package adapters

import (
	"time"

	"booking_backend/internal/feature/identity/domain/entity"
)

// UserModel is the GORM model for the users table.
// The (provider, identity) unique index lets the database reject duplicate identities.
type UserModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Position     int       `gorm:"index;not null"`
	Provider     string    `gorm:"size:16;not null;uniqueIndex:idx_users_identity"`
	Identity     string    `gorm:"size:255;not null;uniqueIndex:idx_users_identity"`
	Email        string    `gorm:"size:255"`
	Phone        string    `gorm:"size:32"`
	PasswordHash string    `gorm:"size:255"`
	FirstName    string    `gorm:"size:255"`
	LastName     string    `gorm:"size:255"`
	Username     string    `gorm:"size:255"`
	Avatar       string    `gorm:"size:2048"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false;not null"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() entity.User {
	return entity.User{
		ID:           m.ID,
		Provider:     entity.Provider(m.Provider),
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Username:     m.Username,
		Avatar:       m.Avatar,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// UserModelFromEntity converts a domain entity to a GORM model at the given position.
func UserModelFromEntity(u entity.User, position int) UserModel {
	return UserModel{
		ID:           u.ID,
		Position:     position,
		Provider:     string(u.Provider),
		Identity:     u.IdentityKey(),
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
