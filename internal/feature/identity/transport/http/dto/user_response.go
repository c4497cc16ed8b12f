package dto

import (
	"time"

	"booking_backend/internal/feature/identity/domain/entity"
)

// UserRes is the public representation of a user. It never carries the password hash.
type UserRes struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Username  string    `json:"username,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrorRes is the body of every failed request.
type ErrorRes struct {
	Error string `json:"error"`
}

// NewUserRes converts a domain user into its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Provider:  string(u.Provider),
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToEntity converts a response back into a domain user (client side).
func (r UserRes) ToEntity() entity.User {
	return entity.User{
		ID:        r.ID,
		Provider:  entity.Provider(r.Provider),
		Email:     r.Email,
		Phone:     r.Phone,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Avatar:    r.Avatar,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
