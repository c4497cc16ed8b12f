// Package entity defines the domain entities for the identity feature.
package entity

import "time"

// Provider is the authentication channel a User is bound to.
type Provider string

const (
	ProviderEmail Provider = "email"
	ProviderPhone Provider = "phone"
	ProviderGmail Provider = "gmail"
)

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderEmail, ProviderPhone, ProviderGmail:
		return true
	}
	return false
}

// User is the sole persisted entity of the identity subsystem.
// Its JSON form is the on-disk representation of the user collection.
type User struct {
	// ID is assigned once at creation and never changes.
	ID string `json:"id"`

	// Provider is immutable after creation.
	Provider Provider `json:"provider"`

	// Email is set for the email and gmail providers.
	Email string `json:"email,omitempty"`

	// Phone is set for the phone provider, normalized to digits only.
	Phone string `json:"phone,omitempty"`

	// PasswordHash is the bcrypt hash of the password (email provider only).
	// It is persisted but never returned to clients.
	PasswordHash string `json:"passwordHash,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
	Avatar    string `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IdentityKey returns the value that, together with Provider, uniquely
// identifies the user. Gmail stub users have no stable key, so their id is used.
func (u *User) IdentityKey() string {
	switch u.Provider {
	case ProviderEmail:
		return u.Email
	case ProviderPhone:
		return u.Phone
	default:
		return u.ID
	}
}

// ProfileUpdate carries the fields a client may change on an existing user.
// A nil pointer leaves the stored value untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Username  *string
	Avatar    *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil && p.Avatar == nil
}

// ApplyTo merges the supplied fields onto u. Later values win.
func (p ProfileUpdate) ApplyTo(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
