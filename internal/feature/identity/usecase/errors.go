// Package usecase implements the business logic for the identity feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned on registration when the
	// (provider, identifying field) pair is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when an email login supplies the wrong password.
	ErrInvalidCredentials = errors.New("invalid password")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPhone is returned when a phone number does not have 10 digits.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrEmptyPassword is returned when an email registration or login has no password.
	ErrEmptyPassword = errors.New("password is required")

	// ErrImmutableField is returned when an update tries to change id,
	// provider, identifying field or credentials.
	ErrImmutableField = errors.New("field cannot be updated")
)
