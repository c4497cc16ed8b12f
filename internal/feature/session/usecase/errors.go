package usecase

import "errors"

// Errors returned by IdentityAPI implementations.
var (
	// ErrConflict is returned when the identity is already registered (409).
	ErrConflict = errors.New("identity already registered")
	// ErrUnauthorized is returned when the password does not match (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for an unknown user id (404).
	ErrNotFound = errors.New("user not found")
	// ErrRequestFailed covers transport failures and any other non-2xx status.
	ErrRequestFailed = errors.New("identity request failed")
)

// User-facing messages shown by the UI.
const (
	MsgLoginFailed    = "שגיאה בחיבור"
	MsgEmailTaken     = "האימייל כבר רשום"
	MsgPhoneTaken     = "המספר כבר רשום"
	MsgRegisterFailed = "שגיאה בהרשמה"
	MsgUpdateFailed   = "שגיאה בעדכון"
)

// UserError pairs a Hebrew message for display with the underlying cause.
// errors.Is still matches the sentinel through Unwrap.
type UserError struct {
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *UserError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *UserError) Unwrap() error { return e.Err }

func userError(msg string, err error) error {
	return &UserError{Message: msg, Err: err}
}

// registerMessage picks the message for a failed registration.
func registerMessage(err error, taken string) string {
	if errors.Is(err, ErrConflict) {
		return taken
	}
	return MsgRegisterFailed
}
