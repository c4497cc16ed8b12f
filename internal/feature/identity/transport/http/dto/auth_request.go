// Package dto defines data transfer objects for the identity feature's HTTP transport layer.
package dto

// EmailCredentialsReq is the body of /register/email and /auth/email.
// Format checks live in the usecase so both endpoints share one rule set.
type EmailCredentialsReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PhoneReq is the body of /register/phone and /auth/phone.
type PhoneReq struct {
	Phone string `json:"phone" binding:"required"`
}

// UpdateUserReq is the body of PUT /users/:id. Every field is optional;
// identity fields are accepted only when they repeat the stored value.
type UpdateUserReq struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
	Avatar    *string `json:"avatar,omitempty" binding:"omitempty,max=2048"`

	ID       *string `json:"id,omitempty"`
	Provider *string `json:"provider,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}
