// Package handler provides HTTP handlers for the identity feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/transport/http/dto"
	"booking_backend/internal/feature/identity/usecase"
)

// IdentityUsecase defines the identity operations used by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IdentityUsecase interface {
	RegisterEmail(ctx context.Context, email, password string) (*entity.User, error)
	RegisterPhone(ctx context.Context, phone string) (*entity.User, error)
	RegisterGmail(ctx context.Context) (*entity.User, error)
	LoginEmail(ctx context.Context, email, password string) (*entity.User, error)
	LoginPhone(ctx context.Context, phone string) (*entity.User, error)
	LoginGmail(ctx context.Context) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, in usecase.UpdateUserInput) (*entity.User, error)
}

// IdentityHandler handles registration, login and user endpoints.
type IdentityHandler struct {
	identity IdentityUsecase
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(identity IdentityUsecase) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// RegisterEmail handles POST /register/email.
// - 400 on malformed body or invalid email
// - 409 when the email is already registered
func (h *IdentityHandler) RegisterEmail(c *gin.Context) {
	var req dto.EmailCredentialsReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.identity.RegisterEmail(c.Request.Context(), req.Email, req.Password)
	h.respond(c, "register email", user, err)
}

// RegisterPhone handles POST /register/phone.
func (h *IdentityHandler) RegisterPhone(c *gin.Context) {
	var req dto.PhoneReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.identity.RegisterPhone(c.Request.Context(), req.Phone)
	h.respond(c, "register phone", user, err)
}

// RegisterGmail handles POST /register/gmail. The body is ignored.
func (h *IdentityHandler) RegisterGmail(c *gin.Context) {
	user, err := h.identity.RegisterGmail(c.Request.Context())
	h.respond(c, "register gmail", user, err)
}

// LoginEmail handles POST /auth/email.
// - 401 when the password does not match
// - unknown emails are registered on the fly
func (h *IdentityHandler) LoginEmail(c *gin.Context) {
	var req dto.EmailCredentialsReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.identity.LoginEmail(c.Request.Context(), req.Email, req.Password)
	h.respond(c, "login email", user, err)
}

// LoginPhone handles POST /auth/phone.
func (h *IdentityHandler) LoginPhone(c *gin.Context) {
	var req dto.PhoneReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.identity.LoginPhone(c.Request.Context(), req.Phone)
	h.respond(c, "login phone", user, err)
}

// LoginGmail handles POST /auth/gmail. The body is ignored.
func (h *IdentityHandler) LoginGmail(c *gin.Context) {
	user, err := h.identity.LoginGmail(c.Request.Context())
	h.respond(c, "login gmail", user, err)
}

// GetUser handles GET /users/:id.
func (h *IdentityHandler) GetUser(c *gin.Context) {
	user, err := h.identity.GetUser(c.Request.Context(), c.Param("id"))
	h.respond(c, "get user", user, err)
}

// UpdateUser handles PUT /users/:id.
// Only profile fields are merged; 400 when the body tries to change identity fields.
func (h *IdentityHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.identity.UpdateUser(c.Request.Context(), c.Param("id"), usecase.UpdateUserInput{
		Profile: entity.ProfileUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Avatar:    req.Avatar,
		},
		ID:       req.ID,
		Provider: req.Provider,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	h.respond(c, "update user", user, err)
}

// bindJSON decodes the request body and writes 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn("request validation failed", "path", c.FullPath(), "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return false
	}
	return true
}

// respond writes the user on success or maps err to a status code.
func (h *IdentityHandler) respond(c *gin.Context, op string, user *entity.User, err error) {
	if err == nil {
		slog.Info(op+" successful", "user_id", user.ID, "provider", user.Provider, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.NewUserRes(user))
		return
	}

	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
	} else {
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.ErrorRes{Error: msg})
}

// statusFor maps usecase errors to HTTP status codes and client-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid password"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, usecase.ErrInvalidEmail),
		errors.Is(err, usecase.ErrInvalidPhone),
		errors.Is(err, usecase.ErrEmptyPassword),
		errors.Is(err, usecase.ErrImmutableField):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
