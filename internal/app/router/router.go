// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"

	identityhandler "booking_backend/internal/feature/identity/transport/handler"
	"booking_backend/internal/platform/middleware"
)

// NewRouter builds the gin engine with every route of the identity service.
// metrics may be nil, in which case /metrics is not exposed.
func NewRouter(identity *identityhandler.IdentityHandler, health gin.HandlerFunc,
	metrics *middleware.HTTPMetrics, corsOrigins []string) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.CORS(corsOrigins))

	// probes
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// registration
	r.POST("/register/email", identity.RegisterEmail)
	r.POST("/register/phone", identity.RegisterPhone)
	r.POST("/register/gmail", identity.RegisterGmail)

	// login (unknown email/phone identities are registered on the fly)
	r.POST("/auth/email", identity.LoginEmail)
	r.POST("/auth/phone", identity.LoginPhone)
	r.POST("/auth/gmail", identity.LoginGmail)

	r.GET("/users/:id", identity.GetUser)
	r.PUT("/users/:id", identity.UpdateUser)

	return r
}
