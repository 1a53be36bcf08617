package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/internal/container"
	handlers "github.com/ripplehq/ripple/internal/interface/http"
	"github.com/ripplehq/ripple/internal/interface/middleware"
)

// AuthModule wires registration, login and logout.
// Public: POST /register, POST /login, POST /google, PUT /logout
// Protected: GET /users

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Private-network callers (local frontend, probes) bypass the limits.
	allowLocal := middleware.AllowPrivateIP()
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), allowLocal)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), allowLocal)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/google", loginLimiter, m.Handler.Google)

	// Logout stays outside the gate: a missing session must produce the
	// logout-specific error body, not the generic gate rejection.
	rg.PUT("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.GET("/users", m.Handler.Users)
	}
}
