package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/internal/container"
	handlers "github.com/ripplehq/ripple/internal/interface/http"
	"github.com/ripplehq/ripple/internal/interface/middleware"
)

// FollowModule wires the following graph and the feed. The static
// /following/articles route coexists with the /following/:user param
// routes; Gin resolves static segments first.

type FollowModule struct {
	Handler *handlers.FollowHandler
}

func NewFollowModule(h *handlers.FollowHandler) *FollowModule {
	return &FollowModule{Handler: h}
}

func (m *FollowModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.GET("/following/articles", m.Handler.Articles)
		auth.GET("/following", m.Handler.Get)
		auth.GET("/following/:user", m.Handler.Get)
		auth.PUT("/following/:user", m.Handler.Add)
		auth.DELETE("/following/:user", m.Handler.Remove)
	}
}
