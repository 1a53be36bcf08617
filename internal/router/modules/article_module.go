package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/internal/container"
	handlers "github.com/ripplehq/ripple/internal/interface/http"
	"github.com/ripplehq/ripple/internal/interface/middleware"
)

// ArticleModule wires article reads, creation and updates, all behind
// the session gate.

type ArticleModule struct {
	Handler *handlers.ArticleHandler
}

func NewArticleModule(h *handlers.ArticleHandler) *ArticleModule {
	return &ArticleModule{Handler: h}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.GET("/article", m.Handler.List)
		auth.POST("/article", m.Handler.Create)
		auth.GET("/articles/:id", m.Handler.Get)
		auth.PUT("/articles/:id", m.Handler.Update)
	}
}
