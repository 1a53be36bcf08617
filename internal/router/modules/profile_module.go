package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/internal/container"
	handlers "github.com/ripplehq/ripple/internal/interface/http"
	"github.com/ripplehq/ripple/internal/interface/middleware"
)

// ProfileModule wires the profile read/update surface. Every route sits
// behind the session gate. Field routes come in pairs because the user
// segment is optional on reads.

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.GET("/profile", m.Handler.Get)
		auth.GET("/profile/:user", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)

		for _, field := range []string{"email", "zipcode", "phone", "headline"} {
			auth.GET("/"+field, m.Handler.GetField(field))
			auth.GET("/"+field+"/:user", m.Handler.GetField(field))
			auth.PUT("/"+field, m.Handler.PutField(field))
		}
		auth.GET("/dob", m.Handler.GetField("dob"))
		auth.GET("/dob/:user", m.Handler.GetField("dob"))

		auth.PUT("/password", m.Handler.UpdatePassword)
		auth.PUT("/avatar", m.Handler.UploadAvatar)

		auth.GET("/users/search", m.Handler.Search)
	}
}
