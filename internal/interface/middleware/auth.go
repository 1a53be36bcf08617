package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/internal/session"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/response"
)

// IdentityKey is the gin context key holding the authenticated username.
const IdentityKey = "username"

// Auth is the session gate for protected routes. It resolves the session
// cookie against the store, injects the username into the context, and
// aborts with 401 before any handler work when the session is absent or
// expired.
func Auth(store session.Store) gin.HandlerFunc {
	unauthorized := apperr.New(apperr.Auth, "Unauthorized")
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			response.AbortErr(c, unauthorized)
			return
		}
		sess, err := store.Get(c.Request.Context(), token)
		if err != nil || sess.Username == "" {
			response.AbortErr(c, unauthorized)
			return
		}
		c.Set(IdentityKey, sess.Username)
		c.Next()
	}
}

// Identity returns the authenticated username injected by Auth.
func Identity(c *gin.Context) string {
	return c.GetString(IdentityKey)
}
