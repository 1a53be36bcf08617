package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager writes and clears the session cookie.
type CookieManager struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookieManager(domain string, secure bool, ttl time.Duration) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure, TTL: ttl}
}

// Set installs the session cookie. HttpOnly keeps it away from page
// scripts; SameSite=Lax matches the credentialed CORS setup.
func (m *CookieManager) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
}

// Clear instructs the client to discard the session cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", m.Domain, m.Secure, true)
}
