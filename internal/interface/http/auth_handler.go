package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/application"
	"github.com/ripplehq/ripple/internal/interface/middleware"
	"github.com/ripplehq/ripple/internal/session"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/response"
	"github.com/ripplehq/ripple/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *session.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *session.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Zipcode  string `json:"zipcode" binding:"required"`
	DOB      string `json:"dob"`
	Headline string `json:"headline"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	user, token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Zipcode:  req.Zipcode,
		DOB:      req.DOB,
		Headline: req.Headline,
		Avatar:   req.Avatar,
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	h.Cookies.Set(c, token)
	c.JSON(http.StatusCreated, gin.H{"result": "success", "username": user.Username, "id": user.Username})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	user, token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Err(c, err)
		return
	}
	h.Cookies.Set(c, token)
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "result": "success"})
}

// Google handles POST /google — federated login with a Google ID token.
func (h *AuthHandler) Google(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is missing."})
		return
	}
	user, token, err := h.Svc.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		response.Err(c, err)
		return
	}
	h.Cookies.Set(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Google login successful",
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Logout handles PUT /logout. It is registered outside the session gate
// so a missing session maps to the logout-specific error body.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		response.Err(c, apperr.New(apperr.Auth, "No active session to log out"))
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		response.Err(c, err)
		return
	}
	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Users handles GET /users, listing all identities without password
// material.
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Err(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"username":  u.Username,
			"email":     u.Email,
			"following": u.Following,
			"created":   u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// requester is a convenience wrapper over the gate-injected identity.
func requester(c *gin.Context) string {
	return middleware.Identity(c)
}
