package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/application"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/response"
	"github.com/ripplehq/ripple/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

// target resolves the profile a read applies to: the :user param when
// present, otherwise the requester.
func target(c *gin.Context) string {
	if u := c.Param("user"); u != "" {
		return u
	}
	return requester(c)
}

// Get handles GET /profile and GET /profile/:user.
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), target(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /profile — a multi-field profile update.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), requester(c), req)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetField builds a GET handler for one profile attribute, e.g.
// GET /headline/:user -> {"username": ..., "headline": ...}.
func (h *ProfileHandler) GetField(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := target(c)
		value, err := h.Svc.GetField(c.Request.Context(), username, field)
		if err != nil {
			response.Err(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": username, field: value})
	}
}

// PutField builds a PUT handler for one profile attribute. The request
// body carries the new value under the field's own name.
func (h *ProfileHandler) PutField(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req map[string]string
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
			return
		}
		value, ok := req[field]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": field + " is required"})
			return
		}
		username := requester(c)
		updated, err := h.Svc.UpdateField(c.Request.Context(), username, field, value)
		if err != nil {
			response.Err(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": username, field: updated})
	}
}

// UpdatePassword handles PUT /password.
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	username := requester(c)
	if err := h.Svc.UpdatePassword(c.Request.Context(), username, req.Password); err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "result": "success"})
}

// UploadAvatar handles PUT /avatar, a multipart upload under "image".
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Err(c, apperr.Wrap(apperr.Internal, "Internal server error", err))
		return
	}
	defer func() { _ = src.Close() }()

	username := requester(c)
	url, err := h.Svc.UploadAvatar(c.Request.Context(), username, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "avatar": url})
}

// Search handles GET /users/search?q=...&size=...
func (h *ProfileHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
