package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/application"
	"github.com/ripplehq/ripple/pkg/response"
)

type FollowHandler struct {
	Follow *application.FollowService
	Feed   *application.FeedService
	Logger *logrus.Logger
}

func NewFollowHandler(follow *application.FollowService, feed *application.FeedService, logger *logrus.Logger) *FollowHandler {
	return &FollowHandler{Follow: follow, Feed: feed, Logger: logger}
}

// Get handles GET /following and GET /following/:user.
func (h *FollowHandler) Get(c *gin.Context) {
	username := c.Param("user")
	if username == "" {
		username = requester(c)
	}
	following, err := h.Follow.Get(c.Request.Context(), username)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "following": following})
}

// Add handles PUT /following/:user.
func (h *FollowHandler) Add(c *gin.Context) {
	username := requester(c)
	following, err := h.Follow.Add(c.Request.Context(), username, c.Param("user"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "following": following})
}

// Remove handles DELETE /following/:user.
func (h *FollowHandler) Remove(c *gin.Context) {
	username := requester(c)
	following, err := h.Follow.Remove(c.Request.Context(), username, c.Param("user"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "following": following})
}

// Articles handles GET /following/articles — the assembled feed.
func (h *FollowHandler) Articles(c *gin.Context) {
	feed, err := h.Feed.GetFeed(c.Request.Context(), requester(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}
