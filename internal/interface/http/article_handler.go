package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/application"
	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/pkg/response"
	"github.com/ripplehq/ripple/pkg/validation"
)

type ArticleHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Logger: logger}
}

type createArticleRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	Image string `json:"image"`
}

// updateArticleRequest covers both branches of PUT /articles/:id: a
// comment payload {text, commentId} or a content payload {title?, body?}.
type updateArticleRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Text      string  `json:"text"`
	CommentID *int    `json:"commentId"`
}

func articlesBody(articles []*entity.Article) gin.H {
	return gin.H{"articles": articles}
}

// List handles GET /article — the requester's own articles, paginated.
func (h *ArticleHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	articles, err := h.Svc.GetByAuthor(c.Request.Context(), requester(c), offset, limit)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesBody(articles))
}

// Get handles GET /articles/:id — exactly one article or 404.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesBody([]*entity.Article{article}))
}

// Create handles POST /article and returns the author's refreshed
// article list.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	articles, err := h.Svc.Create(c.Request.Context(), requester(c), req.Title, req.Body, req.Image)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, articlesBody(articles))
}

// Update handles PUT /articles/:id — content edit or comment append/edit.
func (h *ArticleHandler) Update(c *gin.Context) {
	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}
	article, err := h.Svc.Update(c.Request.Context(), c.Param("id"), requester(c), application.UpdateInput{
		Title:     req.Title,
		Body:      req.Body,
		Text:      req.Text,
		CommentID: req.CommentID,
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesBody([]*entity.Article{article}))
}
