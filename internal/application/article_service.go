package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
)

const (
	defaultArticleOffset = 0
	defaultArticleLimit  = 10
)

// ArticleService creates, reads and updates articles and their comments.
type ArticleService struct {
	Articles repository.ArticleRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger

	// CommentEditOwnerOnly restricts comment-text edits to the comment
	// author. Off by default: the inherited behavior lets any
	// authenticated user edit any comment.
	CommentEditOwnerOnly bool
}

// Create persists a new article and returns the author's full article
// list newest first, so the client can refresh its view without a second
// round trip.
func (s *ArticleService) Create(ctx context.Context, author, title, body, image string) ([]*entity.Article, error) {
	if author == "" {
		return nil, apperr.New(apperr.Validation, "Username is required")
	}
	if title == "" || body == "" {
		return nil, apperr.New(apperr.Validation, "Title and body are required to create an article")
	}
	// The author is denormalized onto the article; confirm it still
	// names a real identity at write time.
	if _, err := s.Users.GetByUsername(ctx, author); err != nil {
		return nil, err
	}

	a := &entity.Article{Author: author, Title: title, Body: body, Image: image}
	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.Articles.ListByAuthor(ctx, author, 0, 0)
}

// GetByID returns exactly the requested article.
func (s *ArticleService) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return s.Articles.GetByID(ctx, id)
}

// GetByAuthor returns the author's articles newest first, paginated.
// Negative or missing offset/limit fall back to 0/10.
func (s *ArticleService) GetByAuthor(ctx context.Context, author string, offset, limit int) ([]*entity.Article, error) {
	if offset < 0 {
		offset = defaultArticleOffset
	}
	if limit <= 0 {
		limit = defaultArticleLimit
	}
	return s.Articles.ListByAuthor(ctx, author, offset, limit)
}

// UpdateInput selects the update branch: a non-nil CommentID triggers the
// comment branch (with Text as the comment text), otherwise Title/Body
// update the article content.
type UpdateInput struct {
	Title     *string
	Body      *string
	Text      string
	CommentID *int
}

// Update applies a content edit or a comment append/edit to the article.
func (s *ArticleService) Update(ctx context.Context, id, requester string, in UpdateInput) (*entity.Article, error) {
	article, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case in.CommentID != nil:
		if in.Text == "" {
			return nil, apperr.New(apperr.Validation, "Text is required")
		}
		if err := s.applyComment(article, requester, in.Text, *in.CommentID); err != nil {
			return nil, err
		}
	case in.Title != nil || in.Body != nil:
		if article.Author != requester {
			return nil, apperr.New(apperr.Permission, "Permission denied to edit this article")
		}
		if in.Title != nil {
			article.Title = *in.Title
		}
		if in.Body != nil {
			article.Body = *in.Body
		}
	default:
		return nil, apperr.New(apperr.Validation, "Nothing to update")
	}

	if err := s.Articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) applyComment(article *entity.Article, requester, text string, commentID int) error {
	if commentID == -1 {
		article.AppendComment(requester, text, time.Now().UTC())
		return nil
	}
	comment := article.FindComment(commentID)
	if comment == nil {
		return apperr.New(apperr.NotFound, "Comment not found")
	}
	if s.CommentEditOwnerOnly && comment.Author != requester {
		return apperr.New(apperr.Permission, "Permission denied to edit this comment")
	}
	comment.Text = text
	return nil
}
