package repository

import (
	"context"

	"github.com/ripplehq/ripple/internal/domain/entity"
)

// ArticleRepository defines the interface for article-store operations.
// Update rewrites the whole row, comments included; a single article is
// the unit of atomicity.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	// ListByAuthor returns the author's articles newest first. A limit of
	// zero means no limit.
	ListByAuthor(ctx context.Context, author string, offset, limit int) ([]*entity.Article, error)
	ListByAuthors(ctx context.Context, authors []string, limit int) ([]*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
}
