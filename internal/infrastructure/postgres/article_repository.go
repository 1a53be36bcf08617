package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
)

// ArticleRepository stores each article as one row with its comments in a
// JSONB column, so an article plus its comment list is updated atomically.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	a := &entity.Article{}
	var comments []byte
	err := row.Scan(&a.ID, &a.Author, &a.Title, &a.Body, &a.Image, &comments, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Article not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "article lookup failed", err)
	}
	a.Comments = []entity.Comment{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &a.Comments); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "article decode failed", err)
		}
	}
	return a, nil
}

const articleColumns = `id, author, title, body, COALESCE(image, ''), comments, created_at`

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Comments == nil {
		a.Comments = []entity.Comment{}
	}
	comments, err := json.Marshal(a.Comments)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "article encode failed", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (id, author, title, body, image, comments)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at
	`, a.ID, a.Author, a.Title, a.Body, a.Image, comments)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return apperr.Wrap(apperr.Internal, "article insert failed", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string, offset, limit int) ([]*entity.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE author = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT NULLIF($3, 0)
	`, author, offset, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "article list failed", err)
	}
	return collect(rows)
}

func (r *ArticleRepository) ListByAuthors(ctx context.Context, authors []string, limit int) ([]*entity.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE author = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2
	`, authors, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "article list failed", err)
	}
	return collect(rows)
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	comments, err := json.Marshal(a.Comments)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "article encode failed", err)
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET title = $2, body = $3, image = NULLIF($4, ''), comments = $5
		WHERE id = $1
	`, a.ID, a.Title, a.Body, a.Image, comments)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "article update failed", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Article not found")
	}
	return nil
}

func collect(rows pgx.Rows) ([]*entity.Article, error) {
	defer rows.Close()
	articles := make([]*entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "article list failed", err)
	}
	return articles, nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
