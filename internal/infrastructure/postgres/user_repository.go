package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
)

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `username, email, COALESCE(password_hash, ''), COALESCE(google_id, ''), following, created_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.Username, &u.Email, &u.PasswordHash, &u.GoogleID, &u.Following, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, google_id, following)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING created_at
	`, u.Username, u.Email, u.PasswordHash, u.GoogleID, u.Following)

	if err := row.Scan(&u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "Username already exists")
		}
		return apperr.Wrap(apperr.Internal, "user insert failed", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email))
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "user list failed", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "user list failed", err)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2 WHERE username = $1`, username, passwordHash)
}

func (r *UserRepository) SetGoogleID(ctx context.Context, username, googleID string) error {
	return r.exec(ctx, `UPDATE users SET google_id = $2 WHERE username = $1`, username, googleID)
}

func (r *UserRepository) UpdateFollowing(ctx context.Context, username string, following []string) error {
	return r.exec(ctx, `UPDATE users SET following = $2 WHERE username = $1`, username, following)
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	return r.exec(ctx, `DELETE FROM users WHERE username = $1`, username)
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "user update failed", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
