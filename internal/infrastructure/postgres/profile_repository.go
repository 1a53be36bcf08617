package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `username, email, COALESCE(dob, ''), phone, zipcode, headline, avatar`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := row.Scan(&p.Username, &p.Email, &p.DOB, &p.Phone, &p.Zipcode, &p.Headline, &p.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "profile lookup failed", err)
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (username, email, dob, phone, zipcode, headline, avatar)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`, p.Username, p.Email, p.DOB, p.Phone, p.Zipcode, p.Headline, p.Avatar)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "Profile already exists")
		}
		return apperr.Wrap(apperr.Internal, "profile insert failed", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username))
}

func (r *ProfileRepository) GetByUsernames(ctx context.Context, usernames []string) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = ANY($1)`, usernames)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "profile list failed", err)
	}
	defer rows.Close()

	profiles := make([]*entity.Profile, 0, len(usernames))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "profile list failed", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET email = $2, dob = NULLIF($3, ''), phone = $4, zipcode = $5, headline = $6, avatar = $7
		WHERE username = $1
	`, p.Username, p.Email, p.DOB, p.Phone, p.Zipcode, p.Headline, p.Avatar)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "profile update failed", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
