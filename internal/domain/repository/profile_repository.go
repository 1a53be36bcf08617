package repository

import (
	"context"

	"github.com/ripplehq/ripple/internal/domain/entity"
)

// ProfileRepository defines the interface for profile-store operations.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUsername(ctx context.Context, username string) (*entity.Profile, error)
	GetByUsernames(ctx context.Context, usernames []string) ([]*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
