package repository

import (
	"context"

	"github.com/ripplehq/ripple/internal/domain/entity"
)

// UserRepository defines the interface for credential-store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	SetGoogleID(ctx context.Context, username, googleID string) error
	UpdateFollowing(ctx context.Context, username string, following []string) error
	// Delete exists only as the compensating action for a failed
	// registration; users are never deleted through the API.
	Delete(ctx context.Context, username string) error
}
