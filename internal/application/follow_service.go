package application

import (
	"context"

	"github.com/ripplehq/ripple/internal/domain/repository"
)

// FollowService maintains each user's following set. Updates are
// read-modify-write against the credential store; concurrent updates to
// the same user may race and one write can win (accepted limitation).
type FollowService struct {
	Users repository.UserRepository
}

// Get returns the following list of the given user.
func (s *FollowService) Get(ctx context.Context, username string) ([]string, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Following, nil
}

// Add appends target to the requester's following set. Following an
// already-followed target is a no-op, not an error.
func (s *FollowService) Add(ctx context.Context, requester, target string) ([]string, error) {
	user, err := s.Users.GetByUsername(ctx, requester)
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByUsername(ctx, target); err != nil {
		return nil, err
	}
	if !user.Follows(target) {
		user.Following = append(user.Following, target)
		if err := s.Users.UpdateFollowing(ctx, requester, user.Following); err != nil {
			return nil, err
		}
	}
	return user.Following, nil
}

// Remove deletes target from the requester's following set. Removing an
// absent target is not an error.
func (s *FollowService) Remove(ctx context.Context, requester, target string) ([]string, error) {
	user, err := s.Users.GetByUsername(ctx, requester)
	if err != nil {
		return nil, err
	}
	next := make([]string, 0, len(user.Following))
	for _, f := range user.Following {
		if f != target {
			next = append(next, f)
		}
	}
	if len(next) != len(user.Following) {
		if err := s.Users.UpdateFollowing(ctx, requester, next); err != nil {
			return nil, err
		}
	}
	return next, nil
}
