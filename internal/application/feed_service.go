package application

import (
	"context"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
)

// Feed is the merged view returned to the client: articles from the
// requester and everyone they follow, plus the sidebar summaries of the
// followed users.
type Feed struct {
	Articles      []*entity.Article `json:"articles"`
	FollowedUsers []entity.Summary  `json:"followedUsers"`
}

// FeedService composes the feed from the follow graph, the article store
// and the profile store. The following-set snapshot and the subsequent
// fetches are not transactionally linked; a concurrent follow/unfollow
// may be reflected in one but not the other.
type FeedService struct {
	Users    repository.UserRepository
	Articles repository.ArticleRepository
	Profiles repository.ProfileRepository
	PageSize int
}

const defaultFeedPageSize = 10

// GetFeed assembles the requester's feed, newest articles first, capped
// at the configured page size.
func (s *FeedService) GetFeed(ctx context.Context, requester string) (*Feed, error) {
	user, err := s.Users.GetByUsername(ctx, requester)
	if err != nil {
		return nil, err
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = defaultFeedPageSize
	}

	authors := make([]string, 0, len(user.Following)+1)
	authors = append(authors, user.Following...)
	authors = append(authors, requester)

	articles, err := s.Articles.ListByAuthors(ctx, authors, pageSize)
	if err != nil {
		return nil, err
	}

	followed := make([]entity.Summary, 0, len(user.Following))
	if len(user.Following) > 0 {
		profiles, err := s.Profiles.GetByUsernames(ctx, user.Following)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			followed = append(followed, p.Summary())
		}
	}

	return &Feed{Articles: articles, FollowedUsers: followed}, nil
}
