package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplehq/ripple/internal/domain/entity"
)

// newFeedFixture seeds users with profiles and returns the wired services.
func newFeedFixture(t *testing.T, usernames ...string) (*FeedService, *FollowService, *ArticleService) {
	t.Helper()
	ctx := context.Background()
	users := newMemUsers()
	profiles := newMemProfiles()
	for _, name := range usernames {
		require.NoError(t, users.Create(ctx, &entity.User{
			Username: name, Email: name + "@example.com", Following: []string{},
		}))
		require.NoError(t, profiles.Create(ctx, &entity.Profile{
			Username: name,
			Email:    name + "@example.com",
			Headline: name + " headline",
			Avatar:   "/" + name + ".jpeg",
		}))
	}
	articles := newMemArticles()
	feed := &FeedService{Users: users, Profiles: profiles, Articles: articles, PageSize: 10}
	follow := &FollowService{Users: users}
	articleSvc := &ArticleService{Articles: articles, Users: users}
	return feed, follow, articleSvc
}

func TestFeedContainsOwnAndFollowedArticles(t *testing.T) {
	feed, follow, articles := newFeedFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	_, err := articles.Create(ctx, "alice", "mine", "body", "")
	require.NoError(t, err)
	_, err = articles.Create(ctx, "bob", "bobs", "body", "")
	require.NoError(t, err)
	_, err = articles.Create(ctx, "carol", "carols", "body", "")
	require.NoError(t, err)

	_, err = follow.Add(ctx, "alice", "bob")
	require.NoError(t, err)

	f, err := feed.GetFeed(ctx, "alice")
	require.NoError(t, err)

	authors := make(map[string]bool)
	for _, a := range f.Articles {
		authors[a.Author] = true
	}
	assert.True(t, authors["alice"], "own articles belong in the feed")
	assert.True(t, authors["bob"], "followed author's articles belong in the feed")
	assert.False(t, authors["carol"], "unfollowed author's articles must not appear")

	require.Len(t, f.FollowedUsers, 1)
	assert.Equal(t, entity.Summary{Username: "bob", Avatar: "/bob.jpeg", Headline: "bob headline"}, f.FollowedUsers[0])
}

func TestFeedNewestFirstAndCapped(t *testing.T) {
	feed, follow, articles := newFeedFixture(t, "alice", "bob")
	ctx := context.Background()
	feed.PageSize = 3

	for _, title := range []string{"a1", "b1", "a2", "b2", "a3"} {
		author := "alice"
		if title[0] == 'b' {
			author = "bob"
		}
		_, err := articles.Create(ctx, author, title, "body", "")
		require.NoError(t, err)
	}
	_, err := follow.Add(ctx, "alice", "bob")
	require.NoError(t, err)

	f, err := feed.GetFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, f.Articles, 3)
	assert.Equal(t, "a3", f.Articles[0].Title)
	assert.Equal(t, "b2", f.Articles[1].Title)
	assert.Equal(t, "a2", f.Articles[2].Title)
}

func TestFeedUpdatesAfterUnfollow(t *testing.T) {
	feed, follow, articles := newFeedFixture(t, "alice", "bob")
	ctx := context.Background()
	_, err := articles.Create(ctx, "bob", "bobs", "body", "")
	require.NoError(t, err)

	_, err = follow.Add(ctx, "alice", "bob")
	require.NoError(t, err)
	f, err := feed.GetFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, f.Articles, 1)

	_, err = follow.Remove(ctx, "alice", "bob")
	require.NoError(t, err)
	f, err = feed.GetFeed(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, f.Articles)
	assert.Empty(t, f.FollowedUsers)
}
