package router

import (
	"github.com/ripplehq/ripple/internal/application"
	"github.com/ripplehq/ripple/internal/container"
	pginfra "github.com/ripplehq/ripple/internal/infrastructure/postgres"
	handlers "github.com/ripplehq/ripple/internal/interface/http"
	"github.com/ripplehq/ripple/internal/router/modules"
)

// InitModules builds every feature's repositories, services and handlers
// from the container singletons and registers the modules with the
// registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	profiles := pginfra.NewProfileRepository(container.GetPGPool())
	articles := pginfra.NewArticleRepository(container.GetPGPool())

	indexer := &application.Indexer{
		ES:        container.GetES(),
		IndexName: cfg.ESProfilesIndex,
		Logger:    logger,
	}

	authSvc := &application.AuthService{
		Users:       users,
		Profiles:    profiles,
		Sessions:    container.GetSessions(),
		Verifier:    container.GetVerifier(),
		Logger:      logger,
		Pub:         container.GetRabbitPub(),
		Indexer:     indexer,
		MailEnabled: cfg.MailSendEnabled,
	}
	profileSvc := &application.ProfileService{
		Profiles:  profiles,
		Users:     users,
		Logger:    logger,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Indexer:   indexer,
	}
	articleSvc := &application.ArticleService{
		Articles:             articles,
		Users:                users,
		Logger:               logger,
		CommentEditOwnerOnly: cfg.CommentEditOwnerOnly,
	}
	followSvc := &application.FollowService{Users: users}
	feedSvc := &application.FeedService{
		Users:    users,
		Profiles: profiles,
		Articles: articles,
		PageSize: cfg.FeedPageSize,
	}

	authH := handlers.NewAuthHandler(authSvc, container.GetCookies(), logger)
	profileH := handlers.NewProfileHandler(profileSvc, logger)
	articleH := handlers.NewArticleHandler(articleSvc, logger)
	followH := handlers.NewFollowHandler(followSvc, feedSvc, logger)

	r.Add(modules.NewAuthModule(authH))
	r.Add(modules.NewProfileModule(profileH))
	r.Add(modules.NewArticleModule(articleH))
	r.Add(modules.NewFollowModule(followH))
}
