package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/internal/session"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/helpers"
	"github.com/ripplehq/ripple/pkg/mailer"
)

// TokenVerifier validates a federated identity token and returns its
// verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*helpers.IdentityClaims, error)
}

// AuthService is the authenticator: it validates credentials or federated
// tokens and manages the session lifecycle.
type AuthService struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Sessions session.Store
	Verifier TokenVerifier
	Logger   *logrus.Logger

	// Optional side channels; nil disables them.
	Pub         *helpers.RabbitPublisher
	Indexer     *Indexer
	MailEnabled bool
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Zipcode  string
	DOB      string
	Headline string
	Avatar   string
}

// Register creates the User and its Profile, establishes a session, and
// returns the new user with the session token. Creating the two records
// is not transactional: if the profile insert fails the user row is
// deleted again so no orphaned identity is left behind.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Phone == "" || in.Zipcode == "" {
		return nil, "", apperr.New(apperr.Validation, "Missing required fields")
	}

	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, "", apperr.New(apperr.Conflict, "Username already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, "", err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "password hash failed", err)
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Following:    []string{},
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	profile := &entity.Profile{
		Username: in.Username,
		Email:    in.Email,
		DOB:      in.DOB,
		Phone:    in.Phone,
		Zipcode:  in.Zipcode,
		Headline: in.Headline,
		Avatar:   in.Avatar,
	}
	if profile.Headline == "" {
		profile.Headline = entity.DefaultHeadline
	}
	if profile.Avatar == "" {
		profile.Avatar = entity.DefaultAvatar
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		// Compensating action: do not leave an identity without a profile.
		if delErr := s.Users.Delete(ctx, in.Username); delErr != nil && s.Logger != nil {
			s.Logger.WithError(delErr).WithField("username", in.Username).
				Error("compensating user delete failed after profile insert failure")
		}
		return nil, "", err
	}

	token, err := s.Sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "session create failed", err)
	}

	s.welcome(ctx, user.Username, user.Email)
	s.Indexer.Index(ctx, profile)

	return user, token, nil
}

// Login checks the password against the stored hash and establishes a
// session holding only the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user.PasswordHash == "" || !helpers.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperr.New(apperr.Auth, "Invalid password")
	}
	token, err := s.Sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "session create failed", err)
	}
	return user, token, nil
}

// GoogleLogin verifies the identity token, provisions a user and default
// profile on first login, attaches the federated marker to an existing
// account matched by email, and establishes a session.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*entity.User, string, error) {
	claims, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Auth, "Invalid Google token", err)
	}
	if claims.Email == "" {
		return nil, "", apperr.New(apperr.Auth, "Google account does not provide an email address")
	}

	user, err := s.Users.GetByEmail(ctx, claims.Email)
	switch {
	case apperr.IsKind(err, apperr.NotFound):
		user = &entity.User{
			Username:  claims.Name,
			Email:     claims.Email,
			GoogleID:  claims.Subject,
			Following: []string{},
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, "", err
		}
		profile := &entity.Profile{
			Username: user.Username,
			Email:    user.Email,
			Headline: entity.DefaultHeadline,
			Avatar:   entity.DefaultAvatar,
		}
		if err := s.Profiles.Create(ctx, profile); err != nil {
			if delErr := s.Users.Delete(ctx, user.Username); delErr != nil && s.Logger != nil {
				s.Logger.WithError(delErr).WithField("username", user.Username).
					Error("compensating user delete failed after profile insert failure")
			}
			return nil, "", err
		}
		s.welcome(ctx, user.Username, user.Email)
		s.Indexer.Index(ctx, profile)
	case err != nil:
		return nil, "", err
	case user.GoogleID == "":
		// Existing password account: attach the marker, leave the password alone.
		if err := s.Users.SetGoogleID(ctx, user.Username, claims.Subject); err != nil {
			return nil, "", err
		}
		user.GoogleID = claims.Subject
	}

	token, err := s.Sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "session create failed", err)
	}
	return user, token, nil
}

// Logout destroys the session behind the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperr.New(apperr.Auth, "No active session to log out")
	}
	if err := s.Sessions.Destroy(ctx, token); err != nil {
		if err == session.ErrNotFound {
			return apperr.New(apperr.Auth, "No active session to log out")
		}
		return apperr.Wrap(apperr.Internal, "session destroy failed", err)
	}
	return nil
}

// ListUsers returns all identities without password material.
func (s *AuthService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// welcome enqueues the welcome email; delivery is best effort and never
// fails the registration.
func (s *AuthService) welcome(ctx context.Context, username, email string) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": username, "Time": time.Now().UTC().Format(time.RFC3339)},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("username", username).Warn("welcome email enqueue failed")
	}
}
