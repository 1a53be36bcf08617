package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/session"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/helpers"
)

func newAuthService(users *memUsers, profiles *memProfiles) *AuthService {
	return &AuthService{
		Users:    users,
		Profiles: profiles,
		Sessions: session.NewMemory(time.Hour),
	}
}

func validRegister() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Phone:    "555-0100",
		Zipcode:  "12345",
	}
}

func TestRegisterCreatesUserProfileAndSession(t *testing.T) {
	users := newMemUsers()
	profiles := newMemProfiles()
	svc := newAuthService(users, profiles)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	sess, err := svc.Sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)

	p, err := profiles.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultHeadline, p.Headline)
	assert.Equal(t, entity.DefaultAvatar, p.Avatar)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, helpers.CheckPassword(stored.PasswordHash, "hunter22"))
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newAuthService(newMemUsers(), newMemProfiles())
	in := validRegister()
	in.Zipcode = ""
	_, _, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "Missing required fields", apperr.Message(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(newMemUsers(), newMemProfiles())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Email = "other@example.com"
	_, _, err = svc.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "Username already exists", apperr.Message(err))
}

func TestRegisterCompensatesWhenProfileInsertFails(t *testing.T) {
	users := newMemUsers()
	profiles := newMemProfiles()
	profiles.failCreate = apperr.New(apperr.Internal, "profile insert failed")
	svc := newAuthService(users, profiles)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegister())
	require.Error(t, err)

	// The user row must not survive a failed profile insert.
	_, err = users.GetByUsername(ctx, "alice")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The username is free again once the profile store recovers.
	profiles.failCreate = nil
	_, _, err = svc.Register(ctx, validRegister())
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newMemUsers(), newMemProfiles())
	ctx := context.Background()
	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		sess, err := svc.Sessions.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", sess.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "wrong")
		require.Error(t, err)
		assert.Equal(t, apperr.Auth, apperr.KindOf(err))
		assert.Equal(t, "Invalid password", apperr.Message(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "hunter22")
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
		assert.Equal(t, "User not found", apperr.Message(err))
	})
}

func TestGoogleLoginProvisionsNewUser(t *testing.T) {
	users := newMemUsers()
	profiles := newMemProfiles()
	svc := newAuthService(users, profiles)
	svc.Verifier = &fakeVerifier{claims: map[string]*helpers.IdentityClaims{
		"good": {Email: "carol@example.com", Name: "carol", Subject: "sub-123"},
	}}
	ctx := context.Background()

	user, token, err := svc.GoogleLogin(ctx, "good")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, "sub-123", user.GoogleID)
	assert.Empty(t, user.PasswordHash)

	p, err := profiles.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultHeadline, p.Headline)

	// Federated accounts have no password to check.
	_, _, err = svc.Login(ctx, "carol", "anything")
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestGoogleLoginAttachesMarkerToExistingAccount(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users, newMemProfiles())
	svc.Verifier = &fakeVerifier{claims: map[string]*helpers.IdentityClaims{
		"good": {Email: "alice@example.com", Name: "Alice G", Subject: "sub-456"},
	}}
	ctx := context.Background()
	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	user, _, err := svc.GoogleLogin(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "sub-456", user.GoogleID)

	// Credential login still works after the marker is attached.
	_, _, err = svc.Login(ctx, "alice", "hunter22")
	assert.NoError(t, err)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	svc := newAuthService(newMemUsers(), newMemProfiles())
	svc.Verifier = &fakeVerifier{}
	_, _, err := svc.GoogleLogin(context.Background(), "bogus")
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestLogout(t *testing.T) {
	svc := newAuthService(newMemUsers(), newMemProfiles())
	ctx := context.Background()
	_, token, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	// The session is gone server-side even if the client kept the token.
	_, err = svc.Sessions.Get(ctx, token)
	assert.Equal(t, session.ErrNotFound, err)

	err = svc.Logout(ctx, token)
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
	assert.Equal(t, "No active session to log out", apperr.Message(err))
}

func TestListUsersStripsPasswordHashes(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users, newMemProfiles())
	ctx := context.Background()
	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)
}
