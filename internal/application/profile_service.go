package application

import (
	"context"
	"io"
	"net/mail"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/helpers"
)

// fieldSpec is one entry of the enumerated mutable-field table: how to
// read and write the field plus its validator. Field access is explicit,
// never reflective.
type fieldSpec struct {
	get      func(*entity.Profile) string
	set      func(*entity.Profile, string)
	validate func(string) error
}

func nonEmpty(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return apperr.New(apperr.Validation, field+" is required")
		}
		return nil
	}
}

func validEmail(v string) error {
	if _, err := mail.ParseAddress(v); err != nil {
		return apperr.New(apperr.Validation, "email must be a valid email address")
	}
	return nil
}

// profileFields enumerates every field the API may read or write on a
// profile. dob is readable but not writable (birthdays don't change).
var profileFields = map[string]fieldSpec{
	"email": {
		get:      func(p *entity.Profile) string { return p.Email },
		set:      func(p *entity.Profile, v string) { p.Email = v },
		validate: validEmail,
	},
	"phone": {
		get:      func(p *entity.Profile) string { return p.Phone },
		set:      func(p *entity.Profile, v string) { p.Phone = v },
		validate: nonEmpty("phone"),
	},
	"zipcode": {
		get:      func(p *entity.Profile) string { return p.Zipcode },
		set:      func(p *entity.Profile, v string) { p.Zipcode = v },
		validate: nonEmpty("zipcode"),
	},
	"headline": {
		get:      func(p *entity.Profile) string { return p.Headline },
		set:      func(p *entity.Profile, v string) { p.Headline = v },
		validate: nonEmpty("headline"),
	},
	"avatar": {
		get:      func(p *entity.Profile) string { return p.Avatar },
		set:      func(p *entity.Profile, v string) { p.Avatar = v },
		validate: nonEmpty("avatar"),
	},
	"dob": {
		get: func(p *entity.Profile) string { return p.DOB },
	},
}

// ProfileService reads and updates profile attributes, including avatar
// uploads to object storage and the password change on the credential
// record.
type ProfileService struct {
	Profiles repository.ProfileRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger

	GCS       *storage.Client
	GCSBucket string
	Indexer   *Indexer
}

// Get returns the full profile for the username.
func (s *ProfileService) Get(ctx context.Context, username string) (*entity.Profile, error) {
	return s.Profiles.GetByUsername(ctx, username)
}

// GetField returns a single profile attribute by its API name.
func (s *ProfileService) GetField(ctx context.Context, username, field string) (string, error) {
	spec, ok := profileFields[field]
	if !ok {
		return "", apperr.New(apperr.Validation, "Unknown profile field")
	}
	p, err := s.Profiles.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return spec.get(p), nil
}

// UpdateField sets a single profile attribute and returns the new value.
func (s *ProfileService) UpdateField(ctx context.Context, username, field, value string) (string, error) {
	p, err := s.update(ctx, username, map[string]string{field: value})
	if err != nil {
		return "", err
	}
	return profileFields[field].get(p), nil
}

// Update applies a multi-field update. Fields outside the enumerated set,
// or read-only ones, are rejected.
func (s *ProfileService) Update(ctx context.Context, username string, updates map[string]string) (*entity.Profile, error) {
	if len(updates) == 0 {
		return nil, apperr.New(apperr.Validation, "Nothing to update")
	}
	return s.update(ctx, username, updates)
}

func (s *ProfileService) update(ctx context.Context, username string, updates map[string]string) (*entity.Profile, error) {
	for field, value := range updates {
		spec, ok := profileFields[field]
		if !ok || spec.set == nil {
			return nil, apperr.New(apperr.Validation, "Unknown profile field")
		}
		if spec.validate != nil {
			if err := spec.validate(value); err != nil {
				return nil, err
			}
		}
	}

	p, err := s.Profiles.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for field, value := range updates {
		profileFields[field].set(p, value)
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Indexer.Index(ctx, p)
	return p, nil
}

// Search looks profiles up in the search index.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]entity.Summary, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperr.New(apperr.Validation, "q is required")
	}
	return s.Indexer.Search(ctx, q, size)
}

// UpdatePassword re-hashes and stores the new password on the credential
// record.
func (s *ProfileService) UpdatePassword(ctx context.Context, username, password string) error {
	if len(password) < 8 {
		return apperr.New(apperr.Validation, "password must be at least 8 characters long")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "password hash failed", err)
	}
	return s.Users.UpdatePassword(ctx, username, hash)
}

// UploadAvatar streams the image to object storage and stores the public
// URL on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, username string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.New(apperr.Internal, "Image upload is not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", username, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "image upload failed", err)
	}
	if _, err := s.update(ctx, username, map[string]string{"avatar": url}); err != nil {
		return "", err
	}
	return url, nil
}
