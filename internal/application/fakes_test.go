package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ripplehq/ripple/internal/domain/entity"
	"github.com/ripplehq/ripple/internal/domain/repository"
	"github.com/ripplehq/ripple/pkg/apperr"
	"github.com/ripplehq/ripple/pkg/helpers"
)

// In-memory repositories for service tests. Failure hooks let a test
// force a specific store error.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User

	failCreate error
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.users[u.Username]; ok {
		return apperr.New(apperr.Conflict, "Username already exists")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	cp := *u
	cp.Following = append([]string(nil), u.Following...)
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "User not found")
}

func (m *memUsers) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, username, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) SetGoogleID(_ context.Context, username, googleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	u.GoogleID = googleID
	return nil
}

func (m *memUsers) UpdateFollowing(_ context.Context, username string, following []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	u.Following = append([]string(nil), following...)
	return nil
}

func (m *memUsers) Delete(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	delete(m.users, username)
	return nil
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile

	failCreate error
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[string]*entity.Profile)}
}

func (m *memProfiles) Create(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	cp := *p
	m.profiles[p.Username] = &cp
	return nil
}

func (m *memProfiles) GetByUsername(_ context.Context, username string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[username]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) GetByUsernames(_ context.Context, usernames []string) ([]*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Profile, 0, len(usernames))
	for _, name := range usernames {
		if p, ok := m.profiles[name]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.Username]; !ok {
		return apperr.New(apperr.NotFound, "User not found")
	}
	cp := *p
	m.profiles[p.Username] = &cp
	return nil
}

type memArticles struct {
	mu       sync.Mutex
	articles []*entity.Article
	clock    time.Time
}

func newMemArticles() *memArticles {
	return &memArticles{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.clock = m.clock.Add(time.Second)
	a.CreatedAt = m.clock
	if a.Comments == nil {
		a.Comments = []entity.Comment{}
	}
	cp := *a
	m.articles = append(m.articles, &cp)
	return nil
}

func (m *memArticles) GetByID(_ context.Context, id string) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.articles {
		if a.ID == id {
			cp := *a
			cp.Comments = append([]entity.Comment(nil), a.Comments...)
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "Article not found")
}

func (m *memArticles) ListByAuthor(_ context.Context, author string, offset, limit int) ([]*entity.Article, error) {
	return m.list(func(a *entity.Article) bool { return a.Author == author }, offset, limit), nil
}

func (m *memArticles) ListByAuthors(_ context.Context, authors []string, limit int) ([]*entity.Article, error) {
	set := make(map[string]bool, len(authors))
	for _, a := range authors {
		set[a] = true
	}
	return m.list(func(a *entity.Article) bool { return set[a.Author] }, 0, limit), nil
}

func (m *memArticles) list(match func(*entity.Article) bool, offset, limit int) []*entity.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Article, 0)
	for _, a := range m.articles {
		if match(a) {
			cp := *a
			cp.Comments = append([]entity.Comment(nil), a.Comments...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.Article{}
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (m *memArticles) Update(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.articles {
		if existing.ID == a.ID {
			cp := *a
			cp.Comments = append([]entity.Comment(nil), a.Comments...)
			m.articles[i] = &cp
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "Article not found")
}

// fakeVerifier maps tokens to canned claims; unknown tokens fail.
type fakeVerifier struct {
	claims map[string]*helpers.IdentityClaims
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*helpers.IdentityClaims, error) {
	c, ok := f.claims[token]
	if !ok {
		return nil, errors.New("token verification failed")
	}
	return c, nil
}

var (
	_ repository.UserRepository    = (*memUsers)(nil)
	_ repository.ProfileRepository = (*memProfiles)(nil)
	_ repository.ArticleRepository = (*memArticles)(nil)
	_ TokenVerifier                = (*fakeVerifier)(nil)
)
