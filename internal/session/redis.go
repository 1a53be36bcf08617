package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ripplehq/ripple/pkg/helpers"
)

// RedisStore keeps session records in Redis keyed by a random session id.
// The token handed to clients is the id wrapped in an HS256-signed JWT so
// a forged cookie is rejected before Redis is consulted; the Redis record
// stays authoritative — destroying it invalidates the token no matter how
// valid the signature is.
type RedisStore struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewRedisStore(rdb *redis.Client, secret string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

func sessionKey(sid string) string { return "session:" + sid }

type tokenClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *RedisStore) Create(ctx context.Context, username string) (string, error) {
	sid := uuid.NewString()
	sess := Session{Username: username, CreatedAt: time.Now().UTC()}
	if err := helpers.RedisSetJSON(ctx, s.rdb, sessionKey(sid), sess, s.ttl); err != nil {
		return "", err
	}
	claims := &tokenClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	sid, err := s.parse(token)
	if err != nil {
		return nil, ErrNotFound
	}
	var sess Session
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(sid), &sess)
	if err != nil {
		return nil, err
	}
	if !ok || sess.Username == "" {
		return nil, ErrNotFound
	}
	// Re-arm the idle timeout.
	_ = s.rdb.Expire(ctx, sessionKey(sid), s.ttl).Err()
	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	sid, err := s.parse(token)
	if err != nil {
		return ErrNotFound
	}
	n, err := s.rdb.Del(ctx, sessionKey(sid)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) parse(token string) (string, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.SID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SID, nil
}

var _ Store = (*RedisStore)(nil)
