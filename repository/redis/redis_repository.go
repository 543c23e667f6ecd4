package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Repository caches bearer-token resolutions so authenticated requests do
// not hit the store on every call.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetTokenUser(ctx context.Context, tokenKey string, userID uint64, ttl time.Duration) error
	GetTokenUser(ctx context.Context, tokenKey string) (uint64, error)
	DeleteTokenUser(ctx context.Context, tokenKey string) error
}

type repo struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository backed by the injected client.
// A nil client degrades to a no-op cache so the service stays usable when
// redis is down.
func NewRepository(client *goredis.Client) Repository {
	return &repo{client: client}
}

func (r *repo) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *repo) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *repo) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *repo) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// SetTokenUser caches a token -> userID resolution with TTL.
func (r *repo) SetTokenUser(ctx context.Context, tokenKey string, userID uint64, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, "token:"+tokenKey, userID, ttl).Err()
}

// GetTokenUser retrieves a cached token resolution. A miss returns an error
// from the client; callers fall back to the store.
func (r *repo) GetTokenUser(ctx context.Context, tokenKey string) (uint64, error) {
	if r.client == nil {
		return 0, goredis.Nil
	}
	return r.client.Get(ctx, "token:"+tokenKey).Uint64()
}

// DeleteTokenUser invalidates a cached resolution on revocation.
func (r *repo) DeleteTokenUser(ctx context.Context, tokenKey string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, "token:"+tokenKey).Err()
}
