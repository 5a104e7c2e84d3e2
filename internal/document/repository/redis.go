package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/logger"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

// RedisCache is a read-through cache in front of another Repository.
// Snapshots are stored as JSON under "<prefix><id>" with a fixed TTL; writes
// go to the inner repository first and then drop the cached copy.
type RedisCache struct {
	inner  Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps inner. Prefix defaults to "document:" and ttl to five minutes.
func NewRedisCache(inner Repository, client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "document:"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{inner: inner, client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisCache) key(id string) string {
	return r.prefix + id
}

func (r *RedisCache) Create(ctx context.Context, snap *document.Snapshot) (string, error) {
	return r.inner.Create(ctx, snap)
}

func (r *RedisCache) Get(ctx context.Context, id string) (*document.Snapshot, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	switch {
	case err == nil:
		var s document.Snapshot
		if jerr := json.Unmarshal(b, &s); jerr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &s, nil
		}
		// corrupt entry: drop it and fall through to the inner repository
		_ = r.client.Del(ctx, r.key(id)).Err()
	case errors.Is(err, redis.Nil):
	default:
		logger.Warnf("document cache get %s: %v", id, err)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	s, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(s); err == nil {
		if err := r.client.Set(ctx, r.key(id), b, r.ttl).Err(); err != nil {
			logger.Warnf("document cache set %s: %v", id, err)
		}
	}
	return s, nil
}

func (r *RedisCache) List(ctx context.Context) ([]*document.Snapshot, error) {
	return r.inner.List(ctx)
}

func (r *RedisCache) Save(ctx context.Context, id string, payload *document.SavePayload) error {
	if err := r.inner.Save(ctx, id, payload); err != nil {
		return err
	}
	return r.evict(ctx, id)
}

func (r *RedisCache) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	return r.evict(ctx, id)
}

func (r *RedisCache) evict(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		logger.Warnf("document cache evict %s: %v", id, err)
	}
	return nil
}
