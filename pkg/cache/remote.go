package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of redis commands the remote facade uses. Satisfied
// by redis.UniversalClient.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Remote is a best-effort facade over the distributed cache tier. Every
// backend failure is logged and swallowed: a broken cache degrades to a
// slower read, never to a failed one.
type Remote struct {
	store Store
	log   *slog.Logger
}

// RemoteOption configures a Remote facade.
type RemoteOption func(*Remote)

// WithLogger sets the logger used for swallowed backend failures.
func WithLogger(log *slog.Logger) RemoteOption {
	return func(r *Remote) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRemote wraps a redis-compatible store.
func NewRemote(store Store, opts ...RemoteOption) *Remote {
	r := &Remote{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Set marshals value as JSON and stores it under key with the given TTL.
func (r *Remote) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, b, ttl).Err()
}

// Delete removes the given keys. Absent keys and backend failures are both
// fine; failures are logged and swallowed so invalidation stays idempotent
// and non-fatal.
func (r *Remote) Delete(ctx context.Context, keys ...string) {
	if r == nil || r.store == nil || len(keys) == 0 {
		return
	}
	if err := r.store.Del(ctx, keys...).Err(); err != nil {
		r.log.WarnContext(ctx, "distributed cache delete failed",
			slog.Any("keys", keys), slog.Any("error", err))
	}
}

// GetOrSet implements the cache-aside pattern: return the cached value for
// key if present, otherwise call produce and cache a non-nil result with
// the given TTL.
//
// A nil result from produce is returned to the caller but never written to
// the cache, so a transient "not found" (e.g. a tenant mid-provisioning)
// cannot be pinned for the full TTL. Backend read and write failures are
// logged and treated as misses; the producer's result is always returned.
func GetOrSet[T any](ctx context.Context, r *Remote, key string, ttl time.Duration, produce func(context.Context) (*T, error)) (*T, error) {
	if r == nil || r.store == nil {
		return produce(ctx)
	}

	raw, err := r.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if uerr := json.Unmarshal(raw, &v); uerr == nil {
			return &v, nil
		}
		// Corrupted entry: drop it and fall through to the producer.
		r.log.WarnContext(ctx, "distributed cache entry is not valid json, dropping",
			slog.String("key", key))
		r.Delete(ctx, key)
	case errors.Is(err, redis.Nil):
		// miss
	default:
		r.log.WarnContext(ctx, "distributed cache read failed",
			slog.String("key", key), slog.Any("error", err))
	}

	v, err := produce(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	if serr := r.Set(ctx, key, v, ttl); serr != nil {
		r.log.WarnContext(ctx, "distributed cache write failed",
			slog.String("key", key), slog.Any("error", serr))
	}
	return v, nil
}
