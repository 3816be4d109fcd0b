package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sass-store/storekit/pkg/cache"
)

type payload struct {
	Name string `json:"name"`
}

// fakeStore is an in-memory stand-in for the redis client.
type fakeStore struct {
	mu   sync.Mutex
	data map[string]string

	getErr error
	setErr error
	delErr error

	getCalls int
	setCalls int
	delCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCalls++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.delCalls++
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

func TestGetOrSet_MissProducesAndCaches(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	remote := cache.NewRemote(store)

	calls := 0
	produce := func(context.Context) (*payload, error) {
		calls++
		return &payload{Name: "acme"}, nil
	}

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute, produce)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "acme", v.Name)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.len())
}

func TestGetOrSet_HitSkipsProducer(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	remote := cache.NewRemote(store)

	_, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "acme"}, nil })
	require.NoError(t, err)

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) {
			t.Fatal("producer must not run on cache hit")
			return nil, nil
		})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "acme", v.Name)
}

func TestGetOrSet_NilResultNotCached(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	remote := cache.NewRemote(store)

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, store.len(), "nil results must never be written to the cache")

	// The earlier nil result must not poison the key: a producer that now
	// finds the value succeeds and caches it.
	v, err = cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "late"}, nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "late", v.Name)
	assert.Equal(t, 1, store.len())
}

func TestGetOrSet_ProducerErrorPropagates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	remote := cache.NewRemote(store)

	wantErr := errors.New("assembly failed")
	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return nil, wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, v)
	assert.Equal(t, 0, store.len())
}

func TestGetOrSet_ReadFailureFallsThroughToProducer(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	remote := cache.NewRemote(store)

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "acme"}, nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "acme", v.Name)
}

func TestGetOrSet_WriteFailureStillReturnsValue(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.setErr = errors.New("connection refused")
	remote := cache.NewRemote(store)

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "acme"}, nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "acme", v.Name)
}

func TestGetOrSet_CorruptedEntryDropsAndReproduces(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.data["k"] = "{not json"
	remote := cache.NewRemote(store)

	v, err := cache.GetOrSet(context.Background(), remote, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "fresh"}, nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "fresh", v.Name)
	assert.GreaterOrEqual(t, store.delCalls, 1, "corrupted entry should be dropped")
}

func TestGetOrSet_NilRemoteDelegatesToProducer(t *testing.T) {
	t.Parallel()

	v, err := cache.GetOrSet(context.Background(), nil, "k", time.Minute,
		func(context.Context) (*payload, error) { return &payload{Name: "direct"}, nil })
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "direct", v.Name)
}

func TestRemote_DeleteSwallowsFailures(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.delErr = errors.New("connection refused")
	remote := cache.NewRemote(store)

	// Must not panic or surface the error.
	remote.Delete(context.Background(), "k")

	// Deleting absent keys is idempotent.
	store.delErr = nil
	remote.Delete(context.Background(), "missing")
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tenant:with-data:acme", cache.Key("tenant", "with-data", "acme"))
	assert.Equal(t, "tenant", cache.Key("tenant"))
}
