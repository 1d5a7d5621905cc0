package sources

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// cacheStub is an in-memory redis.Cache.
type cacheStub struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: map[string][]byte{}}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	data, ok := s.entries[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = data
	s.sets++
	return nil
}

func (s *cacheStub) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

func (s *cacheStub) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.entries[key]
	return ok, nil
}

func (s *cacheStub) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	return redis.ErrCacheMiss
}

func (s *cacheStub) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	return 0, nil
}

func (s *cacheStub) Ping(ctx context.Context) error { return nil }

// fetchedStub counts lookups.
type fetchedStub struct {
	value   sdstypes.TaggedValue
	err     error
	lookups int
}

func (s *fetchedStub) Name() string { return "stub" }

func (s *fetchedStub) Lookup(ctx context.Context, id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, error) {
	s.lookups++
	if s.err != nil {
		return sdstypes.TaggedValue{}, s.err
	}
	return s.value, nil
}

func resolveEthanol(t *testing.T) *identity.MoleculeIdentity {
	t.Helper()
	id, err := identity.NewResolver(logging.NewNopLogger()).Resolve("CCO")
	require.NoError(t, err)
	return id
}

func TestCachedFetched_MissThenHit(t *testing.T) {
	inner := &fetchedStub{value: sdstypes.TaggedValue{
		Value:      "78.2",
		Unit:       "°C",
		Source:     sdstypes.SourceFetched,
		Confidence: 0.9,
	}}
	cache := newCacheStub()
	cached := NewCachedFetched(inner, cache, time.Hour, logging.NewNopLogger())

	id := resolveEthanol(t)

	first, err := cached.Lookup(context.Background(), id, sdstypes.KeyBoilingPoint)
	require.NoError(t, err)
	assert.Equal(t, "78.2", first.Value)
	assert.Equal(t, 1, inner.lookups)
	assert.Equal(t, 1, cache.sets)

	second, err := cached.Lookup(context.Background(), id, sdstypes.KeyBoilingPoint)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.lookups, "second lookup must be served from cache")
}

func TestCachedFetched_ErrorsNotCached(t *testing.T) {
	inner := &fetchedStub{err: errors.New(errors.ErrCodeDataSourceUnavailable, "upstream down")}
	cache := newCacheStub()
	cached := NewCachedFetched(inner, cache, time.Hour, logging.NewNopLogger())

	id := resolveEthanol(t)

	_, err := cached.Lookup(context.Background(), id, sdstypes.KeyBoilingPoint)
	require.Error(t, err)
	assert.Equal(t, 0, cache.sets)

	_, err = cached.Lookup(context.Background(), id, sdstypes.KeyBoilingPoint)
	require.Error(t, err)
	assert.Equal(t, 2, inner.lookups)
}

func TestCachedFetched_CacheFailureFallsThrough(t *testing.T) {
	inner := &fetchedStub{value: sdstypes.TaggedValue{Value: "1.1", Source: sdstypes.SourceFetched}}
	cache := newCacheStub()
	cache.getErr = errors.New(errors.ErrCodeCacheError, "connection refused")
	cache.setErr = cache.getErr
	cached := NewCachedFetched(inner, cache, time.Hour, logging.NewNopLogger())

	id := resolveEthanol(t)

	value, err := cached.Lookup(context.Background(), id, sdstypes.KeyDensity)
	require.NoError(t, err)
	assert.Equal(t, "1.1", value.Value)
}

func TestCachedFetched_PreservesProvenanceName(t *testing.T) {
	cached := NewCachedFetched(&fetchedStub{}, newCacheStub(), 0, nil)
	assert.Equal(t, "stub", cached.Name())
}

//Personal.AI order the ending
