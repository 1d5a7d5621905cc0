package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// memCache is an in-memory Cache used to test the document cache without a
// redis connection.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok, nil
}

func (m *memCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrCacheMiss
	}
	if err := m.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memCache) DeleteByPrefix(context.Context, string) (int64, error) { return 0, nil }
func (m *memCache) Ping(context.Context) error                           { return nil }

func sampleView(key string) sdstypes.DocumentView {
	return sdstypes.DocumentView{
		ID:       "doc-1",
		Identity: sdstypes.IdentityView{StructureKey: key, Formula: "C2H6O"},
		Complete: false,
	}
}

func TestDocumentCache_RoundTrip(t *testing.T) {
	dc := NewDocumentCache(newMemCache())
	ctx := context.Background()

	_, err := dc.Get(ctx, "CCO", false)
	assert.Equal(t, ErrCacheMiss, err)

	require.NoError(t, dc.Put(ctx, "CCO", false, sampleView("K1")))

	got, err := dc.Get(ctx, "CCO", false)
	require.NoError(t, err)
	assert.Equal(t, "K1", got.Identity.StructureKey)
}

func TestDocumentCache_FetchVariantsAreSeparate(t *testing.T) {
	dc := NewDocumentCache(newMemCache())
	ctx := context.Background()

	require.NoError(t, dc.Put(ctx, "CCO", true, sampleView("FETCHED")))

	_, err := dc.Get(ctx, "CCO", false)
	assert.Equal(t, ErrCacheMiss, err, "computed-only variant must not alias the fetched one")

	got, err := dc.Get(ctx, "CCO", true)
	require.NoError(t, err)
	assert.Equal(t, "FETCHED", got.Identity.StructureKey)
}

func TestDocumentCache_Invalidate(t *testing.T) {
	dc := NewDocumentCache(newMemCache())
	ctx := context.Background()

	require.NoError(t, dc.Put(ctx, "CCO", false, sampleView("K1")))
	require.NoError(t, dc.Put(ctx, "CCO", true, sampleView("K2")))
	require.NoError(t, dc.Invalidate(ctx, "CCO"))

	_, err := dc.Get(ctx, "CCO", false)
	assert.Equal(t, ErrCacheMiss, err)
	_, err = dc.Get(ctx, "CCO", true)
	assert.Equal(t, ErrCacheMiss, err)
}

func TestDocumentCache_WhitespaceInsensitiveKey(t *testing.T) {
	dc := NewDocumentCache(newMemCache())
	ctx := context.Background()

	require.NoError(t, dc.Put(ctx, "CCO", false, sampleView("K1")))

	got, err := dc.Get(ctx, "  CCO  ", false)
	require.NoError(t, err)
	assert.Equal(t, "K1", got.Identity.StructureKey)
}

//Personal.AI order the ending
