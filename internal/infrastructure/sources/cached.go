package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// defaultLookupTTL bounds staleness of cached external lookups when no TTL
// is configured.
const defaultLookupTTL = 24 * time.Hour

// CachedFetched decorates a fetched source with a redis-backed lookup
// cache keyed by structure key, so repeated generations for the same
// molecule skip the network entirely. Only successful lookups are cached;
// failures stay transparent so the per-key isolation in the adapter keeps
// working.
type CachedFetched struct {
	inner  property.FetchedSource
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedFetched wraps inner with a lookup cache. A non-positive ttl
// falls back to the default.
func NewCachedFetched(inner property.FetchedSource, cache redis.Cache, ttl time.Duration, logger logging.Logger) *CachedFetched {
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CachedFetched{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

var _ property.FetchedSource = (*CachedFetched)(nil)

// Name reports the inner source's name so provenance is unaffected by
// caching.
func (c *CachedFetched) Name() string { return c.inner.Name() }

func (c *CachedFetched) Lookup(ctx context.Context, id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, error) {
	cacheKey := c.key(id, key)

	var cached sdstypes.TaggedValue
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if err != redis.ErrCacheMiss {
		c.logger.Warn("lookup cache read failed",
			logging.String("key", cacheKey),
			logging.Err(err))
	}

	value, err := c.inner.Lookup(ctx, id, key)
	if err != nil {
		return sdstypes.TaggedValue{}, err
	}

	if err := c.cache.Set(ctx, cacheKey, value, c.ttl); err != nil {
		c.logger.Warn("lookup cache write failed",
			logging.String("key", cacheKey),
			logging.Err(err))
	}
	return value, nil
}

func (c *CachedFetched) key(id *identity.MoleculeIdentity, key sdstypes.PropertyKey) string {
	return fmt.Sprintf("lookup:%s:%s:%s", c.inner.Name(), id.StructureKey, key)
}

//Personal.AI order the ending
