package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// documentTTL keeps rendered documents warm long enough for repeated reads
// of the same structure without letting stale fetched data linger for days.
const documentTTL = 6 * time.Hour

// DocumentCache stores assembled document views keyed by the raw SMILES
// input and the fetch flag.  Generation is deterministic for a given input
// and flag, so a hit is always byte-equivalent to regeneration apart from
// the document ID and timestamp.
type DocumentCache struct {
	cache Cache
	ttl   time.Duration
}

// NewDocumentCache builds the document view cache.
func NewDocumentCache(cache Cache) *DocumentCache {
	return &DocumentCache{cache: cache, ttl: documentTTL}
}

// key hashes the input so arbitrary SMILES text never leaks into key space
// syntax.
func (d *DocumentCache) key(smiles string, fetch bool) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(smiles)))
	suffix := "computed"
	if fetch {
		suffix = "fetched"
	}
	return "doc:" + hex.EncodeToString(sum[:16]) + ":" + suffix
}

// Get returns the cached view for the input, or ErrCacheMiss.
func (d *DocumentCache) Get(ctx context.Context, smiles string, fetch bool) (*sdstypes.DocumentView, error) {
	var view sdstypes.DocumentView
	if err := d.cache.Get(ctx, d.key(smiles, fetch), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Put stores a freshly generated view.
func (d *DocumentCache) Put(ctx context.Context, smiles string, fetch bool, view sdstypes.DocumentView) error {
	return d.cache.Set(ctx, d.key(smiles, fetch), view, d.ttl)
}

// Invalidate drops both variants for the input.
func (d *DocumentCache) Invalidate(ctx context.Context, smiles string) error {
	return d.cache.Delete(ctx, d.key(smiles, false), d.key(smiles, true))
}

//Personal.AI order the ending
