package property

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const (
	defaultKeyTimeout     = 3 * time.Second
	defaultMaxConcurrency = 8
)

// Adapter reconciles the computed and fetched sources into one Record per
// request.  The computed source always wins ties: a key it can supply is
// never sent to the fetched source, which keeps output deterministic for a
// given identity and fixed provider responses.
type Adapter struct {
	computed       ComputedSource
	fetched        FetchedSource
	keyTimeout     time.Duration
	maxConcurrency int
	logger         logging.Logger
}

// AdapterOption customises an Adapter.
type AdapterOption func(*Adapter)

// WithKeyTimeout bounds each individual fetched-source lookup.
func WithKeyTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		if d > 0 {
			a.keyTimeout = d
		}
	}
}

// WithMaxConcurrency caps simultaneous fetched-source lookups.
func WithMaxConcurrency(n int) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxConcurrency = n
		}
	}
}

// NewAdapter constructs an Adapter.  fetched may be nil, in which case only
// the computed source runs and everything else defaults to unavailable.
func NewAdapter(computed ComputedSource, fetched FetchedSource, logger logging.Logger, opts ...AdapterOption) *Adapter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	a := &Adapter{
		computed:       computed,
		fetched:        fetched,
		keyTimeout:     defaultKeyTimeout,
		maxConcurrency: defaultMaxConcurrency,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Gather returns a Record covering every requested key.  Fetched-source
// failures and timeouts are soft: they degrade the affected key to
// unavailable and the rest of the record is unaffected.  Gather itself never
// fails.
func (a *Adapter) Gather(ctx context.Context, id *identity.MoleculeIdentity, keys []sdstypes.PropertyKey) *Record {
	record := NewRecord(keys)

	// Computed pass: local, synchronous, no suspension points.
	var missing []sdstypes.PropertyKey
	for _, k := range record.Keys() {
		if v, ok := a.computed.Compute(id, k); ok {
			record.Set(k, v)
		} else {
			missing = append(missing, k)
		}
	}

	if a.fetched == nil || len(missing) == 0 {
		return record
	}

	// Fetched pass: bounded fan-out, one goroutine per missing key.  Each
	// result lands in its own slot, so the merge needs no locking and its
	// order is irrelevant.
	results := make([]sdstypes.TaggedValue, len(missing))
	found := make([]bool, len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)
	for i, key := range missing {
		i, key := i, key
		g.Go(func() error {
			keyCtx, cancel := context.WithTimeout(gctx, a.keyTimeout)
			defer cancel()

			v, err := a.fetched.Lookup(keyCtx, id, key)
			if err != nil {
				a.logger.Warn("fetched source lookup degraded",
					logging.String("source", a.fetched.Name()),
					logging.String("key", string(key)),
					logging.Err(err))
				return nil
			}
			results[i], found[i] = v, true
			return nil
		})
	}
	// Workers only ever return nil; the group is used for bounding and
	// shared cancellation.
	_ = g.Wait()

	for i, key := range missing {
		if found[i] {
			record.Set(key, results[i])
		}
	}

	a.logger.Debug("property record assembled",
		logging.Int("requested", record.Len()),
		logging.Int("available", record.AvailableCount()))

	return record
}

//Personal.AI order the ending
