// Package property gathers tagged property values for a resolved molecule
// from heterogeneous sources with per-key failure isolation.  The computed
// source is local and always available; the fetched source is network-backed
// and may fail or time out independently per key.  Neither condition ever
// fails a document: missing data degrades into an explicit unavailable value.
package property

import (
	"context"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// ComputedSource supplies locally derivable values.  Compute never blocks on
// I/O; the second return is false when the source has nothing for the key.
type ComputedSource interface {
	Name() string
	Compute(id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, bool)
}

// FetchedSource supplies externally looked-up values.  Lookup honours ctx
// cancellation; a failed or empty lookup returns an error, which the adapter
// degrades per key rather than propagating.
type FetchedSource interface {
	Name() string
	Lookup(ctx context.Context, id *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, error)
}

// Record maps property keys to tagged values while preserving the request
// order of its keys, so document rendering stays deterministic.  Every
// requested key is present; keys no source could supply hold the unavailable
// placeholder.
type Record struct {
	keys   []sdstypes.PropertyKey
	values map[sdstypes.PropertyKey]sdstypes.TaggedValue
}

// NewRecord builds an empty record that will hold the given keys in order.
// Duplicate keys are collapsed to their first occurrence.
func NewRecord(keys []sdstypes.PropertyKey) *Record {
	r := &Record{values: make(map[sdstypes.PropertyKey]sdstypes.TaggedValue, len(keys))}
	for _, k := range keys {
		if _, seen := r.values[k]; seen {
			continue
		}
		r.keys = append(r.keys, k)
		r.values[k] = sdstypes.Unavailable()
	}
	return r
}

// Set stores a value for a key already declared at construction.  Unknown
// keys are ignored: the vocabulary is fixed per request.
func (r *Record) Set(key sdstypes.PropertyKey, v sdstypes.TaggedValue) {
	if _, ok := r.values[key]; ok {
		r.values[key] = v
	}
}

// Get returns the tagged value for key.  Keys outside the record come back
// as unavailable, so callers never branch on presence.
func (r *Record) Get(key sdstypes.PropertyKey) sdstypes.TaggedValue {
	if v, ok := r.values[key]; ok {
		return v
	}
	return sdstypes.Unavailable()
}

// Keys returns the record's keys in request order.
func (r *Record) Keys() []sdstypes.PropertyKey {
	return r.keys
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// AvailableCount returns how many keys hold real (non-placeholder) values.
func (r *Record) AvailableCount() int {
	n := 0
	for _, k := range r.keys {
		if r.values[k].IsAvailable() {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
