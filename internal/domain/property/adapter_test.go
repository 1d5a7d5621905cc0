package property

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/domain/identity"
	apperrors "github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

type stubComputed struct {
	values map[sdstypes.PropertyKey]string
}

func (s *stubComputed) Name() string { return "stub-computed" }

func (s *stubComputed) Compute(_ *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, bool) {
	v, ok := s.values[key]
	if !ok {
		return sdstypes.TaggedValue{}, false
	}
	return sdstypes.TaggedValue{Value: v, Source: sdstypes.SourceComputed, Confidence: 1}, true
}

type stubFetched struct {
	values map[sdstypes.PropertyKey]string
	errs   map[sdstypes.PropertyKey]error
	delay  time.Duration
	calls  []sdstypes.PropertyKey
}

func (s *stubFetched) Name() string { return "stub-fetched" }

func (s *stubFetched) Lookup(ctx context.Context, _ *identity.MoleculeIdentity, key sdstypes.PropertyKey) (sdstypes.TaggedValue, error) {
	s.calls = append(s.calls, key)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return sdstypes.TaggedValue{}, apperrors.Wrap(ctx.Err(), apperrors.ErrCodePropertyTimeout, "lookup timed out")
		}
	}
	if err := s.errs[key]; err != nil {
		return sdstypes.TaggedValue{}, err
	}
	v, ok := s.values[key]
	if !ok {
		return sdstypes.TaggedValue{}, apperrors.New(apperrors.ErrCodeDataSourceNoMatch, "no data for key")
	}
	return sdstypes.TaggedValue{Value: v, Source: sdstypes.SourceFetched, Confidence: 0.8}, nil
}

func testIdentity(t *testing.T) *identity.MoleculeIdentity {
	t.Helper()
	id, err := identity.NewResolver(nil).Resolve("CCO")
	require.NoError(t, err)
	return id
}

func TestAdapter_ComputedWins(t *testing.T) {
	computed := &stubComputed{values: map[sdstypes.PropertyKey]string{
		sdstypes.KeyMolecularWeight: "46.07",
	}}
	fetched := &stubFetched{values: map[sdstypes.PropertyKey]string{
		sdstypes.KeyMolecularWeight: "999",
		sdstypes.KeyBoilingPoint:    "78.37 °C",
	}}
	a := NewAdapter(computed, fetched, nil)

	rec := a.Gather(context.Background(), testIdentity(t),
		[]sdstypes.PropertyKey{sdstypes.KeyMolecularWeight, sdstypes.KeyBoilingPoint})

	mw := rec.Get(sdstypes.KeyMolecularWeight)
	assert.Equal(t, "46.07", mw.Value)
	assert.Equal(t, sdstypes.SourceComputed, mw.Source)

	bp := rec.Get(sdstypes.KeyBoilingPoint)
	assert.Equal(t, "78.37 °C", bp.Value)
	assert.Equal(t, sdstypes.SourceFetched, bp.Source)

	// The computed key never reached the fetched source.
	assert.Equal(t, []sdstypes.PropertyKey{sdstypes.KeyBoilingPoint}, fetched.calls)
}

func TestAdapter_PerKeyFailureIsolation(t *testing.T) {
	computed := &stubComputed{}
	fetched := &stubFetched{
		values: map[sdstypes.PropertyKey]string{
			sdstypes.KeyDensity: "0.789 g/mL",
		},
		errs: map[sdstypes.PropertyKey]error{
			sdstypes.KeyFlashPoint: apperrors.New(apperrors.ErrCodeDataSourceUnavailable, "upstream down"),
		},
	}
	a := NewAdapter(computed, fetched, nil, WithMaxConcurrency(1))

	rec := a.Gather(context.Background(), testIdentity(t),
		[]sdstypes.PropertyKey{sdstypes.KeyFlashPoint, sdstypes.KeyDensity})

	assert.Equal(t, sdstypes.NotAvailable, rec.Get(sdstypes.KeyFlashPoint).Value)
	assert.Equal(t, sdstypes.SourceUnavailable, rec.Get(sdstypes.KeyFlashPoint).Source)
	assert.Equal(t, "0.789 g/mL", rec.Get(sdstypes.KeyDensity).Value)
}

func TestAdapter_TimeoutDegradesKey(t *testing.T) {
	computed := &stubComputed{}
	fetched := &stubFetched{
		values: map[sdstypes.PropertyKey]string{sdstypes.KeyBoilingPoint: "late"},
		delay:  200 * time.Millisecond,
	}
	a := NewAdapter(computed, fetched, nil, WithKeyTimeout(10*time.Millisecond))

	start := time.Now()
	rec := a.Gather(context.Background(), testIdentity(t),
		[]sdstypes.PropertyKey{sdstypes.KeyBoilingPoint})

	assert.Equal(t, sdstypes.NotAvailable, rec.Get(sdstypes.KeyBoilingPoint).Value)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestAdapter_NilFetchedSource(t *testing.T) {
	computed := &stubComputed{values: map[sdstypes.PropertyKey]string{
		sdstypes.KeyLogP: "0.23",
	}}
	a := NewAdapter(computed, nil, nil)

	rec := a.Gather(context.Background(), testIdentity(t),
		[]sdstypes.PropertyKey{sdstypes.KeyLogP, sdstypes.KeyCASNumber})

	assert.Equal(t, "0.23", rec.Get(sdstypes.KeyLogP).Value)
	assert.Equal(t, sdstypes.NotAvailable, rec.Get(sdstypes.KeyCASNumber).Value)
}

func TestAdapter_EveryRequestedKeyPresent(t *testing.T) {
	a := NewAdapter(&stubComputed{}, nil, nil)
	keys := sdstypes.AllPropertyKeys

	rec := a.Gather(context.Background(), testIdentity(t), keys)

	assert.Equal(t, len(keys), rec.Len())
	for _, k := range keys {
		v := rec.Get(k)
		assert.Equal(t, sdstypes.NotAvailable, v.Value, string(k))
		assert.Equal(t, sdstypes.SourceUnavailable, v.Source, string(k))
	}
}

func TestRecord_OrderAndDeduplication(t *testing.T) {
	rec := NewRecord([]sdstypes.PropertyKey{
		sdstypes.KeyLogP, sdstypes.KeyTPSA, sdstypes.KeyLogP,
	})
	assert.Equal(t, []sdstypes.PropertyKey{sdstypes.KeyLogP, sdstypes.KeyTPSA}, rec.Keys())

	// Unknown keys are ignored on Set and unavailable on Get.
	rec.Set(sdstypes.KeyDensity, sdstypes.TaggedValue{Value: "x", Source: sdstypes.SourceComputed})
	assert.Equal(t, sdstypes.NotAvailable, rec.Get(sdstypes.KeyDensity).Value)
	assert.Equal(t, 2, rec.Len())
}

func TestRecord_AvailableCount(t *testing.T) {
	rec := NewRecord([]sdstypes.PropertyKey{sdstypes.KeyLogP, sdstypes.KeyTPSA})
	assert.Equal(t, 0, rec.AvailableCount())
	rec.Set(sdstypes.KeyLogP, sdstypes.TaggedValue{Value: "0.23", Source: sdstypes.SourceComputed})
	assert.Equal(t, 1, rec.AvailableCount())
}

//Personal.AI order the ending
