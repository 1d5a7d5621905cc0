package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/domain/sheet"
	"github.com/turtacn/ChemSDS/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/render"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources"
	"github.com/turtacn/ChemSDS/internal/infrastructure/storage/minio"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// storeStub records stored exports and can fail a configurable number of
// times before succeeding.
type storeStub struct {
	stored   []storedExport
	failures int
	calls    int
}

type storedExport struct {
	rec    sdstypes.DocumentRecord
	format sdstypes.DocumentFormat
	size   int
}

func (s *storeStub) Store(ctx context.Context, rec sdstypes.DocumentRecord, format sdstypes.DocumentFormat, contentType string, data []byte) (*minio.StoredObject, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New(errors.ErrCodeStorageError, "upload failed")
	}
	s.stored = append(s.stored, storedExport{rec: rec, format: format, size: len(data)})
	return &minio.StoredObject{Key: minio.ObjectKey(rec.StructureKey, string(rec.ID), format)}, nil
}

func newTestService() sdsapp.Service {
	return sdsapp.NewService(sdsapp.Config{
		Computed: sources.NewComputed(),
		Renderers: map[sdstypes.DocumentFormat]sdsapp.Renderer{
			sdstypes.FormatJSON: render.NewJSONRenderer(),
			sdstypes.FormatPDF:  render.NewPDFRenderer(),
		},
	})
}

func encodedEvent(t *testing.T) []byte {
	t.Helper()
	event := kafka.NewDocumentGeneratedEvent(sdstypes.DocumentRecord{
		ID:           "doc-1",
		StructureKey: "k1",
		SMILES:       "CCO",
		Formula:      "C2H6O",
		Complete:     true,
	})
	data, err := event.Encode()
	require.NoError(t, err)
	return data
}

func TestArchiver_Handle(t *testing.T) {
	store := &storeStub{}
	arch := newArchiver(newTestService(), store, logging.NewNopLogger(), 0, time.Millisecond)

	err := arch.Handle(context.Background(), []byte("k1"), encodedEvent(t))
	require.NoError(t, err)

	require.Len(t, store.stored, 2)
	assert.Equal(t, sdstypes.FormatJSON, store.stored[0].format)
	assert.Equal(t, sdstypes.FormatPDF, store.stored[1].format)
	for _, exp := range store.stored {
		assert.Equal(t, "k1", exp.rec.StructureKey)
		assert.Equal(t, "doc-1", string(exp.rec.ID))
		assert.Positive(t, exp.size)
	}
}

func TestArchiver_Handle_DropsUndecodable(t *testing.T) {
	store := &storeStub{}
	arch := newArchiver(newTestService(), store, logging.NewNopLogger(), 0, time.Millisecond)

	err := arch.Handle(context.Background(), []byte("k1"), []byte("{not json"))
	require.NoError(t, err)
	assert.Empty(t, store.stored)
}

func TestArchiver_Handle_RetriesStorage(t *testing.T) {
	store := &storeStub{failures: 1}
	arch := newArchiver(newTestService(), store, logging.NewNopLogger(), 2, time.Millisecond)

	err := arch.Handle(context.Background(), []byte("k1"), encodedEvent(t))
	require.NoError(t, err)
	assert.Len(t, store.stored, 2)
}

func TestArchiver_Handle_StorageExhausted(t *testing.T) {
	store := &storeStub{failures: 10}
	arch := newArchiver(newTestService(), store, logging.NewNopLogger(), 1, time.Millisecond)

	err := arch.Handle(context.Background(), []byte("k1"), encodedEvent(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStorageError))
}

func TestArchiver_Handle_InvalidSMILESFails(t *testing.T) {
	event := kafka.NewDocumentGeneratedEvent(sdstypes.DocumentRecord{
		ID:           "doc-2",
		StructureKey: "k2",
		SMILES:       "C(", // unbalanced, resolver rejects it
	})
	data, err := event.Encode()
	require.NoError(t, err)

	store := &storeStub{}
	arch := newArchiver(newTestService(), store, logging.NewNopLogger(), 0, time.Millisecond)

	err = arch.Handle(context.Background(), []byte("k2"), data)
	require.Error(t, err)
	assert.Empty(t, store.stored)
}

// Confirms the generated document renders all 16 sections before archival.
func TestService_ExportShape(t *testing.T) {
	svc := newTestService()

	res, err := svc.Export(context.Background(), sdsapp.ExportInput{SMILES: "CCO", Format: sdstypes.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, "application/json", res.ContentType)
	assert.Contains(t, res.Filename, "C2H6O")

	doc, err := svc.Generate(context.Background(), sdsapp.GenerateInput{SMILES: "CCO"})
	require.NoError(t, err)
	assert.Len(t, doc.Sections(), sheet.SectionCount)
}

//Personal.AI order the ending
