package minio

import (
	"context"
	"io"
	"net/url"
	"sync"
	"testing"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

type apiStub struct {
	mu      sync.Mutex
	objects map[string][]byte
	stats   map[string]miniogo.ObjectInfo
	putErr  error
	statErr error
}

func newAPIStub() *apiStub {
	return &apiStub{
		objects: make(map[string][]byte),
		stats:   make(map[string]miniogo.ObjectInfo),
	}
}

func (s *apiStub) ListBuckets(context.Context) ([]miniogo.BucketInfo, error) {
	return []miniogo.BucketInfo{{Name: "chemsds-exports"}}, nil
}

func (s *apiStub) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (s *apiStub) MakeBucket(context.Context, string, miniogo.MakeBucketOptions) error { return nil }

func (s *apiStub) SetBucketLifecycle(context.Context, string, *lifecycle.Configuration) error {
	return nil
}

func (s *apiStub) PutObject(_ context.Context, _, objectName string, reader io.Reader, size int64, opts miniogo.PutObjectOptions) (miniogo.UploadInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return miniogo.UploadInfo{}, s.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return miniogo.UploadInfo{}, err
	}
	s.objects[objectName] = data
	s.stats[objectName] = miniogo.ObjectInfo{
		Key:          objectName,
		Size:         size,
		ContentType:  opts.ContentType,
		LastModified: time.Now().UTC(),
	}
	return miniogo.UploadInfo{Key: objectName, Size: size, ETag: "etag-1"}, nil
}

func (s *apiStub) GetObject(context.Context, string, string, miniogo.GetObjectOptions) (*miniogo.Object, error) {
	return nil, miniogo.ErrorResponse{Code: "NoSuchKey"}
}

func (s *apiStub) RemoveObject(_ context.Context, _, objectName string, _ miniogo.RemoveObjectOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	delete(s.stats, objectName)
	return nil
}

func (s *apiStub) StatObject(_ context.Context, _, objectName string, _ miniogo.StatObjectOptions) (miniogo.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statErr != nil {
		return miniogo.ObjectInfo{}, s.statErr
	}
	info, ok := s.stats[objectName]
	if !ok {
		return miniogo.ObjectInfo{}, miniogo.ErrorResponse{Code: "NoSuchKey"}
	}
	return info, nil
}

func (s *apiStub) ListObjects(_ context.Context, _ string, opts miniogo.ListObjectsOptions) <-chan miniogo.ObjectInfo {
	ch := make(chan miniogo.ObjectInfo)
	go func() {
		defer close(ch)
		s.mu.Lock()
		defer s.mu.Unlock()
		for key, info := range s.stats {
			if len(key) >= len(opts.Prefix) && key[:len(opts.Prefix)] == opts.Prefix {
				ch <- info
			}
		}
	}()
	return ch
}

func (s *apiStub) PresignedGetObject(_ context.Context, bucketName, objectName string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse("https://minio.local/" + bucketName + "/" + objectName)
}

func newTestArchive(stub *apiStub) *DocumentArchive {
	cfg := &Config{Bucket: "chemsds-exports"}
	applyDefaults(cfg)
	client := &Client{api: stub, config: cfg, logger: logging.NewNopLogger()}
	return NewDocumentArchive(client, logging.NewNopLogger())
}

func sampleDocRecord() sdstypes.DocumentRecord {
	return sdstypes.DocumentRecord{
		ID:           common.ID("doc-1"),
		StructureKey: "LFQSCWFLJHTTHZ-UHFFFAOYSA-N",
		SMILES:       "CCO",
		Formula:      "C2H6O",
		GeneratedAt:  common.NewTimestamp(),
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("LFQSCWFLJHTTHZ-UHFFFAOYSA-N", "doc-1", sdstypes.FormatPDF)
	assert.Equal(t, "sds/LFQSCWFLJHTTHZ-UHFFFAOYSA-N/doc-1.pdf", key)
}

func TestArchive_Store(t *testing.T) {
	stub := newAPIStub()
	archive := newTestArchive(stub)

	stored, err := archive.Store(context.Background(), sampleDocRecord(),
		sdstypes.FormatJSON, "application/json", []byte(`{"formula":"C2H6O"}`))
	require.NoError(t, err)

	assert.Equal(t, "sds/LFQSCWFLJHTTHZ-UHFFFAOYSA-N/doc-1.json", stored.Key)
	assert.Equal(t, []byte(`{"formula":"C2H6O"}`), stub.objects[stored.Key])

	exists, err := archive.Exists(context.Background(), stored.Key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestArchive_Store_Validation(t *testing.T) {
	archive := newTestArchive(newAPIStub())

	_, err := archive.Store(context.Background(), sdstypes.DocumentRecord{},
		sdstypes.FormatJSON, "application/json", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, err = archive.Store(context.Background(), sampleDocRecord(),
		sdstypes.FormatJSON, "application/json", nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestArchive_Store_UploadFailure(t *testing.T) {
	stub := newAPIStub()
	stub.putErr = assert.AnError
	archive := newTestArchive(stub)

	_, err := archive.Store(context.Background(), sampleDocRecord(),
		sdstypes.FormatJSON, "application/json", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStorageError))
}

func TestArchive_Fetch_NotFound(t *testing.T) {
	archive := newTestArchive(newAPIStub())

	_, err := archive.Fetch(context.Background(), "sds/unknown/doc-9.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestArchive_Exists_NotFound(t *testing.T) {
	archive := newTestArchive(newAPIStub())

	exists, err := archive.Exists(context.Background(), "sds/unknown/doc-9.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestArchive_Delete(t *testing.T) {
	stub := newAPIStub()
	archive := newTestArchive(stub)

	stored, err := archive.Store(context.Background(), sampleDocRecord(),
		sdstypes.FormatJSON, "application/json", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, archive.Delete(context.Background(), stored.Key))
	exists, err := archive.Exists(context.Background(), stored.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestArchive_ListByStructure(t *testing.T) {
	stub := newAPIStub()
	archive := newTestArchive(stub)

	rec := sampleDocRecord()
	_, err := archive.Store(context.Background(), rec, sdstypes.FormatJSON, "application/json", []byte("a"))
	require.NoError(t, err)
	rec.ID = common.ID("doc-2")
	_, err = archive.Store(context.Background(), rec, sdstypes.FormatPDF, "application/pdf", []byte("b"))
	require.NoError(t, err)

	other := sampleDocRecord()
	other.ID = common.ID("doc-3")
	other.StructureKey = "UHOVQNZJYSORNB-UHFFFAOYSA-N"
	_, err = archive.Store(context.Background(), other, sdstypes.FormatJSON, "application/json", []byte("c"))
	require.NoError(t, err)

	infos, err := archive.ListByStructure(context.Background(), rec.StructureKey)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	infos, err = archive.ListByStructure(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestArchive_PresignedURL(t *testing.T) {
	archive := newTestArchive(newAPIStub())

	u, err := archive.PresignedURL(context.Background(), "sds/k/doc-1.json", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/chemsds-exports/sds/k/doc-1.json", u)
}

//Personal.AI order the ending
