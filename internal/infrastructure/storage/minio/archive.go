package minio

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

var ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")

// StoredObject describes an archived export.
type StoredObject struct {
	Key        string
	ETag       string
	Size       int64
	UploadedAt time.Time
}

// ExportObject is a downloaded archived export.
type ExportObject struct {
	Data         []byte
	ContentType  string
	Size         int64
	LastModified time.Time
}

// ExportInfo is one entry in an archive listing.
type ExportInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// DocumentArchive stores rendered SDS exports, keyed by structure key and
// document ID so every revision of a compound's sheet is retained.
type DocumentArchive struct {
	client *Client
	logger logging.Logger
}

// NewDocumentArchive builds an archive over the connected client.
func NewDocumentArchive(client *Client, logger logging.Logger) *DocumentArchive {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DocumentArchive{client: client, logger: logger}
}

// ObjectKey builds the archive key for one document export.
func ObjectKey(structureKey string, documentID string, format sdstypes.DocumentFormat) string {
	return "sds/" + structureKey + "/" + documentID + "." + string(format)
}

// Store uploads a rendered export and returns its archive location.
func (a *DocumentArchive) Store(ctx context.Context, rec sdstypes.DocumentRecord, format sdstypes.DocumentFormat, contentType string, data []byte) (*StoredObject, error) {
	if rec.StructureKey == "" || rec.ID == "" {
		return nil, errors.New(errors.ErrCodeBadRequest, "structure key and document ID required")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeBadRequest, "export payload is empty")
	}

	key := ObjectKey(rec.StructureKey, string(rec.ID), format)
	info, err := a.client.api.PutObject(ctx, a.client.Bucket(), key,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"Structure-Key": rec.StructureKey,
				"Formula":       rec.Formula,
			},
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to archive export").
			WithDetail("key=" + key)
	}

	a.logger.Debug("Export archived",
		logging.String("key", key),
		logging.Int64("size", info.Size))
	return &StoredObject{
		Key:        key,
		ETag:       info.ETag,
		Size:       info.Size,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Fetch downloads an archived export by key.
func (a *DocumentArchive) Fetch(ctx context.Context, key string) (*ExportObject, error) {
	stat, err := a.client.api.StatObject(ctx, a.client.Bucket(), key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat export")
	}

	obj, err := a.client.api.GetObject(ctx, a.client.Bucket(), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to fetch export")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read export")
	}

	return &ExportObject{
		Data:         data,
		ContentType:  stat.ContentType,
		Size:         stat.Size,
		LastModified: stat.LastModified,
	}, nil
}

// Exists reports whether an export is archived under key.
func (a *DocumentArchive) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.api.StatObject(ctx, a.client.Bucket(), key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat export")
	}
	return true, nil
}

// Delete removes one archived export.
func (a *DocumentArchive) Delete(ctx context.Context, key string) error {
	if err := a.client.api.RemoveObject(ctx, a.client.Bucket(), key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to delete export")
	}
	return nil
}

// ListByStructure returns all archived exports for one structure key.
func (a *DocumentArchive) ListByStructure(ctx context.Context, structureKey string) ([]ExportInfo, error) {
	prefix := "sds/" + structureKey + "/"
	ch := a.client.api.ListObjects(ctx, a.client.Bucket(), minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var infos []ExportInfo
	for obj := range ch {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStorageError, "failed to list exports")
		}
		infos = append(infos, ExportInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return infos, nil
}

// DownloadURL presigns the archived export for one document and format,
// verifying the object exists first so callers get a not-found error
// instead of a URL that 404s.
func (a *DocumentArchive) DownloadURL(ctx context.Context, structureKey, documentID string, format sdstypes.DocumentFormat) (string, error) {
	key := ObjectKey(structureKey, documentID, format)
	exists, err := a.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrObjectNotFound
	}
	return a.PresignedURL(ctx, key, 0)
}

// PresignedURL returns a time-limited download URL for an archived export.
func (a *DocumentArchive) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = a.client.config.PresignExpiry
	}
	u, err := a.client.api.PresignedGetObject(ctx, a.client.Bucket(), key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to presign export URL")
	}
	return u.String(), nil
}

//Personal.AI order the ending
