package main

import (
	"context"
	"time"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/storage/minio"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// archivedFormats lists the renderings stored for every generated document.
var archivedFormats = []sdstypes.DocumentFormat{
	sdstypes.FormatJSON,
	sdstypes.FormatPDF,
}

// exportStore is the slice of the archive the worker needs.
type exportStore interface {
	Store(ctx context.Context, rec sdstypes.DocumentRecord, format sdstypes.DocumentFormat, contentType string, data []byte) (*minio.StoredObject, error)
}

// archiver turns generation events into archived exports.
type archiver struct {
	svc        sdsapp.Service
	archive    exportStore
	logger     logging.Logger
	maxRetries int
	backoff    time.Duration
}

func newArchiver(svc sdsapp.Service, archive exportStore, logger logging.Logger, maxRetries int, backoff time.Duration) *archiver {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &archiver{
		svc:        svc,
		archive:    archive,
		logger:     logger,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// Handle processes one generation event. Undecodable payloads are dropped
// so a poison message cannot wedge the partition; transient storage
// failures return an error and the offset is not committed.
func (a *archiver) Handle(ctx context.Context, key, value []byte) error {
	event, err := kafka.DecodeDocumentGenerated(value)
	if err != nil {
		a.logger.Warn("dropping undecodable event",
			logging.String("key", string(key)),
			logging.Err(err))
		return nil
	}

	rec := sdstypes.DocumentRecord{
		ID:           common.ID(event.DocumentID),
		StructureKey: event.StructureKey,
		SMILES:       event.SMILES,
		Formula:      event.Formula,
		Name:         event.Name,
		Complete:     event.Complete,
	}

	for _, format := range archivedFormats {
		if err := a.archiveFormat(ctx, rec, format); err != nil {
			return err
		}
	}

	a.logger.Info("archived document",
		logging.String("document_id", event.DocumentID),
		logging.String("structure_key", event.StructureKey),
	)
	return nil
}

func (a *archiver) archiveFormat(ctx context.Context, rec sdstypes.DocumentRecord, format sdstypes.DocumentFormat) error {
	res, err := a.svc.Export(ctx, sdsapp.ExportInput{
		SMILES: rec.SMILES,
		Format: format,
	})
	if err != nil {
		return err
	}

	return a.withRetry(ctx, func() error {
		_, err := a.archive.Store(ctx, rec, format, res.ContentType, res.Data)
		return err
	})
}

// withRetry runs fn with exponential backoff up to maxRetries attempts
// beyond the first.
func (a *archiver) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	wait := a.backoff

	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait):
				wait *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		a.logger.Warn("archive attempt failed",
			logging.Int("attempt", attempt+1),
			logging.Err(lastErr))
	}
	return lastErr
}

//Personal.AI order the ending
