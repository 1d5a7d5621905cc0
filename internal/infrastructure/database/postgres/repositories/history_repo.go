// Package repositories holds the PostgreSQL persistence implementations.
package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/turtacn/ChemSDS/internal/infrastructure/database/postgres"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

const defaultHistoryLimit = 50

// HistoryRepository persists one row per generated document.  It backs the
// application service's generation-history listing and never sits on the
// generation critical path: callers treat its failures as degradable.
type HistoryRepository struct {
	conn   *postgres.Connection
	logger logging.Logger
}

// NewHistoryRepository builds the repository over an open connection.
func NewHistoryRepository(conn *postgres.Connection, logger logging.Logger) *HistoryRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HistoryRepository{conn: conn, logger: logger}
}

// Save inserts the generation record.  Re-generating the same structure
// inserts a new row; history is an append-only log.
func (r *HistoryRepository) Save(ctx context.Context, rec sdstypes.DocumentRecord) error {
	_, err := r.conn.DB().ExecContext(ctx, `
		INSERT INTO sds_documents (
			id, structure_key, smiles, formula, name, complete, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(rec.ID), rec.StructureKey, rec.SMILES, rec.Formula,
		rec.Name, rec.Complete, time.Time(rec.GeneratedAt),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert generation record")
	}
	r.logger.Debug("Generation record saved",
		logging.String("document_id", string(rec.ID)),
		logging.String("structure_key", rec.StructureKey))
	return nil
}

// List returns the most recent records, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]sdstypes.DocumentRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := r.conn.DB().QueryContext(ctx, `
		SELECT id, structure_key, smiles, formula, name, complete, generated_at
		FROM sds_documents
		ORDER BY generated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list generation records")
	}
	defer rows.Close()

	records := make([]sdstypes.DocumentRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read generation records")
	}
	return records, nil
}

// GetByID returns one record or a not-found error.
func (r *HistoryRepository) GetByID(ctx context.Context, id common.ID) (sdstypes.DocumentRecord, error) {
	row := r.conn.DB().QueryRowContext(ctx, `
		SELECT id, structure_key, smiles, formula, name, complete, generated_at
		FROM sds_documents
		WHERE id = $1`, string(id))

	rec, err := scanRecord(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return sdstypes.DocumentRecord{}, errors.New(errors.ErrCodeDocumentNotFound,
				"Document not found").WithDetail("id=" + string(id))
		}
		return sdstypes.DocumentRecord{}, err
	}
	return rec, nil
}

// CountByStructureKey reports how many times a structure has been generated.
func (r *HistoryRepository) CountByStructureKey(ctx context.Context, structureKey string) (int64, error) {
	var n int64
	err := r.conn.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sds_documents WHERE structure_key = $1`, structureKey).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count generation records")
	}
	return n, nil
}

func scanRecord(s scanner) (sdstypes.DocumentRecord, error) {
	var (
		rec         sdstypes.DocumentRecord
		id          string
		generatedAt time.Time
	)
	if err := s.Scan(&id, &rec.StructureKey, &rec.SMILES, &rec.Formula,
		&rec.Name, &rec.Complete, &generatedAt); err != nil {
		return sdstypes.DocumentRecord{}, errors.Wrap(err, errors.ErrCodeDatabaseError,
			"failed to scan generation record")
	}
	rec.ID = common.ID(id)
	rec.GeneratedAt = common.Timestamp(generatedAt)
	return rec, nil
}

//Personal.AI order the ending
