package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/domain"
)

// BatchStore handles import batch (ledger) persistence operations.
type BatchStore struct {
	store *Store
}

// Create creates a pending import batch owned by the calling import.
func (bts *BatchStore) Create(boardUUID, userUUID string, source domain.BatchSource) (*domain.ImportBatch, error) {
	batchUUID := uuid.NewString()

	_, err := bts.store.db.Exec(`
		INSERT INTO import_batches (uuid, board_uuid, source, status, created_by_user_uuid)
		VALUES (?, ?, ?, ?, ?)
	`, batchUUID, boardUUID, source, domain.BatchStatusPending, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to create import batch: %w", err)
	}

	return &domain.ImportBatch{
		UUID:              batchUUID,
		BoardUUID:         boardUUID,
		Source:            source,
		Status:            domain.BatchStatusPending,
		CreatedByUserUUID: userUUID,
	}, nil
}

// Finish transitions a pending batch to its terminal status. The pending
// guard makes the transition happen at most once.
func (bts *BatchStore) Finish(batchUUID string, status domain.BatchStatus) error {
	if status != domain.BatchStatusSuccess && status != domain.BatchStatusFailed {
		return fmt.Errorf("invalid terminal batch status: %s", status)
	}

	res, err := bts.store.db.Exec(`
		UPDATE import_batches
		SET status = ?, finished_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')
		WHERE uuid = ? AND status = 'pending'
	`, status, batchUUID)
	if err != nil {
		return fmt.Errorf("failed to finish import batch: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish import batch: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("import batch %s is not pending", batchUUID)
	}
	return nil
}

// GetByUUID retrieves an import batch by UUID.
func (bts *BatchStore) GetByUUID(batchUUID string) (*domain.ImportBatch, error) {
	batch := &domain.ImportBatch{}

	err := bts.store.db.QueryRow(`
		SELECT uuid, board_uuid, source, status, created_by_user_uuid, created_at, finished_at
		FROM import_batches WHERE uuid = ?
	`, batchUUID).Scan(
		&batch.UUID, &batch.BoardUUID, &batch.Source, &batch.Status,
		&batch.CreatedByUserUUID, &batch.CreatedAt, &batch.FinishedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.NotFoundError{Kind: "import batch", Ref: batchUUID}
		}
		return nil, fmt.Errorf("failed to get import batch: %w", err)
	}
	return batch, nil
}
