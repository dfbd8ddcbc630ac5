package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/id"
)

// ListStore handles list persistence operations.
type ListStore struct {
	store *Store
}

// ListCreateParams contains parameters for creating a new list.
type ListCreateParams struct {
	BoardUUID       string
	Name            string
	Position        int
	ImportBatchUUID *string
}

// ListByBoard returns all non-archived lists on a board, ordered by
// position, then insertion order for colliding positions.
func (ls *ListStore) ListByBoard(boardUUID string) ([]domain.List, error) {
	return ls.ListByBoardTx(ls.store.db, boardUUID)
}

// ListByBoardTx is ListByBoard through the caller's transaction, so lists
// created earlier in the same transaction are visible.
func (ls *ListStore) ListByBoardTx(exec db.Executor, boardUUID string) ([]domain.List, error) {
	rows, err := exec.Query(`
		SELECT uuid, id, board_uuid, name, position, import_batch_uuid, created_at, archived_at
		FROM lists
		WHERE board_uuid = ? AND archived_at IS NULL
		ORDER BY position, rowid
	`, boardUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.List
	for rows.Next() {
		var list domain.List
		if err := rows.Scan(
			&list.UUID, &list.ID, &list.BoardUUID, &list.Name, &list.Position,
			&list.ImportBatchUUID, &list.CreatedAt, &list.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// CreateTx creates a list within the caller's transaction and returns it.
func (ls *ListStore) CreateTx(exec db.Executor, params ListCreateParams) (*domain.List, error) {
	seq, err := db.NextID(exec, db.SeqLists)
	if err != nil {
		return nil, err
	}

	listUUID := uuid.NewString()
	friendlyID := id.FormatList(seq)

	_, err = exec.Exec(`
		INSERT INTO lists (uuid, id, board_uuid, name, position, import_batch_uuid)
		VALUES (?, ?, ?, ?, ?, ?)
	`, listUUID, friendlyID, params.BoardUUID, params.Name, params.Position, params.ImportBatchUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return &domain.List{
		UUID:            listUUID,
		ID:              friendlyID,
		BoardUUID:       params.BoardUUID,
		Name:            params.Name,
		Position:        params.Position,
		ImportBatchUUID: params.ImportBatchUUID,
	}, nil
}

// NextPositionTx returns the position after the last non-archived list on
// the board.
func (ls *ListStore) NextPositionTx(exec db.Executor, boardUUID string) (int, error) {
	var position int
	err := exec.QueryRow(`
		SELECT COALESCE(MAX(position) + 1, 0) FROM lists
		WHERE board_uuid = ? AND archived_at IS NULL
	`, boardUUID).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next list position: %w", err)
	}
	return position, nil
}
