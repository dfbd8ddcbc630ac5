package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/events"
	"github.com/hferris/tabula/internal/id"
)

// BoardStore handles board persistence operations.
type BoardStore struct {
	store *Store
}

// BoardCreateResult contains the result of board creation.
type BoardCreateResult struct {
	UUID string
	ID   string
}

// Create creates a new board in a workspace.
func (bs *BoardStore) Create(workspaceUUID, name string) (*BoardCreateResult, error) {
	var result *BoardCreateResult

	err := bs.store.WithTx(func(tx *sql.Tx, _ *events.Writer) error {
		seq, err := db.NextID(tx, db.SeqBoards)
		if err != nil {
			return err
		}

		boardUUID := uuid.NewString()
		friendlyID := id.FormatBoard(seq)

		_, err = tx.Exec(`
			INSERT INTO boards (uuid, id, workspace_uuid, name) VALUES (?, ?, ?, ?)
		`, boardUUID, friendlyID, workspaceUUID, name)
		if err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}

		result = &BoardCreateResult{UUID: boardUUID, ID: friendlyID}
		return nil
	})

	return result, err
}

// GetByPublicID retrieves a non-archived board by UUID or friendly ID.
func (bs *BoardStore) GetByPublicID(ref string) (*domain.Board, error) {
	column := "id"
	if id.IsUUID(ref) {
		column = "uuid"
	}

	board := &domain.Board{}
	var createdAt string
	var archivedAt sql.NullString

	err := bs.store.db.QueryRow(fmt.Sprintf(`
		SELECT uuid, id, workspace_uuid, name, created_at, archived_at
		FROM boards WHERE %s = ? AND archived_at IS NULL
	`, column), ref).Scan(
		&board.UUID, &board.ID, &board.WorkspaceUUID, &board.Name,
		&createdAt, &archivedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.NotFoundError{Kind: "board", Ref: ref}
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		board.CreatedAt = t
	}
	return board, nil
}

// ListByWorkspace returns all non-archived boards in a workspace.
func (bs *BoardStore) ListByWorkspace(workspaceUUID string) ([]domain.Board, error) {
	rows, err := bs.store.db.Query(`
		SELECT uuid, id, workspace_uuid, name, created_at
		FROM boards
		WHERE workspace_uuid = ? AND archived_at IS NULL
		ORDER BY rowid
	`, workspaceUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var board domain.Board
		var createdAt string
		if err := rows.Scan(&board.UUID, &board.ID, &board.WorkspaceUUID, &board.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			board.CreatedAt = t
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}
