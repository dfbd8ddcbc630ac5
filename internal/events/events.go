package events

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/domain"
)

// insertChunkSize bounds the number of rows per multi-row INSERT to stay
// well under SQLite's bound-parameter limit.
const insertChunkSize = 100

// Writer handles writing activity records to the append-only log
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new activity writer
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// LogActivity writes a single activity record
func (w *Writer) LogActivity(tx *sql.Tx, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (card_uuid, user_uuid, activity_type, import_batch_uuid)
		VALUES (?, ?, ?, ?)
	`

	executor := w.getExecutor(tx)
	_, err := executor.Exec(query, activity.CardUUID, activity.UserUUID, activity.ActivityType, activity.ImportBatchUUID)
	if err != nil {
		return fmt.Errorf("failed to write activity: %w", err)
	}

	return nil
}

// LogCardsCreated logs one card.created activity per card in a batched
// insert, tagged with the import batch that produced them.
func (w *Writer) LogCardsCreated(tx *sql.Tx, userUUID string, cardUUIDs []string, batchUUID *string) error {
	if len(cardUUIDs) == 0 {
		return nil
	}

	executor := w.getExecutor(tx)
	for start := 0; start < len(cardUUIDs); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(cardUUIDs) {
			end = len(cardUUIDs)
		}
		chunk := cardUUIDs[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*4)
		for i, cardUUID := range chunk {
			placeholders[i] = "(?, ?, ?, ?)"
			args = append(args, cardUUID, userUUID, domain.ActivityCardCreated, batchUUID)
		}

		query := fmt.Sprintf(`
			INSERT INTO activities (card_uuid, user_uuid, activity_type, import_batch_uuid)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := executor.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to write card.created activities: %w", err)
		}
	}

	return nil
}

// getExecutor returns the appropriate executor (tx or db)
func (w *Writer) getExecutor(tx *sql.Tx) interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return w.db
}
