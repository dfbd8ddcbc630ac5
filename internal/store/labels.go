package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
)

// LabelStore handles label and card-label association persistence.
type LabelStore struct {
	store *Store
}

// LabelSeed describes one label to create during reconciliation.
type LabelSeed struct {
	Name  string
	Color string
}

// CardLabelPair associates one card with one label.
type CardLabelPair struct {
	CardUUID  string
	LabelUUID string
}

// ListByBoard returns all non-deleted labels on a board in creation order.
func (lbs *LabelStore) ListByBoard(boardUUID string) ([]domain.Label, error) {
	return lbs.ListByBoardTx(lbs.store.db, boardUUID)
}

// ListByBoardTx is ListByBoard through the caller's transaction, so labels
// created earlier in the same transaction are visible.
func (lbs *LabelStore) ListByBoardTx(exec db.Executor, boardUUID string) ([]domain.Label, error) {
	rows, err := exec.Query(`
		SELECT uuid, board_uuid, name, color, import_batch_uuid, created_at, deleted_at
		FROM labels
		WHERE board_uuid = ? AND deleted_at IS NULL
		ORDER BY rowid
	`, boardUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var label domain.Label
		if err := rows.Scan(
			&label.UUID, &label.BoardUUID, &label.Name, &label.Color,
			&label.ImportBatchUUID, &label.CreatedAt, &label.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// CreateBatchTx creates the given labels in one batched insert. Rows that
// collide with an existing name (any case) are ignored, so a concurrent
// import racing on the same name cannot produce a duplicate; callers must
// re-read the board's labels afterwards to pick up the winning rows.
func (lbs *LabelStore) CreateBatchTx(exec db.Executor, boardUUID string, batchUUID *string, seeds []LabelSeed) error {
	if len(seeds) == 0 {
		return nil
	}

	for start := 0; start < len(seeds); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(seeds) {
			end = len(seeds)
		}
		chunk := seeds[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*5)
		for i, seed := range chunk {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args, uuid.NewString(), boardUUID, seed.Name, seed.Color, batchUUID)
		}

		query := fmt.Sprintf(`
			INSERT OR IGNORE INTO labels (uuid, board_uuid, name, color, import_batch_uuid)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := exec.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to create labels: %w", err)
		}
	}

	return nil
}

// AssociateBatchTx creates card-label associations in one batched insert.
func (lbs *LabelStore) AssociateBatchTx(exec db.Executor, pairs []CardLabelPair) error {
	if len(pairs) == 0 {
		return nil
	}

	for start := 0; start < len(pairs); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(pairs) {
			end = len(pairs)
		}
		chunk := pairs[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*2)
		for i, pair := range chunk {
			placeholders[i] = "(?, ?)"
			args = append(args, pair.CardUUID, pair.LabelUUID)
		}

		query := fmt.Sprintf(`
			INSERT INTO card_labels (card_uuid, label_uuid)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := exec.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to associate labels: %w", err)
		}
	}

	return nil
}

// NamesByCardUUIDs returns the label names associated with each card, in
// label creation order, fetched with set-keyed queries.
func (lbs *LabelStore) NamesByCardUUIDs(cardUUIDs []string) (map[string][]string, error) {
	names := make(map[string][]string)

	for _, chunk := range chunkStrings(cardUUIDs) {
		args := make([]any, len(chunk))
		for i, cardUUID := range chunk {
			args[i] = cardUUID
		}

		rows, err := lbs.store.db.Query(fmt.Sprintf(`
			SELECT cl.card_uuid, l.name
			FROM card_labels cl
			JOIN labels l ON l.uuid = cl.label_uuid
			WHERE cl.card_uuid IN (%s) AND l.deleted_at IS NULL
			ORDER BY l.rowid
		`, inPlaceholders(len(chunk))), args...)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch card labels: %w", err)
		}

		for rows.Next() {
			var cardUUID, name string
			if err := rows.Scan(&cardUUID, &name); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan card label: %w", err)
			}
			names[cardUUID] = append(names[cardUUID], name)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return names, nil
}
