package store

import (
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
)

// ChecklistStore handles checklist and checklist-item persistence.
type ChecklistStore struct {
	store *Store
}

// ChecklistSeed describes one checklist to insert during bulk import, keyed
// by a pre-generated client-side UUID.
type ChecklistSeed struct {
	UUID     string
	CardUUID string
	Name     string
	Position int
}

// ItemSeed describes one checklist item to insert during bulk import.
type ItemSeed struct {
	UUID          string
	ChecklistUUID string
	Title         string
	Completed     bool
	Position      int
}

// CreateBatchTx bulk-inserts checklists within the caller's transaction.
func (chs *ChecklistStore) CreateBatchTx(exec db.Executor, seeds []ChecklistSeed) error {
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
		args := make([]any, 0, len(chunk)*4)
		for i, seed := range chunk {
			placeholders[i] = "(?, ?, ?, ?)"
			args = append(args, seed.UUID, seed.CardUUID, seed.Name, seed.Position)
		}

		query := fmt.Sprintf(`
			INSERT INTO checklists (uuid, card_uuid, name, position)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := exec.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to create checklists: %w", err)
		}
	}

	return nil
}

// CreateItemsBatchTx bulk-inserts checklist items within the caller's
// transaction.
func (chs *ChecklistStore) CreateItemsBatchTx(exec db.Executor, seeds []ItemSeed) error {
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
			args = append(args, seed.UUID, seed.ChecklistUUID, seed.Title, seed.Completed, seed.Position)
		}

		query := fmt.Sprintf(`
			INSERT INTO checklist_items (uuid, checklist_uuid, title, completed, position)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := exec.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to create checklist items: %w", err)
		}
	}

	return nil
}

// ListByCardUUIDs returns the non-deleted checklists of each card, ordered
// by position.
func (chs *ChecklistStore) ListByCardUUIDs(cardUUIDs []string) (map[string][]domain.Checklist, error) {
	checklists := make(map[string][]domain.Checklist)

	for _, chunk := range chunkStrings(cardUUIDs) {
		args := make([]any, len(chunk))
		for i, cardUUID := range chunk {
			args[i] = cardUUID
		}

		rows, err := chs.store.db.Query(fmt.Sprintf(`
			SELECT uuid, card_uuid, name, position, created_at, deleted_at
			FROM checklists
			WHERE card_uuid IN (%s) AND deleted_at IS NULL
			ORDER BY card_uuid, position, rowid
		`, inPlaceholders(len(chunk))), args...)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch checklists: %w", err)
		}

		for rows.Next() {
			var checklist domain.Checklist
			if err := rows.Scan(
				&checklist.UUID, &checklist.CardUUID, &checklist.Name,
				&checklist.Position, &checklist.CreatedAt, &checklist.DeletedAt,
			); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan checklist: %w", err)
			}
			checklists[checklist.CardUUID] = append(checklists[checklist.CardUUID], checklist)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return checklists, nil
}

// ItemsByChecklistUUIDs returns the non-deleted items of each checklist,
// ordered by position.
func (chs *ChecklistStore) ItemsByChecklistUUIDs(checklistUUIDs []string) (map[string][]domain.ChecklistItem, error) {
	items := make(map[string][]domain.ChecklistItem)

	for _, chunk := range chunkStrings(checklistUUIDs) {
		args := make([]any, len(chunk))
		for i, checklistUUID := range chunk {
			args[i] = checklistUUID
		}

		rows, err := chs.store.db.Query(fmt.Sprintf(`
			SELECT uuid, checklist_uuid, title, completed, position, created_at, deleted_at
			FROM checklist_items
			WHERE checklist_uuid IN (%s) AND deleted_at IS NULL
			ORDER BY checklist_uuid, position, rowid
		`, inPlaceholders(len(chunk))), args...)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch checklist items: %w", err)
		}

		for rows.Next() {
			var item domain.ChecklistItem
			if err := rows.Scan(
				&item.UUID, &item.ChecklistUUID, &item.Title, &item.Completed,
				&item.Position, &item.CreatedAt, &item.DeletedAt,
			); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan checklist item: %w", err)
			}
			items[item.ChecklistUUID] = append(items[item.ChecklistUUID], item)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return items, nil
}
