package store

import (
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/id"
)

// CardStore handles card persistence operations.
type CardStore struct {
	store *Store
}

// CardSeed describes one card to insert during bulk import. The UUID is
// pre-generated by the caller so label associations, checklists, and
// activities can reference the card before the insert runs.
type CardSeed struct {
	UUID        string
	Title       string
	Description string
	Position    int
}

// CreateBatchTx bulk-inserts all cards for one list within the caller's
// transaction. Friendly IDs are assigned from a single reserved range.
func (cs *CardStore) CreateBatchTx(exec db.Executor, listUUID, userUUID string, batchUUID *string, seeds []CardSeed) error {
	if len(seeds) == 0 {
		return nil
	}

	first, err := db.ReserveIDs(exec, db.SeqCards, len(seeds))
	if err != nil {
		return err
	}

	for start := 0; start < len(seeds); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(seeds) {
			end = len(seeds)
		}
		chunk := seeds[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*8)
		for i, seed := range chunk {
			placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args,
				seed.UUID,
				id.FormatCard(first+start+i),
				listUUID,
				seed.Title,
				seed.Description,
				seed.Position,
				batchUUID,
				userUUID,
			)
		}

		query := fmt.Sprintf(`
			INSERT INTO cards (uuid, id, list_uuid, title, description, position, import_batch_uuid, created_by_user_uuid)
			VALUES %s
		`, strings.Join(placeholders, ", "))

		if _, err := exec.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to create cards: %w", err)
		}
	}

	return nil
}

// ListByListUUIDs returns the non-deleted cards of each list, ordered by
// position, then insertion order for colliding positions.
func (cs *CardStore) ListByListUUIDs(listUUIDs []string) (map[string][]domain.Card, error) {
	cards := make(map[string][]domain.Card)

	for _, chunk := range chunkStrings(listUUIDs) {
		args := make([]any, len(chunk))
		for i, listUUID := range chunk {
			args[i] = listUUID
		}

		rows, err := cs.store.db.Query(fmt.Sprintf(`
			SELECT uuid, id, list_uuid, title, description, position,
			       import_batch_uuid, created_by_user_uuid, created_at, deleted_at
			FROM cards
			WHERE list_uuid IN (%s) AND deleted_at IS NULL
			ORDER BY list_uuid, position, rowid
		`, inPlaceholders(len(chunk))), args...)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cards: %w", err)
		}

		for rows.Next() {
			var card domain.Card
			if err := rows.Scan(
				&card.UUID, &card.ID, &card.ListUUID, &card.Title, &card.Description,
				&card.Position, &card.ImportBatchUUID, &card.CreatedByUserUUID,
				&card.CreatedAt, &card.DeletedAt,
			); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan card: %w", err)
			}
			cards[card.ListUUID] = append(cards[card.ListUUID], card)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return cards, nil
}

// CountByBatch returns the number of cards tagged with an import batch.
func (cs *CardStore) CountByBatch(batchUUID string) (int, error) {
	var count int
	err := cs.store.db.QueryRow(`
		SELECT COUNT(*) FROM cards WHERE import_batch_uuid = ? AND deleted_at IS NULL
	`, batchUUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count batch cards: %w", err)
	}
	return count, nil
}
