package transfer

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/events"
	"github.com/hferris/tabula/internal/store"
)

// truncate caps s at max runes. It returns the capped string and, when a cap
// was applied, the original rune count; 0 means s was returned unchanged.
func truncate(s string, max int) (string, int) {
	runes := []rune(s)
	if len(runes) <= max {
		return s, 0
	}
	return string(runes[:max]), len(runes)
}

// runImport writes validated documents to the board under the given batch.
// In per-list mode each document gets its own transaction, so lists already
// committed survive a later list's failure. In atomic mode everything,
// label resolution included, shares one transaction.
func runImport(s *store.Store, boardUUID, userUUID, batchUUID string, docs []ListDocument, atomic bool) (*ImportResult, error) {
	warnings := &Warnings{}
	result := &ImportResult{}

	if atomic {
		err := s.WithTx(func(tx *sql.Tx, ew *events.Writer) error {
			labelsByName, err := resolveLabels(tx, s.Labels, boardUUID, &batchUUID, docs)
			if err != nil {
				return &domain.WriteError{Step: "label resolution", Err: err}
			}
			listsByName, err := boardListsByName(tx, s, boardUUID)
			if err != nil {
				return &domain.WriteError{Step: "list resolution", Err: err}
			}
			for _, doc := range docs {
				if len(doc.Cards) == 0 {
					continue
				}
				created, err := importList(tx, ew, s, boardUUID, userUUID, batchUUID, listsByName, labelsByName, doc, warnings)
				if err != nil {
					return &domain.WriteError{Step: fmt.Sprintf("list %q", doc.ListName), Err: err}
				}
				result.CardsCreated += created
				result.ListsProcessed++
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		result.Warnings = warnings.Notes()
		return result, nil
	}

	// Labels are resolved once, globally, in their own transaction. Lists
	// whose documents fail later keep their labels; that is deliberate, a
	// retried import reuses them instead of recreating them.
	var labelsByName map[string]string
	err := s.WithTx(func(tx *sql.Tx, ew *events.Writer) error {
		var err error
		labelsByName, err = resolveLabels(tx, s.Labels, boardUUID, &batchUUID, docs)
		return err
	})
	if err != nil {
		return nil, &domain.WriteError{Step: "label resolution", Err: err}
	}

	listsByName, err := boardListsByName(s.DB(), s, boardUUID)
	if err != nil {
		return nil, &domain.WriteError{Step: "list resolution", Err: err}
	}

	for _, doc := range docs {
		if len(doc.Cards) == 0 {
			continue
		}
		err := s.WithTx(func(tx *sql.Tx, ew *events.Writer) error {
			created, err := importList(tx, ew, s, boardUUID, userUUID, batchUUID, listsByName, labelsByName, doc, warnings)
			if err != nil {
				return err
			}
			result.CardsCreated += created
			result.ListsProcessed++
			return nil
		})
		if err != nil {
			return nil, &domain.WriteError{Step: fmt.Sprintf("list %q", doc.ListName), Err: err}
		}
	}

	result.Warnings = warnings.Notes()
	return result, nil
}

// boardListsByName loads the board's lists keyed by normalized name.
func boardListsByName(exec db.Executor, s *store.Store, boardUUID string) (map[string]*domain.List, error) {
	lists, err := s.Lists.ListByBoardTx(exec, boardUUID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.List, len(lists))
	for i := range lists {
		byName[listKey(lists[i].Name)] = &lists[i]
	}
	return byName, nil
}

// importList writes one document's cards, label associations, checklists,
// and items within the caller's transaction. It returns the number of cards
// created.
func importList(tx *sql.Tx, ew *events.Writer, s *store.Store, boardUUID, userUUID, batchUUID string, listsByName map[string]*domain.List, labelsByName map[string]string, doc ListDocument, warnings *Warnings) (int, error) {
	list, err := resolveList(tx, s.Lists, boardUUID, &batchUUID, listsByName, doc.ListName)
	if err != nil {
		return 0, err
	}

	cardSeeds := make([]store.CardSeed, 0, len(doc.Cards))
	cardUUIDs := make([]string, 0, len(doc.Cards))
	var pairs []store.CardLabelPair
	var checklistSeeds []store.ChecklistSeed
	var itemSeeds []store.ItemSeed

	for i, card := range doc.Cards {
		cardUUID := uuid.NewString()

		title, was := truncate(card.Title, MaxTitleLen)
		if was > 0 {
			warnings.Addf("list %q: card %d: title truncated from %d to %d characters",
				doc.ListName, i+1, was, MaxTitleLen)
		}
		description, was := truncate(card.Description, MaxDescriptionLen)
		if was > 0 {
			warnings.Addf("list %q: card %d: description truncated from %d to %d characters",
				doc.ListName, i+1, was, MaxDescriptionLen)
		}

		// Position is the index within this payload's card array. It is not
		// offset by cards already in the list; collisions sort by insertion
		// order on read.
		cardSeeds = append(cardSeeds, store.CardSeed{
			UUID:        cardUUID,
			Title:       title,
			Description: description,
			Position:    i,
		})
		cardUUIDs = append(cardUUIDs, cardUUID)

		seen := make(map[string]bool, len(card.Labels))
		dropped := false
		for _, name := range card.Labels {
			key := labelKey(name)
			if key == "" {
				continue
			}
			if seen[key] {
				dropped = true
				continue
			}
			seen[key] = true
			labelUUID, ok := labelsByName[key]
			if !ok {
				return 0, fmt.Errorf("label %q was not resolved", name)
			}
			pairs = append(pairs, store.CardLabelPair{CardUUID: cardUUID, LabelUUID: labelUUID})
		}
		if dropped {
			warnings.Addf("list %q: card %d: duplicate labels removed", doc.ListName, i+1)
		}

		for j, checklist := range card.Checklists {
			checklistUUID := uuid.NewString()

			name, was := truncate(checklist.Name, MaxChecklistNameLen)
			if was > 0 {
				warnings.Addf("list %q: card %d: checklist %d: name truncated from %d to %d characters",
					doc.ListName, i+1, j+1, was, MaxChecklistNameLen)
			}

			checklistSeeds = append(checklistSeeds, store.ChecklistSeed{
				UUID:     checklistUUID,
				CardUUID: cardUUID,
				Name:     name,
				Position: j,
			})

			for k, item := range checklist.Items {
				itemTitle, was := truncate(item.Title, MaxItemTitleLen)
				if was > 0 {
					warnings.Addf("list %q: card %d: checklist %d: item %d: title truncated from %d to %d characters",
						doc.ListName, i+1, j+1, k+1, was, MaxItemTitleLen)
				}
				itemSeeds = append(itemSeeds, store.ItemSeed{
					UUID:          uuid.NewString(),
					ChecklistUUID: checklistUUID,
					Title:         itemTitle,
					Completed:     item.Completed,
					Position:      k,
				})
			}
		}
	}

	if err := s.Cards.CreateBatchTx(tx, list.UUID, userUUID, &batchUUID, cardSeeds); err != nil {
		return 0, err
	}
	if err := ew.LogCardsCreated(tx, userUUID, cardUUIDs, &batchUUID); err != nil {
		return 0, err
	}
	if err := s.Labels.AssociateBatchTx(tx, pairs); err != nil {
		return 0, err
	}
	if err := s.Checklists.CreateBatchTx(tx, checklistSeeds); err != nil {
		return 0, err
	}
	if err := s.Checklists.CreateItemsBatchTx(tx, itemSeeds); err != nil {
		return 0, err
	}

	return len(cardSeeds), nil
}
