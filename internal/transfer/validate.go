package transfer

import (
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/domain"
)

// Validate enforces shape and magnitude on preprocessed documents,
// aggregating every violation into one error before any write occurs.
// Over-length titles, descriptions, checklist names, and item titles are
// not violations here: those are truncated during writing, with a warning.
func Validate(docs []ListDocument) error {
	verr := &domain.ValidationError{}

	if len(docs) == 0 || len(docs) > MaxLists {
		verr.Add("$", "payload must contain between 1 and %d lists", MaxLists)
	}

	for i, doc := range docs {
		listPath := fmt.Sprintf("lists[%d]", i)

		if len(doc.Cards) > MaxCardsPerList {
			verr.Add(listPath+".cards", "must contain at most %d cards", MaxCardsPerList)
		}

		for j, card := range doc.Cards {
			cardPath := fmt.Sprintf("%s.cards[%d]", listPath, j)

			if card.Title == "" {
				verr.Add(cardPath+".title", "required")
			}

			if len(card.Labels) > MaxLabelsPerCard {
				verr.Add(cardPath+".labels", "must contain at most %d labels", MaxLabelsPerCard)
			}
			for k, label := range card.Labels {
				if len([]rune(strings.TrimSpace(label))) > MaxLabelNameLen {
					verr.Add(fmt.Sprintf("%s.labels[%d]", cardPath, k), "must be at most %d characters", MaxLabelNameLen)
				}
			}

			if len(card.Checklists) > MaxChecklistsPerCard {
				verr.Add(cardPath+".checklists", "must contain at most %d checklists", MaxChecklistsPerCard)
			}
			for k, checklist := range card.Checklists {
				checklistPath := fmt.Sprintf("%s.checklists[%d]", cardPath, k)

				if checklist.Name == "" {
					verr.Add(checklistPath+".name", "required")
				}
				if len(checklist.Items) > MaxItemsPerChecklist {
					verr.Add(checklistPath+".items", "must contain at most %d items", MaxItemsPerChecklist)
				}
				for m, item := range checklist.Items {
					if item.Title == "" {
						verr.Add(fmt.Sprintf("%s.items[%d].title", checklistPath, m), "required")
					}
				}
			}
		}
	}

	if verr.HasIssues() {
		return verr
	}
	return nil
}
