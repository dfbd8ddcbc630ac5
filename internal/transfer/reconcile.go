package transfer

import (
	"strings"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/store"
)

// labelPalette provides colors for labels created during import, assigned
// round-robin continuing from however many labels the board already has.
var labelPalette = []string{
	"#61bd4f", // green
	"#f2d600", // yellow
	"#ff9f1a", // orange
	"#eb5a46", // red
	"#c377e0", // purple
	"#0079bf", // blue
}

// labelKey normalizes a label name for case-insensitive matching.
func labelKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// listKey normalizes a list name for case-insensitive matching.
func listKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// resolveLabels resolves every label name referenced anywhere in the payload
// against the board's existing labels, case-insensitively, creating the
// missing ones in first-appearance order. It returns a normalized-name to
// label-UUID map covering every referenced name.
//
// Creation uses INSERT OR IGNORE against the board's unique name index and
// re-reads afterwards, so two imports racing on the same new name both end
// up mapped to the single surviving row.
func resolveLabels(exec db.Executor, labels *store.LabelStore, boardUUID string, batchUUID *string, docs []ListDocument) (map[string]string, error) {
	existing, err := labels.ListByBoardTx(exec, boardUUID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(existing))
	for _, label := range existing {
		byName[labelKey(label.Name)] = label.UUID
	}

	var missing []store.LabelSeed
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, card := range doc.Cards {
			for _, name := range card.Labels {
				trimmed := strings.TrimSpace(name)
				if trimmed == "" {
					continue
				}
				key := labelKey(trimmed)
				if _, ok := byName[key]; ok || seen[key] {
					continue
				}
				seen[key] = true
				missing = append(missing, store.LabelSeed{
					Name:  trimmed,
					Color: labelPalette[(len(existing)+len(missing))%len(labelPalette)],
				})
			}
		}
	}

	if len(missing) == 0 {
		return byName, nil
	}

	if err := labels.CreateBatchTx(exec, boardUUID, batchUUID, missing); err != nil {
		return nil, err
	}

	// Re-read to pick up the rows that actually won the unique index.
	created, err := labels.ListByBoardTx(exec, boardUUID)
	if err != nil {
		return nil, err
	}
	for _, label := range created {
		byName[labelKey(label.Name)] = label.UUID
	}
	return byName, nil
}

// resolveList matches a list name against the board's lists,
// case-insensitively, creating the list at the end of the board when no
// match exists. The byName map is keyed by listKey and is updated in place
// so later documents in the same import see lists created by earlier ones.
func resolveList(exec db.Executor, lists *store.ListStore, boardUUID string, batchUUID *string, byName map[string]*domain.List, name string) (*domain.List, error) {
	key := listKey(name)
	if list, ok := byName[key]; ok {
		return list, nil
	}

	position, err := lists.NextPositionTx(exec, boardUUID)
	if err != nil {
		return nil, err
	}

	list, err := lists.CreateTx(exec, store.ListCreateParams{
		BoardUUID:       boardUUID,
		Name:            strings.TrimSpace(name),
		Position:        position,
		ImportBatchUUID: batchUUID,
	})
	if err != nil {
		return nil, err
	}

	byName[key] = list
	return list, nil
}
