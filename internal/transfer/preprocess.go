package transfer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/domain"
)

// Preprocess decodes an untrusted JSON payload and coerces it into typed
// list documents. It runs before strict validation and is deliberately
// tolerant: missing optional fields are defaulted and malformed nested
// entries (checklists without a name, items without a title) are dropped
// silently. Structurally unusable input (unparsable JSON, a top-level entry
// that is not an object, a missing list name, a card that is not an object)
// is fatal and aborts before any validation or writes.
func Preprocess(payload string) ([]ListDocument, error) {
	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, domain.NewValidationError("$", "invalid JSON: %v", err)
	}

	var entries []any
	switch v := raw.(type) {
	case map[string]any:
		entries = []any{v}
	case []any:
		entries = v
	default:
		return nil, domain.NewValidationError("$", "payload must be an object or an array of objects")
	}

	verr := &domain.ValidationError{}
	docs := make([]ListDocument, 0, len(entries))

	for i, entry := range entries {
		path := fmt.Sprintf("lists[%d]", i)

		obj, ok := entry.(map[string]any)
		if !ok {
			verr.Add(path, "must be an object")
			continue
		}

		name, ok := obj["listName"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			verr.Add(path+".listName", "required")
			continue
		}

		doc := ListDocument{ListName: name, Cards: []CardEntry{}}

		if rawCards, present := obj["cards"]; present && rawCards != nil {
			cardsArr, ok := rawCards.([]any)
			if !ok {
				verr.Add(path+".cards", "must be an array")
				continue
			}
			for j, rawCard := range cardsArr {
				cardObj, ok := rawCard.(map[string]any)
				if !ok {
					verr.Add(fmt.Sprintf("%s.cards[%d]", path, j), "must be an object")
					continue
				}
				doc.Cards = append(doc.Cards, coerceCard(cardObj))
			}
		}

		docs = append(docs, doc)
	}

	if verr.HasIssues() {
		return nil, verr
	}
	return docs, nil
}

// coerceCard applies best-effort shape coercion to a raw card object so the
// validator can apply precise bounds afterward. Wrong-typed optional fields
// fall back to their defaults; the title is left empty when absent or
// non-string so the validator reports it as required.
func coerceCard(obj map[string]any) CardEntry {
	card := CardEntry{
		Labels:     []string{},
		Checklists: []ChecklistEntry{},
	}

	if title, ok := obj["title"].(string); ok {
		card.Title = title
	}
	if description, ok := obj["description"].(string); ok {
		card.Description = description
	}

	if rawLabels, ok := obj["labels"].([]any); ok {
		for _, rawLabel := range rawLabels {
			if label, ok := rawLabel.(string); ok {
				card.Labels = append(card.Labels, label)
			}
		}
	}

	if rawChecklists, ok := obj["checklists"].([]any); ok {
		for _, rawChecklist := range rawChecklists {
			clObj, ok := rawChecklist.(map[string]any)
			if !ok {
				continue
			}
			name, ok := clObj["name"].(string)
			if !ok {
				continue
			}

			checklist := ChecklistEntry{Name: name, Items: []ItemEntry{}}
			if rawItems, ok := clObj["items"].([]any); ok {
				for _, rawItem := range rawItems {
					itemObj, ok := rawItem.(map[string]any)
					if !ok {
						continue
					}
					title, ok := itemObj["title"].(string)
					if !ok {
						continue
					}
					item := ItemEntry{Title: title}
					if completed, ok := itemObj["completed"].(bool); ok {
						item.Completed = completed
					}
					checklist.Items = append(checklist.Items, item)
				}
			}
			card.Checklists = append(card.Checklists, checklist)
		}
	}

	return card
}
