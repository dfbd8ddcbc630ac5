package transfer

import (
	"encoding/json"
	"fmt"

	"github.com/hferris/tabula/internal/store"
)

// assembleBoard reads a board's visible content and shapes it into list
// documents, lists in position order, cards in position order within each
// list. The output round-trips through Preprocess and Validate unchanged,
// so an export is always a valid import payload.
func assembleBoard(s *store.Store, boardUUID string) ([]ListDocument, error) {
	lists, err := s.Lists.ListByBoard(boardUUID)
	if err != nil {
		return nil, err
	}

	listUUIDs := make([]string, len(lists))
	for i, list := range lists {
		listUUIDs[i] = list.UUID
	}

	cardsByList, err := s.Cards.ListByListUUIDs(listUUIDs)
	if err != nil {
		return nil, err
	}

	var cardUUIDs []string
	for _, cards := range cardsByList {
		for _, card := range cards {
			cardUUIDs = append(cardUUIDs, card.UUID)
		}
	}

	labelsByCard, err := s.Labels.NamesByCardUUIDs(cardUUIDs)
	if err != nil {
		return nil, err
	}
	checklistsByCard, err := s.Checklists.ListByCardUUIDs(cardUUIDs)
	if err != nil {
		return nil, err
	}

	var checklistUUIDs []string
	for _, checklists := range checklistsByCard {
		for _, checklist := range checklists {
			checklistUUIDs = append(checklistUUIDs, checklist.UUID)
		}
	}

	itemsByChecklist, err := s.Checklists.ItemsByChecklistUUIDs(checklistUUIDs)
	if err != nil {
		return nil, err
	}

	docs := make([]ListDocument, 0, len(lists))
	for _, list := range lists {
		doc := ListDocument{ListName: list.Name, Cards: []CardEntry{}}

		for _, card := range cardsByList[list.UUID] {
			entry := CardEntry{
				Title:       card.Title,
				Description: card.Description,
				Labels:      []string{},
				Checklists:  []ChecklistEntry{},
			}
			entry.Labels = append(entry.Labels, labelsByCard[card.UUID]...)

			for _, checklist := range checklistsByCard[card.UUID] {
				clEntry := ChecklistEntry{Name: checklist.Name, Items: []ItemEntry{}}
				for _, item := range itemsByChecklist[checklist.UUID] {
					clEntry.Items = append(clEntry.Items, ItemEntry{
						Title:     item.Title,
						Completed: item.Completed,
					})
				}
				entry.Checklists = append(entry.Checklists, clEntry)
			}

			doc.Cards = append(doc.Cards, entry)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// marshalDocuments serializes documents as the canonical export payload, a
// JSON array even for a single list.
func marshalDocuments(docs []ListDocument) (string, error) {
	if docs == nil {
		docs = []ListDocument{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}
	return string(data), nil
}
