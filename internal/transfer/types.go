// Package transfer implements the bulk JSON import/export pipeline: a
// tolerant preprocessor, a strict schema validator, name reconciliation
// against existing board state, batched writes with an import ledger, and
// the inverse export assembler.
//
// Untrusted documents pass two independent stages before any write: the
// preprocessor coerces heterogeneous input into typed documents, then the
// validator enforces shape and magnitude with field-path-qualified errors.
package transfer

// Size bounds for imported documents. Count bounds are enforced by the
// validator; string bounds on titles, descriptions, and names are applied
// by truncation during writing, each truncation paired with a warning.
const (
	MaxLists             = 50
	MaxCardsPerList      = 500
	MaxTitleLen          = 255
	MaxDescriptionLen    = 10000
	MaxLabelsPerCard     = 20
	MaxLabelNameLen      = 50
	MaxChecklistsPerCard = 10
	MaxChecklistNameLen  = 255
	MaxItemsPerChecklist = 50
	MaxItemTitleLen      = 500
)

// ListDocument is one list with its cards, the unit of the import payload.
// A payload is either a single ListDocument object or an array of them.
type ListDocument struct {
	ListName string      `json:"listName"`
	Cards    []CardEntry `json:"cards"`
}

// CardEntry is one card in an import payload or export document.
type CardEntry struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Labels      []string         `json:"labels"`
	Checklists  []ChecklistEntry `json:"checklists"`
}

// ChecklistEntry is one checklist on a card.
type ChecklistEntry struct {
	Name  string      `json:"name"`
	Items []ItemEntry `json:"items"`
}

// ItemEntry is one checklist item.
type ItemEntry struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ImportResult reports the outcome of a successful import call. Warnings
// carry non-fatal notices (truncation, duplicate-label collapse); they are
// returned only when the whole call succeeds.
type ImportResult struct {
	BatchUUID      string   `json:"batchUuid"`
	CardsCreated   int      `json:"cardsCreated"`
	ListsProcessed int      `json:"listsProcessed"`
	Warnings       []string `json:"warnings"`
}
