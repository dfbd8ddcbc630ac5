package transfer

import (
	"errors"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/store"
	"github.com/hferris/tabula/internal/testutil"
)

type fixture struct {
	store    *store.Store
	service  *Service
	userUUID string
	boardID  string
}

func setup(t *testing.T, opts Options) *fixture {
	t.Helper()

	database, _ := testutil.TempDB(t)
	s := store.New(database)

	user, err := s.Users.Create("alice")
	require.NoError(t, err)
	workspace, err := s.Workspaces.Create("Personal")
	require.NoError(t, err)
	require.NoError(t, s.Workspaces.AddMember(workspace.UUID, user.UUID, domain.WorkspaceRoleOwner))
	board, err := s.Boards.Create(workspace.UUID, "Roadmap")
	require.NoError(t, err)

	return &fixture{
		store:    s,
		service:  New(s, opts),
		userUUID: user.UUID,
		boardID:  board.ID,
	}
}

func (f *fixture) countRows(t *testing.T, query string, args ...any) int {
	t.Helper()
	var count int
	require.NoError(t, f.store.DB().QueryRow(query, args...).Scan(&count))
	return count
}

func TestImportCreatesEverything(t *testing.T) {
	f := setup(t, Options{})

	payload := `[
		{"listName": "To Do", "cards": [
			{"title": "Design schema", "description": "tables and indexes", "labels": ["backend", "urgent"]},
			{"title": "Write docs", "checklists": [
				{"name": "Sections", "items": [
					{"title": "intro", "completed": true},
					{"title": "api"}
				]}
			]}
		]},
		{"listName": "Done", "cards": [{"title": "Kickoff", "labels": ["backend"]}]}
	]`

	result, err := f.service.Import(f.userUUID, f.boardID, payload)
	require.NoError(t, err)

	assert.Equal(t, 3, result.CardsCreated)
	assert.Equal(t, 2, result.ListsProcessed)
	assert.Empty(t, result.Warnings)
	assert.NotEmpty(t, result.BatchUUID)

	assert.Equal(t, 2, f.countRows(t, "SELECT COUNT(*) FROM lists"))
	assert.Equal(t, 3, f.countRows(t, "SELECT COUNT(*) FROM cards"))
	assert.Equal(t, 2, f.countRows(t, "SELECT COUNT(*) FROM labels"), "backend is shared between cards")
	assert.Equal(t, 3, f.countRows(t, "SELECT COUNT(*) FROM card_labels"))
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM checklists"))
	assert.Equal(t, 2, f.countRows(t, "SELECT COUNT(*) FROM checklist_items"))
	assert.Equal(t, 3, f.countRows(t,
		"SELECT COUNT(*) FROM activities WHERE activity_type = ? AND import_batch_uuid = ?",
		string(domain.ActivityCardCreated), result.BatchUUID))

	batch, err := f.store.Batches.GetByUUID(result.BatchUUID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusSuccess, batch.Status)

	// Every created row carries the batch provenance tag.
	assert.Equal(t, 2, f.countRows(t, "SELECT COUNT(*) FROM lists WHERE import_batch_uuid = ?", result.BatchUUID))
	cardCount, err := f.store.Cards.CountByBatch(result.BatchUUID)
	require.NoError(t, err)
	assert.Equal(t, 3, cardCount)
}

func TestImportReusesListsAndLabelsCaseInsensitively(t *testing.T) {
	f := setup(t, Options{})

	_, err := f.service.Import(f.userUUID, f.boardID,
		`[{"listName": "To Do", "cards": [{"title": "a", "labels": ["Urgent"]}]}]`)
	require.NoError(t, err)

	result, err := f.service.Import(f.userUUID, f.boardID,
		`[{"listName": "to do", "cards": [{"title": "b", "labels": ["URGENT"]}]}]`)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CardsCreated)

	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM lists"), "list names match case-insensitively")
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM labels"), "label names match case-insensitively")
	assert.Equal(t, 2, f.countRows(t, "SELECT COUNT(*) FROM cards"))

	// Positions restart per import, so both cards sit at 0 and reads fall
	// back to insertion order.
	var lists []string
	rows, err := f.store.DB().Query("SELECT uuid FROM lists")
	require.NoError(t, err)
	for rows.Next() {
		var listUUID string
		require.NoError(t, rows.Scan(&listUUID))
		lists = append(lists, listUUID)
	}
	require.NoError(t, rows.Err())
	rows.Close()

	cards, err := f.store.Cards.ListByListUUIDs(lists)
	require.NoError(t, err)
	got := cards[lists[0]]
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
}

func TestImportSkipsEmptyLists(t *testing.T) {
	f := setup(t, Options{})

	result, err := f.service.Import(f.userUUID, f.boardID,
		`[{"listName": "Empty"}, {"listName": "Full", "cards": [{"title": "x"}]}]`)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ListsProcessed)
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM lists"), "lists without cards are not created")
}

func TestImportTruncationWarnings(t *testing.T) {
	f := setup(t, Options{})

	longTitle := strings.Repeat("t", MaxTitleLen+45)
	longDescription := strings.Repeat("d", MaxDescriptionLen+7)
	longName := strings.Repeat("n", MaxChecklistNameLen+5)
	longItem := strings.Repeat("i", MaxItemTitleLen+1)

	result, err := f.service.Import(f.userUUID, f.boardID,
		`[{"listName": "L", "cards": [{"title": "`+longTitle+`", "description": "`+longDescription+`", "checklists": [
			{"name": "`+longName+`", "items": [{"title": "`+longItem+`"}]}
		]}]}]`)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 4)
	assert.Contains(t, result.Warnings, `list "L": card 1: title truncated from 300 to 255 characters`)
	assert.Contains(t, result.Warnings, `list "L": card 1: description truncated from 10007 to 10000 characters`)
	assert.Contains(t, result.Warnings, `list "L": card 1: checklist 1: name truncated from 260 to 255 characters`)
	assert.Contains(t, result.Warnings, `list "L": card 1: checklist 1: item 1: title truncated from 501 to 500 characters`)

	var storedTitle, storedDescription string
	require.NoError(t, f.store.DB().QueryRow("SELECT title, description FROM cards").Scan(&storedTitle, &storedDescription))
	assert.Len(t, storedTitle, MaxTitleLen)
	assert.Len(t, storedDescription, MaxDescriptionLen)
}

func TestImportCollapsesDuplicateLabels(t *testing.T) {
	f := setup(t, Options{})

	result, err := f.service.Import(f.userUUID, f.boardID,
		`[{"listName": "L", "cards": [{"title": "x", "labels": ["bug", "Bug", "BUG "]}]}]`)
	require.NoError(t, err)

	assert.Contains(t, result.Warnings, `list "L": card 1: duplicate labels removed`)
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM labels"))
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM card_labels"))
}

func TestImportAuthorization(t *testing.T) {
	f := setup(t, Options{})
	payload := `[{"listName": "L", "cards": [{"title": "x"}]}]`

	_, err := f.service.Import("", f.boardID, payload)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.service.Import(f.userUUID, "B-99999", payload)
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf), "unknown board: got %v", err)

	outsider, err := f.store.Users.Create("mallory")
	require.NoError(t, err)
	_, err = f.service.Import(outsider.UUID, f.boardID, payload)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The board lookup runs before the membership check.
	_, err = f.service.Import(outsider.UUID, "B-99999", payload)
	assert.True(t, errors.As(err, &nf))
}

func TestImportValidationFailureLeavesNoTrace(t *testing.T) {
	f := setup(t, Options{})

	_, err := f.service.Import(f.userUUID, f.boardID, `[{"listName": "L", "cards": [{"title": ""}]}]`)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM import_batches"),
		"validation fails before the ledger row is created")
	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM lists"))
}

func TestImportPartialFailureKeepsCommittedLists(t *testing.T) {
	f := setup(t, Options{})

	// Break checklist item writes so the second list's transaction fails
	// after the first list has already committed.
	_, err := f.store.DB().Exec("DROP TABLE checklist_items")
	require.NoError(t, err)

	payload := `[
		{"listName": "Survives", "cards": [{"title": "a"}]},
		{"listName": "Fails", "cards": [{"title": "b", "checklists": [
			{"name": "c", "items": [{"title": "d"}]}
		]}]}
	]`

	_, err = f.service.Import(f.userUUID, f.boardID, payload)
	var werr *domain.WriteError
	require.True(t, errors.As(err, &werr), "expected WriteError, got %v", err)
	assert.Equal(t, `list "Fails"`, werr.Step)

	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM lists"), "first list survives")
	assert.Equal(t, 1, f.countRows(t, "SELECT COUNT(*) FROM cards"))
	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM lists WHERE name = 'Fails'"),
		"failing list's transaction rolled back")

	var status string
	require.NoError(t, f.store.DB().QueryRow("SELECT status FROM import_batches").Scan(&status))
	assert.Equal(t, "failed", status)
}

func TestImportAtomicRollsBackEverything(t *testing.T) {
	f := setup(t, Options{Atomic: true})

	_, err := f.store.DB().Exec("DROP TABLE checklist_items")
	require.NoError(t, err)

	payload := `[
		{"listName": "First", "cards": [{"title": "a"}]},
		{"listName": "Second", "cards": [{"title": "b", "checklists": [
			{"name": "c", "items": [{"title": "d"}]}
		]}]}
	]`

	_, err = f.service.Import(f.userUUID, f.boardID, payload)
	var werr *domain.WriteError
	require.True(t, errors.As(err, &werr))

	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM lists"), "atomic mode rolls back all lists")
	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM cards"))
	assert.Equal(t, 0, f.countRows(t, "SELECT COUNT(*) FROM labels"))

	var status string
	require.NoError(t, f.store.DB().QueryRow("SELECT status FROM import_batches").Scan(&status))
	assert.Equal(t, "failed", status)
}

func TestImportFinishFailureKeepsRootCause(t *testing.T) {
	f := setup(t, Options{})

	// Break checklist item writes so the second list fails, and flip the
	// batch out of pending when the first list commits, so marking the batch
	// failed fails too.
	_, err := f.store.DB().Exec("DROP TABLE checklist_items")
	require.NoError(t, err)
	_, err = f.store.DB().Exec(`
		CREATE TRIGGER poison_batch AFTER INSERT ON lists
		BEGIN
			UPDATE import_batches SET status = 'failed';
		END
	`)
	require.NoError(t, err)

	_, err = f.service.Import(f.userUUID, f.boardID,
		`[
			{"listName": "Survives", "cards": [{"title": "a"}]},
			{"listName": "Fails", "cards": [{"title": "b", "checklists": [
				{"name": "c", "items": [{"title": "d"}]}
			]}]}
		]`)

	var werr *domain.WriteError
	require.True(t, errors.As(err, &werr), "root cause must survive the finish failure: %v", err)
	assert.Equal(t, `list "Fails"`, werr.Step)
	assert.Contains(t, err.Error(), "not pending", "the finish failure is reported alongside the cause")
}

func TestExportEmptyBoard(t *testing.T) {
	f := setup(t, Options{})

	payload, err := f.service.Export(f.userUUID, f.boardID)
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)
}

func TestExportAuthorization(t *testing.T) {
	f := setup(t, Options{})

	_, err := f.service.Export("", f.boardID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	outsider, err := f.store.Users.Create("mallory")
	require.NoError(t, err)
	_, err = f.service.Export(outsider.UUID, f.boardID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExportImportRoundTrip(t *testing.T) {
	f := setup(t, Options{})

	payload := `[
		{"listName": "To Do", "cards": [
			{"title": "Design schema", "description": "tables and indexes", "labels": ["backend", "urgent"]},
			{"title": "Write docs", "checklists": [
				{"name": "Sections", "items": [
					{"title": "intro", "completed": true},
					{"title": "api", "completed": false}
				]}
			]}
		]},
		{"listName": "Done", "cards": [{"title": "Kickoff", "labels": ["backend"]}]}
	]`

	_, err := f.service.Import(f.userUUID, f.boardID, payload)
	require.NoError(t, err)

	exported, err := f.service.Export(f.userUUID, f.boardID)
	require.NoError(t, err)

	// Re-import the export into a fresh board and export again; the two
	// exports must be byte-identical.
	board, err := f.store.Boards.Create(mustWorkspaceUUID(t, f), "Copy")
	require.NoError(t, err)

	result, err := f.service.Import(f.userUUID, board.ID, exported)
	require.NoError(t, err)
	assert.Equal(t, 3, result.CardsCreated)
	assert.Empty(t, result.Warnings)

	reexported, err := f.service.Export(f.userUUID, board.ID)
	require.NoError(t, err)

	if exported != reexported {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(exported),
			B:        difflib.SplitLines(reexported),
			FromFile: "export",
			ToFile:   "reexport",
			Context:  3,
		})
		t.Fatalf("round trip changed the export:\n%s", diff)
	}
}

func mustWorkspaceUUID(t *testing.T, f *fixture) string {
	t.Helper()
	board, err := f.store.Boards.GetByPublicID(f.boardID)
	require.NoError(t, err)
	return board.WorkspaceUUID
}
