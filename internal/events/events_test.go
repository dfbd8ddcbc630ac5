package events_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/events"
	"github.com/hferris/tabula/internal/store"
	"github.com/hferris/tabula/internal/testutil"
)

// setupCards creates a board with one list holding n cards and returns the
// database, the acting user's UUID, and the card UUIDs.
func setupCards(t *testing.T, n int) (*db.DB, string, []string) {
	t.Helper()

	database, _ := testutil.TempDB(t)
	s := store.New(database)

	user, err := s.Users.Create("alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	workspace, err := s.Workspaces.Create("Personal")
	if err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	if err := s.Workspaces.AddMember(workspace.UUID, user.UUID, domain.WorkspaceRoleOwner); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	board, err := s.Boards.Create(workspace.UUID, "Roadmap")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	cardUUIDs := make([]string, n)
	err = s.WithTx(func(tx *sql.Tx, _ *events.Writer) error {
		list, err := s.Lists.CreateTx(tx, store.ListCreateParams{BoardUUID: board.UUID, Name: "To Do"})
		if err != nil {
			return err
		}
		seeds := make([]store.CardSeed, n)
		for i := range seeds {
			cardUUIDs[i] = uuid.NewString()
			seeds[i] = store.CardSeed{UUID: cardUUIDs[i], Title: "Card", Position: i}
		}
		return s.Cards.CreateBatchTx(tx, list.UUID, user.UUID, nil, seeds)
	})
	if err != nil {
		t.Fatalf("Failed to create cards: %v", err)
	}

	return database, user.UUID, cardUUIDs
}

func countActivities(t *testing.T, database *db.DB, activityType domain.ActivityType) int {
	t.Helper()
	var count int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM activities WHERE activity_type = ?", activityType,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count activities: %v", err)
	}
	return count
}

func TestLogActivityWithoutTransaction(t *testing.T) {
	database, userUUID, cardUUIDs := setupCards(t, 1)

	// A nil tx writes through the connection directly.
	w := events.NewWriter(database.DB)
	err := w.LogActivity(nil, &domain.Activity{
		CardUUID:     cardUUIDs[0],
		UserUUID:     userUUID,
		ActivityType: domain.ActivityCardCreated,
	})
	if err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}

	if got := countActivities(t, database, domain.ActivityCardCreated); got != 1 {
		t.Errorf("expected 1 activity, got %d", got)
	}
}

func TestLogCardsCreatedChunksLargeBatches(t *testing.T) {
	database, userUUID, cardUUIDs := setupCards(t, 250)
	s := store.New(database)

	err := s.WithTx(func(tx *sql.Tx, ew *events.Writer) error {
		return ew.LogCardsCreated(tx, userUUID, cardUUIDs, nil)
	})
	if err != nil {
		t.Fatalf("LogCardsCreated failed: %v", err)
	}

	if got := countActivities(t, database, domain.ActivityCardCreated); got != 250 {
		t.Errorf("expected 250 activities, got %d", got)
	}

	if err := events.NewWriter(database.DB).LogCardsCreated(nil, userUUID, nil, nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}
