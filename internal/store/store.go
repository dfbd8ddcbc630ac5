// Package store provides a persistence layer that abstracts database
// operations, handling friendly-ID assignment, provenance tagging, and
// activity logging.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/events"
)

// insertChunkSize bounds the number of rows per multi-row INSERT and the
// number of values per IN clause, staying under SQLite's parameter limit.
const insertChunkSize = 100

// Store is the root store that provides access to domain-specific stores.
type Store struct {
	db *db.DB

	// Domain-specific stores
	Users      *UserStore
	Workspaces *WorkspaceStore
	Boards     *BoardStore
	Lists      *ListStore
	Labels     *LabelStore
	Cards      *CardStore
	Checklists *ChecklistStore
	Batches    *BatchStore
}

// New creates a new Store wrapping the given database connection.
func New(database *db.DB) *Store {
	s := &Store{db: database}
	s.Users = &UserStore{store: s}
	s.Workspaces = &WorkspaceStore{store: s}
	s.Boards = &BoardStore{store: s}
	s.Lists = &ListStore{store: s}
	s.Labels = &LabelStore{store: s}
	s.Cards = &CardStore{store: s}
	s.Checklists = &ChecklistStore{store: s}
	s.Batches = &BatchStore{store: s}
	return s
}

// DB returns the underlying database connection (for read-only queries).
func (s *Store) DB() *db.DB {
	return s.db
}

// WithTx executes fn within a transaction. If fn returns nil, the
// transaction is committed; otherwise it is rolled back. Bulk import runs
// one transaction per list through this.
func (s *Store) WithTx(fn func(tx *sql.Tx, ew *events.Writer) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ew := events.NewWriter(s.db.DB)
	if err := fn(tx, ew); err != nil {
		return err
	}

	return tx.Commit()
}

// inPlaceholders returns a "?, ?, ?" fragment for n bound values.
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// chunkStrings splits values into slices of at most insertChunkSize.
func chunkStrings(values []string) [][]string {
	var chunks [][]string
	for start := 0; start < len(values); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}
