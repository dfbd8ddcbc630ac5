package db

import (
	"database/sql"
	"fmt"
)

// Executor is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Executor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Sequence names for friendly-ID counters.
const (
	SeqUsers      = "users"
	SeqWorkspaces = "workspaces"
	SeqBoards     = "boards"
	SeqLists      = "lists"
	SeqCards      = "cards"
)

// ReserveIDs reserves n consecutive friendly-ID sequence values and returns
// the first one. Call inside a transaction when the reservation must be
// atomic with the inserts that consume it.
func ReserveIDs(exec Executor, name string, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid reservation size: %d", n)
	}

	res, err := exec.Exec("UPDATE sequences SET value = value + ? WHERE name = ?", n, name)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("unknown sequence: %s", name)
	}

	var value int
	if err := exec.QueryRow("SELECT value FROM sequences WHERE name = ?", name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}

	return value - n + 1, nil
}

// NextID reserves a single friendly-ID sequence value.
func NextID(exec Executor, name string) (int, error) {
	return ReserveIDs(exec, name, 1)
}
