package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/events"
	"github.com/hferris/tabula/internal/id"
)

// WorkspaceStore handles workspace and membership persistence operations.
type WorkspaceStore struct {
	store *Store
}

// WorkspaceCreateResult contains the result of workspace creation.
type WorkspaceCreateResult struct {
	UUID string
	ID   string
}

// Create creates a new workspace.
func (ws *WorkspaceStore) Create(name string) (*WorkspaceCreateResult, error) {
	var result *WorkspaceCreateResult

	err := ws.store.WithTx(func(tx *sql.Tx, _ *events.Writer) error {
		seq, err := db.NextID(tx, db.SeqWorkspaces)
		if err != nil {
			return err
		}

		wsUUID := uuid.NewString()
		friendlyID := id.FormatWorkspace(seq)

		_, err = tx.Exec(`
			INSERT INTO workspaces (uuid, id, name) VALUES (?, ?, ?)
		`, wsUUID, friendlyID, name)
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}

		result = &WorkspaceCreateResult{UUID: wsUUID, ID: friendlyID}
		return nil
	})

	return result, err
}

// AddMember adds a user to a workspace with the given role.
func (ws *WorkspaceStore) AddMember(workspaceUUID, userUUID string, role domain.WorkspaceRole) error {
	_, err := ws.store.db.Exec(`
		INSERT INTO workspace_members (workspace_uuid, user_uuid, role)
		VALUES (?, ?, ?)
	`, workspaceUUID, userUUID, role)
	if err != nil {
		return fmt.Errorf("failed to add workspace member: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the workspace.
func (ws *WorkspaceStore) IsMember(workspaceUUID, userUUID string) (bool, error) {
	var count int
	err := ws.store.db.QueryRow(`
		SELECT COUNT(*) FROM workspace_members
		WHERE workspace_uuid = ? AND user_uuid = ?
	`, workspaceUUID, userUUID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check workspace membership: %w", err)
	}
	return count > 0, nil
}

// Resolve resolves a workspace identifier (UUID or friendly ID) to a UUID.
func (ws *WorkspaceStore) Resolve(identifier string) (string, error) {
	var query string
	switch {
	case id.IsUUID(identifier):
		query = "SELECT uuid FROM workspaces WHERE uuid = ?"
	case id.IsFriendlyID(identifier):
		query = "SELECT uuid FROM workspaces WHERE id = ?"
	default:
		query = "SELECT uuid FROM workspaces WHERE name = ?"
	}

	var wsUUID string
	err := ws.store.db.QueryRow(query, identifier).Scan(&wsUUID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", &domain.NotFoundError{Kind: "workspace", Ref: identifier}
		}
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return wsUUID, nil
}
