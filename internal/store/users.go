package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hferris/tabula/internal/db"
	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/events"
	"github.com/hferris/tabula/internal/id"
)

// UserStore handles user persistence operations.
type UserStore struct {
	store *Store
}

// UserCreateResult contains the result of user creation.
type UserCreateResult struct {
	UUID string
	ID   string
}

// Create creates a new user.
func (us *UserStore) Create(name string) (*UserCreateResult, error) {
	var result *UserCreateResult

	err := us.store.WithTx(func(tx *sql.Tx, _ *events.Writer) error {
		seq, err := db.NextID(tx, db.SeqUsers)
		if err != nil {
			return err
		}

		userUUID := uuid.NewString()
		friendlyID := id.FormatUser(seq)

		_, err = tx.Exec(`
			INSERT INTO users (uuid, id, name) VALUES (?, ?, ?)
		`, userUUID, friendlyID, name)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		result = &UserCreateResult{UUID: userUUID, ID: friendlyID}
		return nil
	})

	return result, err
}

// GetByUUID retrieves a user by UUID.
func (us *UserStore) GetByUUID(userUUID string) (*domain.User, error) {
	user := &domain.User{}
	var createdAt string

	err := us.store.db.QueryRow(`
		SELECT uuid, id, name, created_at FROM users WHERE uuid = ?
	`, userUUID).Scan(&user.UUID, &user.ID, &user.Name, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.NotFoundError{Kind: "user", Ref: userUUID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		user.CreatedAt = t
	}
	return user, nil
}

// Resolve resolves a user identifier (UUID, friendly ID, or name) to a UUID.
func (us *UserStore) Resolve(identifier string) (string, error) {
	var query string
	switch {
	case id.IsUUID(identifier):
		query = "SELECT uuid FROM users WHERE uuid = ?"
	case id.IsFriendlyID(identifier):
		query = "SELECT uuid FROM users WHERE id = ?"
	default:
		query = "SELECT uuid FROM users WHERE name = ?"
	}

	var userUUID string
	err := us.store.db.QueryRow(query, identifier).Scan(&userUUID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", &domain.NotFoundError{Kind: "user", Ref: identifier}
		}
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return userUUID, nil
}
