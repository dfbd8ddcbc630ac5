package domain

import (
	"time"
)

// BatchStatus represents the terminal state of an import batch
type BatchStatus string

const (
	BatchStatusPending BatchStatus = "pending"
	BatchStatusSuccess BatchStatus = "success"
	BatchStatusFailed  BatchStatus = "failed"
)

// BatchSource represents the origin format of an import batch
type BatchSource string

const (
	BatchSourceJSON BatchSource = "json"
)

// ActivityType represents the kind of an activity record
type ActivityType string

const (
	ActivityCardCreated ActivityType = "card.created"
)

// WorkspaceRole represents a member's role within a workspace
type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleMember WorkspaceRole = "member"
)

// User represents an acting identity
type User struct {
	UUID      string    `json:"uuid" db:"uuid"`
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Workspace owns boards and carries the membership used for authorization
type Workspace struct {
	UUID      string    `json:"uuid" db:"uuid"`
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Board represents a board within a workspace
type Board struct {
	UUID          string     `json:"uuid" db:"uuid"`
	ID            string     `json:"id" db:"id"`
	WorkspaceUUID string     `json:"workspace_uuid" db:"workspace_uuid"`
	Name          string     `json:"name" db:"name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty" db:"archived_at"`
}

// List represents an ordered column of cards on a board
type List struct {
	UUID            string  `json:"uuid" db:"uuid"`
	ID              string  `json:"id" db:"id"`
	BoardUUID       string  `json:"board_uuid" db:"board_uuid"`
	Name            string  `json:"name" db:"name"`
	Position        int     `json:"position" db:"position"`
	ImportBatchUUID *string `json:"import_batch_uuid,omitempty" db:"import_batch_uuid"`
	CreatedAt       string  `json:"created_at" db:"created_at"`
	ArchivedAt      *string `json:"archived_at,omitempty" db:"archived_at"`
}

// Label represents a named color tag, unique per board ignoring case
type Label struct {
	UUID            string  `json:"uuid" db:"uuid"`
	BoardUUID       string  `json:"board_uuid" db:"board_uuid"`
	Name            string  `json:"name" db:"name"`
	Color           string  `json:"color" db:"color"`
	ImportBatchUUID *string `json:"import_batch_uuid,omitempty" db:"import_batch_uuid"`
	CreatedAt       string  `json:"created_at" db:"created_at"`
	DeletedAt       *string `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Card represents a card within a list
type Card struct {
	UUID              string  `json:"uuid" db:"uuid"`
	ID                string  `json:"id" db:"id"`
	ListUUID          string  `json:"list_uuid" db:"list_uuid"`
	Title             string  `json:"title" db:"title"`
	Description       string  `json:"description" db:"description"`
	Position          int     `json:"position" db:"position"`
	ImportBatchUUID   *string `json:"import_batch_uuid,omitempty" db:"import_batch_uuid"`
	CreatedByUserUUID string  `json:"created_by_user_uuid" db:"created_by_user_uuid"`
	CreatedAt         string  `json:"created_at" db:"created_at"`
	DeletedAt         *string `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Checklist represents an ordered group of items on a card
type Checklist struct {
	UUID      string  `json:"uuid" db:"uuid"`
	CardUUID  string  `json:"card_uuid" db:"card_uuid"`
	Name      string  `json:"name" db:"name"`
	Position  int     `json:"position" db:"position"`
	CreatedAt string  `json:"created_at" db:"created_at"`
	DeletedAt *string `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ChecklistItem represents a single entry in a checklist
type ChecklistItem struct {
	UUID          string  `json:"uuid" db:"uuid"`
	ChecklistUUID string  `json:"checklist_uuid" db:"checklist_uuid"`
	Title         string  `json:"title" db:"title"`
	Completed     bool    `json:"completed" db:"completed"`
	Position      int     `json:"position" db:"position"`
	CreatedAt     string  `json:"created_at" db:"created_at"`
	DeletedAt     *string `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Activity represents an append-only event on a card
type Activity struct {
	ID              int64        `json:"id" db:"id"`
	CardUUID        string       `json:"card_uuid" db:"card_uuid"`
	UserUUID        string       `json:"user_uuid" db:"user_uuid"`
	ActivityType    ActivityType `json:"activity_type" db:"activity_type"`
	ImportBatchUUID *string      `json:"import_batch_uuid,omitempty" db:"import_batch_uuid"`
	CreatedAt       string       `json:"created_at" db:"created_at"`
}

// ImportBatch is the provenance record for one import call. It is created
// once per call and transitions exactly once to a terminal status.
type ImportBatch struct {
	UUID              string      `json:"uuid" db:"uuid"`
	BoardUUID         string      `json:"board_uuid" db:"board_uuid"`
	Source            BatchSource `json:"source" db:"source"`
	Status            BatchStatus `json:"status" db:"status"`
	CreatedByUserUUID string      `json:"created_by_user_uuid" db:"created_by_user_uuid"`
	CreatedAt         string      `json:"created_at" db:"created_at"`
	FinishedAt        *string     `json:"finished_at,omitempty" db:"finished_at"`
}
