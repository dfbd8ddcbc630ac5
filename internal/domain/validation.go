package domain

import (
	"fmt"
	"regexp"
	"time"
)

// UUIDv4Regex validates lowercase UUIDv4 format
var UUIDv4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// ValidateUUID validates a UUID v4 format (lowercase with hyphens)
func ValidateUUID(uuid string) error {
	if !UUIDv4Regex.MatchString(uuid) {
		return fmt.Errorf("invalid UUID: must be lowercase UUIDv4 format (e.g., 550e8400-e29b-41d4-a716-446655440000)")
	}
	return nil
}

// ValidateBatchStatus validates an import batch status
func ValidateBatchStatus(status string) error {
	switch BatchStatus(status) {
	case BatchStatusPending, BatchStatusSuccess, BatchStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid batch status: must be one of: pending, success, failed")
	}
}

// ValidateBatchSource validates an import batch source
func ValidateBatchSource(source string) error {
	switch BatchSource(source) {
	case BatchSourceJSON:
		return nil
	default:
		return fmt.Errorf("invalid batch source: must be one of: json")
	}
}

// ValidateWorkspaceRole validates a workspace member role
func ValidateWorkspaceRole(role string) error {
	switch WorkspaceRole(role) {
	case WorkspaceRoleOwner, WorkspaceRoleMember:
		return nil
	default:
		return fmt.Errorf("invalid workspace role: must be one of: owner, member")
	}
}

// ValidateActivityType validates an activity record type
func ValidateActivityType(activityType string) error {
	switch ActivityType(activityType) {
	case ActivityCardCreated:
		return nil
	default:
		return fmt.Errorf("invalid activity type: must be one of: card.created")
	}
}

// ValidateTimestamp validates and parses an ISO8601 timestamp
func ValidateTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format: expected ISO8601/RFC3339")
	}
	return t, nil
}
