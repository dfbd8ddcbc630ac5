package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	userIDPattern      = regexp.MustCompile(`^U-\d{5}$`)
	workspaceIDPattern = regexp.MustCompile(`^W-\d{5}$`)
	boardIDPattern     = regexp.MustCompile(`^B-\d{5}$`)
	listIDPattern      = regexp.MustCompile(`^L-\d{5}$`)
	cardIDPattern      = regexp.MustCompile(`^C-\d{5}$`)
	uuidPattern        = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Type represents the type of resource
type Type string

const (
	TypeUser      Type = "user"
	TypeWorkspace Type = "workspace"
	TypeBoard     Type = "board"
	TypeList      Type = "list"
	TypeCard      Type = "card"
)

// FormatUser formats a user friendly ID
func FormatUser(seq int) string {
	return fmt.Sprintf("U-%05d", seq)
}

// FormatWorkspace formats a workspace friendly ID
func FormatWorkspace(seq int) string {
	return fmt.Sprintf("W-%05d", seq)
}

// FormatBoard formats a board friendly ID
func FormatBoard(seq int) string {
	return fmt.Sprintf("B-%05d", seq)
}

// FormatList formats a list friendly ID
func FormatList(seq int) string {
	return fmt.Sprintf("L-%05d", seq)
}

// FormatCard formats a card friendly ID
func FormatCard(seq int) string {
	return fmt.Sprintf("C-%05d", seq)
}

// Parse parses an ID string and returns the type and sequence number
func Parse(id string) (Type, int, error) {
	id = strings.TrimSpace(id)

	switch {
	case userIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[2:])
		return TypeUser, seq, nil
	case workspaceIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[2:])
		return TypeWorkspace, seq, nil
	case boardIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[2:])
		return TypeBoard, seq, nil
	case listIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[2:])
		return TypeList, seq, nil
	case cardIDPattern.MatchString(id):
		seq, _ := strconv.Atoi(id[2:])
		return TypeCard, seq, nil
	default:
		return "", 0, fmt.Errorf("invalid friendly ID format: %s", id)
	}
}

// IsUUID checks if a string is a valid UUID
func IsUUID(s string) bool {
	return uuidPattern.MatchString(strings.ToLower(s))
}

// IsFriendlyID checks if a string is a valid friendly ID
func IsFriendlyID(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}
