package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "board", Ref: "B-00042"}
	if err.Error() != "board not found: B-00042" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	var nf *NotFoundError
	wrapped := error(err)
	if !errors.As(wrapped, &nf) {
		t.Error("errors.As should match *NotFoundError")
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	verr := &ValidationError{}
	if verr.HasIssues() {
		t.Error("empty validation error should have no issues")
	}

	verr.Add("lists[0].cards[3].title", "required")
	verr.Add("lists[1].cards", "must contain at most %d cards", 500)

	if !verr.HasIssues() {
		t.Error("expected issues after Add")
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(verr.Issues))
	}

	msg := verr.Error()
	if !strings.Contains(msg, "lists[0].cards[3].title: required") {
		t.Errorf("message missing first issue: %s", msg)
	}
	if !strings.Contains(msg, "lists[1].cards: must contain at most 500 cards") {
		t.Errorf("message missing second issue: %s", msg)
	}
}

func TestWriteErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &WriteError{Step: `list "Backlog"`, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("WriteError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), `list "Backlog"`) {
		t.Errorf("message should name the failing step: %s", err.Error())
	}
}
