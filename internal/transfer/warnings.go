package transfer

import "fmt"

// Warnings accumulates non-fatal notices across the import pipeline. It is
// threaded explicitly through each stage rather than held as ambient state,
// and its contents reach the caller only on full success.
type Warnings struct {
	notes []string
}

// Addf appends a formatted notice.
func (w *Warnings) Addf(format string, args ...any) {
	w.notes = append(w.notes, fmt.Sprintf(format, args...))
}

// Len returns the number of accumulated notices.
func (w *Warnings) Len() int {
	return len(w.notes)
}

// Notes returns the accumulated notices. Never nil, so a successful result
// serializes warnings as an empty array rather than null.
func (w *Warnings) Notes() []string {
	notes := make([]string, len(w.notes))
	copy(notes, w.notes)
	return notes
}
