package caret

import "github.com/google/uuid"

// DefaultTagColor is the colour given to committed tags when no palette is set.
const DefaultTagColor = "#FF0000"

// Tag is a committed selection. Tags are immutable once created.
type Tag struct {
	// ID identifies the tag for external persistence.
	ID uuid.UUID
	// Mark and Caret are the selection ends as they were at commit time.
	Mark  int64
	Caret int64
	// Label is a free-form name.
	Label string
	// Color is the outline colour, as a hex string.
	Color string
}

// Start returns the lower selection end.
func (t Tag) Start() int64 {
	return min(t.Mark, t.Caret)
}

// End returns the upper selection end (inclusive).
func (t Tag) End() int64 {
	return max(t.Mark, t.Caret)
}

// Len returns the number of bytes the tag spans.
func (t Tag) Len() int64 {
	return t.End() - t.Start() + 1
}
