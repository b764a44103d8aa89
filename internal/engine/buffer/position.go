package buffer

import "fmt"

// Position is a (row, col) location. Col counts runes.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Order returns a and b with the earlier one first.
func Order(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// Selection is an anchor fixed where the selection started and the live
// cursor end.
type Selection struct {
	Anchor Position
	Cursor Position
}

// Ordered returns the endpoints with the earlier one first.
func (s Selection) Ordered() (Position, Position) {
	return Order(s.Anchor, s.Cursor)
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return s.Anchor.String() + "-" + s.Cursor.String()
}
