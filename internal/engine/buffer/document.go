package buffer

import (
	"strings"
	"unicode/utf8"
)

// Document is an immutable list of lines. It always holds at least one line.
type Document struct {
	lines   []string
	version uint64
	dirty   bool
}

// NewDocument splits text into lines. "\r\n" and "\r" are read as line
// breaks, and a trailing newline yields a final empty line.
func NewDocument(text string) *Document {
	return &Document{lines: splitLines(text)}
}

func splitLines(text string) []string {
	return strings.Split(NormalizeNewlines(text), "\n")
}

// NormalizeNewlines rewrites "\r\n" and "\r" to "\n".
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Version returns the replacement counter.
func (d *Document) Version() uint64 {
	return d.version
}

// Dirty reports whether the document changed since it was last marked clean.
func (d *Document) Dirty() bool {
	return d.dirty
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// LineLen returns the length of line i in runes.
func (d *Document) LineLen(i int) int {
	return utf8.RuneCountInString(d.Line(i))
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Text joins the lines with "\n".
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Replace returns a new dirty document holding text with the next version.
func (d *Document) Replace(text string) *Document {
	return &Document{lines: splitLines(text), version: d.version + 1, dirty: true}
}

// Clean returns a copy at the same version with the dirty flag cleared.
func (d *Document) Clean() *Document {
	return &Document{lines: d.lines, version: d.version}
}

// Validate checks that p addresses a row of the document and a column no
// greater than that line's length.
func (d *Document) Validate(p Position) error {
	if p.Row < 0 || p.Row >= len(d.lines) {
		return &ValidationError{Position: p, Err: ErrRowOutOfRange}
	}
	if p.Col < 0 || p.Col > d.LineLen(p.Row) {
		return &ValidationError{Position: p, Err: ErrColumnOutOfRange}
	}
	return nil
}

// Clamp moves p into the document bounds.
func (d *Document) Clamp(p Position) Position {
	row := clamp(p.Row, 0, len(d.lines)-1)
	return Position{Row: row, Col: clamp(p.Col, 0, d.LineLen(row))}
}

// End returns the position after the last character.
func (d *Document) End() Position {
	last := len(d.lines) - 1
	return Position{Row: last, Col: d.LineLen(last)}
}

// Offset converts a valid position to a byte offset into Text.
func (d *Document) Offset(p Position) int {
	off := 0
	for i := 0; i < p.Row; i++ {
		off += len(d.lines[i]) + 1
	}
	return off + byteIndex(d.lines[p.Row], p.Col)
}

// PositionAt converts a byte offset into Text to a position. Offsets past
// the end map to End.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	for row, line := range d.lines {
		if offset <= len(line) {
			return Position{Row: row, Col: utf8.RuneCountInString(line[:offset])}
		}
		offset -= len(line) + 1
	}
	return d.End()
}

// byteIndex returns the byte index of rune column col in s.
func byteIndex(s string, col int) int {
	i := 0
	for n := 0; n < col && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
