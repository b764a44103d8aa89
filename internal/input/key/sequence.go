package key

import (
	"errors"
	"strings"
	"time"
)

// DefaultTimeout is the ambiguity window given to new sequences.
const DefaultTimeout = 1000 * time.Millisecond

// ErrEmptySequence is returned when a sequence has no strokes.
var ErrEmptySequence = errors.New("key: empty key sequence")

// Sequence is an ordered list of strokes bound as one command, together with
// the time the resolver waits for a longer binding sharing its prefix.
// Examples: "g g", "<C-w> v", "<Esc>".
//
// Sequences are values: the methods return modified copies and never share
// the stroke slice with the receiver.
type Sequence struct {
	Strokes []Stroke
	Timeout time.Duration
}

// NewSequence creates a sequence with DefaultTimeout.
func NewSequence(strokes ...Stroke) Sequence {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Normalize()
	}
	return Sequence{Strokes: out, Timeout: DefaultTimeout}
}

// FromStrings builds a sequence with one stroke per key specification.
func FromStrings(specs ...string) (Sequence, error) {
	strokes := make([]Stroke, 0, len(specs))
	for _, spec := range specs {
		s, err := Parse(spec)
		if err != nil {
			return Sequence{}, err
		}
		strokes = append(strokes, s)
	}
	seq := NewSequence(strokes...)
	if err := seq.Validate(); err != nil {
		return Sequence{}, err
	}
	return seq, nil
}

// Validate reports ErrEmptySequence for a sequence without strokes.
func (s Sequence) Validate() error {
	if len(s.Strokes) == 0 {
		return ErrEmptySequence
	}
	return nil
}

// Len returns the number of strokes.
func (s Sequence) Len() int {
	return len(s.Strokes)
}

// Tokens returns the token of every stroke in order.
func (s Sequence) Tokens() []string {
	tokens := make([]string, len(s.Strokes))
	for i, st := range s.Strokes {
		tokens[i] = st.Token()
	}
	return tokens
}

// Signature returns the tokens joined by single spaces. Two sequences with
// the same signature bind the same keys.
func (s Sequence) Signature() string {
	return strings.Join(s.Tokens(), " ")
}

// String returns the signature.
func (s Sequence) String() string {
	return s.Signature()
}

// WithTimeout returns a copy using the given ambiguity window.
func (s Sequence) WithTimeout(d time.Duration) Sequence {
	c := s.Clone()
	c.Timeout = d
	return c
}

// Clone returns a deep copy.
func (s Sequence) Clone() Sequence {
	strokes := make([]Stroke, len(s.Strokes))
	copy(strokes, s.Strokes)
	return Sequence{Strokes: strokes, Timeout: s.Timeout}
}

// Equal compares the token lists. Timeouts are ignored.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.Strokes) != len(other.Strokes) {
		return false
	}
	for i := range s.Strokes {
		if !s.Strokes[i].Equal(other.Strokes[i]) {
			return false
		}
	}
	return true
}
