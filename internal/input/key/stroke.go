package key

import (
	"strings"
	"unicode/utf8"
)

// Canonical names of the non-printing keys.
const (
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyTab       = "Tab"
	KeySpace     = "Space"
	KeyDelete    = "Delete"
	KeyInsert    = "Insert"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyPageUp    = "PageUp"
	KeyPageDown  = "PageDown"
)

// keyNameMap maps lower-case key names and aliases to canonical names.
var keyNameMap = map[string]string{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"bs":        KeyBackspace,
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"space":     KeySpace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"ins":       KeyInsert,
	"insert":    KeyInsert,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"lt":        "<",
	"gt":        ">",
	"bar":       "|",
	"bslash":    "\\",
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

// CanonicalKey folds a key name to its canonical form. Single characters are
// returned unchanged except for " ", which becomes Space. Unknown
// multi-character names are returned unchanged.
func CanonicalKey(name string) string {
	if name == " " {
		return KeySpace
	}
	if utf8.RuneCountInString(name) <= 1 {
		return name
	}
	if canonical, ok := keyNameMap[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// IsKnownName reports whether name is a recognized multi-character key name.
func IsKnownName(name string) bool {
	_, ok := keyNameMap[strings.ToLower(name)]
	return ok
}

// Stroke is a single normalized key press.
type Stroke struct {
	// Key is the canonical key name ("a", "G", "Escape", "F5").
	Key string

	// Modifiers are canonical, de-duplicated and sorted.
	Modifiers []string

	// Text is the text the host produced for this key, if any.
	// It does not take part in the token.
	Text string
}

// NewStroke creates a normalized stroke.
func NewStroke(k string, mods ...string) Stroke {
	return Stroke{
		Key:       CanonicalKey(k),
		Modifiers: NormalizeModifiers(mods),
	}
}

// TextStroke creates a stroke for a printable character that also carries
// the character as its text.
func TextStroke(r rune) Stroke {
	s := string(r)
	return Stroke{Key: CanonicalKey(s), Text: s}
}

// Normalize returns a copy with canonical key and modifier names.
func (s Stroke) Normalize() Stroke {
	return Stroke{
		Key:       CanonicalKey(s.Key),
		Modifiers: NormalizeModifiers(s.Modifiers),
		Text:      s.Text,
	}
}

// Token returns the trie token for the stroke.
func (s Stroke) Token() string {
	if len(s.Modifiers) == 0 {
		return s.Key
	}
	return strings.Join(s.Modifiers, "+") + "+" + s.Key
}

// String returns the token.
func (s Stroke) String() string {
	return s.Token()
}

// Has reports whether the stroke carries the given canonical modifier.
func (s Stroke) Has(mod string) bool {
	for _, m := range s.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// IsChord reports whether ctrl, alt or meta is held.
func (s Stroke) IsChord() bool {
	for _, m := range s.Modifiers {
		if IsChordModifier(m) {
			return true
		}
	}
	return false
}

// Is reports whether the stroke is the named key with no chord modifier.
func (s Stroke) Is(name string) bool {
	return !s.IsChord() && s.Key == CanonicalKey(name)
}

// InputText returns the text a stroke should insert. Text wins when the host
// set it; otherwise a plain single-character key inserts itself and Space
// inserts a blank. Chords and named keys insert nothing.
func (s Stroke) InputText() string {
	if s.IsChord() {
		return ""
	}
	if s.Text != "" {
		return s.Text
	}
	if s.Key == KeySpace {
		return " "
	}
	if utf8.RuneCountInString(s.Key) == 1 {
		return s.Key
	}
	return ""
}

// Equal compares two strokes by token.
func (s Stroke) Equal(other Stroke) bool {
	return s.Token() == other.Token()
}
