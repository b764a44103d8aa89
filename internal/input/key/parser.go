package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("key: empty key specification")
	ErrInvalidSpec = errors.New("key: invalid key specification")
)

// Parse parses one key specification into a Stroke.
//
// Supported formats:
//   - Single character: "a", "A", "1", "+"
//   - Key names: "Enter", "ESC", "Tab", "Backspace", "Space", "F5"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
func Parse(spec string) (Stroke, error) {
	if spec == " " {
		return NewStroke(KeySpace), nil
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Stroke{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		return NewStroke(spec), nil
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, nil)
}

// parseVimStyle parses the inside of "<...>": "C-s", "A-F4", "CR", "Esc".
func parseVimStyle(inner string) (Stroke, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Stroke{}, ErrInvalidSpec
	}

	// "<C-->" binds ctrl plus the minus key.
	var parts []string
	if strings.HasSuffix(inner, "--") {
		parts = append(strings.Split(inner[:len(inner)-2], "-"), "-")
	} else {
		parts = strings.Split(inner, "-")
	}

	keyPart := parts[len(parts)-1]
	mods, err := parseModifierList(parts[:len(parts)-1])
	if err != nil {
		return Stroke{}, err
	}
	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Stroke, error) {
	var parts []string
	if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(spec[:len(spec)-2], "+"), "+")
	} else {
		parts = strings.Split(spec, "+")
	}
	if len(parts) < 2 {
		return Stroke{}, ErrInvalidSpec
	}

	mods, err := parseModifierList(parts[:len(parts)-1])
	if err != nil {
		return Stroke{}, err
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseModifierList(parts []string) ([]string, error) {
	mods := make([]string, 0, len(parts))
	for _, p := range parts {
		m, ok := ModifierFromName(p)
		if !ok {
			return nil, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// parseKey resolves a key name or single character with known modifiers.
func parseKey(keyPart string, mods []string) (Stroke, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Stroke{}, ErrInvalidSpec
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		// Chords use the lower-case letter.
		for _, m := range mods {
			if m == ModCtrl {
				r = unicode.ToLower(r)
				break
			}
		}
		return NewStroke(string(r), mods...), nil
	}

	if !IsKnownName(keyPart) {
		return Stroke{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return NewStroke(keyPart, mods...), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Stroke {
	s, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return s
}

// ParseSequence parses a sequence specification.
//
// Space-separated parts are parsed one stroke each ("g g", "ESC", "C-w v").
// A part without spaces is read as a run of single characters and "<...>"
// groups ("gg", "<C-x><C-s>", "d<Right>"). A part that is a known key name
// on its own ("ESC", "Enter") is one stroke. The result uses DefaultTimeout.
func ParseSequence(spec string) (Sequence, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Sequence{}, ErrEmptySequence
	}

	var strokes []Stroke
	for _, part := range strings.Fields(spec) {
		parsed, err := parsePart(part)
		if err != nil {
			return Sequence{}, err
		}
		strokes = append(strokes, parsed...)
	}
	return NewSequence(strokes...), nil
}

func parsePart(part string) ([]Stroke, error) {
	if IsKnownName(part) || (strings.Contains(part, "+") && utf8.RuneCountInString(part) > 1 && !strings.Contains(part, "<")) {
		s, err := Parse(part)
		if err != nil {
			return nil, err
		}
		return []Stroke{s}, nil
	}

	var strokes []Stroke
	for i := 0; i < len(part); {
		if part[i] == '<' {
			end := strings.IndexByte(part[i:], '>')
			if end > 1 {
				s, err := Parse(part[i : i+end+1])
				if err != nil {
					return nil, err
				}
				strokes = append(strokes, s)
				i += end + 1
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(part[i:])
		strokes = append(strokes, NewStroke(string(r)))
		i += size
	}
	return strokes, nil
}

// MustParseSequence parses a sequence specification and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key sequence: " + spec + ": " + err.Error())
	}
	return seq
}

// FormatStroke renders a stroke in Vim notation so it can be parsed back.
func FormatStroke(s Stroke) string {
	if len(s.Modifiers) == 0 && utf8.RuneCountInString(s.Key) == 1 && s.Key != "<" {
		return s.Key
	}
	var b strings.Builder
	b.WriteByte('<')
	for _, m := range s.Modifiers {
		switch m {
		case ModAlt:
			b.WriteString("A-")
		case ModCtrl:
			b.WriteString("C-")
		case ModMeta:
			b.WriteString("D-")
		case ModShift:
			b.WriteString("S-")
		}
	}
	if s.Key == "<" {
		b.WriteString("lt")
	} else {
		b.WriteString(s.Key)
	}
	b.WriteByte('>')
	return b.String()
}
