package key

import (
	"sort"
	"strings"
)

// Canonical modifier names.
const (
	ModAlt   = "alt"
	ModCtrl  = "ctrl"
	ModMeta  = "meta"
	ModShift = "shift"
)

var modifierNameMap = map[string]string{
	"alt":     ModAlt,
	"a":       ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"ctrl":    ModCtrl,
	"c":       ModCtrl,
	"control": ModCtrl,
	"meta":    ModMeta,
	"m":       ModMeta,
	"d":       ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
	"shift":   ModShift,
	"s":       ModShift,
}

// ModifierFromName returns the canonical modifier for name.
// The second result is false when name is not a known modifier alias.
func ModifierFromName(name string) (string, bool) {
	m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// NormalizeModifiers trims, lower-cases, folds aliases, removes duplicates
// and sorts the modifier names. Unknown names are kept in lower case.
// Returns nil when no modifiers remain.
func NormalizeModifiers(mods []string) []string {
	if len(mods) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(mods))
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		name := strings.ToLower(strings.TrimSpace(m))
		if name == "" {
			continue
		}
		if canonical, ok := modifierNameMap[name]; ok {
			name = canonical
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// IsChordModifier reports whether mod turns a key into a command chord
// rather than text input.
func IsChordModifier(mod string) bool {
	switch mod {
	case ModCtrl, ModAlt, ModMeta:
		return true
	}
	return false
}
