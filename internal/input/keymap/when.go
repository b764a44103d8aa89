package keymap

import (
	"strings"
)

// When is a guard on a single flag.
type When struct {
	Flag     string
	Expected bool
}

// ParseWhen parses "flag" or "!flag".
func ParseWhen(s string) When {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "!") {
		return When{Flag: strings.TrimSpace(s[1:]), Expected: false}
	}
	return When{Flag: s, Expected: true}
}

// ParseWhens parses every clause, skipping blank entries.
func ParseWhens(clauses ...string) []When {
	if len(clauses) == 0 {
		return nil
	}
	out := make([]When, 0, len(clauses))
	for _, c := range clauses {
		if strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, ParseWhen(c))
	}
	return out
}

// String returns the clause in "flag" / "!flag" form.
func (w When) String() string {
	if w.Expected {
		return w.Flag
	}
	return "!" + w.Flag
}

// Evaluate reports whether the clause holds. Missing flags read as false.
func (w When) Evaluate(flags map[string]bool) bool {
	return flags[w.Flag] == w.Expected
}

// evaluateAll reports whether every clause holds.
func evaluateAll(clauses []When, flags map[string]bool) bool {
	for _, w := range clauses {
		if !w.Evaluate(flags) {
			return false
		}
	}
	return true
}

// guardsOverlap reports whether two guard sets can be true at the same time
// for the purpose of conflict detection.
func guardsOverlap(a, b []When) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	expected := make(map[string]bool, len(a))
	for _, w := range a {
		expected[w.Flag] = w.Expected
	}
	for _, w := range b {
		if want, ok := expected[w.Flag]; ok && want != w.Expected {
			return false
		}
	}
	return true
}
