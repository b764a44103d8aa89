// Package keymap owns the actions and key bindings of every mode and resolves
// incoming key tokens against them.
//
// # Key Concepts
//
// Action: an opaque handler registered under a stable id. Modes decide how
// to call it.
//
// Binding: maps a key sequence in one mode to an action id, optionally
// guarded by When clauses over boolean flags.
//
// Registry: the authoritative binding tables. Every mutation bumps a
// revision counter.
//
// Resolver: a per-mode prefix trie derived from the registry and rebuilt
// whenever the revision moves.
//
// # Conflicts
//
// Two bindings in the same mode with the same key signature conflict unless
// their guards are provably exclusive:
//
//	no guards vs no guards             conflict
//	guards vs no guards                no conflict
//	guards vs guards                   conflict unless a shared flag disagrees
//
// # Resolution
//
//	res := resolver.Resolve("normal", []string{"g"}, flags)
//	switch res.Status {
//	case keymap.StatusMatch:   // res.Match.Binding, res.Match.Action
//	case keymap.StatusPending: // res.NextExpected, res.Timeout
//	case keymap.StatusMiss:    // res.Consumed tokens matched before the miss
//	}
//
// When several bindings at the terminal node pass their guards, the highest
// priority wins and ties go to the smallest binding id.
package keymap
