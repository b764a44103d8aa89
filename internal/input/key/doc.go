// Package key provides the normalized keystroke and key sequence types the
// engine resolves against.
//
// A Stroke is one key press: a canonical key name, a sorted set of canonical
// modifiers, and the optional text the host produced for it. Its Token is the
// string the keymap trie is built from:
//
//	a          plain key
//	ctrl+r     modifiers joined with "+", then "+key"
//	Escape     named keys use canonical names
//
// # Key Specifications
//
// Parse and ParseSequence accept the notations used in keymap files:
//
//   - Simple keys: "a", "G", "1", "Enter", "esc"
//   - With modifiers: "Ctrl+S", "Alt+F4", "ctrl+shift+p"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//   - Sequences: "g g", "gg", "<C-x><C-s>"
//
// Multi-character key names are case-insensitive and folded to canonical
// names ("ESC", "<Esc>" and "escape" all become Escape). Single characters are
// case-sensitive.
package key
