package action

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

// SourceDefaults is the Source of every default binding.
const SourceDefaults = "defaults"

// ErrOverrideMode is returned when a mode override targets another mode.
var ErrOverrideMode = errors.New("action: override binding targets a different mode")

// DefaultActions returns the built-in actions.
func DefaultActions() []keymap.Action {
	return []keymap.Action{
		keymap.NewAction("core.enter_insert", "Enter insert mode", EnterInsert),
		keymap.NewAction("core.exit_to_normal", "Return to normal mode", ExitToNormal),
		keymap.NewAction("core.enter_visual", "Enter visual mode", EnterVisual),
		keymap.NewAction("core.enter_command", "Enter command-line mode", EnterCommand),
		keymap.NewAction("core.noop", "Do nothing", mode.ActionFunc(Noop)),
		keymap.NewAction("core.cursor_left", "Move cursor left", mode.ActionFunc(CursorLeft)),
		keymap.NewAction("core.cursor_right", "Move cursor right", mode.ActionFunc(CursorRight)),
		keymap.NewAction("core.cursor_up", "Move cursor up", mode.ActionFunc(CursorUp)),
		keymap.NewAction("core.cursor_down", "Move cursor down", mode.ActionFunc(CursorDown)),
		keymap.NewAction("core.cursor_top", "Move to the first line", mode.ActionFunc(CursorTop)),
		keymap.NewAction("core.cursor_bottom", "Move to the last line", mode.ActionFunc(CursorBottom)),
		keymap.NewAction("core.delete_char", "Delete the character under the cursor", mode.ActionFunc(DeleteChar)),
		keymap.NewAction("core.undo", "Undo the last change", mode.ActionFunc(Undo)),
		keymap.NewAction("core.redo", "Redo the last undone change", mode.ActionFunc(Redo)),
		keymap.NewAction("core.paste_after", "Paste after the cursor", mode.ActionFunc(PasteAfter)),
		keymap.NewAction("core.append", "Append after the cursor", mode.ActionFunc(Append)),
		keymap.NewAction("visual.extend_left", "Extend selection left", mode.ActionFunc(ExtendLeft)),
		keymap.NewAction("visual.extend_right", "Extend selection right", mode.ActionFunc(ExtendRight)),
		keymap.NewAction("visual.extend_up", "Extend selection up", mode.ActionFunc(ExtendUp)),
		keymap.NewAction("visual.extend_down", "Extend selection down", mode.ActionFunc(ExtendDown)),
		keymap.NewAction("visual.yank_selection", "Yank current visual selection", mode.ActionFunc(YankSelection)),
		keymap.NewAction("visual.swap_anchor", "Swap selection anchor", mode.ActionFunc(SwapAnchor)),
		keymap.NewAction("visual.delete_selection", "Delete current selection", mode.ActionFunc(DeleteSelection)),
		keymap.NewAction("visual.change_selection", "Change current selection", mode.ActionFunc(ChangeSelection)),
		keymap.NewAction("command.submit_line", "Evaluate the active command line", mode.ActionFunc(SubmitCommandLine)),
	}
}

type bindingDef struct {
	id, mode, keys, action, desc string
	tags                         []string
}

var defaultBindings = []bindingDef{
	{"normal.enter_insert", mode.Normal, "i", "core.enter_insert", "Enter insert mode", []string{"mode"}},
	{"normal.enter_visual", mode.Normal, "v", "core.enter_visual", "Enter visual mode", []string{"mode"}},
	{"normal.enter_command", mode.Normal, ":", "core.enter_command", "Enter command-line mode", []string{"mode"}},
	{"normal.append", mode.Normal, "a", "core.append", "Append after the cursor", []string{"mode"}},
	{"normal.cursor_left", mode.Normal, "h", "core.cursor_left", "Move cursor left", []string{"motion"}},
	{"normal.cursor_down", mode.Normal, "j", "core.cursor_down", "Move cursor down", []string{"motion"}},
	{"normal.cursor_up", mode.Normal, "k", "core.cursor_up", "Move cursor up", []string{"motion"}},
	{"normal.cursor_right", mode.Normal, "l", "core.cursor_right", "Move cursor right", []string{"motion"}},
	{"normal.cursor_top", mode.Normal, "g g", "core.cursor_top", "Move to the first line", []string{"motion"}},
	{"normal.cursor_bottom", mode.Normal, "G", "core.cursor_bottom", "Move to the last line", []string{"motion"}},
	{"normal.delete_char", mode.Normal, "x", "core.delete_char", "Delete the character under the cursor", []string{"edit"}},
	{"normal.undo", mode.Normal, "u", "core.undo", "Undo the last change", []string{"edit"}},
	{"normal.redo", mode.Normal, "<C-r>", "core.redo", "Redo the last undone change", []string{"edit"}},
	{"normal.paste_after", mode.Normal, "p", "core.paste_after", "Paste after the cursor", []string{"edit"}},
	{"insert.exit_escape", mode.Insert, "Escape", "core.exit_to_normal", "Leave insert mode", []string{"mode"}},
	{"visual.exit_escape", mode.Visual, "Escape", "core.exit_to_normal", "Leave visual mode", []string{"mode"}},
	{"visual.extend_left", mode.Visual, "h", "visual.extend_left", "Extend selection left", []string{"motion"}},
	{"visual.extend_right", mode.Visual, "l", "visual.extend_right", "Extend selection right", []string{"motion"}},
	{"visual.extend_up", mode.Visual, "k", "visual.extend_up", "Extend selection up", []string{"motion"}},
	{"visual.extend_down", mode.Visual, "j", "visual.extend_down", "Extend selection down", []string{"motion"}},
	{"visual.yank_selection", mode.Visual, "y", "visual.yank_selection", "Yank the current selection", []string{"edit"}},
	{"visual.swap_anchor", mode.Visual, "o", "visual.swap_anchor", "Swap selection anchor", []string{"motion"}},
	{"visual.delete_selection", mode.Visual, "d", "visual.delete_selection", "Delete current selection", []string{"edit"}},
	{"visual.change_selection", mode.Visual, "c", "visual.change_selection", "Change current selection", []string{"edit"}},
	{"command.exit_escape", mode.Command, "Escape", "core.exit_to_normal", "Cancel command line", []string{"mode"}},
	{"command.submit_enter", mode.Command, "Enter", "command.submit_line", "Submit the command line", []string{"command"}},
}

// DefaultBindings returns the built-in bindings for every mode.
func DefaultBindings() []keymap.Binding {
	out := make([]keymap.Binding, 0, len(defaultBindings))
	for _, d := range defaultBindings {
		b := keymap.MustBinding(d.id, d.mode, d.keys, d.action).
			WithDescription(d.desc).
			WithTags(d.tags...).
			WithSource(SourceDefaults)
		out = append(out, b)
	}
	return out
}

// Options tune LoadDefaults.
type Options struct {
	// Replace overwrites existing actions and bindings with the same ids.
	Replace bool

	// ExtraBindings are registered after the defaults.
	ExtraBindings []keymap.Binding

	// DefaultTimeout, when positive, replaces the sequence timeout of every
	// default binding.
	DefaultTimeout time.Duration

	// Include lists restrict to the named ids when non-empty; Exclude lists
	// drop the named ids.
	IncludeActions  []string
	ExcludeActions  []string
	IncludeBindings []string
	ExcludeBindings []string

	// ModeOverrides are registered last, with replace, keyed by mode. Every
	// binding must target its key's mode.
	ModeOverrides map[string][]keymap.Binding
}

type filter struct {
	include map[string]bool
	exclude map[string]bool
}

func newFilter(include, exclude []string) filter {
	f := filter{exclude: toSet(exclude)}
	if len(include) > 0 {
		f.include = toSet(include)
	}
	return f
}

func (f filter) allows(id string) bool {
	if f.include != nil && !f.include[id] {
		return false
	}
	return !f.exclude[id]
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// LoadDefaults registers the built-in actions and bindings in reg. A default
// binding whose action was filtered out is skipped.
func LoadDefaults(reg *keymap.Registry, opts Options) error {
	actions := newFilter(opts.IncludeActions, opts.ExcludeActions)
	bindings := newFilter(opts.IncludeBindings, opts.ExcludeBindings)

	for _, a := range DefaultActions() {
		if !actions.allows(a.ID) {
			continue
		}
		if err := reg.RegisterAction(a, opts.Replace); err != nil {
			return fmt.Errorf("register action %s: %w", a.ID, err)
		}
	}

	for _, b := range DefaultBindings() {
		if !bindings.allows(b.ID) || !actions.allows(b.ActionID) {
			continue
		}
		if opts.DefaultTimeout > 0 {
			b = b.WithTimeout(opts.DefaultTimeout)
		}
		if err := reg.RegisterBinding(b, opts.Replace); err != nil {
			return fmt.Errorf("register binding %s: %w", b.ID, err)
		}
	}

	for _, b := range opts.ExtraBindings {
		if err := reg.RegisterBinding(b, opts.Replace); err != nil {
			return fmt.Errorf("register binding %s: %w", b.ID, err)
		}
	}

	for m, list := range opts.ModeOverrides {
		for _, b := range list {
			if b.Mode != m {
				return fmt.Errorf("%w: %s targets %q, not %q", ErrOverrideMode, b.ID, b.Mode, m)
			}
			if err := reg.RegisterBinding(b, true); err != nil {
				return fmt.Errorf("register override %s: %w", b.ID, err)
			}
		}
	}
	return nil
}
