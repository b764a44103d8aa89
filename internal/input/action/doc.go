// Package action holds the built-in editing actions and the default keymap
// that binds them.
//
// Actions are mode.ActionFunc values registered in a keymap.Registry under
// dotted ids ("core.enter_insert", "visual.yank_selection"). LoadDefaults
// registers them together with the default bindings for every mode.
package action
