package action

import (
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

// SubmitCommandLine executes the command-line text and returns to normal
// mode.
func SubmitCommandLine(ctx *mode.Context, _ keymap.Match) mode.Result {
	return mode.SubmitLine(ctx)
}
