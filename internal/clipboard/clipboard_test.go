package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
)

var (
	_ buffer.ClipboardProvider = System{}
	_ buffer.ClipboardProvider = (*Memory)(nil)
)

func TestMemoryBacksRegisters(t *testing.T) {
	mem := &Memory{}
	regs := buffer.NewRegisterBank()
	regs.SetClipboard(mem)

	require.NoError(t, regs.YankTo(buffer.ClipboardRegister, "shared", buffer.Charwise))
	got, err := mem.Get()
	require.NoError(t, err)
	assert.Equal(t, "shared", got)
}

func TestSystemUnsupported(t *testing.T) {
	if Available() {
		t.Skip("system clipboard present")
	}
	_, err := NewSystem().Get()
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, NewSystem().Set("x"), ErrUnsupported)
}
