package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text   string
	getErr error
	setErr error
}

func (f *fakeClipboard) Get() (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.text, nil
}

func (f *fakeClipboard) Set(text string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.text = text
	return nil
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegisterBank()
	assert.Equal(t, RegisterValue{Type: Charwise}, r.Get("q"))
	assert.Equal(t, RegisterValue{Type: Charwise}, r.Get(""))
	assert.Equal(t, []string{UnnamedRegister}, r.Names())
}

func TestRegisterSetMirrorsUnnamed(t *testing.T) {
	r := NewRegisterBank()
	require.NoError(t, r.YankTo("a", "alpha", Linewise))
	assert.Equal(t, RegisterValue{Text: "alpha", Type: Linewise}, r.Get("a"))
	assert.Equal(t, RegisterValue{Text: "alpha", Type: Linewise}, r.Get(UnnamedRegister))

	require.NoError(t, r.Set(UnnamedRegister, RegisterValue{Text: "only"}))
	assert.Equal(t, "alpha", r.Get("a").Text)
	assert.Equal(t, Charwise, r.Get(UnnamedRegister).Type)
}

func TestRegisterAppendKeepsType(t *testing.T) {
	r := NewRegisterBank()
	require.NoError(t, r.YankTo("b", "block", Blockwise))
	require.NoError(t, r.Append("b", "+more"))
	assert.Equal(t, RegisterValue{Text: "block+more", Type: Blockwise}, r.Get("b"))

	require.NoError(t, r.Append("fresh", "x"))
	assert.Equal(t, RegisterValue{Text: "x", Type: Charwise}, r.Get("fresh"))
}

func TestRegisterSnapshotLoad(t *testing.T) {
	r := NewRegisterBank()
	require.NoError(t, r.YankTo("a", "one", Charwise))
	snap := r.Snapshot()
	snap["a"] = RegisterValue{Text: "changed"}
	assert.Equal(t, "one", r.Get("a").Text)

	other := NewRegisterBank()
	other.Load(map[string]RegisterValue{"z": {Text: "zed"}})
	assert.Equal(t, RegisterValue{Text: "zed", Type: Charwise}, other.Get("z"))
	assert.Empty(t, other.Get(UnnamedRegister).Text, "load does not mirror")
}

func TestRegisterClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	r := NewRegisterBank()
	r.SetClipboard(clip)

	require.NoError(t, r.YankTo(ClipboardRegister, "copied", Charwise))
	assert.Equal(t, "copied", clip.text)

	clip.text = "from system"
	assert.Equal(t, "from system", r.Get(SelectionRegister).Text)
	assert.Equal(t, "from system", r.Get(ClipboardRegister).Text)

	clip.getErr = errors.New("no display")
	assert.Equal(t, "copied", r.Get(ClipboardRegister).Text, "falls back to stored value")

	clip.setErr = errors.New("denied")
	err := r.YankTo(ClipboardRegister, "next", Charwise)
	assert.EqualError(t, err, "denied")
	assert.Equal(t, "next", r.Get(UnnamedRegister).Text, "stored despite clipboard error")
}
