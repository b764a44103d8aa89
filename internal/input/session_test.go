package input

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedant-Asati03/vim-engine/internal/clipboard"
	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

func newSession(t *testing.T, mutate func(*Config)) *Session {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionDefaults(t *testing.T) {
	s := newSession(t, func(c *Config) { c.Text = "hello" })
	assert.NotEmpty(t, s.SessionID())
	assert.Equal(t, mode.Normal, s.Mode())
	assert.Equal(t, "hello", s.Buffer().Text())
	assert.Positive(t, s.Registry().Stats().BindingCount)
	assert.Equal(t, []string{mode.Normal, mode.Insert, mode.Visual, mode.Command}, s.Manager().Modes())
	assert.Contains(t, s.Describe(), "mode=normal")

	m := s.Mirror()
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, mode.Normal, m.Attributes[AttrMode])
	assert.Equal(t, s.SessionID(), m.Attributes[AttrSession])
}

func TestSessionInsertAndWrite(t *testing.T) {
	s := newSession(t, nil)
	var writes []excmd.WritePayload
	s.Bus().MustSubscribe(excmd.TopicWrite, func(ev event.Event) {
		writes = append(writes, ev.Payload.(excmd.WritePayload))
	})

	_, err := s.HandleKeys("i")
	require.NoError(t, err)
	require.NoError(t, s.TypeText("hi"))
	_, err = s.HandleKeys("Esc", ":")
	require.NoError(t, err)
	require.NoError(t, s.TypeText("w! a.txt"))

	assert.Equal(t, ":w! a.txt", s.Mirror().Attributes[AttrCommand])

	res, err := s.HandleKeys("Enter")
	require.NoError(t, err)
	assert.Equal(t, "command_write_force", res[0].Status)
	assert.Equal(t, mode.Normal, s.Mode())

	require.Len(t, writes, 1)
	assert.Equal(t, "hi", writes[0].Snapshot.Text)
	assert.Equal(t, []string{"a.txt"}, writes[0].Args)
}

func TestSessionTimeoutsWithClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newSession(t, func(c *Config) {
		c.Text = "a\nb"
		c.Clock = func() time.Time { return now }
		c.PendingTimeout = 200 * time.Millisecond
	})
	require.NoError(t, s.Buffer().SetCursor(buffer.Pos(1, 0)))

	res, err := s.HandleKeys("g")
	require.NoError(t, err)
	assert.Equal(t, mode.StatusPending, res[0].Status)
	assert.Equal(t, key.DefaultTimeout, res[0].Timeout)

	now = now.Add(key.DefaultTimeout)
	fired := s.ProcessTimeouts()
	require.Contains(t, fired, mode.Normal)
	assert.Equal(t, mode.MessagePendingTimeout, fired[mode.Normal].Message)

	res, err = s.HandleKeys("w")
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, res[0].Timeout)
	fired = s.ForceTimeout("")
	assert.Equal(t, mode.MessageOperatorTimeout, fired[mode.Normal].Message)

	assert.Equal(t, uint64(2), s.Metrics().Snapshot().Timeouts)
}

func TestSessionHooks(t *testing.T) {
	s := newSession(t, nil)
	var order []string
	s.Hooks().Register("late", HookPriorityLow, HookFunc(func(key.Stroke, string) bool {
		order = append(order, "late")
		return false
	}))
	s.Hooks().Register("swallow-i", HookPriorityHigh, HookFunc(func(st key.Stroke, m string) bool {
		order = append(order, "swallow-i")
		return m == mode.Normal && st.Key == "i"
	}))
	assert.Equal(t, []string{"swallow-i", "late"}, s.Hooks().Names())

	res, err := s.HandleKeys("i")
	require.NoError(t, err)
	assert.Equal(t, "hook", res[0].Status)
	assert.Equal(t, mode.Normal, s.Mode())
	assert.Equal(t, []string{"swallow-i"}, order)

	assert.True(t, s.Hooks().Unregister("swallow-i"))
	_, err = s.HandleKeys("i")
	require.NoError(t, err)
	assert.Equal(t, mode.Insert, s.Mode())

	snap := s.Metrics().Snapshot()
	assert.Equal(t, uint64(2), snap.Keys)
	assert.Equal(t, uint64(1), snap.HookConsumptions)
	assert.Equal(t, uint64(1), snap.Switches)
}

func TestSessionClipboardRegister(t *testing.T) {
	clip := &clipboard.Memory{}
	s := newSession(t, func(c *Config) {
		c.Text = "abc"
		c.Clipboard = clip
	})
	s.Buffer().SetActiveRegister(buffer.ClipboardRegister)
	_, err := s.HandleKeys("x")
	require.NoError(t, err)

	text, err := clip.Get()
	require.NoError(t, err)
	assert.Equal(t, "a", text)
}

const sessionKeymap = `
name: user
bindings:
  - id: insert.jk
    mode: insert
    keys: "j k"
    action: core.exit_to_normal
`

func TestSessionKeymapFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sessionKeymap), 0o644))

	s := newSession(t, func(c *Config) { c.KeymapFiles = []string{path} })
	_, err := s.HandleKeys("i", "j", "k")
	require.NoError(t, err)
	assert.Equal(t, mode.Normal, s.Mode())

	_, err = NewSession(Config{KeymapFiles: []string{filepath.Join(t.TempDir(), "missing.yaml")}})
	assert.Error(t, err)
}

func TestSessionKeymapDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keys.yaml"), []byte(sessionKeymap), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	s := newSession(t, func(c *Config) { c.KeymapDirs = []string{dir} })
	b, ok := s.Registry().Binding("insert.jk")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "keys.yaml"), b.Source)
}

func TestSessionWatchRelativeKeymap(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("keys.yaml", []byte(sessionKeymap), 0o644))

	reloads := make(chan keymap.ReloadResult, 8)
	s := newSession(t, func(c *Config) {
		c.KeymapFiles = []string{"keys.yaml"}
		c.WatchKeymaps = true
	})
	s.Bus().MustSubscribe("keymap.reload", func(ev event.Event) {
		reloads <- ev.Payload.(keymap.ReloadResult)
	})
	_, ok := s.Registry().Binding("insert.jk")
	require.True(t, ok)

	require.NoError(t, os.WriteFile("keys.yaml", []byte("name: user\nbindings: []\n"), 0o644))
	select {
	case r := <-reloads:
		require.NoError(t, r.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("keymap was not reloaded")
	}

	_, ok = s.Registry().Binding("insert.jk")
	assert.False(t, ok, "binding removed from the file must not survive the reload")
}

func TestSessionObserver(t *testing.T) {
	rec := telemetry.NewRecorder()
	s := newSession(t, func(c *Config) { c.Observer = rec })
	_, err := s.HandleKeys("v", "Esc")
	require.NoError(t, err)

	spans := rec.Names("span")
	assert.Contains(t, spans, "keymap.resolve")
	assert.Contains(t, spans, "keymap.execute")
	assert.Contains(t, spans, "mode.switch")
	assert.Contains(t, spans, "mode.handle_key")
}

func TestSessionInitialModeAndSkipDefaults(t *testing.T) {
	s := newSession(t, func(c *Config) {
		c.InitialMode = mode.Insert
		c.SkipDefaults = true
	})
	assert.Equal(t, mode.Insert, s.Mode())
	assert.Zero(t, s.Registry().Stats().BindingCount)

	require.NoError(t, s.TypeText("ok"))
	_, err := s.HandleKeys("Esc")
	require.NoError(t, err)
	assert.Equal(t, "ok", s.Buffer().Text())
	assert.Equal(t, mode.Normal, s.Mode())

	_, err = NewSession(Config{InitialMode: "replace"})
	assert.ErrorIs(t, err, mode.ErrUnknownMode)
}
