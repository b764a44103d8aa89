package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vimengine 1.2.3")
	assert.Contains(t, out, "Commit: abc")
}

func TestBindingsCommand(t *testing.T) {
	t.Run("all modes", func(t *testing.T) {
		out, _, err := execute(t, "bindings")
		require.NoError(t, err)
		assert.Contains(t, out, "MODE")
		assert.Contains(t, out, "normal.enter_insert")
		assert.Contains(t, out, "command.submit_enter")
	})

	t.Run("one mode", func(t *testing.T) {
		out, _, err := execute(t, "bindings", "--mode", "visual")
		require.NoError(t, err)
		assert.Contains(t, out, "visual.exit_escape")
		assert.NotContains(t, out, "normal.enter_insert")
	})

	t.Run("extra keymap", func(t *testing.T) {
		path := writeFile(t, "keys.yaml", "name: user\nbindings:\n  - id: normal.save\n    mode: normal\n    keys: \"Z Z\"\n    action: core.noop\n")
		out, _, err := execute(t, "bindings", "-m", "normal", "-k", path)
		require.NoError(t, err)
		assert.Contains(t, out, "normal.save")
		assert.Contains(t, out, "Z Z")
	})
}

func TestKeyStepDecode(t *testing.T) {
	var s Script
	require.NoError(t, yaml.Unmarshal([]byte(`
keys:
  - i
  - text: "ab"
  - key: r
    mods: [ctrl]
`), &s))
	require.Len(t, s.Keys, 3)
	assert.Equal(t, KeyStep{Key: "i"}, s.Keys[0])

	strokes, err := s.Keys[1].Strokes()
	require.NoError(t, err)
	require.Len(t, strokes, 2)
	assert.Equal(t, "b", strokes[1].InputText())

	strokes, err = s.Keys[2].Strokes()
	require.NoError(t, err)
	require.Len(t, strokes, 1)
	assert.True(t, strokes[0].Has(key.ModCtrl))

	_, err = KeyStep{}.Strokes()
	assert.Error(t, err)
}

func decodeReport(t *testing.T, out string) Report {
	t.Helper()
	var r Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	return r
}

func TestReplayCommand(t *testing.T) {
	t.Run("insert then write", func(t *testing.T) {
		path := writeFile(t, "script.yaml", `
text: ""
keys:
  - i
  - text: "hi"
  - Esc
  - ":"
  - text: "w out.txt"
  - Enter
`)
		out, _, err := execute(t, "replay", path)
		require.NoError(t, err)
		r := decodeReport(t, out)
		assert.Equal(t, "normal", r.Mode)
		assert.Equal(t, "hi", r.Text)
		assert.Len(t, r.Steps, 15)

		var topics []string
		for _, ev := range r.Events {
			topics = append(topics, ev.Topic)
		}
		assert.Contains(t, topics, "command.write")
		assert.Contains(t, topics, "command.submit")
		assert.Contains(t, r.Events, EventReport{Topic: "mode.switch", Detail: "normal -> insert"})
	})

	t.Run("visual yank", func(t *testing.T) {
		path := writeFile(t, "script.yaml", "text: alpha\nkeys: [v, l, y]\n")
		out, _, err := execute(t, "replay", "--quiet", path)
		require.NoError(t, err)
		r := decodeReport(t, out)
		assert.Empty(t, r.Steps)
		assert.Contains(t, r.Events, EventReport{Topic: "visual.yank", Detail: `"="a"`})
	})

	t.Run("forced timeouts", func(t *testing.T) {
		path := writeFile(t, "script.yaml", "text: \"a\\nb\"\ntimeouts: true\nkeys: [j, g]\n")
		out, _, err := execute(t, "replay", path)
		require.NoError(t, err)
		r := decodeReport(t, out)
		assert.Equal(t, [2]int{1, 0}, r.Cursor)
		assert.Equal(t, "pending", r.Steps[1].Status)
	})

	t.Run("initial mode", func(t *testing.T) {
		path := writeFile(t, "script.yaml", "mode: insert\nkeys:\n  - text: ok\n")
		out, _, err := execute(t, "replay", path)
		require.NoError(t, err)
		r := decodeReport(t, out)
		assert.Equal(t, "insert", r.Mode)
		assert.Equal(t, "ok", r.Text)
	})

	t.Run("missing script", func(t *testing.T) {
		_, _, err := execute(t, "replay", filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad key", func(t *testing.T) {
		path := writeFile(t, "script.yaml", "keys:\n  - \"<C-\"\n")
		_, _, err := execute(t, "replay", path)
		assert.Error(t, err)
	})
}

func TestConfigFlags(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		cfgPath := writeFile(t, "engine.toml", "[keymap]\nexclude_bindings = [\"normal.enter_insert\"]\n")
		out, _, err := execute(t, "--config", cfgPath, "bindings", "-m", "normal")
		require.NoError(t, err)
		assert.NotContains(t, out, "normal.enter_insert")
		assert.Contains(t, out, "normal.enter_visual")
	})

	t.Run("json logs", func(t *testing.T) {
		_, errOut, err := execute(t, "--log-level", "debug", "--log-json", "bindings")
		require.NoError(t, err)
		assert.Contains(t, errOut, `"msg":"session started"`)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, _, err := execute(t, "--log-level", "loud", "version")
		assert.Error(t, err)
	})

	t.Run("log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "engine.log")
		t.Setenv("VIM_ENGINE_LOG_FILE", logPath)
		_, errOut, err := execute(t, "--log-level", "debug", "bindings")
		require.NoError(t, err)
		assert.Empty(t, errOut)
		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "session started")
	})
}
