package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedant-Asati03/vim-engine/internal/clipboard"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, FormatText, cfg.Logging.Format)
	assert.Equal(t, mode.Normal, cfg.Modes.Initial)
	assert.Equal(t, time.Second, cfg.PendingTimeout())
	assert.Equal(t, 1000, cfg.Keymap.DefaultTimeoutMS)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

const tomlConfig = `
[logging]
level = "debug"
format = "json"

[keymap]
dirs = ["keymaps"]
files = ["keys.yaml"]
default_timeout_ms = 400
exclude_bindings = ["normal.redo"]

[modes]
pending_timeout_ms = 250
`

const yamlConfig = `
logging:
  level: warn
keymap:
  files: ["/abs/keys.toml"]
  watch: true
modes:
  initial: insert
buffer:
  undo_limit: 50
clipboard:
  system: true
`

func TestLoad(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "engine.toml", tomlConfig)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, FormatJSON, cfg.Logging.Format)
		assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "keymaps")}, cfg.Keymap.Dirs)
		assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "keys.yaml")}, cfg.Keymap.Files)
		assert.Equal(t, 400, cfg.Keymap.DefaultTimeoutMS)
		assert.Equal(t, []string{"normal.redo"}, cfg.Keymap.ExcludeBindings)
		assert.Equal(t, 250*time.Millisecond, cfg.PendingTimeout())
		assert.Equal(t, mode.Normal, cfg.Modes.Initial, "unset keys keep defaults")
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "engine.yml", yamlConfig))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, FormatText, cfg.Logging.Format)
		assert.Equal(t, []string{"/abs/keys.toml"}, cfg.Keymap.Files)
		assert.True(t, cfg.Keymap.Watch)
		assert.Equal(t, mode.Insert, cfg.Modes.Initial)
		assert.Equal(t, 50, cfg.Buffer.UndoLimit)
		assert.True(t, cfg.Clipboard.System)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine.ini", "x=1"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine.toml", "[logging\nlevel="))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Error(), "engine.toml")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"keymap timeout", func(c *Config) { c.Keymap.DefaultTimeoutMS = 0 }, "keymap.default_timeout_ms"},
		{"pending timeout", func(c *Config) { c.Modes.PendingTimeoutMS = -5 }, "modes.pending_timeout_ms"},
		{"initial mode", func(c *Config) { c.Modes.Initial = "replace" }, "modes.initial"},
		{"undo limit", func(c *Config) { c.Buffer.UndoLimit = -1 }, "buffer.undo_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogJSON, "yes")
	t.Setenv(EnvLogFile, "/tmp/engine.log")
	t.Setenv(EnvTimeoutMS, "300")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, FormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/tmp/engine.log", cfg.Logging.File)
	assert.Equal(t, 300, cfg.Modes.PendingTimeoutMS)
	assert.Equal(t, 300, cfg.Keymap.DefaultTimeoutMS)

	t.Setenv(EnvLogJSON, "off")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, FormatText, cfg.Logging.Format)

	t.Setenv(EnvTimeoutMS, "soon")
	assert.Error(t, cfg.ApplyEnv())

	t.Setenv(EnvTimeoutMS, "300")
	t.Setenv(EnvLogJSON, "maybe")
	assert.Error(t, cfg.ApplyEnv())
}

func TestSessionConfig(t *testing.T) {
	cfg := Default()
	cfg.Modes.Initial = mode.Insert
	cfg.Modes.PendingTimeoutMS = 600
	cfg.Keymap.DefaultTimeoutMS = 700
	cfg.Keymap.ExcludeActions = []string{"core.redo"}
	cfg.Buffer.UndoLimit = 10
	cfg.Keymap.Dirs = []string{"/etc/vim-engine"}

	sc := cfg.SessionConfig()
	assert.Equal(t, []string{"/etc/vim-engine"}, sc.KeymapDirs)
	assert.Equal(t, mode.Insert, sc.InitialMode)
	assert.Equal(t, 600*time.Millisecond, sc.PendingTimeout)
	assert.Equal(t, 700*time.Millisecond, sc.Keymap.DefaultTimeout)
	assert.Equal(t, []string{"core.redo"}, sc.Keymap.ExcludeActions)
	assert.Equal(t, 10, sc.UndoLimit)
	assert.IsType(t, &clipboard.Memory{}, sc.Clipboard)
	assert.NotNil(t, sc.Observer)
	assert.NotNil(t, sc.Clock)

	cfg.Clipboard.System = true
	assert.IsType(t, clipboard.System{}, cfg.SessionConfig().Clipboard)
}
