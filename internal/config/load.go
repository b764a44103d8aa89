package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads path over Default(). An empty path returns the defaults.
// Keymap directory and file paths are made relative to the config file's directory and
// "~/" expands to the home directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := cfg.decode(path, data); err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	for i, d := range c.Keymap.Dirs {
		c.Keymap.Dirs[i] = expandPath(dir, d)
	}
	for i, f := range c.Keymap.Files {
		c.Keymap.Files[i] = expandPath(dir, f)
	}
	if c.Logging.File != "" {
		c.Logging.File = expandPath(dir, c.Logging.File)
	}
}

func expandPath(dir, p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
