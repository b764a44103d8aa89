package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel  = "VIM_ENGINE_LOG_LEVEL"
	EnvLogJSON   = "VIM_ENGINE_LOG_JSON"
	EnvLogFile   = "VIM_ENGINE_LOG_FILE"
	EnvTimeoutMS = "VIM_ENGINE_TIMEOUT_MS"
)

// ApplyEnv overrides settings from VIM_ENGINE_* variables. Empty values
// count as set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogJSON); ok {
		on, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogJSON, err)
		}
		if on {
			c.Logging.Format = FormatJSON
		} else {
			c.Logging.Format = FormatText
		}
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv(EnvTimeoutMS); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeoutMS, err)
		}
		c.Modes.PendingTimeoutMS = ms
		c.Keymap.DefaultTimeoutMS = ms
	}
	return nil
}

// parseBool also accepts yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "", "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
