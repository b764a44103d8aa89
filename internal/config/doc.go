// Package config loads engine settings from TOML or YAML files and the
// environment.
//
// # Sources
//
// Settings are resolved in three steps, each overriding the last:
//
//  1. Default() values
//  2. A file read by Load (".toml", ".yaml" or ".yml")
//  3. VIM_ENGINE_* environment variables applied by ApplyEnv
//
// Example file:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[keymap]
//	files = ["~/.config/vim-engine/keys.yaml"]
//	default_timeout_ms = 800
//	exclude_bindings = ["normal.redo"]
//
//	[modes]
//	pending_timeout_ms = 1000
//	initial = "normal"
//
// # Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//	    return err
//	}
//	session, err := input.NewSession(cfg.SessionConfig())
package config
