// Package cli implements the vimengine command line: a headless host that
// replays key scripts through a session and inspects the keymap.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vedant-Asati03/vim-engine/internal/config"
	"github.com/Vedant-Asati03/vim-engine/internal/input"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	ConfigPath string
	LogLevel   string
	LogJSON    bool
}

// app is the state shared by subcommands after flags are parsed.
type app struct {
	opts    globalOptions
	config  *config.Config
	logger  *slog.Logger
	logFile *os.File
}

// NewRootCommand creates the root command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "vimengine",
		Short:         "vimengine - a headless vim modal editing engine",
		Long:          "vimengine drives the modal editing engine without a UI: replay key scripts, list keymaps.",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.opts.ConfigPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	flags.StringVar(&a.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.opts.LogJSON, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(newReplayCommand(a))
	cmd.AddCommand(newBindingsCommand(a))
	cmd.AddCommand(newVersionCommand(info))

	return cmd
}

// setup resolves the configuration: defaults, file, environment, flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.opts.LogLevel
	}
	if flags.Changed("log-json") {
		cfg.Logging.Format = config.FormatText
		if a.opts.LogJSON {
			cfg.Logging.Format = config.FormatJSON
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.config = cfg

	var w io.Writer = cmd.ErrOrStderr()
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	a.logger, err = telemetry.NewLogger(w, cfg.Logging.Level, cfg.Logging.Format == config.FormatJSON)
	return err
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// newSession builds a session from the resolved configuration.
func (a *app) newSession(text string, extraKeymaps []string) (*input.Session, error) {
	sc := a.config.SessionConfig()
	sc.Text = text
	sc.KeymapFiles = append(sc.KeymapFiles, extraKeymaps...)
	sc.WatchKeymaps = false
	sc.Observer = telemetry.NewSlog(a.logger)
	s, err := input.NewSession(sc)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("session started", "session", s.SessionID(), "summary", s.Describe())
	return s, nil
}
