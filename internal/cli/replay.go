package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/input"
	"github.com/Vedant-Asati03/vim-engine/internal/input/action"
	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

// ReplayOptions holds options for the replay command.
type ReplayOptions struct {
	Keymaps []string
	Quiet   bool
}

// Report is the YAML document printed after a replay.
type Report struct {
	Mode       string            `yaml:"mode"`
	Text       string            `yaml:"text"`
	Cursor     [2]int            `yaml:"cursor,flow"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Steps      []StepReport      `yaml:"steps,omitempty"`
	Events     []EventReport     `yaml:"events,omitempty"`
}

// StepReport records the result of one stroke.
type StepReport struct {
	Key     string `yaml:"key"`
	Status  string `yaml:"status,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// EventReport records one bus event.
type EventReport struct {
	Topic  string `yaml:"topic"`
	Detail string `yaml:"detail,omitempty"`
}

func newReplayCommand(a *app) *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay SCRIPT_FILE",
		Short: "Feed a key script through a session",
		Long:  "Replay the keys of a YAML script and print the final buffer, mode and emitted intents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Keymaps, "keymap", "k", nil, "Extra keymap file(s) to load")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Omit per-key steps from the report")

	return cmd
}

func runReplay(cmd *cobra.Command, a *app, path string, opts *ReplayOptions) error {
	script, err := LoadScript(path)
	if err != nil {
		return err
	}
	report, err := a.replay(script, opts)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func (a *app) replay(script *Script, opts *ReplayOptions) (*Report, error) {
	keymaps := append(append([]string(nil), script.Keymaps...), opts.Keymaps...)
	s, err := a.newSession(script.Text, keymaps)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if script.Mode != "" {
		if err := s.Manager().Switch(script.Mode); err != nil {
			return nil, err
		}
	}
	rec := event.Record(s.Bus(), "**")

	report := &Report{}
	for i, step := range script.Keys {
		strokes, err := step.Strokes()
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i+1, err)
		}
		for _, st := range strokes {
			res, err := s.HandleKey(st)
			if err != nil {
				return nil, fmt.Errorf("key %d (%s): %w", i+1, st, err)
			}
			if !opts.Quiet {
				report.Steps = append(report.Steps, StepReport{Key: st.Token(), Status: res.Status, Message: res.Message})
			}
			if script.Timeouts {
				for _, name := range sortedKeys(s.ForceTimeout("")) {
					a.logger.Debug("forced timeout", "mode", name)
				}
			}
		}
	}

	m := s.Mirror()
	report.Mode = s.Mode()
	report.Text = m.Text
	report.Cursor = [2]int{m.Cursor.Row, m.Cursor.Col}
	report.Attributes = m.Attributes
	delete(report.Attributes, input.AttrSession)
	for _, ev := range rec.Events() {
		report.Events = append(report.Events, EventReport{Topic: ev.Topic, Detail: describePayload(ev.Payload)})
	}
	return report, nil
}

// describePayload renders the payloads a host acts on.
func describePayload(p any) string {
	switch v := p.(type) {
	case mode.SwitchPayload:
		return v.From + " -> " + v.To
	case mode.CommandLine:
		return v.Text
	case excmd.SubmitPayload:
		return v.Text
	case excmd.EchoPayload:
		return v.Message
	case excmd.ErrorPayload:
		return v.Text
	case excmd.QuitPayload:
		return fmt.Sprintf("force=%t", v.Force)
	case excmd.WritePayload:
		return fmt.Sprintf("force=%t args=%v", v.Force, v.Args)
	case action.YankPayload:
		return fmt.Sprintf("%s=%q", v.Register, v.Text)
	case action.DeletePayload:
		return fmt.Sprintf("%s %s=%q", v.Label, v.Register, v.Text)
	}
	return ""
}

func sortedKeys(m map[string]mode.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
