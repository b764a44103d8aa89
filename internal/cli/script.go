package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// Script is a replay script.
//
//	text: "alpha\nbeta"
//	mode: normal
//	timeouts: true
//	keys:
//	  - i
//	  - text: "hello"
//	  - key: r
//	    mods: [ctrl]
type Script struct {
	Text     string    `yaml:"text"`
	Mode     string    `yaml:"mode"`
	Timeouts bool      `yaml:"timeouts"`
	Keymaps  []string  `yaml:"keymaps"`
	Keys     []KeyStep `yaml:"keys"`
}

// KeyStep is one entry of Script.Keys: a key spec string, a text run, or a
// key with explicit modifiers and text.
type KeyStep struct {
	Key  string   `yaml:"key"`
	Text string   `yaml:"text"`
	Mods []string `yaml:"mods"`
}

// UnmarshalYAML accepts both a bare string and a mapping.
func (k *KeyStep) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		k.Key = node.Value
		return nil
	}
	type plain KeyStep
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*k = KeyStep(p)
	return nil
}

// Strokes expands the step. A step with only text yields one stroke per
// rune.
func (k KeyStep) Strokes() ([]key.Stroke, error) {
	if k.Key == "" {
		if k.Text == "" {
			return nil, fmt.Errorf("empty key step")
		}
		var out []key.Stroke
		for _, r := range k.Text {
			out = append(out, key.TextStroke(r))
		}
		return out, nil
	}
	st, err := key.Parse(k.Key)
	if err != nil {
		return nil, err
	}
	if len(k.Mods) > 0 {
		st.Modifiers = key.NormalizeModifiers(append(st.Modifiers, k.Mods...))
	}
	if k.Text != "" {
		st.Text = k.Text
	}
	return []key.Stroke{st}, nil
}

// LoadScript reads a YAML replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return &s, nil
}
