package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a keymap file encoding.
type Format string

// Supported keymap file formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat indicates a file extension the loader cannot decode.
var ErrUnsupportedFormat = errors.New("keymap: unsupported keymap format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// File is the decoded form of a keymap file.
type File struct {
	Name string `yaml:"name" toml:"name" json:"name"`

	// Mode is the default mode for bindings that do not name one.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty"`

	Bindings []BindingSpec `yaml:"bindings" toml:"bindings" json:"bindings"`
}

// BindingSpec is one binding entry of a keymap file.
type BindingSpec struct {
	ID          string   `yaml:"id" toml:"id" json:"id"`
	Mode        string   `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty"`
	Keys        string   `yaml:"keys" toml:"keys" json:"keys"`
	Action      string   `yaml:"action" toml:"action" json:"action"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	When        []string `yaml:"when,omitempty" toml:"when,omitempty" json:"when,omitempty"`
	Priority    int      `yaml:"priority,omitempty" toml:"priority,omitempty" json:"priority,omitempty"`
	TimeoutMS   int      `yaml:"timeout_ms,omitempty" toml:"timeout_ms,omitempty" json:"timeout_ms,omitempty"`
	Tags        []string `yaml:"tags,omitempty" toml:"tags,omitempty" json:"tags,omitempty"`
}

// Decode parses keymap data in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s keymap: %w", format, err)
	}
	return &f, nil
}

// ToBindings converts the entries to bindings tagged with source.
func (f *File) ToBindings(source string) ([]Binding, error) {
	out := make([]Binding, 0, len(f.Bindings))
	for i, spec := range f.Bindings {
		mode := spec.Mode
		if mode == "" {
			mode = f.Mode
		}
		id := spec.ID
		if id == "" {
			id = fmt.Sprintf("%s.%d", f.Name, i)
		}

		b, err := NewBinding(id, mode, spec.Keys, spec.Action)
		if err != nil {
			return nil, err
		}
		b = b.WithWhen(spec.When...).
			WithDescription(spec.Description).
			WithPriority(spec.Priority).
			WithTags(spec.Tags...).
			WithSource(source)
		if spec.TimeoutMS < 0 {
			return nil, fmt.Errorf("binding %q: %w", id, ErrInvalidTimeout)
		}
		if spec.TimeoutMS > 0 {
			b = b.WithTimeout(time.Duration(spec.TimeoutMS) * time.Millisecond)
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile reads and decodes one keymap file.
func (l *Loader) LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	return Decode(data, format)
}

// Files lists the keymap files in the search paths in lexical order per
// directory.
func (l *Loader) Files() []string {
	var out []string
	for _, dir := range l.searchPaths {
		var matches []string
		for _, pattern := range []string{"*.yaml", "*.yml", "*.toml", "*.json"} {
			m, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out
}

// Apply loads path into registry, replacing whatever the same file
// registered before. Every binding is checked before the registry changes:
// a bad entry or unknown action leaves the previous bindings in place.
// The absolute path is the Source of the registered bindings, so a file
// named relatively and later reloaded by the watcher maps to one source.
// Returns the number of bindings registered.
func (l *Loader) Apply(registry *Registry, path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	f, err := l.LoadFile(abs)
	if err != nil {
		return 0, err
	}
	bindings, err := f.ToBindings(abs)
	if err != nil {
		return 0, fmt.Errorf("keymap %q: %w", path, err)
	}
	for _, b := range bindings {
		if _, ok := registry.Action(b.ActionID); !ok {
			return 0, fmt.Errorf("keymap %q: %w: binding %q references %q",
				path, ErrUnknownAction, b.ID, b.ActionID)
		}
	}

	registry.UnregisterSource(abs)
	for _, b := range bindings {
		if err := registry.RegisterBinding(b, true); err != nil {
			return 0, fmt.Errorf("keymap %q: %w", path, err)
		}
	}
	return len(bindings), nil
}

// LoadAndRegister applies every file in the search paths and returns the
// files applied.
func (l *Loader) LoadAndRegister(registry *Registry) ([]string, error) {
	files := l.Files()
	for _, path := range files {
		if _, err := l.Apply(registry, path); err != nil {
			return nil, err
		}
	}
	return files, nil
}
