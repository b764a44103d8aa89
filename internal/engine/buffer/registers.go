package buffer

import (
	"sort"
)

// Well-known register names.
const (
	UnnamedRegister   = `"`
	ClipboardRegister = "+"
	SelectionRegister = "*"
)

// RegisterType says how register text was captured.
type RegisterType string

// Register types.
const (
	Charwise  RegisterType = "charwise"
	Linewise  RegisterType = "linewise"
	Blockwise RegisterType = "blockwise"
)

// RegisterValue is the content of one register.
type RegisterValue struct {
	Text string
	Type RegisterType
}

// ClipboardProvider reads and writes the system clipboard.
type ClipboardProvider interface {
	Get() (string, error)
	Set(text string) error
}

// RegisterBank stores named registers.
type RegisterBank struct {
	values    map[string]RegisterValue
	clipboard ClipboardProvider
}

// NewRegisterBank creates a bank holding an empty unnamed register.
func NewRegisterBank() *RegisterBank {
	return &RegisterBank{
		values: map[string]RegisterValue{
			UnnamedRegister: {Type: Charwise},
		},
	}
}

// SetClipboard backs the "+" and "*" registers with p. nil detaches.
func (r *RegisterBank) SetClipboard(p ClipboardProvider) {
	r.clipboard = p
}

func (r *RegisterBank) isClipboard(name string) bool {
	return r.clipboard != nil && (name == ClipboardRegister || name == SelectionRegister)
}

// Get returns the register, or an empty charwise value for unknown names.
// Clipboard registers read the system clipboard and fall back to the
// stored value when that fails.
func (r *RegisterBank) Get(name string) RegisterValue {
	if name == "" {
		name = UnnamedRegister
	}
	stored, ok := r.values[name]
	if !ok {
		stored = RegisterValue{Type: Charwise}
	}
	if r.isClipboard(name) {
		if text, err := r.clipboard.Get(); err == nil {
			if text != stored.Text {
				return RegisterValue{Text: text, Type: Charwise}
			}
		}
	}
	return stored
}

// Set stores v in name and mirrors it into the unnamed register. An empty
// name means the unnamed register. A clipboard register is also written to
// the system clipboard; that error is returned after both registers are
// updated.
func (r *RegisterBank) Set(name string, v RegisterValue) error {
	if name == "" {
		name = UnnamedRegister
	}
	if v.Type == "" {
		v.Type = Charwise
	}
	r.values[name] = v
	if name != UnnamedRegister {
		r.values[UnnamedRegister] = v
	}
	if r.isClipboard(name) {
		return r.clipboard.Set(v.Text)
	}
	return nil
}

// YankTo stores text with the given type.
func (r *RegisterBank) YankTo(name, text string, typ RegisterType) error {
	return r.Set(name, RegisterValue{Text: text, Type: typ})
}

// Append adds text to the end of a register, keeping its type.
func (r *RegisterBank) Append(name, text string) error {
	existing := r.Get(name)
	return r.Set(name, RegisterValue{Text: existing.Text + text, Type: existing.Type})
}

// Names returns every stored register name, sorted.
func (r *RegisterBank) Names() []string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the stored registers.
func (r *RegisterBank) Snapshot() map[string]RegisterValue {
	out := make(map[string]RegisterValue, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Load merges data into the bank without mirroring or touching the
// clipboard.
func (r *RegisterBank) Load(data map[string]RegisterValue) {
	for k, v := range data {
		if v.Type == "" {
			v.Type = Charwise
		}
		r.values[k] = v
	}
}
