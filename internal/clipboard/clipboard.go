// Package clipboard connects the "+" and "*" registers to the system
// clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available, for
// example on a headless Linux host without xclip, xsel or wl-clipboard.
var ErrUnsupported = errors.New("clipboard: system clipboard unsupported")

// System reads and writes the OS clipboard.
type System struct{}

// NewSystem returns the system provider.
func NewSystem() System {
	return System{}
}

// Available reports whether the platform has a usable clipboard.
func Available() bool {
	return !clipboard.Unsupported
}

// Get returns the clipboard text.
func (System) Get() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// Set replaces the clipboard text.
func (System) Set(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for hosts without a system clipboard
// and for tests.
type Memory struct {
	text string
}

// Get returns the stored text.
func (m *Memory) Get() (string, error) {
	return m.text, nil
}

// Set stores text.
func (m *Memory) Set(text string) error {
	m.text = text
	return nil
}
