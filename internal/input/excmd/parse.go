package excmd

import "strings"

// Command is one parsed command line.
type Command struct {
	// Name is the command word without the "!" suffix.
	Name string

	// Force is set when the command word ends with "!".
	Force bool

	// Args are the whitespace-separated words after the command word.
	Args []string

	// Raw is the trimmed input line.
	Raw string
}

// Word returns the command word as typed, including any "!".
func (c Command) Word() string {
	if c.Force {
		return c.Name + "!"
	}
	return c.Name
}

// Parse splits text into a Command. A leading ":" is tolerated. It returns
// false for blank input.
func Parse(text string) (Command, bool) {
	raw := strings.TrimSpace(text)
	fields := strings.Fields(strings.TrimPrefix(raw, ":"))
	if len(fields) == 0 {
		return Command{}, false
	}

	word := fields[0]
	cmd := Command{Args: fields[1:], Raw: raw}
	if strings.HasSuffix(word, "!") && len(word) > 1 {
		cmd.Force = true
		word = strings.TrimSuffix(word, "!")
	}
	cmd.Name = word
	return cmd, true
}
