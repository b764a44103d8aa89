// Package input composes the modal engine into a Session a front end can
// drive: a keymap registry seeded with the default bindings, a resolver, a
// buffer, an event bus, the mode manager with the four built-in modes, and
// the Ex command dispatcher.
//
// # Usage
//
//	s, err := input.NewSession(input.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	s.Bus().MustSubscribe("command.write", func(ev event.Event) {
//		// save ev.Payload.(excmd.WritePayload).Snapshot.Text
//	})
//
//	res, err := s.HandleKey(key.MustParse("i"))
//	...
//	// call periodically so ambiguous prefixes resolve
//	s.ProcessTimeouts()
//
//	m := s.Mirror() // text, cursor, selection and mode to render
//
// Hooks run before the active mode sees a key and may consume it. Metrics
// count keys, timeouts and mode switches.
//
// A Session is not safe for concurrent use, with one exception: a keymap
// watcher started by WatchKeymaps reloads bindings from its own goroutine,
// and the registry guards itself.
package input
