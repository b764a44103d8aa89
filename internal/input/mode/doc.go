// Package mode implements the modal state machine: the Mode interface, the
// shared Context every mode works against, the Normal, Insert, Visual and
// Command modes, and the Manager that owns the active mode and its pending
// sequence timers.
//
// Every mode feeds keys through the keymap resolver first. A match runs the
// bound action, a strict prefix waits for more keys (arming a timer), and a
// miss falls through to the mode's own handling: the operator pipeline in
// Normal and Visual, text insertion in Insert, line editing in Command.
//
// # Timers
//
// The Manager never sleeps. A result with a non-zero Timeout arms a timer
// for the mode with a fresh generation number; any later key, switch or
// timeout for that mode replaces or cancels it. Hosts call ProcessTimeouts
// periodically (or ForceTimeout in tests), and a timer only fires if its
// generation is still current.
//
// The Manager and modes are not safe for concurrent use. Drive them from a
// single goroutine.
package mode
