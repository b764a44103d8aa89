// Package telemetry defines the observer the engine reports spans and events
// to. Nothing in the engine configures process-wide logging: a session is
// handed an Observer at construction and Nop is used when none is given.
//
// NewSlog adapts a *slog.Logger, and Recorder keeps everything in memory for
// tests.
package telemetry
