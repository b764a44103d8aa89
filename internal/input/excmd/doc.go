// Package excmd parses and dispatches Ex command lines such as ":w",
// ":q!" and ":echo hello".
//
// Dispatch never touches the filesystem. Every command becomes an event on
// the bus, and the host decides what "write" or "edit" means. Unknown
// commands are an outcome (status command_error), not an error.
package excmd
