// Package event provides the synchronous in-process bus modes and actions
// publish intents on.
//
// Topics are dot-separated ("command.write", "visual.yank"). Subscriptions
// take a pattern:
//
//	command.write   exact topic
//	command.*       exactly one segment after "command."
//	command.**      "command" and anything below it
//	**              everything
//
// Emit calls every matching handler in subscription order before it
// returns. There is no queue, no goroutine and no delivery guarantee beyond
// that. A panicking handler is recovered, reported to the error handler as a
// *HandlerError wrapping ErrHandlerPanic, and delivery continues.
package event
