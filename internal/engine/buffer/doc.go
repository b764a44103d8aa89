// Package buffer implements the in-memory text model the engine edits.
//
// A Buffer composes four parts:
//
//   - Document: an immutable list of lines with a version that increases by
//     one for every replacement. Edits build a new Document; lines are never
//     mutated in place.
//   - State: cursor, optional selection, active register name and the tick
//     of the last change.
//   - RegisterBank: named text slots. The unnamed register `"` mirrors every
//     write to another register.
//   - an undo timeline of full before/after text pairs.
//
// # Positions
//
// Positions are (row, col) pairs, both 0-indexed. Columns count runes, and a
// column equal to the line length addresses the end of the line. Every
// mutation validates its positions first and fails with a *ValidationError
// before anything changes.
//
// # Mutation
//
// ReplaceRange is the single mutation primitive; InsertText and DeleteRange
// wrap it:
//
//	buf := buffer.New(buffer.WithText("alpha"))
//	_ = buf.ReplaceRange(buffer.Pos(0, 0), buffer.Pos(0, 1), "A", "capitalize")
//	buf.Text()            // "Alpha"
//	buf.Document().Version() // 1
//	_ = buf.Undo()
//
// A Buffer is not safe for concurrent use.
package buffer
