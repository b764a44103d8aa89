// Package history provides the linear undo/redo timeline used by buffers.
//
// A Timeline is a list of entries plus an index pointing just past the last
// applied entry:
//
//	push A, push B        [A B]|        undo -> B
//	                      [A]|B         redo -> B
//	undo, push C          [A C]|        B is discarded
//
// There is no branching history: pushing after an undo drops the redo tail.
// The timeline never applies entries itself; callers restore their own state
// from what Undo and Redo return.
package history
