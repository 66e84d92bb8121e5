// Package history implements a linear undo/redo log of whole-state
// snapshots with a cursor.
//
// A regular commit discards any snapshots after the cursor and appends the
// new state. An overwrite commit replaces the snapshot at the cursor in
// place, which keeps high-frequency drag updates from flooding the log.
//
// History stores snapshots as given. Callers that mutate state must commit
// a fresh copy rather than a value they will keep modifying.
package history

// History is a snapshot log with a cursor. The zero value is not usable;
// create one with New.
type History[S any] struct {
	snapshots []S
	cursor    int
}

// New returns a history whose only snapshot is initial.
func New[S any](initial S) *History[S] {
	return &History[S]{snapshots: []S{initial}}
}

// Commit records state. With overwrite, the snapshot at the cursor is
// replaced and the length is unchanged. Otherwise the redo branch is
// dropped, state is appended and the cursor advances by one.
func (h *History[S]) Commit(state S, overwrite bool) {
	if overwrite {
		h.snapshots[h.cursor] = state
		return
	}
	h.snapshots = append(h.snapshots[:h.cursor+1], state)
	h.cursor++
}

// Undo moves the cursor back one snapshot. It is a no-op at the start and
// reports whether the cursor moved.
func (h *History[S]) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo moves the cursor forward one snapshot. It is a no-op at the end and
// reports whether the cursor moved.
func (h *History[S]) Redo() bool {
	if h.cursor >= len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

// Current returns the snapshot at the cursor.
func (h *History[S]) Current() S {
	return h.snapshots[h.cursor]
}

// Len returns the number of snapshots, including the redo branch.
func (h *History[S]) Len() int { return len(h.snapshots) }

// Cursor returns the index of the current snapshot.
func (h *History[S]) Cursor() int { return h.cursor }

// CanUndo reports whether Undo would move the cursor.
func (h *History[S]) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History[S]) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Reset discards every snapshot and starts over from initial.
func (h *History[S]) Reset(initial S) {
	h.snapshots = []S{initial}
	h.cursor = 0
}
