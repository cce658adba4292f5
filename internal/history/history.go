// Package history provides a linear undo/redo log of element snapshots.
//
// A snapshot is recorded only when a discrete user action completes
// (element created, drag finished, resize finished, delete, clear) —
// never on intermediate pointer movement, so one gesture produces exactly
// one entry.
package history

import "robomap/internal/mapdoc"

// Log holds an ordered sequence of snapshots and a cursor. The cursor is
// always a valid index into the sequence; undo and redo only move the
// cursor, while committing truncates everything after it before
// appending.
type Log struct {
	snapshots []mapdoc.Elements
	cursor    int
}

// New creates a log seeded with the given initial state.
func New(initial mapdoc.Elements) *Log {
	return &Log{snapshots: []mapdoc.Elements{initial.Clone()}}
}

// Commit records a new snapshot, dropping any redo tail.
func (l *Log) Commit(els mapdoc.Elements) {
	l.snapshots = append(l.snapshots[:l.cursor+1], els.Clone())
	l.cursor = len(l.snapshots) - 1
}

// Undo moves the cursor back one snapshot and returns it. At the oldest
// snapshot it is a no-op returning the current state.
func (l *Log) Undo() mapdoc.Elements {
	if l.cursor > 0 {
		l.cursor--
	}
	return l.snapshots[l.cursor].Clone()
}

// Redo moves the cursor forward one snapshot and returns it. At the
// newest snapshot it is a no-op returning the current state.
func (l *Log) Redo() mapdoc.Elements {
	if l.cursor < len(l.snapshots)-1 {
		l.cursor++
	}
	return l.snapshots[l.cursor].Clone()
}

// Current returns the snapshot at the cursor.
func (l *Log) Current() mapdoc.Elements {
	return l.snapshots[l.cursor].Clone()
}

// CanUndo reports whether an older snapshot exists.
func (l *Log) CanUndo() bool {
	return l.cursor > 0
}

// CanRedo reports whether a newer snapshot exists.
func (l *Log) CanRedo() bool {
	return l.cursor < len(l.snapshots)-1
}

// Len returns the number of recorded snapshots.
func (l *Log) Len() int {
	return len(l.snapshots)
}
