package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"robomap/internal/mapdoc"
	"robomap/pkg/geometry"
)

func snapshot(names ...string) mapdoc.Elements {
	els := mapdoc.Elements{}
	for _, n := range names {
		e := mapdoc.NewLine(geometry.Point2D{}, geometry.Point2D{X: 1}, "#000000")
		e.ID = n
		els = append(els, e)
	}
	return els
}

func ids(els mapdoc.Elements) []string {
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.ID
	}
	return out
}

func TestNewSeedsInitialSnapshot(t *testing.T) {
	l := New(snapshot("a"))

	assert.Equal(t, 1, l.Len())
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
	assert.Equal(t, []string{"a"}, ids(l.Current()))
}

func TestUndoRedoWalk(t *testing.T) {
	l := New(snapshot())
	l.Commit(snapshot("a"))
	l.Commit(snapshot("a", "b"))

	assert.Equal(t, []string{"a"}, ids(l.Undo()))
	assert.Equal(t, []string{"a", "b"}, ids(l.Redo()))
}

func TestUndoClampsAtOldest(t *testing.T) {
	l := New(snapshot("a"))
	l.Commit(snapshot("a", "b"))

	l.Undo()
	// Further undos are no-ops returning the oldest snapshot.
	assert.Equal(t, []string{"a"}, ids(l.Undo()))
	assert.Equal(t, []string{"a"}, ids(l.Undo()))
	assert.False(t, l.CanUndo())
	assert.True(t, l.CanRedo())
}

func TestRedoClampsAtNewest(t *testing.T) {
	l := New(snapshot())
	l.Commit(snapshot("a"))

	assert.Equal(t, []string{"a"}, ids(l.Redo()))
	assert.False(t, l.CanRedo())
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	l := New(snapshot())
	l.Commit(snapshot("a"))
	l.Commit(snapshot("a", "b"))
	l.Undo()

	l.Commit(snapshot("a", "c"))

	assert.Equal(t, 3, l.Len())
	assert.False(t, l.CanRedo())
	assert.Equal(t, []string{"a", "c"}, ids(l.Current()))
	// The truncated branch is unreachable.
	assert.Equal(t, []string{"a"}, ids(l.Undo()))
	assert.Equal(t, []string{"a", "c"}, ids(l.Redo()))
}

func TestUndoThenRedoRestoresExactSnapshot(t *testing.T) {
	before := snapshot("a", "b")
	l := New(snapshot("a"))
	l.Commit(before)

	l.Undo()
	restored := l.Redo()

	assert.Equal(t, before, restored)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	els := snapshot("a")
	l := New(els)

	// Mutating the caller's slice must not leak into the log.
	els[0].X = 999
	assert.Equal(t, 0.0, l.Current()[0].X)

	got := l.Current()
	got[0].X = 123
	assert.Equal(t, 0.0, l.Current()[0].X)
}
