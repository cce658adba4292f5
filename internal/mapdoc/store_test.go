package mapdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robomap/pkg/geometry"
)

func threeElements() Elements {
	a := NewLine(geometry.Point2D{}, geometry.Point2D{X: 10}, "#000000")
	a.ID = "a"
	b := NewRectangle(geometry.Point2D{X: 20, Y: 20}, geometry.Point2D{X: 40, Y: 40}, "#000000")
	b.ID = "b"
	c := NewCircle(geometry.Point2D{X: 60, Y: 60}, geometry.Point2D{X: 70, Y: 60}, "#000000")
	c.ID = "c"
	return Elements{a, b, c}
}

func TestSelectOnlyIsExclusive(t *testing.T) {
	els := threeElements().SelectOnly("a").SelectOnly("b")

	sel, ok := els.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", sel.ID)

	count := 0
	for _, e := range els {
		if e.Selected {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSelectOnlyEmptyDeselects(t *testing.T) {
	els := threeElements().SelectOnly("a").SelectOnly("")

	_, ok := els.Selected()
	assert.False(t, ok)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	els := threeElements()
	out := els.Update("missing", func(e Element) Element {
		e.X = 999
		return e
	})
	assert.Equal(t, els, out)
}

func TestOperationsArePure(t *testing.T) {
	els := threeElements()

	els.Add(NewLine(geometry.Point2D{}, geometry.Point2D{X: 1}, "#000000"))
	els.Remove("a")
	els.SelectOnly("b")
	els.Update("a", func(e Element) Element { e.X = 999; return e })

	assert.Equal(t, threeElements(), els)
}

func TestRemove(t *testing.T) {
	els := threeElements().Remove("b")

	assert.Len(t, els, 2)
	_, ok := els.ByID("b")
	assert.False(t, ok)
}
