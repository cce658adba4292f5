package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robomap/internal/editor"
	"robomap/internal/mapdoc"
	"robomap/internal/selection"
	"robomap/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func kinds(cmds []Command) []CommandKind {
	out := make([]CommandKind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}

func TestFrameEmpty(t *testing.T) {
	assert.Empty(t, Frame(Input{Width: 100, Height: 100}))
}

func TestFrameGridLines(t *testing.T) {
	cmds := Frame(Input{
		Width:  40,
		Height: 20,
		Grid:   GridConfig{Enabled: true, Pitch: 20, Color: "#e0e0e0"},
	})

	// Verticals at 0, 20, 40 and horizontals at 0, 20.
	require.Len(t, cmds, 5)
	for _, c := range cmds {
		assert.Equal(t, CmdLine, c.Kind)
		assert.Equal(t, "#e0e0e0", c.Color)
	}
}

func TestFrameElementsAndSelectionHandles(t *testing.T) {
	line := mapdoc.NewLine(pt(10, 10), pt(50, 10), "#112233")
	rect := mapdoc.NewRectangle(pt(20, 20), pt(60, 50), "#445566")
	els := mapdoc.Elements{line, rect}.SelectOnly(rect.ID)

	cmds := Frame(Input{Elements: els})

	// Two element commands, then four corner handles for the selected
	// rectangle.
	require.Len(t, cmds, 6)
	assert.Equal(t, []CommandKind{CmdLine, CmdRect, CmdHandle, CmdHandle, CmdHandle, CmdHandle}, kinds(cmds))

	// The unselected line keeps its own color; the selection is
	// highlighted.
	assert.Equal(t, "#112233", cmds[0].Color)
	assert.Equal(t, HighlightColor, cmds[1].Color)
	assert.Equal(t, HandleIdleColor, cmds[2].Color)
}

func TestFrameCircleHandleCount(t *testing.T) {
	circle := mapdoc.NewCircle(pt(50, 50), pt(70, 50), "#000000")
	els := mapdoc.Elements{circle}.SelectOnly(circle.ID)

	cmds := Frame(Input{Elements: els})

	// Circle outline plus center and four cardinal handles.
	require.Len(t, cmds, 6)
	assert.Equal(t, CmdCircle, cmds[0].Kind)
}

func TestFrameDraftGhost(t *testing.T) {
	cmds := Frame(Input{
		Draft: &Draft{Anchor: pt(10, 10), Cursor: pt(40, 30), Tool: editor.ToolRectangle},
	})

	require.Len(t, cmds, 1)
	assert.Equal(t, CmdRect, cmds[0].Kind)
	assert.Equal(t, GhostColor, cmds[0].Color)
	assert.True(t, cmds[0].Dashed)
	assert.Equal(t, geometry.Rect{X: 10, Y: 10, Width: 30, Height: 20}, cmds[0].Rect)
}

func TestFrameSelectionOutline(t *testing.T) {
	region := selection.Region{
		Kind: selection.ToolQuad,
		Corners: [4]geometry.Point2D{
			pt(10, 10), pt(90, 10), pt(90, 90), pt(10, 90),
		},
	}

	cmds := Frame(Input{
		Selection:       &region,
		SelectionHandle: selection.HandleBottomRight,
	})

	require.Len(t, cmds, 5)
	assert.Equal(t, CmdPolygon, cmds[0].Kind)
	assert.True(t, cmds[0].Dashed)
	assert.Equal(t, SelectionColor, cmds[0].Color)

	// The dragged corner paints in the active color, the rest idle.
	var active int
	for _, c := range cmds[1:] {
		require.Equal(t, CmdHandle, c.Kind)
		if c.Active {
			active++
			assert.Equal(t, HandleActiveColor, c.Color)
			assert.Equal(t, pt(90, 90), c.Center)
		} else {
			assert.Equal(t, HandleIdleColor, c.Color)
		}
	}
	assert.Equal(t, 1, active)
}

func TestFrameCircleSelectionRadiusHandle(t *testing.T) {
	region := selection.Region{Kind: selection.ToolCircle, Center: pt(50, 50), Radius: 20}

	cmds := Frame(Input{Selection: &region})

	require.Len(t, cmds, 2)
	assert.Equal(t, CmdPolygon, cmds[0].Kind)
	assert.Len(t, cmds[0].Points, selection.CircleSegments)
	assert.Equal(t, pt(70, 50), cmds[1].Center)
}
