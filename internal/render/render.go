// Package render turns editor state into a flat list of draw commands.
// It holds no state of its own and never mutates its inputs; painting the
// commands onto a surface is the canvas widget's concern.
package render

import (
	"robomap/internal/editor"
	"robomap/internal/mapdoc"
	"robomap/internal/selection"
	"robomap/pkg/geometry"
)

// CommandKind discriminates draw commands.
type CommandKind int

const (
	CmdLine CommandKind = iota
	CmdRect
	CmdCircle
	CmdPolygon
	CmdHandle
)

// Command is one draw operation. Fields are populated per Kind: A/B for
// lines, Rect for rectangles, Center/Radius for circles and handles,
// Points for polygons.
type Command struct {
	Kind   CommandKind
	A, B   geometry.Point2D
	Rect   geometry.Rect
	Center geometry.Point2D
	Radius float64
	Points []geometry.Point2D
	Color  string
	Dashed bool
	Active bool
}

// GridConfig controls the background line lattice.
type GridConfig struct {
	Enabled bool
	Pitch   float64
	Color   string
}

// Palette constants.
const (
	HighlightColor    = "#2d7ff9"
	HandleIdleColor   = "#ffffff"
	HandleActiveColor = "#ffb020"
	SelectionColor    = "#00c2a8"
	GhostColor        = "#9aa0a6"
)

// HandleRadius is the drawn size of a handle marker.
const HandleRadius = 4

// Input is the full render state for one frame.
type Input struct {
	Width, Height float64
	Grid          GridConfig

	// Vector mode
	Elements mapdoc.Elements
	Draft    *Draft

	// Raster mode
	Selection       *selection.Region
	SelectionHandle selection.HandleID
}

// Draft is an in-progress draw gesture, rendered as a ghost element.
type Draft struct {
	Anchor, Cursor geometry.Point2D
	Tool           editor.Tool
}

// Frame produces the draw commands for the given state, in paint order:
// grid, elements, selected-element handles, draft ghost, then the dashed
// selection outline and its handles.
func Frame(in Input) []Command {
	var cmds []Command

	if in.Grid.Enabled && in.Grid.Pitch > 0 {
		cmds = append(cmds, gridCommands(in)...)
	}

	for _, e := range in.Elements {
		cmds = append(cmds, elementCommand(e))
	}
	if sel, ok := in.Elements.Selected(); ok {
		for _, h := range editor.HandlesFor(sel) {
			cmds = append(cmds, Command{
				Kind:   CmdHandle,
				Center: h.Pos,
				Radius: HandleRadius,
				Color:  HandleIdleColor,
			})
		}
	}

	if in.Draft != nil {
		cmds = append(cmds, draftCommand(*in.Draft))
	}

	if in.Selection != nil {
		cmds = append(cmds, selectionCommands(*in.Selection, in.SelectionHandle)...)
	}

	return cmds
}

func gridCommands(in Input) []Command {
	var cmds []Command
	for x := 0.0; x <= in.Width; x += in.Grid.Pitch {
		cmds = append(cmds, Command{
			Kind:  CmdLine,
			A:     geometry.Point2D{X: x, Y: 0},
			B:     geometry.Point2D{X: x, Y: in.Height},
			Color: in.Grid.Color,
		})
	}
	for y := 0.0; y <= in.Height; y += in.Grid.Pitch {
		cmds = append(cmds, Command{
			Kind:  CmdLine,
			A:     geometry.Point2D{X: 0, Y: y},
			B:     geometry.Point2D{X: in.Width, Y: y},
			Color: in.Grid.Color,
		})
	}
	return cmds
}

func elementCommand(e mapdoc.Element) Command {
	color := e.Color
	if e.Selected {
		color = HighlightColor
	}

	switch e.Kind {
	case mapdoc.KindLine:
		return Command{
			Kind:  CmdLine,
			A:     geometry.Point2D{X: e.X, Y: e.Y},
			B:     geometry.Point2D{X: e.X2, Y: e.Y2},
			Color: color,
		}
	case mapdoc.KindCircle:
		return Command{
			Kind:   CmdCircle,
			Center: e.Origin(),
			Radius: e.Radius,
			Color:  color,
		}
	default:
		return Command{Kind: CmdRect, Rect: e.Bounds(), Color: color}
	}
}

func draftCommand(d Draft) Command {
	switch d.Tool {
	case editor.ToolRectangle:
		return Command{
			Kind:   CmdRect,
			Rect:   geometry.BoundingBox([]geometry.Point2D{d.Anchor, d.Cursor}),
			Color:  GhostColor,
			Dashed: true,
		}
	case editor.ToolCircle:
		return Command{
			Kind:   CmdCircle,
			Center: d.Anchor,
			Radius: d.Anchor.Distance(d.Cursor),
			Color:  GhostColor,
			Dashed: true,
		}
	default:
		return Command{
			Kind:   CmdLine,
			A:      d.Anchor,
			B:      d.Cursor,
			Color:  GhostColor,
			Dashed: true,
		}
	}
}

// selectionCommands draws the dashed region outline and its handles, with
// the actively dragged handle in a distinct fill color.
func selectionCommands(r selection.Region, active selection.HandleID) []Command {
	cmds := []Command{{
		Kind:   CmdPolygon,
		Points: r.Polygon(),
		Color:  SelectionColor,
		Dashed: true,
	}}

	for _, h := range selectionHandles(r) {
		cmd := Command{
			Kind:   CmdHandle,
			Center: h.pos,
			Radius: HandleRadius,
			Color:  HandleIdleColor,
		}
		if h.id == active {
			cmd.Color = HandleActiveColor
			cmd.Active = true
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

type regionHandle struct {
	id  selection.HandleID
	pos geometry.Point2D
}

func selectionHandles(r selection.Region) []regionHandle {
	switch r.Kind {
	case selection.ToolLine:
		return []regionHandle{
			{selection.HandleStart, r.Start},
			{selection.HandleEnd, r.End},
		}
	case selection.ToolCircle:
		return []regionHandle{
			{selection.HandleRadius, geometry.Point2D{X: r.Center.X + r.Radius, Y: r.Center.Y}},
		}
	default:
		return []regionHandle{
			{selection.HandleTopLeft, r.Corners[selection.CornerTopLeft]},
			{selection.HandleTopRight, r.Corners[selection.CornerTopRight]},
			{selection.HandleBottomRight, r.Corners[selection.CornerBottomRight]},
			{selection.HandleBottomLeft, r.Corners[selection.CornerBottomLeft]},
		}
	}
}
