// Package editor provides the pointer-driven interaction state machine
// for vector map editing.
package editor

import (
	"robomap/internal/mapdoc"
	"robomap/pkg/geometry"
)

// HandleID names a control point on a selected element.
type HandleID string

const (
	HandleStart       HandleID = "start"
	HandleEnd         HandleID = "end"
	HandleTopLeft     HandleID = "top-left"
	HandleTopRight    HandleID = "top-right"
	HandleBottomRight HandleID = "bottom-right"
	HandleBottomLeft  HandleID = "bottom-left"
	HandleCenter      HandleID = "center"
	HandleRight       HandleID = "right"
	HandleLeft        HandleID = "left"
	HandleTop         HandleID = "top"
	HandleBottom      HandleID = "bottom"
)

// Handle is a draggable control point at a known position.
type Handle struct {
	ID  HandleID
	Pos geometry.Point2D
}

// HandleHitRadius is the pick distance for vector handles, in canvas
// pixels.
const HandleHitRadius = 8

// HandlesFor returns the handle set for an element: line endpoints,
// rectangle corners, or the circle's center plus four cardinal radius
// handles. The circle center handle is informational and not draggable.
func HandlesFor(e mapdoc.Element) []Handle {
	switch e.Kind {
	case mapdoc.KindLine:
		return []Handle{
			{ID: HandleStart, Pos: geometry.Point2D{X: e.X, Y: e.Y}},
			{ID: HandleEnd, Pos: geometry.Point2D{X: e.X2, Y: e.Y2}},
		}
	case mapdoc.KindRectangle:
		return []Handle{
			{ID: HandleTopLeft, Pos: geometry.Point2D{X: e.X, Y: e.Y}},
			{ID: HandleTopRight, Pos: geometry.Point2D{X: e.X + e.Width, Y: e.Y}},
			{ID: HandleBottomRight, Pos: geometry.Point2D{X: e.X + e.Width, Y: e.Y + e.Height}},
			{ID: HandleBottomLeft, Pos: geometry.Point2D{X: e.X, Y: e.Y + e.Height}},
		}
	case mapdoc.KindCircle:
		return []Handle{
			{ID: HandleCenter, Pos: geometry.Point2D{X: e.X, Y: e.Y}},
			{ID: HandleRight, Pos: geometry.Point2D{X: e.X + e.Radius, Y: e.Y}},
			{ID: HandleLeft, Pos: geometry.Point2D{X: e.X - e.Radius, Y: e.Y}},
			{ID: HandleTop, Pos: geometry.Point2D{X: e.X, Y: e.Y - e.Radius}},
			{ID: HandleBottom, Pos: geometry.Point2D{X: e.X, Y: e.Y + e.Radius}},
		}
	}
	return nil
}

// hitHandle returns the first draggable handle of e within HandleHitRadius
// of p.
func hitHandle(e mapdoc.Element, p geometry.Point2D) (HandleID, bool) {
	for _, h := range HandlesFor(e) {
		if h.ID == HandleCenter {
			continue
		}
		if p.Distance(h.Pos) <= HandleHitRadius {
			return h.ID, true
		}
	}
	return "", false
}

// oppositeCorner returns the rectangle corner diagonally opposite the
// given handle; it stays fixed during a corner resize.
func oppositeCorner(e mapdoc.Element, h HandleID) geometry.Point2D {
	switch h {
	case HandleTopLeft:
		return geometry.Point2D{X: e.X + e.Width, Y: e.Y + e.Height}
	case HandleTopRight:
		return geometry.Point2D{X: e.X, Y: e.Y + e.Height}
	case HandleBottomRight:
		return geometry.Point2D{X: e.X, Y: e.Y}
	default: // HandleBottomLeft
		return geometry.Point2D{X: e.X + e.Width, Y: e.Y}
	}
}
