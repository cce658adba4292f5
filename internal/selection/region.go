// Package selection provides the raster selection-region subsystem: the
// transient region used to scope a raster edit, the pointer state machine
// that shapes it, and the builder that turns it into a backend edit
// request.
package selection

import "robomap/pkg/geometry"

// Tool selects the active region shape.
type Tool int

const (
	ToolQuad Tool = iota
	ToolLine
	ToolCircle
)

// LineThickness is the fixed stroke thickness of a line selection, in
// raster units.
const LineThickness = 3

// CircleSegments is the polygon approximation used for circle regions.
const CircleSegments = 64

// Quad corner labels come from the initial drag and are not re-sorted as
// the shape deforms; after independent corner drags the quad may be
// non-convex or self-intersecting.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
)

// Region is the active selection, a tagged union over Kind. At most one
// region exists per map, and it is never persisted.
type Region struct {
	Kind Tool

	// Quad
	Corners [4]geometry.Point2D

	// Line
	Start, End geometry.Point2D

	// Circle
	Center geometry.Point2D
	Radius float64
}

// Polygon returns the canonical polygon of the region: quad corners in
// drag order, the thick-line quad, or the 64-gon circle approximation.
func (r Region) Polygon() []geometry.Point2D {
	switch r.Kind {
	case ToolLine:
		return geometry.SegmentPolygon(r.Start, r.End, LineThickness)
	case ToolCircle:
		return geometry.CirclePolygon(r.Center, r.Radius, CircleSegments)
	default:
		return []geometry.Point2D{r.Corners[0], r.Corners[1], r.Corners[2], r.Corners[3]}
	}
}

// Bounds returns the bounding box of the region's canonical polygon.
func (r Region) Bounds() geometry.Rect {
	return geometry.BoundingBox(r.Polygon())
}

// ShapeKind returns the wire name of the region shape.
func (r Region) ShapeKind() string {
	switch r.Kind {
	case ToolLine:
		return "line"
	case ToolCircle:
		return "circle"
	default:
		return "rectangle"
	}
}

// Degenerate reports whether the region collapses below one raster unit
// in either direction and should be discarded.
func (r Region) Degenerate() bool {
	b := r.Bounds()
	return b.Width < 1 || b.Height < 1
}
