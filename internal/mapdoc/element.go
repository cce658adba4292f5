// Package mapdoc provides the map document model: vector elements with
// their wire format, the editable element collection, and the saved-map
// document exchanged with the backend.
package mapdoc

import (
	"math"

	"github.com/google/uuid"

	"robomap/pkg/geometry"
)

// Kind identifies the vector element variants.
type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

// Element is a drawn vector primitive. It is a tagged union over Kind:
// lines use X,Y,X2,Y2; rectangles use X,Y,Width,Height; circles use
// X,Y,Radius. The field names follow the backend wire format.
type Element struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	X2       float64 `json:"x2,omitempty"`
	Y2       float64 `json:"y2,omitempty"`
	Color    string  `json:"color"`
	Selected bool    `json:"selected"`
}

// NewLine creates a line element between two endpoints.
func NewLine(a, b geometry.Point2D, color string) Element {
	return Element{
		ID:    uuid.NewString(),
		Kind:  KindLine,
		X:     a.X,
		Y:     a.Y,
		X2:    b.X,
		Y2:    b.Y,
		Color: color,
	}
}

// NewRectangle creates a rectangle element from two opposite corners.
// The result is normalized so X,Y is the top-left corner and the extents
// are non-negative.
func NewRectangle(a, b geometry.Point2D, color string) Element {
	return Element{
		ID:     uuid.NewString(),
		Kind:   KindRectangle,
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
		Color:  color,
	}
}

// NewCircle creates a circle element centered at center, with the radius
// reaching edge.
func NewCircle(center, edge geometry.Point2D, color string) Element {
	return Element{
		ID:     uuid.NewString(),
		Kind:   KindCircle,
		X:      center.X,
		Y:      center.Y,
		Radius: center.Distance(edge),
		Color:  color,
	}
}

// Origin returns the element's reference point: first endpoint for lines,
// top-left for rectangles, center for circles.
func (e Element) Origin() geometry.Point2D {
	return geometry.Point2D{X: e.X, Y: e.Y}
}

// Translate returns the element moved by (dx, dy). Lines move both
// endpoints by the same delta.
func (e Element) Translate(dx, dy float64) Element {
	e.X += dx
	e.Y += dy
	if e.Kind == KindLine {
		e.X2 += dx
		e.Y2 += dy
	}
	return e
}

// Normalize re-anchors a rectangle with negative extents so that X,Y is
// the top-left corner, and clamps a negative circle radius to zero.
// Lines are unchanged.
func (e Element) Normalize() Element {
	switch e.Kind {
	case KindRectangle:
		if e.Width < 0 {
			e.X += e.Width
			e.Width = -e.Width
		}
		if e.Height < 0 {
			e.Y += e.Height
			e.Height = -e.Height
		}
	case KindCircle:
		if e.Radius < 0 {
			e.Radius = 0
		}
	}
	return e
}

// Bounds returns the element's axis-aligned bounding box.
func (e Element) Bounds() geometry.Rect {
	switch e.Kind {
	case KindLine:
		return geometry.BoundingBox([]geometry.Point2D{
			{X: e.X, Y: e.Y},
			{X: e.X2, Y: e.Y2},
		})
	case KindCircle:
		return geometry.Rect{
			X:      e.X - e.Radius,
			Y:      e.Y - e.Radius,
			Width:  2 * e.Radius,
			Height: 2 * e.Radius,
		}
	default:
		return geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	}
}

// Hit-test thresholds, in canvas pixels.
const (
	LineHitThreshold   = 8
	CircleHitTolerance = 5
	RectBorderBand     = 3
)

// HitBody returns true if p hits the element's body: within
// LineHitThreshold of a line, within CircleHitTolerance of a circle's
// border, or within RectBorderBand of a rectangle's edges. Rectangle and
// circle interiors do not count as hits.
func (e Element) HitBody(p geometry.Point2D) bool {
	switch e.Kind {
	case KindLine:
		a := geometry.Point2D{X: e.X, Y: e.Y}
		b := geometry.Point2D{X: e.X2, Y: e.Y2}
		return geometry.DistanceToSegment(p, a, b) <= LineHitThreshold
	case KindCircle:
		return geometry.InAnnulus(p, e.Origin(), e.Radius, CircleHitTolerance)
	default:
		return geometry.OnRectBorder(p, e.Bounds(), RectBorderBand)
	}
}
