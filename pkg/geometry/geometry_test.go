package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToSegment(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 10, Y: 0}

	tests := []struct {
		name string
		p    Point2D
		want float64
	}{
		{"above midpoint", Point2D{X: 5, Y: 3}, 3},
		{"on segment", Point2D{X: 5, Y: 0}, 0},
		{"beyond end", Point2D{X: 14, Y: 3}, 5},
		{"before start", Point2D{X: -3, Y: 4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceToSegment(tt.p, a, b), 1e-9)
		})
	}
}

func TestDistanceToSegmentDegenerate(t *testing.T) {
	a := Point2D{X: 2, Y: 2}
	assert.InDelta(t, 5, DistanceToSegment(Point2D{X: 5, Y: 6}, a, a), 1e-9)
}

func TestInAnnulus(t *testing.T) {
	center := Point2D{X: 50, Y: 50}

	assert.True(t, InAnnulus(Point2D{X: 70, Y: 50}, center, 20, 5))
	assert.True(t, InAnnulus(Point2D{X: 74, Y: 50}, center, 20, 5))
	assert.True(t, InAnnulus(Point2D{X: 66, Y: 50}, center, 20, 5))
	// Center and interior are not on the border.
	assert.False(t, InAnnulus(center, center, 20, 5))
	assert.False(t, InAnnulus(Point2D{X: 60, Y: 50}, center, 20, 5))
}

func TestOnRectBorder(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 40, Height: 20}

	assert.True(t, OnRectBorder(Point2D{X: 10, Y: 15}, r, 3))
	assert.True(t, OnRectBorder(Point2D{X: 30, Y: 9}, r, 3))
	assert.True(t, OnRectBorder(Point2D{X: 52, Y: 30}, r, 3))

	// Interior clicks do not select an unfilled rectangle.
	assert.False(t, OnRectBorder(Point2D{X: 30, Y: 20}, r, 3))
	// Far outside.
	assert.False(t, OnRectBorder(Point2D{X: 80, Y: 15}, r, 3))
}

func TestSegmentPolygonThickness(t *testing.T) {
	// The bounding box must respect the stroke thickness perpendicular
	// to the segment axis.
	poly := SegmentPolygon(Point2D{X: 10, Y: 10}, Point2D{X: 50, Y: 10}, 3)
	assert.Len(t, poly, 4)

	b := BoundingBox(poly)
	assert.InDelta(t, 40, b.Width, 1e-9)
	assert.InDelta(t, 3, b.Height, 1e-9)

	// Diagonal segment: both extents grow but perpendicular coverage
	// stays at the thickness.
	poly = SegmentPolygon(Point2D{X: 0, Y: 0}, Point2D{X: 30, Y: 40}, 6)
	b = BoundingBox(poly)
	assert.GreaterOrEqual(t, b.Width, 30.0)
	assert.GreaterOrEqual(t, b.Height, 40.0)
}

func TestSegmentPolygonZeroLength(t *testing.T) {
	// Coincident endpoints collapse to a zero-width strip, so the
	// degeneracy survives into the bounding box.
	poly := SegmentPolygon(Point2D{X: 20, Y: 20}, Point2D{X: 20, Y: 20}, 3)
	assert.Len(t, poly, 4)

	b := BoundingBox(poly)
	assert.InDelta(t, 0, b.Width, 1e-9)
	assert.InDelta(t, 3, b.Height, 1e-9)
}

func TestCirclePolygon(t *testing.T) {
	center := Point2D{X: 50, Y: 50}
	poly := CirclePolygon(center, 20, 64)

	assert.Len(t, poly, 64)
	for _, p := range poly {
		assert.InDelta(t, 20, p.Distance(center), 1e-9)
	}

	b := BoundingBox(poly)
	assert.InDelta(t, 40, b.Width, 0.1)
	assert.InDelta(t, 40, b.Height, 0.1)
}

func TestPointInPolygon(t *testing.T) {
	square := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	assert.True(t, PointInPolygon(Point2D{X: 5, Y: 5}, square))
	assert.False(t, PointInPolygon(Point2D{X: 15, Y: 5}, square))
	assert.False(t, PointInPolygon(Point2D{X: 5, Y: 5}, square[:2]))
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]Point2D{{X: 5, Y: 8}, {X: -3, Y: 2}, {X: 7, Y: 4}})
	assert.Equal(t, Rect{X: -3, Y: 2, Width: 10, Height: 6}, b)

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestRectRound(t *testing.T) {
	r := Rect{X: 9.6, Y: 10.4, Width: 79.5, Height: 80.49}
	assert.Equal(t, RectInt{X: 10, Y: 10, Width: 80, Height: 80}, r.Round())
}
