package geometry

import "math"

// SegmentPolygon returns the 4-corner polygon covering the segment a-b
// with the given stroke thickness: each side is offset perpendicular to
// the segment direction by thickness/2.
func SegmentPolygon(a, b Point2D, thickness float64) []Point2D {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)

	half := thickness / 2
	var nx, ny float64
	if length == 0 {
		// Zero-length segment has no direction to offset along; the quad
		// collapses to a vertical zero-width strip of height thickness,
		// which callers treat as degenerate.
		nx, ny = 0, half
	} else {
		nx = -dy / length * half
		ny = dx / length * half
	}

	return []Point2D{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// CirclePolygon approximates a circle as a regular polygon with the given
// number of segments, sampled at uniform angular steps.
func CirclePolygon(center Point2D, radius float64, segments int) []Point2D {
	if segments < 3 {
		segments = 3
	}
	points := make([]Point2D, segments)
	for i := 0; i < segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		points[i] = Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}
