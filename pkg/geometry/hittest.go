package geometry

import "math"

// DistanceToSegment returns the distance from p to the segment a-b.
// Degenerate segments (a == b) reduce to point distance.
func DistanceToSegment(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	// Project p onto the segment, clamping to the endpoints.
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// InAnnulus returns true if p lies within tolerance of the circle border
// centered at center with the given radius.
func InAnnulus(p, center Point2D, radius, tolerance float64) bool {
	return math.Abs(p.Distance(center)-radius) <= tolerance
}

// OnRectBorder returns true if p lies within band of any edge of the
// rectangle. The interior is deliberately excluded so that a click inside
// an unfilled rectangle does not register as a hit.
func OnRectBorder(p Point2D, r Rect, band float64) bool {
	if !r.Expanded(band).Contains(p) {
		return false
	}

	left := r.X
	right := r.X + r.Width
	top := r.Y
	bottom := r.Y + r.Height

	nearVertical := math.Abs(p.X-left) <= band || math.Abs(p.X-right) <= band
	nearHorizontal := math.Abs(p.Y-top) <= band || math.Abs(p.Y-bottom) <= band
	return nearVertical || nearHorizontal
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}
