package server

import (
	"robomap/internal/mapdoc"
	"robomap/internal/raster"
)

// RenderDocument rasterizes a map document into an occupancy grid: free
// background with every drawn element marked occupied. Lines are drawn 3
// cells thick, rectangles and circles are filled.
func RenderDocument(doc *mapdoc.SavedMap) *raster.Grid {
	g := raster.NewUniform(doc.Width, doc.Height, raster.Free)

	for _, e := range doc.Elements {
		switch e.Kind {
		case mapdoc.KindLine:
			drawThickLine(g, int(e.X), int(e.Y), int(e.X2), int(e.Y2))
		case mapdoc.KindRectangle:
			fillRect(g, int(e.X), int(e.Y), int(e.Width), int(e.Height))
		case mapdoc.KindCircle:
			fillCircle(g, int(e.X), int(e.Y), int(e.Radius))
		}
	}
	return g
}

// drawThickLine walks the segment with Bresenham's algorithm, stamping a
// 3x3 neighborhood at each step.
func drawThickLine(g *raster.Grid, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		for ox := -1; ox <= 1; ox++ {
			for oy := -1; oy <= 1; oy++ {
				g.Set(x+ox, y+oy, raster.Occupied)
			}
		}

		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func fillRect(g *raster.Grid, x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			g.Set(px, py, raster.Occupied)
		}
	}
}

func fillCircle(g *raster.Grid, cx, cy, r int) {
	for py := cy - r; py <= cy+r; py++ {
		for px := cx - r; px <= cx+r; px++ {
			dx := px - cx
			dy := py - cy
			if dx*dx+dy*dy <= r*r {
				g.Set(px, py, raster.Occupied)
			}
		}
	}
}

// OccupancyGrid is the ROS-style export format: row-major int cells with
// 0=free, 100=occupied, -1=unknown, origin at the bottom-left.
type OccupancyGrid struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Resolution float64 `json:"resolution"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	Data       []int   `json:"data"`
}

// ExportOccupancy converts a grayscale grid to the ROS occupancy format,
// flipping the Y axis so the origin sits at the bottom-left. The origin
// centers the map around the world origin.
func ExportOccupancy(g *raster.Grid, resolution float64) *OccupancyGrid {
	data := make([]int, 0, g.Width*g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			switch g.At(x, y) {
			case raster.Occupied:
				data = append(data, 100)
			case raster.Free:
				data = append(data, 0)
			default:
				data = append(data, -1)
			}
		}
	}

	return &OccupancyGrid{
		Width:      g.Width,
		Height:     g.Height,
		Resolution: resolution,
		OriginX:    -float64(g.Width) * resolution / 2,
		OriginY:    -float64(g.Height) * resolution / 2,
		Data:       data,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
