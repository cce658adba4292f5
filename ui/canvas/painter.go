// Package canvas provides the editor canvas widget: it feeds pointer
// events to the session's controllers and paints the renderer's draw
// commands onto a Fyne raster.
package canvas

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"robomap/internal/render"
	"robomap/pkg/geometry"
)

// dashPeriod controls the on/off cell length of dashed strokes, in
// pixels.
const dashPeriod = 4

// paintCommands draws the command list onto the output image, scaling
// all coordinates by zoom.
func paintCommands(out *image.RGBA, cmds []render.Command, zoom float64) {
	for _, cmd := range cmds {
		col := parseHexColor(cmd.Color)
		switch cmd.Kind {
		case render.CmdLine:
			paintLine(out, scale(cmd.A, zoom), scale(cmd.B, zoom), col, cmd.Dashed)
		case render.CmdRect:
			paintRect(out, cmd.Rect, zoom, col, cmd.Dashed)
		case render.CmdCircle:
			paintCircle(out, scale(cmd.Center, zoom), cmd.Radius*zoom, col, cmd.Dashed)
		case render.CmdPolygon:
			paintPolygon(out, cmd.Points, zoom, col, cmd.Dashed)
		case render.CmdHandle:
			paintHandle(out, scale(cmd.Center, zoom), cmd.Radius, col)
		}
	}
}

func scale(p geometry.Point2D, zoom float64) geometry.Point2D {
	return geometry.Point2D{X: p.X * zoom, Y: p.Y * zoom}
}

// paintLine walks the segment at unit steps, skipping alternate dash
// cells when dashed.
func paintLine(out *image.RGBA, a, b geometry.Point2D, col color.RGBA, dashed bool) {
	length := a.Distance(b)
	steps := int(length) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if dashed && int(t*length)/dashPeriod%2 == 1 {
			continue
		}
		x := int(math.Round(a.X + t*(b.X-a.X)))
		y := int(math.Round(a.Y + t*(b.Y-a.Y)))
		setPixel(out, x, y, col)
	}
}

func paintRect(out *image.RGBA, r geometry.Rect, zoom float64, col color.RGBA, dashed bool) {
	tl := geometry.Point2D{X: r.X * zoom, Y: r.Y * zoom}
	tr := geometry.Point2D{X: (r.X + r.Width) * zoom, Y: r.Y * zoom}
	br := geometry.Point2D{X: (r.X + r.Width) * zoom, Y: (r.Y + r.Height) * zoom}
	bl := geometry.Point2D{X: r.X * zoom, Y: (r.Y + r.Height) * zoom}

	paintLine(out, tl, tr, col, dashed)
	paintLine(out, tr, br, col, dashed)
	paintLine(out, br, bl, col, dashed)
	paintLine(out, bl, tl, col, dashed)
}

func paintCircle(out *image.RGBA, center geometry.Point2D, radius float64, col color.RGBA, dashed bool) {
	circumference := 2 * math.Pi * radius
	steps := int(circumference) + 8
	for i := 0; i < steps; i++ {
		arc := float64(i) / float64(steps) * circumference
		if dashed && int(arc)/dashPeriod%2 == 1 {
			continue
		}
		angle := float64(i) * 2 * math.Pi / float64(steps)
		x := int(math.Round(center.X + radius*math.Cos(angle)))
		y := int(math.Round(center.Y + radius*math.Sin(angle)))
		setPixel(out, x, y, col)
	}
}

func paintPolygon(out *image.RGBA, points []geometry.Point2D, zoom float64, col color.RGBA, dashed bool) {
	n := len(points)
	for i := 0; i < n; i++ {
		a := scale(points[i], zoom)
		b := scale(points[(i+1)%n], zoom)
		paintLine(out, a, b, col, dashed)
	}
}

// paintHandle draws a filled square marker with a dark outline.
func paintHandle(out *image.RGBA, center geometry.Point2D, radius float64, col color.RGBA) {
	r := int(radius)
	cx := int(math.Round(center.X))
	cy := int(math.Round(center.Y))

	outline := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x == cx-r || x == cx+r || y == cy-r || y == cy+r {
				setPixel(out, x, y, outline)
			} else {
				setPixel(out, x, y, col)
			}
		}
	}
}

func setPixel(out *image.RGBA, x, y int, col color.RGBA) {
	bounds := out.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	out.SetRGBA(x, y, col)
}

// parseHexColor parses "#rrggbb" into an opaque RGBA color. Anything
// unparsable paints black.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 255}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	if v, err := strconv.ParseUint(s[1:3], 16, 8); err == nil {
		c.R = uint8(v)
	}
	if v, err := strconv.ParseUint(s[3:5], 16, 8); err == nil {
		c.G = uint8(v)
	}
	if v, err := strconv.ParseUint(s[5:7], 16, 8); err == nil {
		c.B = uint8(v)
	}
	return c
}
