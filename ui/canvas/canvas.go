package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"robomap/internal/app"
	"robomap/internal/render"
	"robomap/pkg/geometry"
)

const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.25
)

// EditorCanvas displays the map under edit and feeds pointer events into
// the session's interaction controllers. Rendering happens on state
// change, not on a fixed-rate loop.
type EditorCanvas struct {
	widget.BaseWidget

	session *app.Session
	raster  *fynecanvas.Raster

	zoom    float64
	grid    render.GridConfig
	pressed bool
}

// New creates an editor canvas over the session and refreshes it on
// every state change.
func New(session *app.Session, grid render.GridConfig) *EditorCanvas {
	ec := &EditorCanvas{
		session: session,
		zoom:    1.0,
		grid:    grid,
	}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(fyne.NewSize(600, 400))
	ec.ExtendBaseWidget(ec)

	for _, ev := range []app.EventType{
		app.EventElementsChanged,
		app.EventSelectionChanged,
		app.EventRasterChanged,
		app.EventModeChanged,
	} {
		session.On(ev, func(interface{}) { ec.Refresh() })
	}
	return ec
}

// SetGrid updates the grid overlay configuration.
func (ec *EditorCanvas) SetGrid(grid render.GridConfig) {
	ec.grid = grid
	ec.Refresh()
}

// Zoom returns the current zoom factor.
func (ec *EditorCanvas) Zoom() float64 {
	return ec.zoom
}

// ZoomIn increases the zoom level.
func (ec *EditorCanvas) ZoomIn() {
	ec.setZoom(ec.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ec *EditorCanvas) ZoomOut() {
	ec.setZoom(ec.zoom / zoomStep)
}

func (ec *EditorCanvas) setZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	ec.zoom = z
	ec.Refresh()
}

// Refresh redraws the canvas.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// MouseDown implements desktop.Mouseable.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	ec.pressed = true
	ec.session.PointerDown(ec.imagePos(ev.Position))
}

// MouseUp implements desktop.Mouseable.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	ec.pressed = false
	ec.session.PointerUp(ec.imagePos(ev.Position))
}

// MouseMoved implements desktop.Hoverable. Moves are forwarded only
// while a button is held, so hover alone never mutates state.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if !ec.pressed {
		return
	}
	ec.session.PointerMove(ec.imagePos(ev.Position))
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (ec *EditorCanvas) MouseOut() {}

// Scrolled zooms with the mouse wheel.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ec.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ec.ZoomOut()
	}
}

// imagePos converts a widget position to image coordinates.
func (ec *EditorCanvas) imagePos(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{
		X: float64(pos.X) / ec.zoom,
		Y: float64(pos.Y) / ec.zoom,
	}
}

// draw renders one frame: background, the occupancy raster in raster
// mode, then the renderer's draw commands.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(out, color.RGBA{R: 250, G: 250, B: 250, A: 255})

	mode := ec.session.Mode()
	in := render.Input{
		Width:  float64(w) / ec.zoom,
		Height: float64(h) / ec.zoom,
	}

	if mode == app.ModeRaster {
		if grid := ec.session.Grid(); grid != nil {
			src := grid.ToRGBA()
			dst := image.Rect(0, 0,
				int(float64(grid.Width)*ec.zoom),
				int(float64(grid.Height)*ec.zoom))
			xdraw.NearestNeighbor.Scale(out, dst, src, src.Bounds(), xdraw.Src, nil)
		}
		if region, ok := ec.session.Selection(); ok {
			in.Selection = &region
			in.SelectionHandle = ec.session.SelectionHandle()
		}
	} else {
		in.Grid = ec.grid
		in.Elements = ec.session.Elements()
		if anchor, cursor, tool, ok := ec.session.Draft(); ok {
			in.Draft = &render.Draft{Anchor: anchor, Cursor: cursor, Tool: tool}
		}
	}

	paintCommands(out, render.Frame(in), ec.zoom)
	return out
}

func fillBackground(out *image.RGBA, col color.RGBA) {
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = col.R
		out.Pix[i+1] = col.G
		out.Pix[i+2] = col.B
		out.Pix[i+3] = col.A
	}
}
