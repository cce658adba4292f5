package editor

import (
	"math"

	"robomap/internal/history"
	"robomap/internal/mapdoc"
	"robomap/pkg/geometry"
)

// Tool selects the element kind created by a draw gesture.
type Tool int

const (
	ToolLine Tool = iota
	ToolRectangle
	ToolCircle
)

// phase is the controller's interaction state.
type phase int

const (
	phaseIdle phase = iota
	phaseDrawing
	phaseDragging
	phaseResizing
)

// Controller consumes pointer events against the element collection and
// produces new collections plus history commits. All transitions run to
// completion inside one event; there is no interleaving of gestures.
type Controller struct {
	elements mapdoc.Elements
	log      *history.Log

	tool  Tool
	color string

	state phase

	// Drawing
	anchor geometry.Point2D
	cursor geometry.Point2D

	// Dragging
	dragID     string
	dragOffset geometry.Point2D

	// Resizing
	resizeID     string
	resizeHandle HandleID
	resizeAnchor geometry.Point2D // fixed opposite corner for rectangles
}

// NewController creates a controller over the given initial elements.
func NewController(initial mapdoc.Elements) *Controller {
	return &Controller{
		elements: initial.Clone(),
		log:      history.New(initial),
		color:    "#000000",
	}
}

// Elements returns the current element collection.
func (c *Controller) Elements() mapdoc.Elements {
	return c.elements.Clone()
}

// SetTool selects the active draw tool.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
}

// Tool returns the active draw tool.
func (c *Controller) Tool() Tool {
	return c.tool
}

// SetColor sets the color applied to newly drawn elements.
func (c *Controller) SetColor(color string) {
	c.color = color
}

// ActiveHandle returns the handle being resized, if a resize gesture is
// in progress.
func (c *Controller) ActiveHandle() (HandleID, bool) {
	if c.state == phaseResizing {
		return c.resizeHandle, true
	}
	return "", false
}

// Draft returns the in-progress draw gesture for preview rendering: the
// anchor, current cursor, and active tool. The element collection itself
// is not touched until pointer-up.
func (c *Controller) Draft() (anchor, cursor geometry.Point2D, tool Tool, ok bool) {
	if c.state != phaseDrawing {
		return geometry.Point2D{}, geometry.Point2D{}, 0, false
	}
	return c.anchor, c.cursor, c.tool, true
}

// PointerDown starts a gesture. Priority order: a handle of the selected
// element wins over any body hit, a body hit (in element list order)
// selects and starts a drag, and empty space deselects and starts a draw.
func (c *Controller) PointerDown(p geometry.Point2D) {
	p = clampFinite(p)

	if sel, ok := c.elements.Selected(); ok {
		if h, ok := hitHandle(sel, p); ok {
			c.state = phaseResizing
			c.resizeID = sel.ID
			c.resizeHandle = h
			if sel.Kind == mapdoc.KindRectangle {
				c.resizeAnchor = oppositeCorner(sel, h)
			}
			return
		}
	}

	for _, e := range c.elements {
		if e.HitBody(p) {
			c.elements = c.elements.SelectOnly(e.ID)
			c.state = phaseDragging
			c.dragID = e.ID
			c.dragOffset = p.Sub(e.Origin())
			return
		}
	}

	c.elements = c.elements.SelectOnly("")
	c.state = phaseDrawing
	c.anchor = p
	c.cursor = p
}

// PointerMove advances the active gesture. Intermediate moves never
// commit history.
func (c *Controller) PointerMove(p geometry.Point2D) {
	p = clampFinite(p)

	switch c.state {
	case phaseDrawing:
		c.cursor = p
	case phaseDragging:
		c.elements = c.elements.Update(c.dragID, func(e mapdoc.Element) mapdoc.Element {
			target := p.Sub(c.dragOffset)
			delta := target.Sub(e.Origin())
			return e.Translate(delta.X, delta.Y)
		})
	case phaseResizing:
		c.elements = c.elements.Update(c.resizeID, func(e mapdoc.Element) mapdoc.Element {
			return c.resize(e, p)
		})
	}
}

// PointerUp completes the gesture. Drags and resizes commit the current
// state; a draw constructs the new element from anchor and cursor and
// commits. Zero-size elements are still created, since a later resize may
// grow them.
func (c *Controller) PointerUp(p geometry.Point2D) {
	p = clampFinite(p)

	switch c.state {
	case phaseDrawing:
		c.cursor = p
		var e mapdoc.Element
		switch c.tool {
		case ToolRectangle:
			e = mapdoc.NewRectangle(c.anchor, p, c.color)
		case ToolCircle:
			e = mapdoc.NewCircle(c.anchor, p, c.color)
		default:
			e = mapdoc.NewLine(c.anchor, p, c.color)
		}
		c.elements = c.elements.Add(e)
		c.log.Commit(c.elements)
	case phaseDragging, phaseResizing:
		c.log.Commit(c.elements)
	}
	c.state = phaseIdle
}

// resize applies the active handle to the element for the given cursor
// position.
func (c *Controller) resize(e mapdoc.Element, p geometry.Point2D) mapdoc.Element {
	switch e.Kind {
	case mapdoc.KindLine:
		if c.resizeHandle == HandleStart {
			e.X = p.X
			e.Y = p.Y
		} else {
			e.X2 = p.X
			e.Y2 = p.Y
		}
		return e
	case mapdoc.KindRectangle:
		// The opposite corner stays fixed; dragging past it flips the
		// anchor, keeping extents non-negative.
		a := c.resizeAnchor
		e.X = math.Min(a.X, p.X)
		e.Y = math.Min(a.Y, p.Y)
		e.Width = math.Abs(p.X - a.X)
		e.Height = math.Abs(p.Y - a.Y)
		return e
	case mapdoc.KindCircle:
		e.Radius = p.Distance(e.Origin())
		return e
	}
	return e
}

// DeleteSelected removes the selected element and commits.
func (c *Controller) DeleteSelected() bool {
	sel, ok := c.elements.Selected()
	if !ok {
		return false
	}
	c.elements = c.elements.Remove(sel.ID)
	c.log.Commit(c.elements)
	return true
}

// Clear removes every element and commits.
func (c *Controller) Clear() {
	c.elements = c.elements.Clear()
	c.log.Commit(c.elements)
}

// Replace swaps in an externally loaded element collection and commits.
func (c *Controller) Replace(els mapdoc.Elements) {
	c.elements = els.Clone()
	c.log.Commit(c.elements)
}

// Undo steps the history cursor back and restores that snapshot.
func (c *Controller) Undo() {
	c.elements = c.log.Undo()
}

// Redo steps the history cursor forward and restores that snapshot.
func (c *Controller) Redo() {
	c.elements = c.log.Redo()
}

// CanUndo reports whether undo is possible.
func (c *Controller) CanUndo() bool { return c.log.CanUndo() }

// CanRedo reports whether redo is possible.
func (c *Controller) CanRedo() bool { return c.log.CanRedo() }

// HistoryLen returns the number of recorded snapshots.
func (c *Controller) HistoryLen() int { return c.log.Len() }

// clampFinite replaces non-finite coordinates with zero so gesture math
// stays well defined.
func clampFinite(p geometry.Point2D) geometry.Point2D {
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
		p.X = 0
	}
	if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		p.Y = 0
	}
	return p
}
