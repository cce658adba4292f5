package selection

import "robomap/pkg/geometry"

// HandleID names a draggable control point on the active region.
type HandleID string

const (
	HandleNone        HandleID = ""
	HandleTopLeft     HandleID = "top-left"
	HandleTopRight    HandleID = "top-right"
	HandleBottomRight HandleID = "bottom-right"
	HandleBottomLeft  HandleID = "bottom-left"
	HandleStart       HandleID = "start"
	HandleEnd         HandleID = "end"
	HandleRadius      HandleID = "radius"
	HandleBody        HandleID = "body"
	handleCreate      HandleID = "create"
)

// HitRadius is the pick distance for selection handles, in raster units.
const HitRadius = 10

// Controller is the pointer state machine over the raster selection
// region. The selection tool is chosen externally; switching tools clears
// any in-progress selection.
type Controller struct {
	tool   Tool
	region *Region
	active HandleID

	// anchor is the pointer-down position of a creation drag.
	anchor geometry.Point2D

	// last tracks the previous pointer position for body drags, so each
	// move applies an incremental delta rather than an absolute recompute.
	last geometry.Point2D
}

// NewController creates a controller with the quad tool active and no
// selection.
func NewController() *Controller {
	return &Controller{tool: ToolQuad}
}

// Tool returns the active selection tool.
func (c *Controller) Tool() Tool {
	return c.tool
}

// SetTool switches the selection tool. The tools are mutually exclusive:
// any current selection is cleared.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
	c.region = nil
	c.active = HandleNone
}

// Region returns the active selection, if any.
func (c *Controller) Region() (Region, bool) {
	if c.region == nil {
		return Region{}, false
	}
	return *c.region, true
}

// ActiveHandle returns the handle currently being dragged, if any.
func (c *Controller) ActiveHandle() HandleID {
	return c.active
}

// Clear discards the current selection.
func (c *Controller) Clear() {
	c.region = nil
	c.active = HandleNone
}

// PointerDown either grabs a handle of the existing region or starts a
// brand-new selection anchored at p, replacing any previous one.
func (c *Controller) PointerDown(p geometry.Point2D) {
	switch c.tool {
	case ToolLine:
		c.lineDown(p)
	case ToolCircle:
		c.circleDown(p)
	default:
		c.quadDown(p)
	}
	c.last = p
}

// PointerMove applies the active handle drag.
func (c *Controller) PointerMove(p geometry.Point2D) {
	if c.region == nil || c.active == HandleNone {
		return
	}

	r := c.region
	switch c.active {
	case handleCreate:
		// Creation drag: shape the region between the anchor and cursor.
		switch c.tool {
		case ToolLine:
			r.End = p
		case ToolCircle:
			r.Radius = p.Distance(r.Center)
		default:
			r.Corners[CornerTopLeft] = c.anchor
			r.Corners[CornerTopRight] = geometry.Point2D{X: p.X, Y: c.anchor.Y}
			r.Corners[CornerBottomRight] = p
			r.Corners[CornerBottomLeft] = geometry.Point2D{X: c.anchor.X, Y: p.Y}
		}
	case HandleTopLeft:
		r.Corners[CornerTopLeft] = p
	case HandleTopRight:
		r.Corners[CornerTopRight] = p
	case HandleBottomRight:
		r.Corners[CornerBottomRight] = p
	case HandleBottomLeft:
		r.Corners[CornerBottomLeft] = p
	case HandleStart:
		r.Start = p
	case HandleEnd:
		r.End = p
	case HandleRadius:
		r.Radius = p.Distance(r.Center)
		if r.Radius < 0 {
			r.Radius = 0
		}
	case HandleBody:
		delta := p.Sub(c.last)
		switch c.tool {
		case ToolLine:
			r.Start = r.Start.Add(delta)
			r.End = r.End.Add(delta)
		case ToolCircle:
			r.Center = r.Center.Add(delta)
		}
	}
	c.last = p
}

// PointerUp ends the drag. A degenerate result (bounding box under one
// raster unit in either direction) is discarded rather than kept.
func (c *Controller) PointerUp(geometry.Point2D) {
	c.active = HandleNone
	if c.region != nil && c.region.Degenerate() {
		c.region = nil
	}
}

func (c *Controller) quadDown(p geometry.Point2D) {
	if c.region != nil {
		corners := []HandleID{HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft}
		for idx, id := range corners {
			if p.Distance(c.region.Corners[idx]) <= HitRadius {
				c.active = id
				return
			}
		}
	}

	c.region = &Region{
		Kind:    ToolQuad,
		Corners: [4]geometry.Point2D{p, p, p, p},
	}
	c.anchor = p
	c.active = handleCreate
}

func (c *Controller) lineDown(p geometry.Point2D) {
	if c.region != nil {
		if p.Distance(c.region.Start) <= HitRadius {
			c.active = HandleStart
			return
		}
		if p.Distance(c.region.End) <= HitRadius {
			c.active = HandleEnd
			return
		}
		if geometry.DistanceToSegment(p, c.region.Start, c.region.End) <= HitRadius {
			c.active = HandleBody
			return
		}
	}

	c.region = &Region{Kind: ToolLine, Start: p, End: p}
	c.anchor = p
	c.active = handleCreate
}

func (c *Controller) circleDown(p geometry.Point2D) {
	if c.region != nil {
		radiusHandle := geometry.Point2D{
			X: c.region.Center.X + c.region.Radius,
			Y: c.region.Center.Y,
		}
		if p.Distance(radiusHandle) <= HitRadius {
			c.active = HandleRadius
			return
		}
		if p.Distance(c.region.Center) < c.region.Radius {
			c.active = HandleBody
			return
		}
	}

	c.region = &Region{Kind: ToolCircle, Center: p}
	c.anchor = p
	c.active = handleCreate
}
