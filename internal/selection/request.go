package selection

import (
	"errors"
	"fmt"

	"robomap/internal/raster"
	"robomap/pkg/geometry"
)

// Operation names a region edit applied by the map-processing backend.
type Operation string

const (
	OpSmooth Operation = "smooth"
	OpMask   Operation = "mask"
)

// ErrNoSelection is returned when a request is built without an active,
// non-degenerate selection.
var ErrNoSelection = errors.New("select a region first")

// Params carries the operation parameters: kernel size and quantize flag
// for smooth, fill value for mask.
type Params struct {
	KernelSize int  `json:"kernelSize,omitempty"`
	Quantize   bool `json:"quantize,omitempty"`
	Value      *int `json:"value,omitempty"`
}

// Request is the backend-facing region edit payload. It is constructed
// fresh per apply action, handed to the network layer, and discarded once
// the call resolves. The builder itself performs no I/O.
type Request struct {
	ShapeKind     string              `json:"shapeKind"`
	BoundingBox   geometry.RectInt    `json:"boundingBox"`
	PolygonPoints []geometry.PointInt `json:"polygonPoints"`
	Operation     Operation           `json:"operation"`
	Params        Params              `json:"operationParams"`
}

// BuildSmooth constructs a smooth request for the region. An even kernel
// size is forced to the next odd integer, since the backend requires an
// odd kernel width.
func BuildSmooth(r *Region, kernelSize int, quantize bool) (*Request, error) {
	req, err := build(r)
	if err != nil {
		return nil, err
	}
	if kernelSize < 1 {
		return nil, fmt.Errorf("kernel size must be positive, got %d", kernelSize)
	}
	if kernelSize%2 == 0 {
		kernelSize++
	}
	req.Operation = OpSmooth
	req.Params = Params{KernelSize: kernelSize, Quantize: quantize}
	return req, nil
}

// BuildMask constructs a mask request for the region. The fill value must
// be one of the occupancy constants.
func BuildMask(r *Region, value int) (*Request, error) {
	req, err := build(r)
	if err != nil {
		return nil, err
	}
	if value != raster.Occupied && value != raster.Unknown && value != raster.Free {
		return nil, fmt.Errorf("mask value must be %d, %d or %d, got %d",
			raster.Occupied, raster.Unknown, raster.Free, value)
	}
	req.Operation = OpMask
	req.Params = Params{Value: &value}
	return req, nil
}

func build(r *Region) (*Request, error) {
	if r == nil || r.Degenerate() {
		return nil, ErrNoSelection
	}

	polygon := r.Polygon()
	points := make([]geometry.PointInt, len(polygon))
	for i, p := range polygon {
		points[i] = p.Round()
	}

	box := geometry.BoundingBox(polygon).Round()
	if box.Width < 1 {
		box.Width = 1
	}
	if box.Height < 1 {
		box.Height = 1
	}

	return &Request{
		ShapeKind:     r.ShapeKind(),
		BoundingBox:   box,
		PolygonPoints: points,
	}, nil
}
