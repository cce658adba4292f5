package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"robomap/internal/raster"
	"robomap/internal/selection"
	"robomap/pkg/geometry"
)

func TestNearestOccupancy(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
	}{
		{0, raster.Occupied},
		{60, raster.Occupied},
		{120, raster.Unknown},
		{205, raster.Unknown},
		{228, raster.Unknown},
		{235, raster.Free},
		{254, raster.Free},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nearestOccupancy(tt.in), "value %d", tt.in)
	}
}

func TestQuantizeRegionRespectsPolygon(t *testing.T) {
	g := raster.NewUniform(10, 10, 130)
	req := &selection.Request{
		BoundingBox: geometry.RectInt{X: 2, Y: 2, Width: 4, Height: 4},
		PolygonPoints: []geometry.PointInt{
			{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6},
		},
	}

	quantizeRegion(g, req)

	// Inside the polygon cells snap to the nearest level.
	assert.Equal(t, byte(raster.Unknown), g.At(3, 3))
	// Outside the bounding box nothing changes.
	assert.Equal(t, byte(130), g.At(8, 8))
	assert.Equal(t, byte(130), g.At(0, 0))
}

func TestApplySmoothRejectsEvenKernel(t *testing.T) {
	g := raster.NewUniform(4, 4, raster.Free)
	req := &selection.Request{
		Params: selection.Params{KernelSize: 4},
		PolygonPoints: []geometry.PointInt{
			{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3},
		},
	}

	_, err := ApplySmooth(g, req)
	assert.Error(t, err)
}

func TestApplyMaskRejectsMissingValue(t *testing.T) {
	g := raster.NewUniform(4, 4, raster.Free)
	req := &selection.Request{
		PolygonPoints: []geometry.PointInt{
			{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3},
		},
	}

	_, err := ApplyMask(g, req)
	assert.Error(t, err)

	bad := 99
	req.Params.Value = &bad
	_, err = ApplyMask(g, req)
	assert.Error(t, err)
}
