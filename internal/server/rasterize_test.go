package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"robomap/internal/mapdoc"
	"robomap/internal/raster"
	"robomap/pkg/geometry"
)

func TestRenderDocumentLineThickness(t *testing.T) {
	doc := mapdoc.NewSavedMap("test", 20, 20, 0.05)
	doc.Elements = mapdoc.Elements{
		mapdoc.NewLine(geometry.Point2D{X: 5, Y: 10}, geometry.Point2D{X: 15, Y: 10}, "#000000"),
	}

	g := RenderDocument(doc)

	// The 3x3 stamp covers one cell above and below the axis.
	for x := 5; x <= 15; x++ {
		assert.Equal(t, byte(raster.Occupied), g.At(x, 9))
		assert.Equal(t, byte(raster.Occupied), g.At(x, 10))
		assert.Equal(t, byte(raster.Occupied), g.At(x, 11))
	}
	assert.Equal(t, byte(raster.Free), g.At(10, 7))
	assert.Equal(t, byte(raster.Free), g.At(10, 13))
	assert.Equal(t, byte(raster.Free), g.At(2, 10))
}

func TestRenderDocumentDiagonalLineConnected(t *testing.T) {
	doc := mapdoc.NewSavedMap("test", 30, 30, 0.05)
	doc.Elements = mapdoc.Elements{
		mapdoc.NewLine(geometry.Point2D{X: 2, Y: 2}, geometry.Point2D{X: 25, Y: 18}, "#000000"),
	}

	g := RenderDocument(doc)

	// Every column the segment crosses carries at least one occupied
	// cell, so the stroke has no gaps.
	for x := 2; x <= 25; x++ {
		hit := false
		for y := 0; y < g.Height; y++ {
			if g.At(x, y) == raster.Occupied {
				hit = true
				break
			}
		}
		assert.True(t, hit, "column %d has no occupied cell", x)
	}
}

func TestRenderDocumentRectFilled(t *testing.T) {
	doc := mapdoc.NewSavedMap("test", 20, 20, 0.05)
	doc.Elements = mapdoc.Elements{
		mapdoc.NewRectangle(geometry.Point2D{X: 4, Y: 4}, geometry.Point2D{X: 8, Y: 7}, "#000000"),
	}

	g := RenderDocument(doc)

	assert.Equal(t, byte(raster.Occupied), g.At(4, 4))
	assert.Equal(t, byte(raster.Occupied), g.At(6, 5))
	assert.Equal(t, byte(raster.Occupied), g.At(7, 6))
	assert.Equal(t, byte(raster.Free), g.At(8, 7))
	assert.Equal(t, byte(raster.Free), g.At(3, 4))
}

func TestRenderDocumentCircleFilled(t *testing.T) {
	doc := mapdoc.NewSavedMap("test", 20, 20, 0.05)
	doc.Elements = mapdoc.Elements{
		mapdoc.NewCircle(geometry.Point2D{X: 10, Y: 10}, geometry.Point2D{X: 14, Y: 10}, "#000000"),
	}

	g := RenderDocument(doc)

	assert.Equal(t, byte(raster.Occupied), g.At(10, 10))
	assert.Equal(t, byte(raster.Occupied), g.At(14, 10))
	assert.Equal(t, byte(raster.Occupied), g.At(10, 6))
	assert.Equal(t, byte(raster.Free), g.At(14, 14))
}

func TestRenderDocumentClipsOutOfBounds(t *testing.T) {
	doc := mapdoc.NewSavedMap("test", 10, 10, 0.05)
	doc.Elements = mapdoc.Elements{
		mapdoc.NewRectangle(geometry.Point2D{X: -5, Y: -5}, geometry.Point2D{X: 20, Y: 20}, "#000000"),
	}

	g := RenderDocument(doc)
	assert.Len(t, g.Data, 100)
	assert.Equal(t, byte(raster.Occupied), g.At(0, 0))
	assert.Equal(t, byte(raster.Occupied), g.At(9, 9))
}

func TestExportOccupancyMappingAndFlip(t *testing.T) {
	g := raster.NewUniform(2, 2, raster.Free)
	g.Set(0, 0, raster.Occupied) // top-left in raster coordinates
	g.Set(1, 1, raster.Unknown)  // bottom-right

	out := ExportOccupancy(g, 0.05)

	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	// The export is bottom-up: the raster's bottom row comes first.
	assert.Equal(t, []int{0, -1, 100, 0}, out.Data)
	assert.InDelta(t, -0.05, out.OriginX, 1e-9)
	assert.InDelta(t, -0.05, out.OriginY, 1e-9)
}
