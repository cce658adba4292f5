package server

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"robomap/internal/raster"
	"robomap/internal/selection"
	"robomap/pkg/geometry"
)

// ApplySmooth blurs the region polygon with an odd Gaussian kernel,
// leaving cells outside the polygon untouched. With quantize set, the
// smoothed cells snap back to the nearest occupancy constant.
func ApplySmooth(g *raster.Grid, req *selection.Request) (*raster.Grid, error) {
	k := req.Params.KernelSize
	if k < 1 || k%2 == 0 {
		return nil, fmt.Errorf("kernel size must be a positive odd integer, got %d", k)
	}

	src, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8U, g.Data)
	if err != nil {
		return nil, fmt.Errorf("wrap raster: %w", err)
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	mask := regionMask(g.Width, g.Height, req.PolygonPoints)
	defer mask.Close()
	blurred.CopyToWithMask(&src, mask)

	out := &raster.Grid{Width: g.Width, Height: g.Height, Data: src.ToBytes()}
	if req.Params.Quantize {
		quantizeRegion(out, req)
	}
	return out, nil
}

// ApplyMask fills the region polygon with the requested occupancy value.
func ApplyMask(g *raster.Grid, req *selection.Request) (*raster.Grid, error) {
	if req.Params.Value == nil {
		return nil, fmt.Errorf("mask request has no fill value")
	}
	v := *req.Params.Value
	if v != raster.Occupied && v != raster.Unknown && v != raster.Free {
		return nil, fmt.Errorf("mask value must be %d, %d or %d, got %d",
			raster.Occupied, raster.Unknown, raster.Free, v)
	}

	src, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8U, g.Data)
	if err != nil {
		return nil, fmt.Errorf("wrap raster: %w", err)
	}
	defer src.Close()

	pts := polygonVector(req.PolygonPoints)
	defer pts.Close()
	fill := uint8(v)
	gocv.FillPoly(&src, pts, color.RGBA{R: fill, G: fill, B: fill, A: 255})

	return &raster.Grid{Width: g.Width, Height: g.Height, Data: src.ToBytes()}, nil
}

// regionMask builds a single-channel mask with the polygon filled white.
func regionMask(width, height int, polygon []geometry.PointInt) gocv.Mat {
	mask := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8U)
	pts := polygonVector(polygon)
	defer pts.Close()
	gocv.FillPoly(&mask, pts, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return mask
}

func polygonVector(polygon []geometry.PointInt) gocv.PointsVector {
	points := make([]image.Point, len(polygon))
	for i, p := range polygon {
		points[i] = image.Pt(p.X, p.Y)
	}
	return gocv.NewPointsVectorFromPoints([][]image.Point{points})
}

// quantizeRegion snaps every cell inside the region polygon to the
// nearest occupancy constant.
func quantizeRegion(g *raster.Grid, req *selection.Request) {
	polygon := make([]geometry.Point2D, len(req.PolygonPoints))
	for i, p := range req.PolygonPoints {
		polygon[i] = p.ToFloat()
	}

	box := req.BoundingBox
	for y := box.Y; y < box.Y+box.Height; y++ {
		for x := box.X; x < box.X+box.Width; x++ {
			center := geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !geometry.PointInPolygon(center, polygon) {
				continue
			}
			g.Set(x, y, nearestOccupancy(g.At(x, y)))
		}
	}
}

func nearestOccupancy(v byte) byte {
	levels := []byte{raster.Occupied, raster.Unknown, raster.Free}
	best := levels[0]
	bestDist := distance(v, best)
	for _, l := range levels[1:] {
		if d := distance(v, l); d < bestDist {
			best = l
			bestDist = d
		}
	}
	return best
}

func distance(a, b byte) int {
	return abs(int(a) - int(b))
}
