// Package raster provides the grayscale occupancy raster: decoding the
// backend wire format into a byte grid, converting it for display, and
// summarizing occupancy.
package raster

import (
	"encoding/base64"
	"fmt"
	"image"
)

// Occupancy values, one byte per cell.
const (
	Occupied = 0
	Unknown  = 205
	Free     = 254
)

// Grid is a width x height grayscale occupancy raster, one byte per
// cell, row-major.
type Grid struct {
	Width  int
	Height int
	Data   []byte
}

// Decode decodes the backend image payload: base64 grayscale bytes of
// length width*height.
func Decode(width, height int, encoded string) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode raster data: %w", err)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("raster data length %d does not match %dx%d",
			len(data), width, height)
	}

	return &Grid{Width: width, Height: height, Data: data}, nil
}

// Encode returns the grid data as base64 for the wire.
func (g *Grid) Encode() string {
	return base64.StdEncoding.EncodeToString(g.Data)
}

// At returns the occupancy value at (x, y). Out-of-range cells read as
// Unknown.
func (g *Grid) At(x, y int) byte {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Unknown
	}
	return g.Data[y*g.Width+x]
}

// Set writes the occupancy value at (x, y), ignoring out-of-range cells.
func (g *Grid) Set(x, y int, v byte) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Data[y*g.Width+x] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]byte, len(g.Data))
	copy(data, g.Data)
	return &Grid{Width: g.Width, Height: g.Height, Data: data}
}

// ToRGBA converts the grid for display: each byte broadcast to R, G and
// B with alpha 255.
func (g *Grid) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Data {
		img.Pix[i*4] = v
		img.Pix[i*4+1] = v
		img.Pix[i*4+2] = v
		img.Pix[i*4+3] = 255
	}
	return img
}

// NewUniform creates a grid filled with the given occupancy value.
func NewUniform(width, height int, v byte) *Grid {
	data := make([]byte, width*height)
	for i := range data {
		data[i] = v
	}
	return &Grid{Width: width, Height: height, Data: data}
}
