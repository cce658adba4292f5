package mapdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"robomap/pkg/geometry"
)

func TestSummarizeCatalog(t *testing.T) {
	a := NewSavedMap("a", 10, 10, 0.05)
	a.Elements = Elements{
		NewLine(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 5, Y: 0}, "#000000"),
		NewRectangle(geometry.Point2D{X: 1, Y: 1}, geometry.Point2D{X: 4, Y: 4}, "#000000"),
	}
	b := NewSavedMap("b", 10, 10, 0.05)
	b.Elements = Elements{
		NewLine(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 0, Y: 5}, "#000000"),
	}

	s := SummarizeCatalog([]SavedMap{*a, *b})
	assert.Equal(t, 2, s.TotalMaps)
	assert.Equal(t, 3, s.TotalElements)
	assert.Equal(t, 2, s.MapsByType["line"])
	assert.Equal(t, 1, s.MapsByType["rectangle"])
	assert.InDelta(t, 1.5, s.AverageElementsPerMap, 1e-9)
}

func TestSummarizeCatalogEmpty(t *testing.T) {
	s := SummarizeCatalog(nil)
	assert.Equal(t, 0, s.TotalMaps)
	assert.Zero(t, s.AverageElementsPerMap)
	assert.Empty(t, s.MapsByType)
}
