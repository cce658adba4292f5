package mapdoc

import (
	"time"

	"github.com/google/uuid"
)

// Waypoint is a named navigation target on a map.
type Waypoint struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Orientation float64 `json:"orientation"` // yaw in radians
	Description string  `json:"description,omitempty"`
}

// Path connects two waypoints, either directly or through intermediate
// points.
type Path struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name,omitempty"`
	Kind               string              `json:"type"` // "direct" or "winding"
	StartWaypointID    string              `json:"startWaypointId"`
	EndWaypointID      string              `json:"endWaypointId"`
	IntermediatePoints []map[string]float64 `json:"intermediatePoints,omitempty"`
	Orientation        *float64            `json:"orientation,omitempty"`
}

// SavedMap is the persisted map document: the drawn elements plus grid
// dimensions and resolution, with optional waypoints and paths.
type SavedMap struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Elements   Elements   `json:"elements"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Resolution float64    `json:"resolution"` // meters per raster unit
	Created    time.Time  `json:"created"`
	Modified   time.Time  `json:"modified"`
	Waypoints  []Waypoint `json:"waypoints,omitempty"`
	Paths      []Path     `json:"paths,omitempty"`
}

// NewSavedMap creates an empty map document with the given dimensions.
func NewSavedMap(name string, width, height int, resolution float64) *SavedMap {
	now := time.Now().UTC()
	return &SavedMap{
		ID:         uuid.NewString(),
		Name:       name,
		Elements:   Elements{},
		Width:      width,
		Height:     height,
		Resolution: resolution,
		Created:    now,
		Modified:   now,
	}
}

// Touch updates the modification timestamp.
func (m *SavedMap) Touch() {
	m.Modified = time.Now().UTC()
}
