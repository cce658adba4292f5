// Package app provides the editor session: the single owner of the shape
// store, history, raster grid, and selection state for one open map,
// with an event boundary toward the UI.
package app

import (
	"context"
	"log"
	"sync"

	"robomap/internal/apiclient"
	"robomap/internal/editor"
	"robomap/internal/mapdoc"
	"robomap/internal/raster"
	"robomap/internal/selection"
	"robomap/pkg/geometry"
)

// Mode selects which interaction controller consumes pointer events.
type Mode int

const (
	ModeVector Mode = iota
	ModeRaster
)

// EventType identifies session events.
type EventType int

const (
	EventMapLoaded EventType = iota
	EventElementsChanged
	EventRasterChanged
	EventSelectionChanged
	EventModeChanged
	EventProcessingChanged
	EventError
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session owns the editable state of one open map. Every read and write
// of that state goes through a method holding s.mu — the background
// image fetch and the edit goroutine write the same fields the canvas
// reads, so no field is exposed directly. Installed grids and documents
// are treated as immutable; updates swap the pointer.
type Session struct {
	mu sync.RWMutex

	client *apiclient.Client

	currentMap *mapdoc.SavedMap
	vector     *editor.Controller
	raster     *selection.Controller
	grid       *raster.Grid

	mode       Mode
	processing bool

	// fetchCancel aborts the in-flight image fetch when the user switches
	// maps before it resolves.
	fetchCancel context.CancelFunc

	listeners map[EventType][]EventListener
}

// NewSession creates a session against the given backend client.
func NewSession(client *apiclient.Client) *Session {
	return &Session{
		client:    client,
		vector:    editor.NewController(nil),
		raster:    selection.NewController(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the event. Listeners run without the
// session lock held, so they may call back into the session.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Mode returns the active editing mode.
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches between vector and raster editing.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.Emit(EventModeChanged, m)
}

// Processing reports whether a region edit is in flight. While true the
// raster selection UI is disabled, so at most one edit request is
// outstanding per map.
func (s *Session) Processing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

// CurrentMap returns the open map document, if any.
func (s *Session) CurrentMap() *mapdoc.SavedMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMap
}

// Grid returns the occupancy raster of the open map, or nil while it is
// still loading.
func (s *Session) Grid() *raster.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// Elements returns the current vector element collection.
func (s *Session) Elements() mapdoc.Elements {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vector.Elements()
}

// Draft returns the in-progress vector draw gesture for preview
// rendering.
func (s *Session) Draft() (anchor, cursor geometry.Point2D, tool editor.Tool, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vector.Draft()
}

// Selection returns the active raster selection region, if any.
func (s *Session) Selection() (selection.Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raster.Region()
}

// SelectionHandle returns the raster selection handle being dragged.
func (s *Session) SelectionHandle() selection.HandleID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raster.ActiveHandle()
}

// SetVectorTool selects the vector draw tool.
func (s *Session) SetVectorTool(t editor.Tool) {
	s.mu.Lock()
	s.vector.SetTool(t)
	s.mu.Unlock()
}

// SetRasterTool switches the raster selection tool, clearing any current
// selection.
func (s *Session) SetRasterTool(t selection.Tool) {
	s.mu.Lock()
	s.raster.SetTool(t)
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, nil)
}

// Undo steps the vector history back one snapshot.
func (s *Session) Undo() {
	s.mu.Lock()
	s.vector.Undo()
	s.mu.Unlock()
	s.Emit(EventElementsChanged, nil)
}

// Redo steps the vector history forward one snapshot.
func (s *Session) Redo() {
	s.mu.Lock()
	s.vector.Redo()
	s.mu.Unlock()
	s.Emit(EventElementsChanged, nil)
}

// CanUndo reports whether undo is possible.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vector.CanUndo()
}

// CanRedo reports whether redo is possible.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vector.CanRedo()
}

// DeleteSelected removes the selected vector element.
func (s *Session) DeleteSelected() bool {
	s.mu.Lock()
	ok := s.vector.DeleteSelected()
	s.mu.Unlock()
	if ok {
		s.Emit(EventElementsChanged, nil)
	}
	return ok
}

// OpenMap loads a map document and starts the raster fetch. A previous
// in-flight fetch is cancelled so a stale response cannot overwrite the
// newer map's grid.
func (s *Session) OpenMap(ctx context.Context, id string) error {
	doc, err := s.client.GetMap(ctx, id)
	if err != nil {
		s.Emit(EventError, err.Error())
		return err
	}

	s.mu.Lock()
	if s.fetchCancel != nil {
		s.fetchCancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.fetchCancel = cancel

	s.currentMap = doc
	s.vector = editor.NewController(doc.Elements)
	s.raster = selection.NewController()
	s.grid = nil
	s.mu.Unlock()

	s.Emit(EventMapLoaded, doc)
	s.Emit(EventElementsChanged, nil)
	s.Emit(EventRasterChanged, nil)

	go s.fetchImage(fetchCtx, id)
	return nil
}

// fetchImage loads the occupancy raster for the map. Decode failures
// leave the canvas blank and surface an error banner. OpenMap cancels
// the previous fetch while holding s.mu, so the cancellation check runs
// under the same lock: a fetch whose response raced the cancel can never
// install its grid over the newer map's.
func (s *Session) fetchImage(ctx context.Context, id string) {
	grid, err := s.client.MapImage(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			s.Emit(EventError, err.Error())
		}
		return
	}

	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		log.Printf("session: discarding stale image for map %s", id)
		return
	}
	s.grid = grid
	s.mu.Unlock()
	s.Emit(EventRasterChanged, nil)
}

// PointerDown routes a pointer-down to the active controller.
func (s *Session) PointerDown(p geometry.Point2D) {
	s.mu.Lock()
	if s.mode == ModeRaster {
		if s.processing {
			s.mu.Unlock()
			return
		}
		s.raster.PointerDown(p)
		s.mu.Unlock()
		s.Emit(EventSelectionChanged, nil)
		return
	}
	s.vector.PointerDown(p)
	s.mu.Unlock()
	s.Emit(EventElementsChanged, nil)
}

// PointerMove routes a pointer-move to the active controller.
func (s *Session) PointerMove(p geometry.Point2D) {
	s.mu.Lock()
	if s.mode == ModeRaster {
		if s.processing {
			s.mu.Unlock()
			return
		}
		s.raster.PointerMove(p)
		s.mu.Unlock()
		s.Emit(EventSelectionChanged, nil)
		return
	}
	s.vector.PointerMove(p)
	s.mu.Unlock()
	s.Emit(EventElementsChanged, nil)
}

// PointerUp routes a pointer-up to the active controller.
func (s *Session) PointerUp(p geometry.Point2D) {
	s.mu.Lock()
	if s.mode == ModeRaster {
		if s.processing {
			s.mu.Unlock()
			return
		}
		s.raster.PointerUp(p)
		s.mu.Unlock()
		s.Emit(EventSelectionChanged, nil)
		return
	}
	s.vector.PointerUp(p)
	s.mu.Unlock()
	s.Emit(EventElementsChanged, nil)
}

// ApplySmooth builds and sends a smooth request for the active selection.
func (s *Session) ApplySmooth(kernelSize int, quantize bool) {
	s.applyEdit(func(r *selection.Region) (*selection.Request, error) {
		return selection.BuildSmooth(r, kernelSize, quantize)
	})
}

// ApplyMask builds and sends a mask request for the active selection.
func (s *Session) ApplyMask(value int) {
	s.applyEdit(func(r *selection.Region) (*selection.Request, error) {
		return selection.BuildMask(r, value)
	})
}

func (s *Session) applyEdit(build func(*selection.Region) (*selection.Request, error)) {
	s.mu.Lock()
	if s.processing || s.currentMap == nil {
		s.mu.Unlock()
		return
	}
	mapID := s.currentMap.ID
	var region *selection.Region
	if r, ok := s.raster.Region(); ok {
		region = &r
	}
	s.mu.Unlock()

	req, err := build(region)
	if err != nil {
		s.Emit(EventError, err.Error())
		return
	}

	s.setProcessing(true)
	go func() {
		result, err := s.client.ApplyEdit(context.Background(), mapID, req)
		if err != nil {
			// The selection is preserved so the user can retry.
			s.setProcessing(false)
			s.Emit(EventError, err.Error())
			return
		}

		s.mu.Lock()
		s.grid = result.Grid
		if result.Map != nil {
			s.currentMap = result.Map
		}
		s.raster.Clear()
		s.mu.Unlock()

		s.setProcessing(false)
		s.Emit(EventSelectionChanged, nil)
		s.Emit(EventRasterChanged, nil)
	}()
}

func (s *Session) setProcessing(v bool) {
	s.mu.Lock()
	s.processing = v
	s.mu.Unlock()
	s.Emit(EventProcessingChanged, v)
}

// Save pushes the current elements to the backend and refreshes the
// stored document.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.currentMap == nil {
		s.mu.Unlock()
		return nil
	}
	doc := s.currentMap
	doc.Elements = s.vector.Elements()
	doc.Touch()
	s.mu.Unlock()

	saved, err := s.client.SaveMap(ctx, doc)
	if err != nil {
		s.Emit(EventError, err.Error())
		return err
	}

	s.mu.Lock()
	s.currentMap = saved
	s.mu.Unlock()
	return nil
}
