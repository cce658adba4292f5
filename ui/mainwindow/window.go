// Package mainwindow assembles the editor window: mode and tool
// selection, undo/redo, the apply actions for raster edits, and the
// canvas.
package mainwindow

import (
	"context"
	"log"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"robomap/internal/apiclient"
	"robomap/internal/app"
	"robomap/internal/editor"
	"robomap/internal/raster"
	"robomap/internal/render"
	"robomap/internal/selection"
	"robomap/ui/canvas"
	"robomap/ui/prefs"
)

// MainWindow is the editor's top-level window.
type MainWindow struct {
	win     fyne.Window
	session *app.Session
	client  *apiclient.Client
	canvas  *canvas.EditorCanvas
	prefs   *prefs.Prefs

	status    *widget.Label
	mapSelect *widget.Select
	smoothBtn *widget.Button
	maskBtn   *widget.Button

	// mapIDs maps display names to ids. The list reload runs on a
	// goroutine while the select callback reads it, so access is locked.
	mapMu  sync.Mutex
	mapIDs map[string]string
}

// New builds the main window on the given Fyne app.
func New(a fyne.App, session *app.Session, client *apiclient.Client, p *prefs.Prefs) *MainWindow {
	w := &MainWindow{
		win:     a.NewWindow("Robomap Editor"),
		session: session,
		client:  client,
		prefs:   p,
		mapIDs:  make(map[string]string),
	}

	w.canvas = canvas.New(session, render.GridConfig{
		Enabled: p.GridEnabled,
		Pitch:   p.GridPitch,
		Color:   "#e0e0e0",
	})
	w.status = widget.NewLabel("")

	w.session.On(app.EventError, func(data interface{}) {
		if msg, ok := data.(string); ok {
			w.status.SetText("Error: " + msg)
		}
	})
	w.session.On(app.EventProcessingChanged, func(data interface{}) {
		processing, _ := data.(bool)
		if processing {
			w.smoothBtn.Disable()
			w.maskBtn.Disable()
			w.status.SetText("Processing region...")
		} else {
			w.smoothBtn.Enable()
			w.maskBtn.Enable()
			w.status.SetText("")
		}
	})

	w.win.SetContent(container.NewBorder(
		w.buildToolbar(), w.status, nil, nil,
		container.NewScroll(w.canvas),
	))
	w.win.Resize(fyne.NewSize(1100, 760))

	w.reloadMapList()
	return w
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.win
}

// Show displays the window.
func (w *MainWindow) Show() {
	w.win.Show()
}

func (w *MainWindow) buildToolbar() fyne.CanvasObject {
	w.mapSelect = widget.NewSelect(nil, func(name string) {
		id, ok := w.mapID(name)
		if !ok {
			return
		}
		if err := w.session.OpenMap(context.Background(), id); err != nil {
			log.Printf("mainwindow: open map: %v", err)
		}
	})
	w.mapSelect.PlaceHolder = "Select map"

	mode := widget.NewSelect([]string{"Draw", "Raster"}, func(value string) {
		if value == "Raster" {
			w.session.SetMode(app.ModeRaster)
		} else {
			w.session.SetMode(app.ModeVector)
		}
	})
	mode.SetSelected("Draw")

	tool := widget.NewSelect([]string{"Line", "Rectangle", "Circle"}, func(value string) {
		switch value {
		case "Rectangle":
			w.session.SetVectorTool(editor.ToolRectangle)
			w.session.SetRasterTool(selection.ToolQuad)
		case "Circle":
			w.session.SetVectorTool(editor.ToolCircle)
			w.session.SetRasterTool(selection.ToolCircle)
		default:
			w.session.SetVectorTool(editor.ToolLine)
			w.session.SetRasterTool(selection.ToolLine)
		}
	})
	tool.SetSelected("Line")

	kernel := widget.NewEntry()
	kernel.SetText(strconv.Itoa(w.prefs.SmoothKernel))

	maskValue := widget.NewSelect([]string{"Occupied", "Unknown", "Free"}, nil)
	maskValue.SetSelected("Free")

	w.smoothBtn = widget.NewButton("Smooth", func() {
		k, err := strconv.Atoi(kernel.Text)
		if err != nil {
			w.status.SetText("Error: kernel size must be a number")
			return
		}
		w.session.ApplySmooth(k, true)
	})
	w.maskBtn = widget.NewButton("Mask", func() {
		w.session.ApplyMask(maskFillValue(maskValue.Selected))
	})

	return container.NewHBox(
		w.mapSelect,
		widget.NewSeparator(),
		mode,
		tool,
		widget.NewSeparator(),
		widget.NewButton("Undo", w.session.Undo),
		widget.NewButton("Redo", w.session.Redo),
		widget.NewButton("Delete", func() {
			w.session.DeleteSelected()
		}),
		widget.NewButton("Save", func() {
			if err := w.session.Save(context.Background()); err == nil {
				w.status.SetText("Map saved")
			}
		}),
		widget.NewSeparator(),
		kernel,
		w.smoothBtn,
		maskValue,
		w.maskBtn,
		widget.NewSeparator(),
		widget.NewButton("Zoom +", w.canvas.ZoomIn),
		widget.NewButton("Zoom -", w.canvas.ZoomOut),
	)
}

// reloadMapList fetches the saved maps and fills the selector.
func (w *MainWindow) reloadMapList() {
	go func() {
		maps, err := w.client.ListMaps(context.Background())
		if err != nil {
			w.status.SetText("Error: " + err.Error())
			return
		}

		names := make([]string, 0, len(maps))
		ids := make(map[string]string, len(maps))
		for _, m := range maps {
			names = append(names, m.Name)
			ids[m.Name] = m.ID
		}

		// Options and the id table swap together, so a name resolved
		// under the lock always matches the visible list.
		w.mapMu.Lock()
		w.mapSelect.SetOptions(names)
		w.mapIDs = ids
		w.mapMu.Unlock()
	}()
}

// mapID resolves a display name to the map id.
func (w *MainWindow) mapID(name string) (string, bool) {
	w.mapMu.Lock()
	defer w.mapMu.Unlock()
	id, ok := w.mapIDs[name]
	return id, ok
}

func maskFillValue(label string) int {
	switch label {
	case "Occupied":
		return raster.Occupied
	case "Unknown":
		return raster.Unknown
	default:
		return raster.Free
	}
}
