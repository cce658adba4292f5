package mainwindow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robomap/internal/apiclient"
	"robomap/internal/app"
	"robomap/internal/mapdoc"
	"robomap/ui/prefs"
)

func newTestWindow(t *testing.T, maps []mapdoc.SavedMap) *MainWindow {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/maps" {
			json.NewEncoder(w).Encode(maps)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "map not found"})
	}))
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL)
	return New(test.NewApp(), app.NewSession(client), client, prefs.Defaults())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never held")
}

func TestMapListPopulatesSelector(t *testing.T) {
	w := newTestWindow(t, []mapdoc.SavedMap{
		{ID: "m1", Name: "warehouse"},
		{ID: "m2", Name: "office"},
	})

	waitFor(t, func() bool {
		_, ok := w.mapID("office")
		return ok
	})
	assert.Equal(t, []string{"warehouse", "office"}, w.mapSelect.Options)

	id, ok := w.mapID("office")
	require.True(t, ok)
	assert.Equal(t, "m2", id)

	_, ok = w.mapID("missing")
	assert.False(t, ok)
}

func TestMapListReloadDuringLookup(t *testing.T) {
	// The reload goroutine swaps the name-to-id table while the select
	// callback resolves names against it.
	w := newTestWindow(t, []mapdoc.SavedMap{{ID: "m1", Name: "warehouse"}})
	waitFor(t, func() bool {
		_, ok := w.mapID("warehouse")
		return ok
	})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if id, ok := w.mapID("warehouse"); ok {
				assert.Equal(t, "m1", id)
			}
		}
	}()

	for i := 0; i < 20; i++ {
		w.reloadMapList()
	}
	waitFor(t, func() bool {
		id, ok := w.mapID("warehouse")
		return ok && id == "m1"
	})

	close(stop)
	wg.Wait()
}
