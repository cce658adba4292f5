package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"robomap/internal/mapdoc"
	"robomap/internal/raster"
	"robomap/internal/selection"
)

// Handler serves the map API over the store.
type Handler struct {
	store *Store
}

// NewHandler creates a handler over the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Register mounts all map routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/api/maps", h.ListMaps)
	app.Post("/api/maps", h.SaveMap)
	// Static route, registered before :id so "stats" never resolves as
	// a map id.
	app.Get("/api/maps/stats", h.GetCatalogStats)
	app.Get("/api/maps/:id", h.GetMap)
	app.Delete("/api/maps/:id", h.DeleteMap)
	app.Get("/api/maps/:id/image", h.GetImage)
	app.Get("/api/maps/:id/stats", h.GetStats)
	app.Get("/api/maps/:id/grid", h.GetOccupancyGrid)
	app.Post("/api/maps/:id/smooth", h.Smooth)
	app.Post("/api/maps/:id/mask", h.Mask)
}

// ListMaps returns all saved maps.
func (h *Handler) ListMaps(c fiber.Ctx) error {
	maps, err := h.store.ListMaps(c.Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(maps)
}

// GetMap returns one map document.
func (h *Handler) GetMap(c fiber.Ctx) error {
	m, err := h.store.GetMap(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(m)
}

// SaveMap creates or updates a map document.
func (h *Handler) SaveMap(c fiber.Ctx) error {
	var m mapdoc.SavedMap
	if err := json.Unmarshal(c.Body(), &m); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if m.Width <= 0 || m.Height <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "map dimensions must be positive"})
	}

	saved, err := h.store.SaveMap(c.Context(), &m)
	if err != nil {
		return serverError(c, err)
	}
	log.Printf("[MAPS] saved map %s (%d elements)", saved.ID, len(saved.Elements))
	return c.JSON(saved)
}

// DeleteMap removes a map.
func (h *Handler) DeleteMap(c fiber.Ctx) error {
	if err := h.store.DeleteMap(c.Context(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "map deleted"})
}

// GetImage returns the map's occupancy raster, rendering one from the
// drawn elements when no raster has been stored yet.
func (h *Handler) GetImage(c fiber.Ctx) error {
	g, _, err := h.loadRaster(c)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"image": imageJSON(g)})
}

// GetCatalogStats returns aggregate statistics over all saved maps.
func (h *Handler) GetCatalogStats(c fiber.Ctx) error {
	maps, err := h.store.ListMaps(c.Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(mapdoc.SummarizeCatalog(maps))
}

// GetStats returns the occupancy summary of the map's raster.
func (h *Handler) GetStats(c fiber.Ctx) error {
	g, _, err := h.loadRaster(c)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(raster.Summarize(g))
}

// GetOccupancyGrid exports the map in the ROS occupancy format.
func (h *Handler) GetOccupancyGrid(c fiber.Ctx) error {
	g, doc, err := h.loadRaster(c)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(ExportOccupancy(g, doc.Resolution))
}

// Smooth applies a Gaussian smooth to the requested region.
func (h *Handler) Smooth(c fiber.Ctx) error {
	return h.applyEdit(c, selection.OpSmooth, ApplySmooth)
}

// Mask fills the requested region with an occupancy value.
func (h *Handler) Mask(c fiber.Ctx) error {
	return h.applyEdit(c, selection.OpMask, ApplyMask)
}

func (h *Handler) applyEdit(c fiber.Ctx, op selection.Operation,
	apply func(*raster.Grid, *selection.Request) (*raster.Grid, error)) error {

	var req selection.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Operation != op {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "operation does not match route"})
	}
	if len(req.PolygonPoints) < 3 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "polygon needs at least 3 points"})
	}

	g, doc, err := h.loadRaster(c)
	if err != nil {
		return storeError(c, err)
	}

	edited, err := apply(g, &req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.store.SaveRaster(c.Context(), doc.ID, edited); err != nil {
		return serverError(c, err)
	}
	log.Printf("[MAPS] %s applied to map %s, region %dx%d",
		op, doc.ID, req.BoundingBox.Width, req.BoundingBox.Height)

	return c.JSON(fiber.Map{
		"image": imageJSON(edited),
		"map":   doc,
	})
}

// loadRaster fetches the map's stored raster, falling back to rendering
// the document elements.
func (h *Handler) loadRaster(c fiber.Ctx) (*raster.Grid, *mapdoc.SavedMap, error) {
	doc, err := h.store.GetMap(c.Context(), c.Params("id"))
	if err != nil {
		return nil, nil, err
	}

	g, err := h.store.GetRaster(c.Context(), doc.ID)
	if errors.Is(err, ErrNotFound) {
		return RenderDocument(doc), doc, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return g, doc, nil
}

func imageJSON(g *raster.Grid) fiber.Map {
	return fiber.Map{
		"width":  g.Width,
		"height": g.Height,
		"data":   g.Encode(),
	}
}

func storeError(c fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "map not found"})
	}
	return serverError(c, err)
}

func serverError(c fiber.Ctx, err error) error {
	log.Printf("[MAPS] internal error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
