// Package apiclient provides the typed REST client for the map backend:
// map CRUD, raster image fetch, and region edit requests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"robomap/internal/mapdoc"
	"robomap/internal/raster"
	"robomap/internal/selection"
)

// APIError is a non-success HTTP response, carrying the server-provided
// message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Client talks to the map backend. All methods take a context; none of
// them retries — retries are user-initiated.
type Client struct {
	base string
	http *http.Client
}

// New creates a client against the given base URL, e.g.
// "http://localhost:3000".
func New(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// imagePayload is the wire form of a raster image.
type imagePayload struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   string `json:"data"`
}

type imageResponse struct {
	Image imagePayload `json:"image"`
}

// EditResult is the outcome of a region edit: the new raster and,
// optionally, updated map metadata.
type EditResult struct {
	Grid *raster.Grid
	Map  *mapdoc.SavedMap
}

type editResponse struct {
	Image imagePayload     `json:"image"`
	Map   *mapdoc.SavedMap `json:"map,omitempty"`
}

// ListMaps fetches all saved maps.
func (c *Client) ListMaps(ctx context.Context) ([]mapdoc.SavedMap, error) {
	var maps []mapdoc.SavedMap
	if err := c.do(ctx, http.MethodGet, "/api/maps", nil, &maps); err != nil {
		return nil, err
	}
	return maps, nil
}

// GetMap fetches one map by id.
func (c *Client) GetMap(ctx context.Context, id string) (*mapdoc.SavedMap, error) {
	var m mapdoc.SavedMap
	if err := c.do(ctx, http.MethodGet, "/api/maps/"+id, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMap creates or updates a map and returns the stored document.
func (c *Client) SaveMap(ctx context.Context, m *mapdoc.SavedMap) (*mapdoc.SavedMap, error) {
	var saved mapdoc.SavedMap
	if err := c.do(ctx, http.MethodPost, "/api/maps", m, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteMap removes a map.
func (c *Client) DeleteMap(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/maps/"+id, nil, nil)
}

// MapImage fetches and decodes the map's occupancy raster.
func (c *Client) MapImage(ctx context.Context, id string) (*raster.Grid, error) {
	var resp imageResponse
	if err := c.do(ctx, http.MethodGet, "/api/maps/"+id+"/image", nil, &resp); err != nil {
		return nil, err
	}
	return raster.Decode(resp.Image.Width, resp.Image.Height, resp.Image.Data)
}

// ApplyEdit posts a region edit request. The route is the operation name,
// so smooth and mask requests land on their own endpoints.
func (c *Client) ApplyEdit(ctx context.Context, mapID string, req *selection.Request) (*EditResult, error) {
	var resp editResponse
	path := fmt.Sprintf("/api/maps/%s/%s", mapID, req.Operation)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	grid, err := raster.Decode(resp.Image.Width, resp.Image.Height, resp.Image.Data)
	if err != nil {
		return nil, err
	}
	return &EditResult{Grid: grid, Map: resp.Map}, nil
}

// Stats fetches the occupancy statistics summary of one map's raster.
func (c *Client) Stats(ctx context.Context, id string) (*raster.Stats, error) {
	var s raster.Stats
	if err := c.do(ctx, http.MethodGet, "/api/maps/"+id+"/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CatalogStats fetches aggregate statistics over all saved maps.
func (c *Client) CatalogStats(ctx context.Context) (*mapdoc.CatalogStats, error) {
	var s mapdoc.CatalogStats
	if err := c.do(ctx, http.MethodGet, "/api/maps/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage extracts an {"error": "..."} message from an error body,
// if the server sent one.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return ""
}
