package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"robomap/internal/mapdoc"
	"robomap/internal/raster"
)

// ErrNotFound is returned for unknown map ids.
var ErrNotFound = errors.New("map not found")

const schema = `
CREATE TABLE IF NOT EXISTS maps (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    doc      TEXT NOT NULL,
    modified TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rasters (
    map_id TEXT PRIMARY KEY REFERENCES maps(id) ON DELETE CASCADE,
    width  INTEGER NOT NULL,
    height INTEGER NOT NULL,
    data   BLOB NOT NULL
);
`

// Store persists map documents and their occupancy rasters in sqlite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the sqlite database at path and
// applies the schema.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListMaps returns all saved map documents.
func (s *Store) ListMaps(ctx context.Context) ([]mapdoc.SavedMap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM maps ORDER BY modified DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps := []mapdoc.SavedMap{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var m mapdoc.SavedMap
		if err := json.Unmarshal([]byte(doc), &m); err != nil {
			return nil, fmt.Errorf("decode map document: %w", err)
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// GetMap returns one map document by id.
func (s *Store) GetMap(ctx context.Context, id string) (*mapdoc.SavedMap, error) {
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM maps WHERE id = ?`, id)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var m mapdoc.SavedMap
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return nil, fmt.Errorf("decode map document: %w", err)
	}
	return &m, nil
}

// SaveMap inserts or updates a map document, assigning an id when the
// document has none.
func (s *Store) SaveMap(ctx context.Context, m *mapdoc.SavedMap) (*mapdoc.SavedMap, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
		m.Created = time.Now().UTC()
	}
	m.Modified = time.Now().UTC()

	doc, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode map document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO maps (id, name, doc, modified) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name = excluded.name,
            doc = excluded.doc, modified = excluded.modified
    `, m.ID, m.Name, string(doc), m.Modified.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMap removes a map and its raster.
func (s *Store) DeleteMap(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM rasters WHERE map_id = ?`, id)
	return err
}

// GetRaster returns the stored occupancy raster for a map, or ErrNotFound
// when none has been stored yet.
func (s *Store) GetRaster(ctx context.Context, mapID string) (*raster.Grid, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT width, height, data FROM rasters WHERE map_id = ?`, mapID)

	var g raster.Grid
	if err := row.Scan(&g.Width, &g.Height, &g.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(g.Data) != g.Width*g.Height {
		return nil, fmt.Errorf("stored raster for %s is corrupt", mapID)
	}
	return &g, nil
}

// SaveRaster stores the occupancy raster for a map.
func (s *Store) SaveRaster(ctx context.Context, mapID string, g *raster.Grid) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rasters (map_id, width, height, data) VALUES (?, ?, ?, ?)
        ON CONFLICT(map_id) DO UPDATE SET width = excluded.width,
            height = excluded.height, data = excluded.data
    `, mapID, g.Width, g.Height, g.Data)
	return err
}
