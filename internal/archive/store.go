// Package archive keeps generated maps in a SQLite database so earlier seeds
// can be listed, searched by biome and reloaded without regenerating them.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/pointcrawl/internal/archive/migrations"
	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

// ErrNotFound is returned when no map is archived under a seed.
var ErrNotFound = errors.New("archived map not found")

// Summary is one row of the archive listing.
type Summary struct {
	Seed      int64
	Width     int
	Height    int
	Sites     int
	Bridges   int
	CreatedAt time.Time
}

// SiteRecord is an archived site, flattened for search results.
type SiteRecord struct {
	Seed      int64
	SiteID    int
	Biome     pointcrawl.Biome
	BlockType pointcrawl.BlockType
	Score     float64
	Title     string
	Features  string
}

// Store persists maps in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the archive at path, creating it and applying migrations as
// needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveMap archives m and one row per site. A map already archived under the
// same seed is replaced in the same transaction.
func (s *Store) SaveMap(ctx context.Context, m *pointcrawl.Map) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("map is required")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal map: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sites WHERE seed = ?`, m.Seed); err != nil {
		return fmt.Errorf("clear sites %d: %w", m.Seed, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM maps WHERE seed = ?`, m.Seed); err != nil {
		return fmt.Errorf("clear map %d: %w", m.Seed, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO maps (seed, width, height, site_count, bridge_count, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Seed, m.Width, m.Height, len(m.Sites), len(m.Bridges), string(body), s.now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert map: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sites (seed, site_id, biome, block_type, score, title, features)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare site insert: %w", err)
	}
	defer stmt.Close()

	for i, site := range m.Sites {
		block := pointcrawl.BlockDefault
		if i < len(m.Cells) {
			block = m.Cells[i].Type
		}
		if _, err := stmt.ExecContext(ctx,
			m.Seed, site.ID, site.Biome.String(), block.String(), site.Score,
			site.Content.Title(site.ID), site.Content.FeatureLine(),
		); err != nil {
			return fmt.Errorf("insert site %d: %w", site.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive transaction: %w", err)
	}
	return nil
}

// LoadMap returns the map archived under seed.
func (s *Store) LoadMap(ctx context.Context, seed int64) (*pointcrawl.Map, error) {
	var body string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT body FROM maps WHERE seed = ?`, seed).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("seed %d: %w", seed, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load map %d: %w", seed, err)
	}
	var m pointcrawl.Map
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return nil, fmt.Errorf("decode map %d: %w", seed, err)
	}
	return &m, nil
}

// List returns every archived map ordered by seed.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seed, width, height, site_count, bridge_count, created_at FROM maps ORDER BY seed`)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var created int64
		if err := rows.Scan(&sum.Seed, &sum.Width, &sum.Height, &sum.Sites, &sum.Bridges, &created); err != nil {
			return nil, fmt.Errorf("scan map row: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// SitesByBiome returns archived sites of biome across all maps, ordered by
// seed then site id.
func (s *Store) SitesByBiome(ctx context.Context, biome pointcrawl.Biome) ([]SiteRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seed, site_id, biome, block_type, score, title, features
		 FROM sites WHERE biome = ? ORDER BY seed, site_id`, biome.String())
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	var out []SiteRecord
	for rows.Next() {
		var r SiteRecord
		var biomeName, blockName string
		if err := rows.Scan(&r.Seed, &r.SiteID, &biomeName, &blockName, &r.Score, &r.Title, &r.Features); err != nil {
			return nil, fmt.Errorf("scan site row: %w", err)
		}
		if r.Biome, err = pointcrawl.ParseBiome(biomeName); err != nil {
			return nil, err
		}
		if err := r.BlockType.UnmarshalText([]byte(blockName)); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes the map archived under seed along with its sites.
func (s *Store) Delete(ctx context.Context, seed int64) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM maps WHERE seed = ?`, seed)
	if err != nil {
		return fmt.Errorf("delete map %d: %w", seed, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("seed %d: %w", seed, ErrNotFound)
	}
	return nil
}
