package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OCharnyshevich/pointcrawl/internal/config"
	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

// ErrMapNotFound is returned by LoadMap when no map was saved under a seed.
var ErrMapNotFound = errors.New("map not found")

// Storage handles file-based persistence for the config and generated maps.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "maps"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	return s.atomicWriteJSON(filepath.Join(s.dir, "config.json"), cfg)
}

// SaveMap writes m to maps/<seed>.json atomically and returns the path.
func (s *Storage) SaveMap(m *pointcrawl.Map) (string, error) {
	path := s.mapPath(m.Seed)
	if err := s.atomicWriteJSON(path, MapFileFromMap(m)); err != nil {
		return "", fmt.Errorf("save map %d: %w", m.Seed, err)
	}
	s.log.Info("saved map", "path", path, "sites", len(m.Sites))
	return path, nil
}

// LoadMap reads the map saved under seed.
func (s *Storage) LoadMap(seed int64) (*pointcrawl.Map, error) {
	data, err := os.ReadFile(s.mapPath(seed))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seed %d: %w", seed, ErrMapNotFound)
		}
		return nil, fmt.Errorf("read map %d: %w", seed, err)
	}

	var mf MapFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse map %d: %w", seed, err)
	}
	if mf.Version != MapFileVersion {
		return nil, fmt.Errorf("map %d: unsupported version %d", seed, mf.Version)
	}
	return mf.Map, nil
}

// Seeds lists the seeds of all saved maps in ascending order.
func (s *Storage) Seeds() ([]int64, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "maps"))
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	var seeds []int64
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		var seed int64
		if _, err := fmt.Sscan(name, &seed); err != nil {
			continue
		}
		seeds = append(seeds, seed)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	return seeds, nil
}

func (s *Storage) mapPath(seed int64) string {
	return filepath.Join(s.dir, "maps", fmt.Sprintf("%d.json", seed))
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
