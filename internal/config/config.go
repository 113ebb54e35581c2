package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
	"github.com/OCharnyshevich/pointcrawl/pkg/terrain"
)

// Config holds the generator configuration.
type Config struct {
	Seed      int64 `json:"seed" env:"POINTCRAWL_SEED"`
	SiteCount int   `json:"site_count" env:"POINTCRAWL_SITE_COUNT"`
	Width     int   `json:"width" env:"POINTCRAWL_WIDTH"`   // canvas width in pixels
	Height    int   `json:"height" env:"POINTCRAWL_HEIGHT"` // canvas height in pixels

	NoiseBackend string  `json:"noise_backend" env:"POINTCRAWL_NOISE"` // "simplex", "perlin" or "opensimplex"
	Octaves      int     `json:"octaves" env:"POINTCRAWL_OCTAVES"`
	Persistence  float64 `json:"persistence" env:"POINTCRAWL_PERSISTENCE"`
	Increment    float64 `json:"increment" env:"POINTCRAWL_INCREMENT"`

	SampleSize  float64 `json:"sample_size" env:"POINTCRAWL_SAMPLE_SIZE"`
	MinDistance float64 `json:"min_distance" env:"POINTCRAWL_MIN_DISTANCE"`

	FirstBridge  float64 `json:"first_bridge" env:"POINTCRAWL_FIRST_BRIDGE"`
	SecondBridge float64 `json:"second_bridge" env:"POINTCRAWL_SECOND_BRIDGE"`
	ThirdBridge  float64 `json:"third_bridge" env:"POINTCRAWL_THIRD_BRIDGE"`

	Tables    string `json:"tables" env:"POINTCRAWL_TABLES"`         // built-in set name or directory
	TablesSrc string `json:"tables_src" env:"POINTCRAWL_TABLES_SRC"` // go-getter source fetched into Tables
	Archive   string `json:"archive" env:"POINTCRAWL_ARCHIVE"`       // sqlite path, empty = off
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteCount:    15,
		Width:        2480,
		Height:       1240,
		NoiseBackend: terrain.BackendPerlin,
		Octaves:      terrain.DefaultOctaves,
		Persistence:  terrain.DefaultPersistence,
		Increment:    terrain.DefaultIncrement,
		SampleSize:   pointcrawl.DefaultSampleSize,
		MinDistance:  partition.DefaultMinDistance,
		FirstBridge:  pointcrawl.DefaultFirstBridge,
		SecondBridge: pointcrawl.DefaultSecondBridge,
		ThirdBridge:  pointcrawl.DefaultThirdBridge,
		Tables:       "default",
	}
}

// ParseEnv overlays POINTCRAWL_* environment variables onto cfg. Unset
// variables leave fields unchanged.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["sites"] {
		cfg.SiteCount = fromFile.SiteCount
	}
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["noise"] {
		cfg.NoiseBackend = fromFile.NoiseBackend
	}
	if !explicitFlags["octaves"] {
		cfg.Octaves = fromFile.Octaves
	}
	if !explicitFlags["persistence"] {
		cfg.Persistence = fromFile.Persistence
	}
	if !explicitFlags["increment"] {
		cfg.Increment = fromFile.Increment
	}
	if !explicitFlags["sample-size"] {
		cfg.SampleSize = fromFile.SampleSize
	}
	if !explicitFlags["min-distance"] {
		cfg.MinDistance = fromFile.MinDistance
	}
	if !explicitFlags["tables"] {
		cfg.Tables = fromFile.Tables
	}
	if !explicitFlags["tables-src"] {
		cfg.TablesSrc = fromFile.TablesSrc
	}
	if !explicitFlags["archive"] {
		cfg.Archive = fromFile.Archive
	}
	// Bridge probabilities have no flags.
	cfg.FirstBridge = fromFile.FirstBridge
	cfg.SecondBridge = fromFile.SecondBridge
	cfg.ThirdBridge = fromFile.ThirdBridge
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.SiteCount < 1 {
		errs = append(errs, fmt.Errorf("site_count must be at least 1, got %d", c.SiteCount))
	}
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("canvas %dx%d is empty", c.Width, c.Height))
	}
	switch c.NoiseBackend {
	case terrain.BackendSimplex, terrain.BackendPerlin, terrain.BackendOpenSimplex:
	default:
		errs = append(errs, fmt.Errorf("unknown noise_backend %q", c.NoiseBackend))
	}
	if c.Octaves < 1 {
		errs = append(errs, fmt.Errorf("octaves must be at least 1, got %d", c.Octaves))
	}
	if c.Persistence <= 0 || c.Persistence >= 1 {
		errs = append(errs, fmt.Errorf("persistence must be in (0,1), got %v", c.Persistence))
	}
	if c.Increment <= 0 {
		errs = append(errs, fmt.Errorf("increment must be positive, got %v", c.Increment))
	}
	if c.SampleSize <= 0 {
		errs = append(errs, fmt.Errorf("sample_size must be positive, got %v", c.SampleSize))
	}
	if c.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("min_distance must not be negative, got %v", c.MinDistance))
	}
	for _, b := range []struct {
		name string
		p    float64
	}{
		{"first_bridge", c.FirstBridge},
		{"second_bridge", c.SecondBridge},
		{"third_bridge", c.ThirdBridge},
	} {
		if b.p < 0 || b.p > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", b.name, b.p))
		}
	}
	if c.Tables == "" {
		errs = append(errs, errors.New("tables must name a set or directory"))
	}
	return errors.Join(errs...)
}

// Options converts the config into generator options.
func (c *Config) Options() pointcrawl.Options {
	return pointcrawl.Options{
		SiteCount:  c.SiteCount,
		Width:      c.Width,
		Height:     c.Height,
		Increment:  c.Increment,
		SampleSize: c.SampleSize,
		Bridges: pointcrawl.BridgeBuilder{
			First:  c.FirstBridge,
			Second: c.SecondBridge,
			Third:  c.ThirdBridge,
		},
	}
}
