package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/pointcrawl/internal/archive"
	"github.com/OCharnyshevich/pointcrawl/internal/config"
	"github.com/OCharnyshevich/pointcrawl/internal/storage"
	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
	"github.com/OCharnyshevich/pointcrawl/pkg/tables"
	"github.com/OCharnyshevich/pointcrawl/pkg/terrain"
)

func main() {
	cfg := config.DefaultConfig()

	dataDir := flag.String("data", ".", "directory holding config.json and saved maps")
	verbose := flag.Bool("v", false, "log every pipeline stage")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.SiteCount, "sites", cfg.SiteCount, "number of sites")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")
	flag.StringVar(&cfg.NoiseBackend, "noise", cfg.NoiseBackend, "noise backend: simplex, perlin or opensimplex")
	flag.IntVar(&cfg.Octaves, "octaves", cfg.Octaves, "noise octaves")
	flag.Float64Var(&cfg.Persistence, "persistence", cfg.Persistence, "noise falloff per octave")
	flag.Float64Var(&cfg.Increment, "increment", cfg.Increment, "noise step per pixel")
	flag.Float64Var(&cfg.SampleSize, "sample-size", cfg.SampleSize, "half-width of the classification window")
	flag.Float64Var(&cfg.MinDistance, "min-distance", cfg.MinDistance, "minimum spacing between sites")
	flag.StringVar(&cfg.Tables, "tables", cfg.Tables, "built-in table set or table directory")
	flag.StringVar(&cfg.TablesSrc, "tables-src", cfg.TablesSrc, "go-getter source fetched into -tables before loading")
	flag.StringVar(&cfg.Archive, "archive", cfg.Archive, "sqlite archive path, empty disables archiving")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, explicit, *dataDir, os.Stdout, log); err != nil {
		log.Error("pointcrawl failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, explicit map[string]bool, dataDir string, out io.Writer, log *slog.Logger) error {
	store, err := storage.New(dataDir, log)
	if err != nil {
		return err
	}

	// Precedence: defaults < config.json < environment < explicit flags.
	fromFile := *cfg
	if err := store.LoadConfig(&fromFile); err != nil {
		return err
	}
	if err := config.ParseEnv(&fromFile); err != nil {
		return err
	}
	config.Merge(cfg, &fromFile, explicit)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	content, err := tables.Resolve(ctx, cfg.Tables, cfg.TablesSrc)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	noise, err := terrain.NewNoise(cfg.NoiseBackend, cfg.Seed, cfg.Octaves, cfg.Persistence)
	if err != nil {
		return err
	}
	provider := partition.Voronoi{MinDistance: cfg.MinDistance}

	gen := pointcrawl.NewGenerator(cfg.Options(), noise, provider, content, log)
	m, err := gen.Generate(ctx, cfg.Seed)
	if err != nil {
		return err
	}

	// A failed archive must leave maps/<seed>.json as it was.
	if cfg.Archive != "" {
		if err := archiveMap(ctx, cfg.Archive, m); err != nil {
			return err
		}
		log.Info("archived map", "path", cfg.Archive, "seed", m.Seed)
	}
	if _, err := store.SaveMap(m); err != nil {
		return err
	}

	printMap(out, m)
	return nil
}

func archiveMap(ctx context.Context, path string, m *pointcrawl.Map) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.SaveMap(ctx, m)
}

func printMap(w io.Writer, m *pointcrawl.Map) {
	cells := make(map[int]pointcrawl.BlockType, len(m.Cells))
	for _, c := range m.Cells {
		cells[c.ID] = c.Type
	}
	deg := m.Degree()
	fmt.Fprintf(w, "seed %d: %d sites, %d bridges\n", m.Seed, len(m.Sites), len(m.Bridges))
	for _, s := range m.Sites {
		fmt.Fprintf(w, "%s [%s, %s, %d bridges]\n    %s\n",
			s.Content.Title(s.ID), s.Biome, cells[s.ID], deg[s.ID], s.Content.FeatureLine())
	}
}
