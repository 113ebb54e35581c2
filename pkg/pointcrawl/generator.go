package pointcrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
	"github.com/OCharnyshevich/pointcrawl/pkg/terrain"
)

// Options configures one generator.
type Options struct {
	SiteCount  int
	Width      int // canvas width; the height field covers the whole canvas
	Height     int
	Increment  float64
	SampleSize float64
	Bridges    BridgeBuilder
}

// DefaultOptions returns the standard 15-site, 2480×1240 layout.
func DefaultOptions() Options {
	return Options{
		SiteCount:  15,
		Width:      2480,
		Height:     1240,
		Increment:  terrain.DefaultIncrement,
		SampleSize: DefaultSampleSize,
		Bridges:    DefaultBridges(),
	}
}

// Generator runs the pointcrawl pipeline.
type Generator struct {
	opts      Options
	noise     terrain.Noise
	field     ChannelReader
	partition partition.Provider
	tables    *ContentTables
	log       *slog.Logger
}

// NewGenerator creates a Generator. tables is copied per run and never
// modified. A nil log uses slog.Default.
func NewGenerator(opts Options, noise terrain.Noise, p partition.Provider, tables *ContentTables, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		opts:      opts,
		noise:     noise,
		partition: p,
		tables:    tables,
		log:       log,
	}
}

// UseField makes the generator classify against a prebuilt field instead of
// generating one from noise.
func (g *Generator) UseField(field ChannelReader) {
	g.field = field
}

// GenerationContext is the state of a single run. Stages mutate it strictly
// in order; it is discarded once the Map is built.
type GenerationContext struct {
	rng       *rand.Rand
	region    Region
	field     ChannelReader
	partition *partition.Partition
	content   *ContentAssigner

	Sites []Site
	Cells []Cell
	Edges []Edge
}

// Generate builds a pointcrawl from seed. The same seed, options and inputs
// always produce the same Map.
func (g *Generator) Generate(ctx context.Context, seed int64) (*Map, error) {
	if g.opts.SiteCount < 1 {
		return nil, fmt.Errorf("site count must be at least 1, got %d", g.opts.SiteCount)
	}
	if g.tables == nil {
		return nil, errors.New("no content tables configured")
	}
	if n := len(g.tables.Descriptors); g.opts.SiteCount > n {
		return nil, fmt.Errorf("%d sites, %d descriptors: %w", g.opts.SiteCount, n, ErrDescriptorPoolExhausted)
	}

	gc := &GenerationContext{
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		region:  Layout(g.opts.Width, g.opts.Height),
		content: NewContentAssigner(g.tables),
	}

	stages := []struct {
		name string
		run  func(context.Context, *GenerationContext) error
	}{
		{"height field", g.buildField},
		{"partition", g.buildPartition},
		{"classify", g.classify},
		{"block types", g.assignBlocks},
		{"bridges", g.buildBridges},
		{"content", g.assignContent},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.run(ctx, gc); err != nil {
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
		g.log.Debug("stage complete", "stage", st.name)
	}

	g.log.Info("pointcrawl generated",
		"seed", seed,
		"sites", len(gc.Sites),
		"bridges", len(gc.Edges),
		"descriptors_left", gc.content.Remaining(),
	)
	return &Map{
		Seed:    seed,
		Width:   g.opts.Width,
		Height:  g.opts.Height,
		Region:  gc.region,
		Sites:   gc.Sites,
		Cells:   gc.Cells,
		Bridges: gc.Edges,
	}, nil
}

func (g *Generator) buildField(_ context.Context, gc *GenerationContext) error {
	if g.field != nil {
		gc.field = g.field
		return nil
	}
	if g.noise == nil {
		return errors.New("no noise source configured")
	}
	gc.field = terrain.Generate(g.opts.Width, g.opts.Height, g.noise, g.opts.Increment)
	return nil
}

func (g *Generator) buildPartition(ctx context.Context, gc *GenerationContext) error {
	n := g.opts.SiteCount
	p, err := g.partition.Partition(ctx, gc.rng, gc.region.Width, gc.region.Height, n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPartitionUnavailable, err)
	}
	if p.Len() != n {
		return fmt.Errorf("%w: provider returned %d sites, want %d", ErrPartitionUnavailable, p.Len(), n)
	}
	gc.partition = p

	gc.Sites = make([]Site, n)
	gc.Cells = make([]Cell, n)
	for id := range n {
		poly, err := p.Polygon(id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPartitionUnavailable, err)
		}
		gc.Sites[id] = Site{
			ID:       id,
			Position: p.Sites[id],
			Radius:   MinSiteRadius + gc.rng.Float64()*(MaxSiteRadius-MinSiteRadius),
		}
		gc.Cells[id] = Cell{ID: id, Polygon: poly}
	}
	return nil
}

func (g *Generator) classify(_ context.Context, gc *GenerationContext) error {
	c := Classifier{
		SampleSize: g.opts.SampleSize,
		Offset:     partition.Point{X: gc.region.X, Y: gc.region.Y},
	}
	for i := range gc.Sites {
		s := &gc.Sites[i]
		score, biome, err := c.Classify(s.Position, gc.field)
		if err != nil {
			if !errors.Is(err, ErrClassificationOutOfRange) {
				return err
			}
			g.log.Warn("biome thresholds do not cover site score, using lowest band",
				"site", s.ID, "score", score, "biome", biome)
		}
		s.Score, s.Biome = score, biome
	}
	return nil
}

func (g *Generator) assignBlocks(_ context.Context, gc *GenerationContext) error {
	for i := range gc.Cells {
		AssignBlock(gc.rng, &gc.Cells[i], &gc.Sites[i])
	}
	return nil
}

func (g *Generator) buildBridges(_ context.Context, gc *GenerationContext) error {
	edges, err := g.opts.Bridges.Build(gc.rng, gc.Sites, gc.partition)
	if err != nil {
		return err
	}
	gc.Edges = edges
	return nil
}

func (g *Generator) assignContent(_ context.Context, gc *GenerationContext) error {
	if err := gc.content.Check(gc.Sites); err != nil {
		return err
	}
	for i := range gc.Sites {
		c, err := gc.content.Assign(gc.rng, gc.Sites[i])
		if err != nil {
			return err
		}
		gc.Sites[i].Content = c
	}
	return nil
}
