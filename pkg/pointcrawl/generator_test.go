package pointcrawl

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
	"github.com/OCharnyshevich/pointcrawl/pkg/terrain"
)

// everywhereTables has one location for every biome.
func everywhereTables(descriptors int) *ContentTables {
	t := &ContentTables{
		Locations: map[Biome][]string{},
		Features:  []string{"a fountain", "a shrine"},
	}
	for _, b := range Biomes {
		t.Locations[b] = []string{"village"}
	}
	for i := range descriptors {
		t.Descriptors = append(t.Descriptors, string(rune('a'+i%26))+"-desc")
	}
	return t
}

func smallOptions(n int) Options {
	opts := DefaultOptions()
	opts.SiteCount = n
	opts.Width = 400
	opts.Height = 200
	return opts
}

func newPlainsGenerator(n, descriptors int, p partition.Provider) *Generator {
	g := NewGenerator(smallOptions(n), nil, p, everywhereTables(descriptors), discardLogger())
	g.UseField(flatField{480, 480})
	return g
}

func TestGenerateSitesAndCells(t *testing.T) {
	for _, n := range []int{1, 3, 15} {
		g := newPlainsGenerator(n, n, fixedProvider{})
		m, err := g.Generate(context.Background(), 1)
		if err != nil {
			t.Fatalf("n=%d: Generate: %v", n, err)
		}
		if len(m.Sites) != n || len(m.Cells) != n {
			t.Fatalf("n=%d: %d sites, %d cells", n, len(m.Sites), len(m.Cells))
		}
		for i := range n {
			if m.Sites[i].ID != i || m.Cells[i].ID != i {
				t.Errorf("n=%d: index %d has site id %d, cell id %d", n, i, m.Sites[i].ID, m.Cells[i].ID)
			}
			if r := m.Sites[i].Radius; r < MinSiteRadius || r > MaxSiteRadius {
				t.Errorf("n=%d: site %d radius %v out of range", n, i, r)
			}
			if len(m.Cells[i].Polygon) == 0 {
				t.Errorf("n=%d: cell %d has no polygon", n, i)
			}
		}
	}
}

func TestGenerateBlockOverrides(t *testing.T) {
	g := newPlainsGenerator(30, 30, fixedProvider{})
	m, err := g.Generate(context.Background(), 12)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, cell := range m.Cells {
		site := m.Sites[i]
		want := Plains
		switch cell.Type {
		case BlockCity:
			want = City
		case BlockStrange:
			want = Strange
		}
		if site.Biome != want {
			t.Errorf("site %d in %s cell has biome %s, want %s", i, cell.Type, site.Biome, want)
		}
		if site.Score < 100 || site.Score >= 140 {
			t.Errorf("site %d score = %v, want Plains range", i, site.Score)
		}
	}
}

func TestGenerateContentConsumesDescriptors(t *testing.T) {
	g := newPlainsGenerator(5, 5, fixedProvider{})
	m, err := g.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	seen := map[string]bool{}
	for _, s := range m.Sites {
		if s.Content.Location != "village" {
			t.Errorf("site %d location = %q", s.ID, s.Content.Location)
		}
		if seen[s.Content.Descriptor] {
			t.Errorf("descriptor %q reused", s.Content.Descriptor)
		}
		seen[s.Content.Descriptor] = true
	}
}

func TestGenerateDescriptorPoolExhausted(t *testing.T) {
	g := newPlainsGenerator(4, 3, fixedProvider{})
	_, err := g.Generate(context.Background(), 1)
	if !errors.Is(err, ErrDescriptorPoolExhausted) {
		t.Fatalf("error = %v, want ErrDescriptorPoolExhausted", err)
	}
}

func TestGenerateEmptyBiomeTable(t *testing.T) {
	// Plains, City and Strange cover every outcome of a 480 field.
	tables := everywhereTables(4)
	tables.Locations[Plains] = nil
	tables.Locations[City] = nil
	tables.Locations[Strange] = nil
	g := NewGenerator(smallOptions(4), nil, fixedProvider{}, tables, discardLogger())
	g.UseField(flatField{480, 480})
	if _, err := g.Generate(context.Background(), 5); !errors.Is(err, ErrEmptyBiomeTable) {
		t.Fatalf("error = %v, want ErrEmptyBiomeTable", err)
	}
}

func TestGeneratePartitionUnavailable(t *testing.T) {
	g := newPlainsGenerator(3, 3, fixedProvider{err: partition.ErrUnavailable})
	_, err := g.Generate(context.Background(), 1)
	if !errors.Is(err, ErrPartitionUnavailable) {
		t.Fatalf("error = %v, want ErrPartitionUnavailable", err)
	}
}

func TestGenerateRejectsZeroSites(t *testing.T) {
	g := newPlainsGenerator(0, 3, fixedProvider{})
	if _, err := g.Generate(context.Background(), 1); err == nil {
		t.Fatal("expected error for zero sites")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := newPlainsGenerator(10, 10, fixedProvider{}).Generate(context.Background(), 99)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := newPlainsGenerator(10, 10, fixedProvider{}).Generate(context.Background(), 99)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different maps")
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newPlainsGenerator(3, 3, fixedProvider{})
	if _, err := g.Generate(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateWithNoiseAndVoronoi(t *testing.T) {
	noise := terrain.NewSimplexNoise(4, terrain.DefaultOctaves, terrain.DefaultPersistence)
	opts := smallOptions(6)
	g := NewGenerator(opts, noise, partition.Voronoi{MinDistance: 20}, everywhereTables(6), discardLogger())

	m, err := g.Generate(context.Background(), 2026)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(m.Sites) != 6 {
		t.Fatalf("len(Sites) = %d, want 6", len(m.Sites))
	}
	for _, s := range m.Sites {
		if s.Position.X < 0 || s.Position.X > m.Region.Width || s.Position.Y < 0 || s.Position.Y > m.Region.Height {
			t.Errorf("site %d at %v outside region", s.ID, s.Position)
		}
		// Channels never exceed 255, so the score cannot reach Plains.
		if s.Biome == Valley || s.Biome == Plains {
			t.Errorf("site %d biome = %s, unreachable from field channels", s.ID, s.Biome)
		}
	}
	if segs := m.Segments(); len(segs) != len(m.Bridges) {
		t.Errorf("len(Segments) = %d, want %d", len(segs), len(m.Bridges))
	}
}

func TestMapSegmentsAndDegree(t *testing.T) {
	m := &Map{
		Sites: []Site{
			{ID: 0, Position: partition.Point{X: 1, Y: 2}},
			{ID: 1, Position: partition.Point{X: 3, Y: 4}},
			{ID: 2, Position: partition.Point{X: 5, Y: 6}},
		},
		Bridges: []Edge{{0, 1}, {1, 0}, {1, 2}},
	}
	segs := m.Segments()
	if segs[0][0] != m.Sites[0].Position || segs[0][1] != m.Sites[1].Position {
		t.Errorf("segment 0 = %v", segs[0])
	}
	if got, want := m.Degree(), []int{2, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Degree() = %v, want %v", got, want)
	}
}

func TestGenerateManySitesDefaultLayout(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		opts := DefaultOptions()
		opts.SiteCount = 40
		g := NewGenerator(opts, nil, partition.Voronoi{MinDistance: partition.DefaultMinDistance}, everywhereTables(40), discardLogger())
		g.UseField(flatField{480, 480})

		m, err := g.Generate(context.Background(), seed)
		if err != nil {
			t.Fatalf("seed %d: Generate: %v", seed, err)
		}
		if len(m.Sites) != 40 {
			t.Fatalf("seed %d: len(Sites) = %d, want 40", seed, len(m.Sites))
		}
	}
}

func TestGenerateNilLogger(t *testing.T) {
	g := NewGenerator(smallOptions(2), nil, fixedProvider{}, everywhereTables(2), nil)
	g.UseField(flatField{480, 480})
	if _, err := g.Generate(context.Background(), 1); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}
