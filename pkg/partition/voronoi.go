package partition

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/pzsz/voronoi"
)

// Scatter defaults.
const (
	DefaultMinDistance = 200
	DefaultMaxTries    = 200
)

// Voronoi scatters sites with a minimum spacing and partitions the region
// into Voronoi cells clipped to the region box.
type Voronoi struct {
	MinDistance float64 // minimum distance between two sites
	MaxTries    int     // candidate points tried per site before giving up
}

// Partition implements Provider.
func (v Voronoi) Partition(ctx context.Context, rng *rand.Rand, width, height float64, count int) (*Partition, error) {
	if count < 1 {
		return nil, fmt.Errorf("site count must be at least 1, got %d", count)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("region %vx%v is empty", width, height)
	}
	sites, err := v.scatter(ctx, rng, width, height, count)
	if err != nil {
		return nil, err
	}
	return Compute(sites, width, height)
}

// scatter draws uniform points, rejecting any closer than the spacing to an
// accepted one. When a site cannot be placed within MaxTries the spacing is
// halved for it and every later site, so a crowded region still yields
// count sites.
func (v Voronoi) scatter(ctx context.Context, rng *rand.Rand, width, height float64, count int) ([]Point, error) {
	tries := v.MaxTries
	if tries <= 0 {
		tries = DefaultMaxTries
	}
	spacing := v.MinDistance

	sites := make([]Point, 0, count)
	for len(sites) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		placed := false
		for range tries {
			p := Point{X: rng.Float64() * width, Y: rng.Float64() * height}
			if farEnough(sites, p, spacing*spacing) {
				sites = append(sites, p)
				placed = true
				break
			}
		}
		if !placed {
			spacing /= 2
			if spacing < 1 {
				spacing = 0
			}
		}
	}
	return sites, nil
}

func farEnough(sites []Point, p Point, minSq float64) bool {
	for _, s := range sites {
		dx, dy := s.X-p.X, s.Y-p.Y
		if dx*dx+dy*dy < minSq {
			return false
		}
	}
	// Coincident points would share a cell.
	return minSq > 0 || !slices.Contains(sites, p)
}

// Compute builds the Voronoi partition of fixed sites inside [0,width]×[0,height].
func Compute(sites []Point, width, height float64) (*Partition, error) {
	ids := make(map[voronoi.Vertex]int, len(sites))
	verts := make([]voronoi.Vertex, len(sites))
	for i, s := range sites {
		vx := voronoi.Vertex{X: s.X, Y: s.Y}
		if _, dup := ids[vx]; dup {
			return nil, fmt.Errorf("site %d duplicates site %d at (%v,%v)", i, ids[vx], s.X, s.Y)
		}
		ids[vx] = i
		verts[i] = vx
	}

	// ComputeDiagram reorders its input.
	diagram := voronoi.ComputeDiagram(slices.Clone(verts), voronoi.NewBBox(0, width, 0, height), true)

	polygons := make([][]Point, len(sites))
	neighbors := make([][]int, len(sites))
	for _, cell := range diagram.Cells {
		id, ok := ids[cell.Site]
		if !ok {
			continue
		}
		var ring []Point
		adj := []int{}
		for _, he := range cell.Halfedges {
			start := he.GetStartpoint()
			if !isFinite(start) {
				continue
			}
			ring = append(ring, Point{X: start.X, Y: start.Y})

			other := he.Edge.LeftCell
			if other == cell {
				other = he.Edge.RightCell
			}
			if other == nil {
				continue
			}
			if nid, ok := ids[other.Site]; ok && nid != id {
				adj = append(adj, nid)
			}
		}
		slices.Sort(adj)
		neighbors[id] = slices.Compact(adj)
		polygons[id] = ring
	}

	// A lone site has no bisectors; its cell is the whole region.
	if len(sites) == 1 && len(polygons[0]) == 0 {
		polygons[0] = []Point{{0, 0}, {width, 0}, {width, height}, {0, height}}
		neighbors[0] = []int{}
	}
	return New(sites, polygons, neighbors)
}

func isFinite(v voronoi.Vertex) bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}
