package pointcrawl

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// flatField returns the same channel values everywhere.
type flatField struct{ g, b float64 }

func (f flatField) Channels(x, y int) (float64, float64) { return f.g, f.b }

// adjacency is a fixed neighbour table.
type adjacency map[int][]int

func (a adjacency) Neighbors(id int) ([]int, error) {
	n, ok := a[id]
	if !ok {
		return nil, partition.ErrUnavailable
	}
	return n, nil
}

// fixedProvider returns a chain partition: site i neighbours i-1 and i+1.
type fixedProvider struct {
	err error
}

func (f fixedProvider) Partition(_ context.Context, _ *rand.Rand, width, height float64, count int) (*partition.Partition, error) {
	if f.err != nil {
		return nil, f.err
	}
	sites := make([]partition.Point, count)
	polys := make([][]partition.Point, count)
	nbrs := make([][]int, count)
	w := width / float64(count)
	for i := range count {
		x0 := float64(i) * w
		sites[i] = partition.Point{X: x0 + w/2, Y: height / 2}
		polys[i] = []partition.Point{{X: x0}, {X: x0 + w}, {X: x0 + w, Y: height}, {X: x0, Y: height}}
		nbrs[i] = []int{}
		if i > 0 {
			nbrs[i] = append(nbrs[i], i-1)
		}
		if i < count-1 {
			nbrs[i] = append(nbrs[i], i+1)
		}
	}
	return partition.New(sites, polys, nbrs)
}

func sitesWithIDs(n int) []Site {
	s := make([]Site, n)
	for i := range s {
		s[i].ID = i
	}
	return s
}
