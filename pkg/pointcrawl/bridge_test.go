package pointcrawl

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestBridgeBuildDeterministic(t *testing.T) {
	sites := sitesWithIDs(6)
	adj := adjacency{
		0: {1, 2},
		1: {0, 2, 3},
		2: {0, 1, 4},
		3: {1, 4, 5},
		4: {2, 3, 5},
		5: {3, 4},
	}
	b := DefaultBridges()

	var first []Edge
	for run := range 5 {
		edges, err := b.Build(newRNG(77), sites, adj)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if run == 0 {
			first = edges
			continue
		}
		if !reflect.DeepEqual(edges, first) {
			t.Fatalf("run %d edges = %v, want %v", run, edges, first)
		}
	}
}

func TestBridgeEdgesFollowAdjacency(t *testing.T) {
	sites := sitesWithIDs(5)
	adj := adjacency{0: {1}, 1: {0, 2}, 2: {1, 3}, 3: {2, 4}, 4: {3}}
	edges, err := DefaultBridges().Build(newRNG(5), sites, adj)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Each site gets its first draw unconditionally.
	if len(edges) < len(sites) {
		t.Fatalf("len(edges) = %d, want >= %d", len(edges), len(sites))
	}
	for _, e := range edges {
		if e.From == e.To {
			t.Errorf("self edge %v", e)
		}
		if d := e.From - e.To; d != 1 && d != -1 {
			t.Errorf("edge %v joins non-neighbours", e)
		}
	}
}

func TestBridgeNoNeighbors(t *testing.T) {
	edges, err := DefaultBridges().Build(newRNG(1), sitesWithIDs(1), adjacency{0: {}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("edges = %v, want none", edges)
	}
}

func TestBridgePartitionUnavailable(t *testing.T) {
	_, err := DefaultBridges().Build(newRNG(1), sitesWithIDs(2), adjacency{0: {1}})
	if !errors.Is(err, ErrPartitionUnavailable) {
		t.Fatalf("error = %v, want ErrPartitionUnavailable", err)
	}
}

func TestBridgeParallelEdgesKept(t *testing.T) {
	// Two sites that only see each other: every site draws the other three
	// times, so a certain builder emits three edges per site.
	b := BridgeBuilder{First: 1, Second: 1, Third: 1}
	edges, err := b.Build(newRNG(1), sitesWithIDs(2), adjacency{0: {1}, 1: {0}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []Edge{{0, 1}, {0, 1}, {0, 1}, {1, 0}, {1, 0}, {1, 0}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestBridgeAcceptanceRates(t *testing.T) {
	tests := []struct {
		name    string
		builder BridgeBuilder
		want    float64
	}{
		{"first", BridgeBuilder{First: DefaultFirstBridge}, 1.0},
		{"second", BridgeBuilder{Second: DefaultSecondBridge}, 0.30},
		{"third", BridgeBuilder{Third: DefaultThirdBridge}, 0.70},
	}
	sites := sitesWithIDs(2)
	adj := adjacency{0: {1}, 1: {0}}
	const runs = 10000

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newRNG(2024)
			accepted := 0
			for range runs {
				edges, err := tt.builder.Build(rng, sites, adj)
				if err != nil {
					t.Fatalf("Build: %v", err)
				}
				accepted += len(edges)
			}
			// Two candidate draws per run, one from each site.
			got := float64(accepted) / (2 * runs)
			if math.Abs(got-tt.want) > 0.02 {
				t.Errorf("acceptance = %.4f, want %.2f ± 0.02", got, tt.want)
			}
		})
	}
}
