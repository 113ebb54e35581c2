package pointcrawl

import (
	"fmt"
	"math/rand/v2"
)

// Default bridge acceptance for the first, second and third neighbour draw.
// The second draw is the less likely one.
const (
	DefaultFirstBridge  = 1.0
	DefaultSecondBridge = 0.30
	DefaultThirdBridge  = 0.70
)

// Adjacency reports the neighbouring cell ids of a cell.
type Adjacency interface {
	Neighbors(id int) ([]int, error)
}

// BridgeBuilder links each site to up to three random neighbours.
type BridgeBuilder struct {
	First, Second, Third float64
}

// DefaultBridges returns the standard acceptance probabilities.
func DefaultBridges() BridgeBuilder {
	return BridgeBuilder{First: DefaultFirstBridge, Second: DefaultSecondBridge, Third: DefaultThirdBridge}
}

// Build visits sites in order. For each site it draws three neighbour ids
// with replacement, then scans every site: a match on the first draw always
// adds an edge, matches on the second and third add one with probability
// Second and Third. Nothing is deduplicated, so a site may bridge the same
// neighbour twice and the reverse pass may add the pair again.
func (b BridgeBuilder) Build(rng *rand.Rand, sites []Site, adj Adjacency) ([]Edge, error) {
	var edges []Edge
	for i := range sites {
		nbrs, err := adj.Neighbors(sites[i].ID)
		if err != nil {
			return nil, fmt.Errorf("bridge site %d: %w: %w", sites[i].ID, ErrPartitionUnavailable, err)
		}
		if len(nbrs) == 0 {
			continue
		}
		d1 := nbrs[rng.IntN(len(nbrs))]
		d2 := nbrs[rng.IntN(len(nbrs))]
		d3 := nbrs[rng.IntN(len(nbrs))]

		for j := range sites {
			id := sites[j].ID
			if id == d1 && accept(rng, b.First) {
				edges = append(edges, Edge{From: sites[i].ID, To: id})
			}
			if id == d2 && accept(rng, b.Second) {
				edges = append(edges, Edge{From: sites[i].ID, To: id})
			}
			if id == d3 && accept(rng, b.Third) {
				edges = append(edges, Edge{From: sites[i].ID, To: id})
			}
		}
	}
	return edges, nil
}

// accept consumes a draw only when p is a real probability.
func accept(rng *rand.Rand, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}
