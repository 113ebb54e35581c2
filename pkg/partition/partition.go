// Package partition splits a rectangular map region into one cell per
// scattered site and exposes the resulting adjacency.
package partition

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrUnavailable is returned when a cell's neighbours or boundary cannot be
// produced for a requested id.
var ErrUnavailable = errors.New("partition cell unavailable")

// Point is a position in map-region coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Provider scatters count sites over a width×height region and partitions it.
type Provider interface {
	Partition(ctx context.Context, rng *rand.Rand, width, height float64, count int) (*Partition, error)
}

// Partition is the result of a planar subdivision. Ids are 0-based and index
// Sites; every id has at most one cell.
type Partition struct {
	Sites     []Point
	polygons  [][]Point
	neighbors [][]int
}

// New builds a Partition from precomputed data. polygons and neighbors must be
// parallel to sites; a nil entry marks a cell the provider could not build.
func New(sites []Point, polygons [][]Point, neighbors [][]int) (*Partition, error) {
	if len(polygons) != len(sites) || len(neighbors) != len(sites) {
		return nil, fmt.Errorf("partition: %d sites, %d polygons, %d neighbour sets",
			len(sites), len(polygons), len(neighbors))
	}
	return &Partition{Sites: sites, polygons: polygons, neighbors: neighbors}, nil
}

// Len returns the number of sites.
func (p *Partition) Len() int { return len(p.Sites) }

// Neighbors returns the ids of the cells adjacent to id, in ascending order.
// The result never contains id itself and may be empty.
func (p *Partition) Neighbors(id int) ([]int, error) {
	if id < 0 || id >= len(p.neighbors) || p.neighbors[id] == nil {
		return nil, fmt.Errorf("neighbours of %d: %w", id, ErrUnavailable)
	}
	return p.neighbors[id], nil
}

// Polygon returns the closed boundary of cell id. The last vertex connects
// back to the first.
func (p *Partition) Polygon(id int) ([]Point, error) {
	if id < 0 || id >= len(p.polygons) || len(p.polygons[id]) == 0 {
		return nil, fmt.Errorf("polygon of %d: %w", id, ErrUnavailable)
	}
	return p.polygons[id], nil
}
