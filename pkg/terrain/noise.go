package terrain

import "fmt"

// Noise backends selectable from configuration.
const (
	BackendSimplex     = "simplex"
	BackendPerlin      = "perlin"
	BackendOpenSimplex = "opensimplex"
)

// Noise is a coherent 2D noise function normalised to [0, 1].
type Noise interface {
	At(x, y float64) float64
}

// NewNoise builds the named noise backend. An empty name means perlin.
func NewNoise(backend string, seed int64, octaves int, persistence float64) (Noise, error) {
	if octaves < 1 {
		return nil, fmt.Errorf("octaves must be at least 1, got %d", octaves)
	}
	if persistence <= 0 || persistence >= 1 {
		return nil, fmt.Errorf("persistence must be in (0,1), got %v", persistence)
	}
	switch backend {
	case BackendSimplex:
		return NewSimplexNoise(seed, octaves, persistence), nil
	case BackendPerlin, "":
		return NewPerlinNoise(seed, octaves, persistence), nil
	case BackendOpenSimplex:
		return NewOpenSimplexNoise(seed, octaves, persistence), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// unit maps a [-1, 1] value into [0, 1], clamping overshoot.
func unit(v float64) float64 {
	v = (v + 1) / 2
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
