package terrain

import "github.com/aquilax/go-perlin"

// PerlinNoise wraps go-perlin. Octave weights fall off by persistence and
// frequency doubles per octave.
type PerlinNoise struct {
	p     *perlin.Perlin
	scale float64
}

// NewPerlinNoise returns octave Perlin noise mapped into [0, 1].
func NewPerlinNoise(seed int64, octaves int, persistence float64) *PerlinNoise {
	// go-perlin sums octave i with weight 1/alpha^i and does not normalise.
	var sum float64
	w := 1.0
	for range octaves {
		sum += w
		w *= persistence
	}
	return &PerlinNoise{
		p:     perlin.NewPerlin(1/persistence, 2, int32(octaves), seed),
		scale: sum,
	}
}

// At implements Noise.
func (n *PerlinNoise) At(x, y float64) float64 {
	// A single Perlin octave rarely leaves [-0.7, 0.7]; stretch before mapping.
	return unit(n.p.Noise2D(x, y) / n.scale * 1.4)
}
