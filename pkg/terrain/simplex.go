package terrain

import (
	"math"
	"math/rand/v2"
)

// Skew factors between the square grid and the simplex (triangle) grid.
const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
)

// gradients2 are the cube edge directions projected onto the plane.
var gradients2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Simplex is seeded 2D simplex noise.
type Simplex struct {
	perm [512]uint8
}

// NewSimplex builds the permutation table for seed.
func NewSimplex(seed int64) *Simplex {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5851f42d4c957f2d))
	p := rng.Perm(256)

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = uint8(p[i&255])
	}
	return s
}

// Eval returns the noise at (x, y), in [-1, 1].
func (s *Simplex) Eval(x, y float64) float64 {
	k := (x + y) * skew2
	i, j := math.Floor(x+k), math.Floor(y+k)
	u := (i + j) * unskew2
	x0, y0 := x-(i-u), y-(j-u)

	// The middle corner of the triangle: lower half steps in x first.
	di, dj := 0, 1
	if x0 > y0 {
		di, dj = 1, 0
	}

	ci, cj := int(i)&255, int(j)&255
	sum := s.corner(ci, cj, x0, y0) +
		s.corner(ci+di, cj+dj, x0-float64(di)+unskew2, y0-float64(dj)+unskew2) +
		s.corner(ci+1, cj+1, x0-1+2*unskew2, y0-1+2*unskew2)
	return 70 * sum
}

func (s *Simplex) corner(i, j int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	g := gradients2[int(s.perm[i+int(s.perm[j])])%len(gradients2)]
	t *= t
	return t * t * (g[0]*x + g[1]*y)
}

// Fractal sums octaves of Eval, doubling the frequency and scaling the
// amplitude by persistence each time. The result stays in [-1, 1].
func (s *Simplex) Fractal(x, y float64, octaves int, persistence float64) float64 {
	var total, norm float64
	amp, freq := 1.0, 1.0
	for range octaves {
		total += s.Eval(x*freq, y*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	return total / norm
}

// SimplexNoise is the "simplex" backend.
type SimplexNoise struct {
	s           *Simplex
	octaves     int
	persistence float64
}

// NewSimplexNoise returns octave simplex noise mapped into [0, 1].
func NewSimplexNoise(seed int64, octaves int, persistence float64) *SimplexNoise {
	return &SimplexNoise{s: NewSimplex(seed), octaves: octaves, persistence: persistence}
}

// At implements Noise.
func (n *SimplexNoise) At(x, y float64) float64 {
	return unit(n.s.Fractal(x, y, n.octaves, n.persistence))
}
