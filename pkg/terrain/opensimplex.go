package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

// OpenSimplexNoise layers octaves of normalised OpenSimplex noise.
type OpenSimplexNoise struct {
	n           opensimplex.Noise
	octaves     int
	persistence float64
}

// NewOpenSimplexNoise returns octave OpenSimplex noise in [0, 1].
func NewOpenSimplexNoise(seed int64, octaves int, persistence float64) *OpenSimplexNoise {
	return &OpenSimplexNoise{
		n:           opensimplex.NewNormalized(seed),
		octaves:     octaves,
		persistence: persistence,
	}
}

// At implements Noise.
func (o *OpenSimplexNoise) At(x, y float64) float64 {
	var total, maxVal float64
	amplitude, frequency := 1.0, 1.0
	for range o.octaves {
		total += o.n.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= o.persistence
		frequency *= 2
	}
	return total / maxVal
}
