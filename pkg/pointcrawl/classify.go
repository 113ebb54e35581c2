package pointcrawl

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
)

// DefaultSampleSize is the half-width of the classification window.
const DefaultSampleSize = 50

// samplesPerSide is the number of grid steps across the window, plus one.
const samplesPerSide = 11

// ChannelReader exposes the two jitter channels of a banded height field.
type ChannelReader interface {
	Channels(x, y int) (g, b float64)
}

// Classifier buckets a site into a terrain biome by averaging the field
// around it.
type Classifier struct {
	SampleSize float64
	// Offset translates region coordinates into field coordinates.
	Offset partition.Point
}

// Classify samples an 11×11 grid spanning ±SampleSize around pos. The sum of
// per-sample (G+B)/2 is divided by count-1, not count, and then by 4.
//
// A score below every threshold returns Mountain with an error wrapping
// ErrClassificationOutOfRange.
func (c Classifier) Classify(pos partition.Point, field ChannelReader) (float64, Biome, error) {
	size := c.SampleSize
	if size <= 0 {
		size = DefaultSampleSize
	}
	step := size / (samplesPerSide - 1)

	var sum float64
	count := 0
	for i := range samplesPerSide {
		x := pos.X - size + float64(i)*step
		for j := range samplesPerSide {
			y := pos.Y - size + float64(j)*step
			g, b := field.Channels(
				int(math.Floor(x+c.Offset.X)),
				int(math.Floor(y+c.Offset.Y)),
			)
			sum += (g + b) / 2
			count++
		}
	}

	score := sum / float64(count-1) / 4
	biome, ok := TerrainBiome(score)
	if !ok {
		return score, biome, fmt.Errorf("score %v at (%v,%v): %w", score, pos.X, pos.Y, ErrClassificationOutOfRange)
	}
	return score, biome, nil
}
