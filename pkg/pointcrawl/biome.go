package pointcrawl

import (
	"fmt"
	"strings"
)

// Biome labels a site.
type Biome uint8

const (
	Valley Biome = iota
	Plains
	Hill
	Mountain
	City
	Strange
)

// Biomes lists every biome in table-column order.
var Biomes = []Biome{Valley, Plains, Hill, Mountain, City, Strange}

var biomeNames = [...]string{
	Valley:   "Valley",
	Plains:   "Plains",
	Hill:     "Hill",
	Mountain: "Mountain",
	City:     "City",
	Strange:  "Strange",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return fmt.Sprintf("Biome(%d)", uint8(b))
}

// ParseBiome accepts a biome name, ignoring case and surrounding space.
func ParseBiome(s string) (Biome, error) {
	s = strings.TrimSpace(s)
	for i, name := range biomeNames {
		if strings.EqualFold(s, name) {
			return Biome(i), nil
		}
	}
	return 0, fmt.Errorf("unknown biome %q", s)
}

func (b Biome) MarshalText() ([]byte, error) {
	if int(b) >= len(biomeNames) {
		return nil, fmt.Errorf("invalid biome %d", uint8(b))
	}
	return []byte(biomeNames[b]), nil
}

func (b *Biome) UnmarshalText(text []byte) error {
	v, err := ParseBiome(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Terrain score thresholds, checked highest first.
var terrainBands = []struct {
	min   float64
	biome Biome
}{
	{140, Valley},
	{100, Plains},
	{50, Hill},
	{0, Mountain},
}

// TerrainBiome maps a classification score to a terrain biome. ok is false
// when the score is below every band (or NaN).
func TerrainBiome(score float64) (biome Biome, ok bool) {
	for _, band := range terrainBands {
		if score >= band.min {
			return band.biome, true
		}
	}
	return Mountain, false
}
