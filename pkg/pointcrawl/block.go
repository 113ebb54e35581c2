package pointcrawl

import (
	"fmt"
	"math/rand/v2"
)

// BlockType is the special-zone draw for a cell.
type BlockType uint8

const (
	BlockDefault BlockType = iota
	BlockCity
	BlockStrange
)

var blockNames = [...]string{
	BlockDefault: "Default",
	BlockCity:    "City",
	BlockStrange: "Strange",
}

func (t BlockType) String() string {
	if int(t) < len(blockNames) {
		return blockNames[t]
	}
	return fmt.Sprintf("BlockType(%d)", uint8(t))
}

func (t BlockType) MarshalText() ([]byte, error) {
	if int(t) >= len(blockNames) {
		return nil, fmt.Errorf("invalid block type %d", uint8(t))
	}
	return []byte(blockNames[t]), nil
}

func (t *BlockType) UnmarshalText(text []byte) error {
	for i, name := range blockNames {
		if string(text) == name {
			*t = BlockType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown block type %q", text)
}

// BlockTypes is the cell type distribution: Default 3, City 2, Strange 1.
var BlockTypes = mustWeighted(
	Choice[BlockType]{BlockDefault, 3},
	Choice[BlockType]{BlockCity, 2},
	Choice[BlockType]{BlockStrange, 1},
)

func mustWeighted[T any](choices ...Choice[T]) *Weighted[T] {
	w, err := NewWeighted(choices...)
	if err != nil {
		panic(err)
	}
	return w
}

// AssignBlock draws the cell's type and applies it to the matching site.
func AssignBlock(rng *rand.Rand, cell *Cell, site *Site) {
	cell.Type = BlockTypes.Pick(rng)
	ApplyBlock(site, cell.Type)
}

// ApplyBlock overrides the site biome for City and Strange cells and leaves
// it alone for Default. Applying the same type twice is a no-op.
func ApplyBlock(site *Site, t BlockType) {
	switch t {
	case BlockCity:
		site.Biome = City
	case BlockStrange:
		site.Biome = Strange
	}
}
