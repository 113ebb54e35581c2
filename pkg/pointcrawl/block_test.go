package pointcrawl

import (
	"math"
	"testing"
)

func TestBlockTypeDistribution(t *testing.T) {
	rng := newRNG(42)
	const draws = 60000
	counts := map[BlockType]int{}
	for range draws {
		counts[BlockTypes.Pick(rng)]++
	}

	want := map[BlockType]float64{
		BlockDefault: 1.0 / 2,
		BlockCity:    1.0 / 3,
		BlockStrange: 1.0 / 6,
	}
	for bt, p := range want {
		got := float64(counts[bt]) / draws
		if math.Abs(got-p) > 0.01 {
			t.Errorf("P(%s) = %.4f, want %.4f ± 0.01", bt, got, p)
		}
	}
}

func TestApplyBlock(t *testing.T) {
	tests := []struct {
		block BlockType
		start Biome
		want  Biome
	}{
		{BlockDefault, Hill, Hill},
		{BlockDefault, Mountain, Mountain},
		{BlockCity, Valley, City},
		{BlockCity, Mountain, City},
		{BlockStrange, Plains, Strange},
		{BlockStrange, Valley, Strange},
	}
	for _, tt := range tests {
		s := Site{Biome: tt.start}
		ApplyBlock(&s, tt.block)
		if s.Biome != tt.want {
			t.Errorf("ApplyBlock(%s) on %s = %s, want %s", tt.block, tt.start, s.Biome, tt.want)
		}
		ApplyBlock(&s, tt.block)
		if s.Biome != tt.want {
			t.Errorf("ApplyBlock(%s) twice on %s = %s, want %s", tt.block, tt.start, s.Biome, tt.want)
		}
	}
}

func TestAssignBlockStrangeWinsOverTerrain(t *testing.T) {
	rng := newRNG(9)
	for range 500 {
		cell := Cell{}
		site := Site{Biome: Valley}
		AssignBlock(rng, &cell, &site)
		switch cell.Type {
		case BlockStrange:
			if site.Biome != Strange {
				t.Fatalf("Strange cell left site as %s", site.Biome)
			}
		case BlockCity:
			if site.Biome != City {
				t.Fatalf("City cell left site as %s", site.Biome)
			}
		default:
			if site.Biome != Valley {
				t.Fatalf("Default cell changed site to %s", site.Biome)
			}
		}
	}
}

func TestBlockTypeText(t *testing.T) {
	for _, bt := range []BlockType{BlockDefault, BlockCity, BlockStrange} {
		text, err := bt.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", bt, err)
		}
		var got BlockType
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != bt {
			t.Errorf("round trip %s = %s", bt, got)
		}
	}
	var bt BlockType
	if err := bt.UnmarshalText([]byte("Forest")); err == nil {
		t.Error("expected error for unknown block type")
	}
}
