package pointcrawl

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// ContentTables holds the parsed text sources. Entries are never empty
// strings.
type ContentTables struct {
	Locations   map[Biome][]string
	Descriptors []string
	Features    []string
}

// Clone returns a deep copy, so a consumed descriptor pool does not leak back
// into the caller's tables.
func (t *ContentTables) Clone() *ContentTables {
	c := &ContentTables{
		Locations:   make(map[Biome][]string, len(t.Locations)),
		Descriptors: slices.Clone(t.Descriptors),
		Features:    slices.Clone(t.Features),
	}
	for b, locs := range t.Locations {
		c.Locations[b] = slices.Clone(locs)
	}
	return c
}

// ContentAssigner fills sites with text. It owns its descriptor pool, which
// shrinks by one per assigned site, so the order of Assign calls decides
// which site gets which descriptor.
type ContentAssigner struct {
	tables *ContentTables
}

// NewContentAssigner copies tables and takes the copy's descriptor pool.
func NewContentAssigner(tables *ContentTables) *ContentAssigner {
	return &ContentAssigner{tables: tables.Clone()}
}

// Remaining returns the number of descriptors left in the pool.
func (a *ContentAssigner) Remaining() int { return len(a.tables.Descriptors) }

// Check verifies up front that every site can be assigned: enough
// descriptors, at least one feature and a location list for each biome in use.
func (a *ContentAssigner) Check(sites []Site) error {
	if len(sites) > len(a.tables.Descriptors) {
		return fmt.Errorf("%d sites, %d descriptors: %w", len(sites), len(a.tables.Descriptors), ErrDescriptorPoolExhausted)
	}
	if len(a.tables.Features) == 0 {
		return ErrEmptyFeatureTable
	}
	for _, s := range sites {
		if len(a.tables.Locations[s.Biome]) == 0 {
			return fmt.Errorf("site %d: %s: %w", s.ID, s.Biome, ErrEmptyBiomeTable)
		}
	}
	return nil
}

// Assign draws, in order, a descriptor (removed from the pool by value), a
// location for the site's biome and two features with replacement. The pool
// is untouched when an error is returned.
func (a *ContentAssigner) Assign(rng *rand.Rand, site Site) (Content, error) {
	t := a.tables
	if len(t.Descriptors) == 0 {
		return Content{}, fmt.Errorf("site %d: %w", site.ID, ErrDescriptorPoolExhausted)
	}
	locations := t.Locations[site.Biome]
	if len(locations) == 0 {
		return Content{}, fmt.Errorf("site %d: %s: %w", site.ID, site.Biome, ErrEmptyBiomeTable)
	}
	if len(t.Features) == 0 {
		return Content{}, fmt.Errorf("site %d: %w", site.ID, ErrEmptyFeatureTable)
	}

	var c Content
	c.Descriptor = t.Descriptors[rng.IntN(len(t.Descriptors))]
	t.Descriptors = removeFirst(t.Descriptors, c.Descriptor)

	c.Location = locations[rng.IntN(len(locations))]
	c.Features[0] = t.Features[rng.IntN(len(t.Features))]
	c.Features[1] = t.Features[rng.IntN(len(t.Features))]
	return c, nil
}

// removeFirst deletes the first element equal to v.
func removeFirst(s []string, v string) []string {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
