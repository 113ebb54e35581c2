package pointcrawl

import "errors"

var (
	// ErrClassificationOutOfRange marks a site score below every biome
	// threshold. The site falls back to Mountain and generation continues.
	ErrClassificationOutOfRange = errors.New("biome score out of range")

	// ErrEmptyBiomeTable means a biome assigned to a site has no location strings.
	ErrEmptyBiomeTable = errors.New("biome has no locations")

	// ErrDescriptorPoolExhausted means there are fewer descriptors than sites.
	ErrDescriptorPoolExhausted = errors.New("descriptor pool exhausted")

	// ErrEmptyFeatureTable means no feature strings are configured.
	ErrEmptyFeatureTable = errors.New("feature table is empty")

	// ErrPartitionUnavailable means the partition provider could not supply
	// sites, neighbours or a polygon for a requested id.
	ErrPartitionUnavailable = errors.New("partition unavailable")
)
