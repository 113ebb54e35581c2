// Package tables loads the location, descriptor and feature lists that give
// pointcrawl sites their text.
package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

// File names inside a table directory.
const (
	LocationsFile   = "locations.csv"
	DescriptorsFile = "descriptors.csv"
	FeaturesFile    = "features.csv"
)

// LoadDir reads a table set from a directory on disk.
func LoadDir(dir string) (*pointcrawl.ContentTables, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the three table files from fsys.
func LoadFS(fsys fs.FS) (*pointcrawl.ContentTables, error) {
	t := &pointcrawl.ContentTables{}

	err := readFile(fsys, LocationsFile, func(r io.Reader) (err error) {
		t.Locations, err = ReadLocations(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := readFile(fsys, DescriptorsFile, func(r io.Reader) (err error) {
		t.Descriptors, err = ReadList(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(fsys, FeaturesFile, func(r io.Reader) (err error) {
		t.Features, err = ReadList(r)
		return err
	}); err != nil {
		return nil, err
	}
	return t, nil
}

func readFile(fsys fs.FS, name string, parse func(io.Reader) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// ReadLocations parses a table whose header row names biomes and whose
// columns list locations. Columns may be of unequal length; blank cells are
// dropped.
func ReadLocations(r io.Reader) (map[pointcrawl.Biome][]string, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}

	cols := make([]pointcrawl.Biome, len(header))
	for i, name := range header {
		b, err := pointcrawl.ParseBiome(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		cols[i] = b
	}

	out := make(map[pointcrawl.Biome][]string, len(cols))
	for _, b := range cols {
		out[b] = nil
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, v := range rec {
			if i >= len(cols) {
				break
			}
			if v = strings.TrimSpace(v); v != "" {
				out[cols[i]] = append(out[cols[i]], v)
			}
		}
	}
	return out, nil
}

// ReadList parses a single-column table without a header. Only the first
// field of each row is used and blank rows are skipped.
func ReadList(r io.Reader) ([]string, error) {
	cr := newReader(r)
	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		if v := strings.TrimSpace(rec[0]); v != "" {
			out = append(out, v)
		}
	}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}
