package tables

import (
	"context"
	"fmt"
	"sort"

	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

var sets = map[string]func() (*pointcrawl.ContentTables, error){}

// Register makes a named table set available to Load.
func Register(name string, factory func() (*pointcrawl.ContentTables, error)) {
	sets[name] = factory
}

// Load builds the named table set.
func Load(name string) (*pointcrawl.ContentTables, error) {
	f, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("unknown table set: %s", name)
	}
	return f()
}

// Registered returns the registered set names in sorted order.
func Registered() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the tables named by ref. When src is set it is fetched
// into the directory ref first. Otherwise a registered set name wins over a
// directory of the same name.
func Resolve(ctx context.Context, ref, src string) (*pointcrawl.ContentTables, error) {
	if src != "" {
		if err := Fetch(ctx, src, ref); err != nil {
			return nil, err
		}
		return LoadDir(ref)
	}
	if _, ok := sets[ref]; ok {
		return Load(ref)
	}
	return LoadDir(ref)
}
