package tables

import (
	"embed"
	"io/fs"

	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

// DefaultSet names the table set compiled into the binary.
const DefaultSet = "default"

//go:embed data
var builtin embed.FS

func init() {
	Register(DefaultSet, func() (*pointcrawl.ContentTables, error) {
		sub, err := fs.Sub(builtin, "data/default")
		if err != nil {
			return nil, err
		}
		return LoadFS(sub)
	})
}
