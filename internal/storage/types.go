package storage

import (
	"github.com/OCharnyshevich/pointcrawl/pkg/pointcrawl"
)

// MapFileVersion is bumped whenever the saved map layout changes.
const MapFileVersion = 1

// MapFile is the on-disk envelope around a generated map.
type MapFile struct {
	Version int             `json:"version"`
	Map     *pointcrawl.Map `json:"map"`
	Titles  []string        `json:"titles"`
}

// MapFileFromMap wraps m with its rendered site titles, which are written
// for readers of the file and ignored on load.
func MapFileFromMap(m *pointcrawl.Map) *MapFile {
	mf := &MapFile{
		Version: MapFileVersion,
		Map:     m,
		Titles:  make([]string, len(m.Sites)),
	}
	for i, s := range m.Sites {
		mf.Titles[i] = s.Content.Title(s.ID)
	}
	return mf
}
