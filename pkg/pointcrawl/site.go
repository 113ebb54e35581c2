package pointcrawl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/OCharnyshevich/pointcrawl/pkg/partition"
)

// Site radius range, display only.
const (
	MinSiteRadius = 80
	MaxSiteRadius = 100
)

// Site is one location of the pointcrawl. ID matches the partition cell id.
type Site struct {
	ID       int             `json:"id"`
	Position partition.Point `json:"position"`
	Radius   float64         `json:"radius"`
	Score    float64         `json:"score"`
	Biome    Biome           `json:"biome"`
	Content  Content         `json:"content"`
}

// Content is the text drawn for a site.
type Content struct {
	Descriptor string    `json:"descriptor"`
	Location   string    `json:"location"`
	Features   [2]string `json:"features"`
}

var titleCaser = cases.Title(language.English)

// Title renders the numbered heading shown next to a site, e.g.
// "3. Ruined Village". Numbering is 1-based.
func (c Content) Title(id int) string {
	name := strings.TrimSpace(c.Descriptor + " " + c.Location)
	return fmt.Sprintf("%d. %s", id+1, titleCaser.String(name))
}

// FeatureLine joins the two features for display.
func (c Content) FeatureLine() string {
	return c.Features[0] + " & " + c.Features[1]
}

// Cell is the partition region belonging to the site with the same ID.
type Cell struct {
	ID      int               `json:"id"`
	Polygon []partition.Point `json:"polygon"`
	Type    BlockType         `json:"type"`
}

// Edge is a bridge between two sites. Edges are not deduplicated: the same
// pair may appear more than once, in either direction.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Region places the map inside the canvas. Site positions are relative to
// (X, Y); the height field is sampled in canvas coordinates.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout returns the map region for a canvas: the right half of the canvas,
// inset by a border of width/20 horizontally and height/10 vertically.
func Layout(width, height int) Region {
	w, h := float64(width), float64(height)
	xBorder, yBorder := w/20, h/10
	return Region{
		X:      w/2 + xBorder,
		Y:      yBorder,
		Width:  w/2 - 2*xBorder,
		Height: h - 2*yBorder,
	}
}

// Map is the finished pointcrawl handed to a renderer.
type Map struct {
	Seed    int64  `json:"seed"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Region  Region `json:"region"`
	Sites   []Site `json:"sites"`
	Cells   []Cell `json:"cells"`
	Bridges []Edge `json:"bridges"`
}

// Segments returns the endpoints of every bridge in region coordinates.
func (m *Map) Segments() [][2]partition.Point {
	out := make([][2]partition.Point, 0, len(m.Bridges))
	for _, e := range m.Bridges {
		out = append(out, [2]partition.Point{m.Sites[e.From].Position, m.Sites[e.To].Position})
	}
	return out
}

// Degree counts bridge endpoints per site, parallel edges included.
func (m *Map) Degree() []int {
	deg := make([]int, len(m.Sites))
	for _, e := range m.Bridges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}
