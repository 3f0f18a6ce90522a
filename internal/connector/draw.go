package connector

import "github.com/codalotl/splitdiff/internal/viewmodel"

// Snapshot is everything a redraw depends on. Callers build a new one per frame; nothing here reads ambient state.
type Snapshot struct {
	Rows           []viewmodel.Row
	Scroll         Scroll
	ViewportHeight float64
	Metrics        Metrics
	Palette        Palette
}

// Ribbons rebuilds the blocks of s.Rows and lays out the visible ones, in row order.
func Ribbons(s Snapshot) []Ribbon {
	blocks := BuildBlocks(s.Rows)
	SortBlocks(blocks)

	ix := newIndex(s.Rows)
	var ribbons []Ribbon
	for _, b := range blocks {
		g := ix.layout(b, s.Scroll, s.Metrics)
		if !g.Visible(s.ViewportHeight) {
			continue
		}
		ribbons = append(ribbons, Ribbon{Block: b, Geometry: g})
	}
	return ribbons
}

// Draw returns the shapes of every visible ribbon: a filled region then two border strokes per block, in row order.
func Draw(s Snapshot) []Shape {
	var shapes []Shape
	for _, r := range Ribbons(s) {
		shapes = append(shapes, r.Shapes(s.Palette, s.Metrics.Width)...)
	}
	return shapes
}
