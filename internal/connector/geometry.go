package connector

import "github.com/codalotl/splitdiff/internal/viewmodel"

// Metrics are the fixed layout constants shared by both panes and the connector surface.
type Metrics struct {
	LineHeight float64 // height of one display row
	PaddingTop float64 // offset of display row 0 from the top of a pane
	Width      float64 // width of the connector surface
}

// DefaultMetrics are the metrics of the HTML renderer.
var DefaultMetrics = Metrics{LineHeight: 20, PaddingTop: 8, Width: 48}

// Scroll holds the vertical scroll offset of each pane.
type Scroll struct {
	Left  float64
	Right float64
}

// Geometry is the four pane-local y coordinates of a block's ribbon.
type Geometry struct {
	LeftTop, LeftBottom   float64
	RightTop, RightBottom float64
}

// Top returns the smaller of the two top coordinates.
func (g Geometry) Top() float64 {
	return min(g.LeftTop, g.RightTop)
}

// Bottom returns the larger of the two bottom coordinates.
func (g Geometry) Bottom() float64 {
	return max(g.LeftBottom, g.RightBottom)
}

// Visible reports whether any part of g lies within [0, viewportHeight].
func (g Geometry) Visible(viewportHeight float64) bool {
	return !(g.Bottom() < 0 || g.Top() > viewportHeight)
}

// Span is the extent of a block on one side, in display rows. End is inclusive. A collapsed span is a single point at Start (the insertion anchor):
// it occupies no rows.
type Span struct {
	Start     int
	End       int
	Collapsed bool
}

// Line returns the 1-based line number that a navigation to s lands on.
func (s Span) Line() int {
	return s.Start + 1
}

// InsertionLineNo returns the line number after the nearest non-Blank row on side strictly before index, or 1 if there is none. It is the line a
// one-sided block would occupy had it been inserted on side.
func InsertionLineNo(rows []viewmodel.Row, index int, side viewmodel.Side) int {
	for i := min(index, len(rows)) - 1; i >= 0; i-- {
		if s := rows[i].Slot(side); s.Kind != viewmodel.KindBlank && s.LineNo > 0 {
			return s.LineNo + 1
		}
	}
	return 1
}

// Layout computes the geometry of block at the given scroll offsets.
//
// Each call indexes rows from scratch; Draw and HitTest index once per snapshot.
func Layout(block Block, rows []viewmodel.Row, scroll Scroll, m Metrics) Geometry {
	return newIndex(rows).layout(block, scroll, m)
}

// index caches per-row display positions and insertion anchors for both sides.
type index struct {
	rows []viewmodel.Row

	// before[side][i] is the number of non-Blank rows on side in rows[:i]. Len is len(rows)+1.
	before [2][]int

	// lastLine[side][i] is the line number of the nearest non-Blank row on side in rows[:i], or 0.
	lastLine [2][]int
}

func newIndex(rows []viewmodel.Row) *index {
	ix := &index{rows: rows}
	for _, side := range []viewmodel.Side{viewmodel.SideLeft, viewmodel.SideRight} {
		before := make([]int, len(rows)+1)
		lastLine := make([]int, len(rows)+1)
		for i, r := range rows {
			before[i+1] = before[i]
			lastLine[i+1] = lastLine[i]
			if s := r.Slot(side); s.Kind != viewmodel.KindBlank {
				before[i+1]++
				if s.LineNo > 0 {
					lastLine[i+1] = s.LineNo
				}
			}
		}
		ix.before[side] = before
		ix.lastLine[side] = lastLine
	}
	return ix
}

// insertionLineNo is InsertionLineNo in O(1).
func (ix *index) insertionLineNo(i int, side viewmodel.Side) int {
	i = max(0, min(i, len(ix.rows)))
	return ix.lastLine[side][i] + 1
}

// span returns the extent of b on side. Added blocks collapse on the left, Removed blocks on the right, and any side with no rows in the block
// collapses too.
func (ix *index) span(b Block, side viewmodel.Side) Span {
	start := max(0, min(b.StartIndex, len(ix.rows)))
	end := max(start, min(b.EndIndex+1, len(ix.rows)))

	collapse := (b.Type == BlockAdded && side == viewmodel.SideLeft) || (b.Type == BlockRemoved && side == viewmodel.SideRight)
	n := ix.before[side][end] - ix.before[side][start]
	if collapse || n == 0 {
		anchor := ix.insertionLineNo(start, side) - 1
		return Span{Start: anchor, End: anchor, Collapsed: true}
	}
	first := ix.before[side][start]
	return Span{Start: first, End: first + n - 1}
}

func (ix *index) layout(b Block, scroll Scroll, m Metrics) Geometry {
	lt, lb := ix.span(b, viewmodel.SideLeft).pixels(scroll.Left, m)
	rt, rb := ix.span(b, viewmodel.SideRight).pixels(scroll.Right, m)
	return Geometry{LeftTop: lt, LeftBottom: lb, RightTop: rt, RightBottom: rb}
}

// pixels maps s to pane-local top and bottom y coordinates.
func (s Span) pixels(scroll float64, m Metrics) (top, bottom float64) {
	top = m.PaddingTop + float64(s.Start)*m.LineHeight - scroll
	if s.Collapsed {
		return top, top
	}
	return top, m.PaddingTop + float64(s.End+1)*m.LineHeight - scroll
}
