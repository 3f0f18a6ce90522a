package connector

import "github.com/codalotl/splitdiff/internal/viewmodel"

// Target is where a navigation to a block lands in each pane.
type Target struct {
	Block       Block
	LeftLine    int     // 1-based
	RightLine   int     // 1-based
	LeftScroll  float64 // scroll offset that puts LeftLine at the top of the left pane
	RightScroll float64 // scroll offset that puts RightLine at the top of the right pane
}

// HitTest returns the target of the first block (in row order) whose envelope contains the point (x, y) on the connector surface.
//
// The envelope spans from the smallest to the largest of the block's four y coordinates. A collapsed side counts as one line tall so one-sided blocks
// stay clickable. Points with x outside [0, s.Metrics.Width] never hit.
func HitTest(s Snapshot, x, y float64) (Target, bool) {
	if x < 0 || x > s.Metrics.Width {
		return Target{}, false
	}

	blocks := BuildBlocks(s.Rows)
	SortBlocks(blocks)

	ix := newIndex(s.Rows)
	for _, b := range blocks {
		lo, hi := ix.envelope(b, s.Scroll, s.Metrics)
		if y >= lo && y <= hi {
			return ix.target(b, s.Metrics), true
		}
	}
	return Target{}, false
}

// TargetFor returns the navigation target of b.
func TargetFor(rows []viewmodel.Row, b Block, m Metrics) Target {
	return newIndex(rows).target(b, m)
}

func (ix *index) envelope(b Block, scroll Scroll, m Metrics) (lo, hi float64) {
	lo, hi = ix.span(b, viewmodel.SideLeft).extent(scroll.Left, m)
	rlo, rhi := ix.span(b, viewmodel.SideRight).extent(scroll.Right, m)
	return min(lo, rlo), max(hi, rhi)
}

// extent is like pixels but gives a collapsed span the height of one line.
func (s Span) extent(scroll float64, m Metrics) (top, bottom float64) {
	top = m.PaddingTop + float64(s.Start)*m.LineHeight - scroll
	return top, m.PaddingTop + float64(s.End+1)*m.LineHeight - scroll
}

func (ix *index) target(b Block, m Metrics) Target {
	left := ix.span(b, viewmodel.SideLeft).Line()
	right := ix.span(b, viewmodel.SideRight).Line()
	return Target{
		Block:       b,
		LeftLine:    left,
		RightLine:   right,
		LeftScroll:  float64(left-1) * m.LineHeight,
		RightScroll: float64(right-1) * m.LineHeight,
	}
}
