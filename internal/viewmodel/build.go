package viewmodel

import (
	"github.com/codalotl/splitdiff/internal/diff"
	"github.com/codalotl/splitdiff/internal/q/uni"
)

// DefaultSimilarityThreshold is the minimum similarity a modified pair needs before its character highlights are kept.
const DefaultSimilarityThreshold = 0.5

// Options tune Build.
type Options struct {
	// SimilarityThreshold is the minimum fraction of unchanged bytes (relative to the longer side) a modified pair needs for character highlights. Pairs below
	// it are still shown as modified lines, just without highlights, since highlighting nearly everything is noise.
	SimilarityThreshold float64
}

// DefaultOptions returns the options Build uses when the caller has no preference.
func DefaultOptions() Options {
	return Options{SimilarityThreshold: DefaultSimilarityThreshold}
}

// Build diffs oldText against newText and returns the paired-line model.
func Build(oldText, newText string, opts Options) Model {
	m := Model{
		OldLines: diff.SplitLines(oldText),
		NewLines: diff.SplitLines(newText),
	}

	var oldNo, newNo int
	for _, h := range diff.DiffText(oldText, newText).Hunks {
		if h.Op == diff.OpEqual {
			for _, ln := range diff.SplitLines(h.OldText) {
				oldNo++
				newNo++
				m.appendRow(Slot{Kind: KindContext, LineNo: oldNo, Content: ln}, Slot{Kind: KindContext, LineNo: newNo, Content: ln})
			}
			continue
		}

		hunk := Hunk{Top: -1}
		for _, ln := range h.Lines {
			oldContent, newContent := diff.TrimEOL(ln.OldText), diff.TrimEOL(ln.NewText)
			switch {
			case ln.Op == diff.OpEqual, ln.Op == diff.OpReplace && oldContent == newContent:
				// A pair differing only in its line ending ("x" vs "x\n", "x\r\n" vs "x\n") has nothing to show.
				oldNo++
				newNo++
				m.appendRow(Slot{Kind: KindContext, LineNo: oldNo, Content: oldContent}, Slot{Kind: KindContext, LineNo: newNo, Content: newContent})
			case ln.Op == diff.OpReplace:
				oldNo++
				newNo++
				hunk.addLeft(oldNo)
				hunk.addRight(newNo)
				row := m.appendRow(Slot{Kind: KindRemoved, LineNo: oldNo, Content: oldContent}, Slot{Kind: KindAdded, LineNo: newNo, Content: newContent})
				hunk.addRow(row)
				if similarity(ln.Spans) >= opts.SimilarityThreshold {
					m.addSpanHighlights(row, oldContent, newContent, ln.Spans)
				}
			case ln.Op == diff.OpDelete:
				oldNo++
				hunk.addLeft(oldNo)
				hunk.addRow(m.appendRow(Slot{Kind: KindRemoved, LineNo: oldNo, Content: oldContent}, Slot{}))
			case ln.Op == diff.OpInsert:
				newNo++
				hunk.addRight(newNo)
				hunk.addRow(m.appendRow(Slot{}, Slot{Kind: KindAdded, LineNo: newNo, Content: newContent}))
			}
		}
		if hunk.Top >= 0 {
			m.Hunks = append(m.Hunks, hunk)
		}
	}
	return m
}

func (m *Model) appendRow(left, right Slot) int {
	idx := len(m.Rows)
	m.Rows = append(m.Rows, Row{Index: idx, Left: left, Right: right})
	return idx
}

// addSpanHighlights converts the changed spans of a modified pair into grapheme-aligned highlights on both sides.
func (m *Model) addSpanHighlights(row int, oldContent, newContent string, spans []diff.DiffSpan) {
	var oldPos, newPos int
	for _, sp := range spans {
		if sp.Op == diff.OpDelete || sp.Op == diff.OpReplace {
			m.addHighlight(row, SideLeft, oldContent, oldPos, oldPos+len(sp.OldText))
		}
		if sp.Op == diff.OpInsert || sp.Op == diff.OpReplace {
			m.addHighlight(row, SideRight, newContent, newPos, newPos+len(sp.NewText))
		}
		oldPos += len(sp.OldText)
		newPos += len(sp.NewText)
	}
}

// addHighlight appends a highlight snapped to grapheme boundaries, merging it into the previous highlight of the same row and side when snapping made them touch.
func (m *Model) addHighlight(row int, side Side, content string, start, end int) {
	start, end = uni.SnapToGraphemes(content, start, end)
	if start >= end {
		return
	}
	if n := len(m.Highlights); n > 0 {
		last := &m.Highlights[n-1]
		if last.Row == row && last.Side == side && start <= last.End {
			last.End = max(last.End, end)
			return
		}
	}
	m.Highlights = append(m.Highlights, Highlight{Row: row, Side: side, Start: start, End: end})
}

// similarity returns the fraction of unchanged bytes in a line pair relative to the longer side. Two empty lines are identical.
func similarity(spans []diff.DiffSpan) float64 {
	var equal, oldTotal, newTotal int
	for _, sp := range spans {
		if sp.Op == diff.OpEqual {
			equal += len(sp.OldText)
		}
		oldTotal += len(sp.OldText)
		newTotal += len(sp.NewText)
	}
	total := max(oldTotal, newTotal)
	if total == 0 {
		return 1
	}
	return float64(equal) / float64(total)
}

func (h *Hunk) addRow(row int) {
	if h.Top < 0 {
		h.Top = row
	}
	h.Bottom = row
}

func (h *Hunk) addLeft(lineNo int) {
	if h.LeftStart == 0 {
		h.LeftStart = lineNo
	}
	h.LeftEnd = lineNo
}

func (h *Hunk) addRight(lineNo int) {
	if h.RightStart == 0 {
		h.RightStart = lineNo
	}
	h.RightEnd = lineNo
}
