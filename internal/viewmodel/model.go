package viewmodel

import "sort"

// Kind is the state of one side of a Row.
type Kind uint8

const (
	KindBlank   Kind = iota // no line on this side
	KindContext             // unchanged line
	KindRemoved             // line only in the old document (or the old half of a modified pair)
	KindAdded               // line only in the new document (or the new half of a modified pair)
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindContext:
		return "context"
	case KindRemoved:
		return "removed"
	case KindAdded:
		return "added"
	}
	return "unknown"
}

// Side selects a pane.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Slot is one side of a Row.
type Slot struct {
	Kind    Kind
	LineNo  int    // 1-based; 0 when Kind == KindBlank
	Content string // line text without EOL; "" when Kind == KindBlank
}

// Row is one aligned position in the two-pane stream.
type Row struct {
	Index int // position in Model.Rows
	Left  Slot
	Right Slot
}

// Slot returns the slot for side.
func (r Row) Slot(side Side) Slot {
	if side == SideLeft {
		return r.Left
	}
	return r.Right
}

// IsModified reports whether r pairs a removed line with an added line.
func (r Row) IsModified() bool {
	return r.Left.Kind == KindRemoved && r.Right.Kind == KindAdded
}

// Highlight is a changed byte range inside one side of a Row.
type Highlight struct {
	Row   int
	Side  Side
	Start int
	End   int
}

// Hunk describes one contiguous change region of a Model.
//
// Top and Bottom are inclusive row indices. The line ranges are 1-based and inclusive; a zero start means that side has no lines in the hunk.
type Hunk struct {
	Top, Bottom          int
	LeftStart, LeftEnd   int
	RightStart, RightEnd int
}

// Model is the complete input to the visualization layer.
type Model struct {
	OldLines   []string
	NewLines   []string
	Rows       []Row
	Highlights []Highlight
	Hunks      []Hunk
}

// HighlightsFor returns the highlights of row on side, sorted by Start (stable). Highlights that refer to rows outside m.Rows are never returned.
func (m Model) HighlightsFor(row int, side Side) []Highlight {
	if row < 0 || row >= len(m.Rows) {
		return nil
	}
	var out []Highlight
	for _, h := range m.Highlights {
		if h.Row == row && h.Side == side {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Lines returns the document lines shown on side.
func (m Model) Lines(side Side) []string {
	if side == SideLeft {
		return m.OldLines
	}
	return m.NewLines
}

// Stats counts removed lines (left Removed) and added lines (right Added) in rows.
func Stats(rows []Row) (removed, added int) {
	for _, r := range rows {
		if r.Left.Kind == KindRemoved {
			removed++
		}
		if r.Right.Kind == KindAdded {
			added++
		}
	}
	return removed, added
}
