// Package highlight renders the text of diff lines as HTML, with line classes and character highlights.
package highlight

import (
	"sort"
	"strings"

	"github.com/codalotl/splitdiff/internal/viewmodel"
)

// CSS classes emitted by this package.
const (
	ClassLine        = "hl-line"
	ClassCharRemoved = "hl-char-removed"
	ClassCharAdded   = "hl-char-added"
	ClassLineNumber  = "line-number"
	ClassStatRemoved = "stat-removed"
	ClassStatAdded   = "stat-added"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces the five HTML metacharacters in s with entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// LineClass is the line-level style of one side of a row.
type LineClass string

const (
	LineNone     LineClass = ""
	LineModified LineClass = "hl-modified"
	LineRemoved  LineClass = "hl-removed"
	LineAdded    LineClass = "hl-added"
)

// Classify returns the line class of row on side. Modified rows are styled on both sides; removed rows only on the left and added rows only on the right.
func Classify(row viewmodel.Row, side viewmodel.Side) LineClass {
	l, r := row.Left.Kind, row.Right.Kind
	switch {
	case l == viewmodel.KindRemoved && r == viewmodel.KindAdded:
		return LineModified
	case side == viewmodel.SideLeft && l == viewmodel.KindRemoved && r == viewmodel.KindBlank:
		return LineRemoved
	case side == viewmodel.SideRight && r == viewmodel.KindAdded && l == viewmodel.KindBlank:
		return LineAdded
	}
	return LineNone
}

// Segment is a run of line content that is either plain or highlighted.
type Segment struct {
	Text        string
	Highlighted bool
}

// Segments splits content into plain and highlighted runs.
//
// Highlights are applied in Start order (stable). A highlight that overlaps an earlier one only contributes the part past the earlier one's end, so no
// byte of content is emitted twice. Ranges are clamped to content; empty ranges are dropped.
func Segments(content string, highlights []viewmodel.Highlight) []Segment {
	sorted := make([]viewmodel.Highlight, len(highlights))
	copy(sorted, highlights)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var segs []Segment
	pos := 0
	for _, h := range sorted {
		start := max(h.Start, pos)
		end := min(h.End, len(content))
		if start >= end {
			continue
		}
		if start > pos {
			segs = append(segs, Segment{Text: content[pos:start]})
		}
		segs = append(segs, Segment{Text: content[start:end], Highlighted: true})
		pos = end
	}
	if pos < len(content) {
		segs = append(segs, Segment{Text: content[pos:]})
	}
	return segs
}

// charClass returns the class of highlighted runs on side.
func charClass(side viewmodel.Side) string {
	if side == viewmodel.SideLeft {
		return ClassCharRemoved
	}
	return ClassCharAdded
}

// RenderLine renders content with its highlights on side. Every content fragment is escaped; highlighted fragments are wrapped in a span whose class
// depends on side.
func RenderLine(content string, highlights []viewmodel.Highlight, side viewmodel.Side) string {
	var b strings.Builder
	writeLine(&b, content, highlights, side)
	return b.String()
}

func writeLine(b *strings.Builder, content string, highlights []viewmodel.Highlight, side viewmodel.Side) {
	for _, seg := range Segments(content, highlights) {
		if !seg.Highlighted {
			b.WriteString(EscapeHTML(seg.Text))
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(charClass(side))
		b.WriteString(`">`)
		b.WriteString(EscapeHTML(seg.Text))
		b.WriteString(`</span>`)
	}
}
