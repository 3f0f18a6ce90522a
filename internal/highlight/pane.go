package highlight

import (
	"strconv"
	"strings"

	"github.com/codalotl/splitdiff/internal/viewmodel"
)

type lineInfo struct {
	class      LineClass
	highlights []viewmodel.Highlight
}

// RenderPane renders every line of one pane. lines are that pane's own document lines; rows and highlights map line numbers on side to a line class
// and, for modified rows, character highlights. Each line becomes one span; lines are separated by "\n".
//
// hasDiff reports whether any row has a changed line on side.
func RenderPane(lines []string, rows []viewmodel.Row, highlights []viewmodel.Highlight, side viewmodel.Side) (markup string, hasDiff bool) {
	m := viewmodel.Model{Rows: rows, Highlights: highlights}

	byLine := make(map[int]lineInfo)
	for _, r := range rows {
		s := r.Slot(side)
		if s.Kind == viewmodel.KindBlank {
			continue
		}
		if s.Kind != viewmodel.KindContext {
			hasDiff = true
		}
		info := lineInfo{class: Classify(r, side)}
		if r.IsModified() {
			info.highlights = m.HighlightsFor(r.Index, side)
		}
		byLine[s.LineNo] = info
	}

	var b strings.Builder
	for i, content := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		info := byLine[i+1]
		b.WriteString(`<span class="`)
		b.WriteString(ClassLine)
		if info.class != LineNone {
			b.WriteByte(' ')
			b.WriteString(string(info.class))
		}
		b.WriteString(`">`)
		writeLine(&b, content, info.highlights, side)
		b.WriteString(`</span>`)
	}
	return b.String(), hasDiff
}

// LineNumbers renders a gutter of n line numbers starting at 1.
func LineNumbers(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString(`<div class="`)
		b.WriteString(ClassLineNumber)
		b.WriteString(`">`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`</div>`)
	}
	return b.String()
}

// Stats renders the change count badge of side: removed lines on the left, added lines on the right. It is empty when the count is zero.
func Stats(rows []viewmodel.Row, side viewmodel.Side) string {
	removed, added := viewmodel.Stats(rows)
	if side == viewmodel.SideLeft {
		if removed == 0 {
			return ""
		}
		return `<span class="` + ClassStatRemoved + `">-` + strconv.Itoa(removed) + `</span>`
	}
	if added == 0 {
		return ""
	}
	return `<span class="` + ClassStatAdded + `">+` + strconv.Itoa(added) + `</span>`
}
