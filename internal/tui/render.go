package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/codalotl/splitdiff/internal/highlight"
	"github.com/codalotl/splitdiff/internal/q/uni"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

// paneLines renders every line shown on side, one entry per display row, each exactly width cells wide.
func paneLines(vm viewmodel.Model, side viewmodel.Side, width, tabWidth int, st styles) []string {
	digits := len(strconv.Itoa(len(vm.Lines(side))))

	var out []string
	for _, row := range vm.Rows {
		slot := row.Slot(side)
		if slot.Kind == viewmodel.KindBlank {
			continue
		}
		var hs []viewmodel.Highlight
		if row.IsModified() {
			hs = vm.HighlightsFor(row.Index, side)
		}
		num := strconv.Itoa(slot.LineNo)
		num = strings.Repeat(" ", max(0, digits-len(num))) + num + " "
		out = append(out, renderLine(num, slot.Content, hs, highlight.Classify(row, side), side, width, tabWidth, st))
	}
	return out
}

// renderLine renders one pane line: the line number, then content with its character highlights, cut and padded to width cells.
func renderLine(num, content string, hs []viewmodel.Highlight, class highlight.LineClass, side viewmodel.Side, width, tabWidth int, st styles) string {
	var b strings.Builder

	num, used := uni.Truncate(num, width, nil)
	b.WriteString(st.muted.Render(num))

	budget := width - used
	base, char := st.line(class, side), st.char(side)
	col := 0
	for _, seg := range highlight.Segments(content, hs) {
		text, _ := sanitize(seg.Text, col, tabWidth)
		cut, w := uni.Truncate(text, budget-col, nil)
		style := base
		if seg.Highlighted {
			style = char
		}
		if cut != "" {
			b.WriteString(style.Render(cut))
		}
		col += w
		if len(cut) < len(text) {
			break
		}
	}

	return fit(b.String(), width)
}

// fit cuts or pads s, which may carry ANSI styling, to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
