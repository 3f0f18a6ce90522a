package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codalotl/splitdiff/internal/connector"
)

const (
	glyphFull  = '\u2588'
	glyphUpper = '\u2580'
	glyphLower = '\u2584'
	glyphEdge  = '\u2500'
)

// cell is one rasterized gutter cell.
type cell struct {
	glyph rune
	typ   connector.BlockType
}

// gutterLines rasterizes the ribbons of s into s.ViewportHeight rows of s.Metrics.Width cells. Each cell samples every ribbon at its horizontal center;
// later ribbons paint over earlier ones.
func gutterLines(s connector.Snapshot, st styles) []string {
	width, height := int(s.Metrics.Width), int(s.ViewportHeight)
	if height <= 0 {
		return nil
	}

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
	}
	for _, r := range connector.Ribbons(s) {
		for x := 0; x < width; x++ {
			top, bottom := r.At(float64(x)+0.5, s.Metrics.Width)
			for y := 0; y < height; y++ {
				if g := cellGlyph(top, bottom, float64(y)); g != 0 {
					grid[y][x] = cell{glyph: g, typ: r.Block.Type}
				}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = renderCells(row, st)
	}
	return lines
}

// cellGlyph returns the glyph of the cell spanning [y, y+1) for a ribbon covering [top, bottom) at that column, or 0 when the ribbon misses the cell.
func cellGlyph(top, bottom, y float64) rune {
	lo, hi := max(top, y), min(bottom, y+1)
	switch {
	case hi-lo >= 0.75:
		return glyphFull
	case hi-lo >= 0.25:
		if lo > y+0.25 {
			return glyphLower
		}
		return glyphUpper
	case hi > lo || (top >= y && top < y+1):
		return glyphEdge
	}
	return 0
}

// renderCells styles a row of cells, one style run per ribbon color.
func renderCells(row []cell, st styles) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && (row[j].glyph == 0) == (row[i].glyph == 0) && row[j].typ == row[i].typ {
			j++
		}
		if row[i].glyph == 0 {
			b.WriteString(strings.Repeat(" ", j-i))
		} else {
			var run strings.Builder
			for _, c := range row[i:j] {
				run.WriteRune(c.glyph)
			}
			b.WriteString(ribbonStyle(st, row[i].typ).Render(run.String()))
		}
		i = j
	}
	return b.String()
}

func ribbonStyle(st styles, t connector.BlockType) lipgloss.Style {
	if s, ok := st.ribbon[t]; ok {
		return s
	}
	return st.plain
}
