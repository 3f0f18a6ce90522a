package connector

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// WriteSVG writes shapes as a standalone SVG element of the given size. The viewBox matches the size and the aspect ratio is not preserved, so the
// element can be stretched to fill the gap between panes.
func WriteSVG(w io.Writer, shapes []Shape, width, height float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" preserveAspectRatio="none">`,
		formatNum(width), formatNum(height), formatNum(width), formatNum(height))
	bw.WriteByte('\n')
	for _, s := range shapes {
		color := html.EscapeString(s.Color)
		switch s.Kind {
		case KindFilledRegion:
			fmt.Fprintf(bw, `<path d="%s" fill="%s" opacity="%s"/>`, s.Path, color, formatNum(s.Opacity))
		case KindStrokePath:
			fmt.Fprintf(bw, `<path d="%s" stroke="%s" stroke-width="%s" fill="none" opacity="%s"/>`, s.Path, color, formatNum(s.StrokeWidth), formatNum(s.Opacity))
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
