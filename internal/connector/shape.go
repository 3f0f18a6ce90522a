package connector

import (
	"fmt"
	"strconv"
	"strings"
)

// Style constants of a ribbon.
const (
	FillOpacity   = 0.3
	StrokeOpacity = 0.8
	StrokeWidth   = 2.0

	// Control points of each border curve sit at these fractions of the connector width, at the y of the nearer endpoint.
	controlFrac1 = 0.4
	controlFrac2 = 0.6
)

// Point is a coordinate on the connector surface.
type Point struct {
	X, Y float64
}

// PathOp is a path-drawing instruction.
type PathOp uint8

const (
	OpMoveTo  PathOp = iota // Pts[0]
	OpCurveTo               // cubic: Pts[0], Pts[1] are control points, Pts[2] is the end point
	OpLineTo                // Pts[0]
	OpClose                 // no points
)

// PathCmd is one instruction of a Path.
type PathCmd struct {
	Op  PathOp
	Pts []Point
}

// Path is a sequence of drawing instructions.
type Path []PathCmd

// String formats p as SVG path data, e.g. "M 0,8 C 19.2,8 28.8,28 48,28".
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case OpMoveTo:
			b.WriteString("M ")
		case OpCurveTo:
			b.WriteString("C ")
		case OpLineTo:
			b.WriteString("L ")
		case OpClose:
			b.WriteString("Z")
			continue
		}
		for j, pt := range c.Pts {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatNum(pt.X))
			b.WriteByte(',')
			b.WriteString(formatNum(pt.Y))
		}
	}
	return b.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShapeKind tags a Shape.
type ShapeKind uint8

const (
	KindFilledRegion ShapeKind = iota // filled with Color at Opacity; no stroke
	KindStrokePath                    // stroked with Color at Opacity and StrokeWidth; no fill
)

func (k ShapeKind) String() string {
	if k == KindFilledRegion {
		return "fill"
	}
	return "stroke"
}

// Shape is one drawable element of a ribbon.
type Shape struct {
	Kind        ShapeKind
	Block       Block
	Path        Path
	Color       string
	Opacity     float64
	StrokeWidth float64 // 0 for KindFilledRegion
}

// Palette maps a block type to a color. It is consulted every time shapes are produced, so a themeable palette can change between frames.
type Palette interface {
	Color(BlockType) string
}

// StaticPalette is a fixed Palette.
type StaticPalette struct {
	Added    string
	Removed  string
	Modified string
}

// Built-in palettes for dark and light backgrounds.
var (
	DarkPalette  = StaticPalette{Added: "#3fb950", Removed: "#f85149", Modified: "#d29922"}
	LightPalette = StaticPalette{Added: "#1a7f37", Removed: "#cf222e", Modified: "#9a6700"}
)

func (p StaticPalette) Color(t BlockType) string {
	switch t {
	case BlockAdded:
		return p.Added
	case BlockRemoved:
		return p.Removed
	}
	return p.Modified
}

// Validate reports the first color of p that ValidColor rejects.
func (p StaticPalette) Validate() error {
	for _, c := range []struct{ name, color string }{{"added", p.Added}, {"removed", p.Removed}, {"modified", p.Modified}} {
		if !ValidColor(c.color) {
			return fmt.Errorf("invalid %s color %q", c.name, c.color)
		}
	}
	return nil
}

// ValidColor reports whether s can be written as-is into an SVG attribute or a CSS declaration: a hex color, a color name, or a functional notation
// such as "rgb(63, 185, 80)" or "hsl(0 100% 50% / 0.5)". Only the characters and the parenthesis nesting are checked, not whether s names a color.
func ValidColor(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	depth := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("#,.%/ +-", r):
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return false
			}
		default:
			return false
		}
	}
	return depth == 0
}

// PaletteFunc adapts a function to Palette.
type PaletteFunc func(BlockType) string

func (f PaletteFunc) Color(t BlockType) string {
	return f(t)
}

// Ribbon is a laid-out block.
type Ribbon struct {
	Block    Block
	Geometry Geometry
}

// Shapes returns the filled region and the top and bottom border strokes of r on a surface width wide.
func (r Ribbon) Shapes(palette Palette, width float64) []Shape {
	color := ""
	if palette != nil {
		color = palette.Color(r.Block.Type)
	}
	g := r.Geometry
	top := curve(width, g.LeftTop, g.RightTop)
	bottom := curve(width, g.LeftBottom, g.RightBottom)

	cp1x, cp2x := width*controlFrac1, width*controlFrac2
	fill := Path{
		top[0],
		top[1],
		{Op: OpLineTo, Pts: []Point{{width, g.RightBottom}}},
		{Op: OpCurveTo, Pts: []Point{{cp2x, g.RightBottom}, {cp1x, g.LeftBottom}, {0, g.LeftBottom}}},
		{Op: OpClose},
	}

	return []Shape{
		{Kind: KindFilledRegion, Block: r.Block, Path: fill, Color: color, Opacity: FillOpacity},
		{Kind: KindStrokePath, Block: r.Block, Path: top, Color: color, Opacity: StrokeOpacity, StrokeWidth: StrokeWidth},
		{Kind: KindStrokePath, Block: r.Block, Path: bottom, Color: color, Opacity: StrokeOpacity, StrokeWidth: StrokeWidth},
	}
}

// curve returns the S-curve from (0, leftY) to (width, rightY), horizontal at both ends.
func curve(width, leftY, rightY float64) Path {
	return Path{
		{Op: OpMoveTo, Pts: []Point{{0, leftY}}},
		{Op: OpCurveTo, Pts: []Point{{width * controlFrac1, leftY}, {width * controlFrac2, rightY}, {width, rightY}}},
	}
}

// At returns the y of the top and bottom border curves of r at horizontal position x, for a surface width wide. x is clamped to [0, width].
func (r Ribbon) At(x, width float64) (top, bottom float64) {
	t := curveParam(x, width)
	return curveY(t, r.Geometry.LeftTop, r.Geometry.RightTop), curveY(t, r.Geometry.LeftBottom, r.Geometry.RightBottom)
}

// curveParam finds the curve parameter t whose x coordinate is x. The x component is monotonic in t, so bisection converges.
func curveParam(x, width float64) float64 {
	if width <= 0 || x <= 0 {
		return 0
	}
	if x >= width {
		return 1
	}
	lo, hi := 0.0, 1.0
	for range 40 {
		mid := (lo + hi) / 2
		if bezier(mid, 0, width*controlFrac1, width*controlFrac2, width) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func curveY(t, leftY, rightY float64) float64 {
	return bezier(t, leftY, leftY, rightY, rightY)
}

func bezier(t, p0, p1, p2, p3 float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}
