// Package page renders a diff as a standalone HTML document: both panes with line numbers and change counts, and the connector ribbons between them as
// inline SVG.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/highlight"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Option("missingkey=error").Parse(pageSource))

// Options control the page.
type Options struct {
	OldName string
	NewName string
	Theme   string // "dark" or "light"; anything else is dark
	Dark    connector.StaticPalette
	Light   connector.StaticPalette
	Metrics connector.Metrics
}

// DefaultOptions returns Options with the built-in palettes and metrics.
func DefaultOptions() Options {
	return Options{
		OldName: "old",
		NewName: "new",
		Theme:   "dark",
		Dark:    connector.DarkPalette,
		Light:   connector.LightPalette,
		Metrics: connector.DefaultMetrics,
	}
}

type pane struct {
	Name    string
	Stats   template.HTML
	Numbers template.HTML
	Code    template.HTML
}

// cssPalette holds palette colors already checked by connector.ValidColor, so the template writes them into the stylesheet unfiltered.
type cssPalette struct {
	Added    template.CSS
	Removed  template.CSS
	Modified template.CSS
}

func newCSSPalette(theme string, p connector.StaticPalette) (cssPalette, error) {
	if err := p.Validate(); err != nil {
		return cssPalette{}, fmt.Errorf("page: %s palette: %w", theme, err)
	}
	return cssPalette{Added: template.CSS(p.Added), Removed: template.CSS(p.Removed), Modified: template.CSS(p.Modified)}, nil
}

type pageData struct {
	Theme     string
	Dark      cssPalette
	Light     cssPalette
	Metrics   connector.Metrics
	Height    float64
	Left      pane
	Right     pane
	HasDiff   bool
	Connector template.HTML
}

// Write renders vm as an HTML page to w.
//
// The panes are not scrollable on their own, so the connector is drawn once at zero scroll over the full height of the longer pane. Write fails
// without writing anything if a palette color is rejected by connector.ValidColor.
func Write(w io.Writer, vm viewmodel.Model, opts Options) error {
	data := pageData{
		Theme:   "dark",
		Metrics: opts.Metrics,
		Height:  Height(vm, opts.Metrics),
	}
	var err error
	if data.Dark, err = newCSSPalette("dark", opts.Dark); err != nil {
		return err
	}
	if data.Light, err = newCSSPalette("light", opts.Light); err != nil {
		return err
	}
	palette := opts.Dark
	if opts.Theme == "light" {
		data.Theme = "light"
		palette = opts.Light
	}

	var leftDiff, rightDiff bool
	data.Left, leftDiff = newPane(vm, viewmodel.SideLeft, opts.OldName)
	data.Right, rightDiff = newPane(vm, viewmodel.SideRight, opts.NewName)
	data.HasDiff = leftDiff || rightDiff

	shapes := connector.Draw(connector.Snapshot{
		Rows:           vm.Rows,
		ViewportHeight: data.Height,
		Metrics:        opts.Metrics,
		Palette:        palette,
	})
	var svg bytes.Buffer
	if err := connector.WriteSVG(&svg, shapes, opts.Metrics.Width, data.Height); err != nil {
		return fmt.Errorf("page: connector: %w", err)
	}
	data.Connector = template.HTML(svg.String())

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("page: %w", err)
	}
	return nil
}

// Height is the height of the connector surface for vm: top and bottom padding around the longer pane.
func Height(vm viewmodel.Model, m connector.Metrics) float64 {
	n := max(len(vm.OldLines), len(vm.NewLines))
	return 2*m.PaddingTop + float64(n)*m.LineHeight
}

func newPane(vm viewmodel.Model, side viewmodel.Side, name string) (pane, bool) {
	lines := vm.Lines(side)
	code, hasDiff := highlight.RenderPane(lines, vm.Rows, vm.Highlights, side)
	return pane{
		Name:    name,
		Stats:   template.HTML(highlight.Stats(vm.Rows, side)),
		Numbers: template.HTML(highlight.LineNumbers(len(lines))),
		Code:    template.HTML(code),
	}, hasDiff
}
