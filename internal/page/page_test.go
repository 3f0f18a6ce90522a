package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/splitdiff/internal/connector"
	"github.com/codalotl/splitdiff/internal/viewmodel"
)

func render(t *testing.T, oldText, newText string, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, viewmodel.Build(oldText, newText, viewmodel.DefaultOptions()), opts))
	return buf.String()
}

func TestWrite(t *testing.T) {
	opts := DefaultOptions()
	opts.OldName = "a<b>.txt"
	opts.NewName = "b.txt"
	out := render(t, "one\ntwo & three\nfour\n", "one\ntwo & 3\nfour\nfive\n", opts)

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<html data-theme="dark">`)
	assert.Contains(t, out, "<title>a&lt;b&gt;.txt vs b.txt</title>")
	assert.Contains(t, out, "--added: #3fb950;")
	assert.Contains(t, out, "--removed: #cf222e;")
	assert.Contains(t, out, "grid-template-columns: 1fr 48px 1fr;")
	assert.Contains(t, out, `<span class="stat-removed">-1</span>`)
	assert.Contains(t, out, `<span class="stat-added">+2</span>`)
	assert.Contains(t, out, `<div class="line-number">4</div>`)
	assert.Contains(t, out, `<span class="hl-line hl-modified">two &amp; `)
	assert.Contains(t, out, `<span class="hl-line hl-added">five</span>`)
	assert.NotContains(t, out, "No changes")

	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="96"`)
	assert.Equal(t, 6, strings.Count(out, "<path "))
	assert.Contains(t, out, `fill="#d29922"`)
}

func TestWrite_LightTheme(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "light"
	out := render(t, "a\n", "b\n", opts)
	assert.Contains(t, out, `<html data-theme="light">`)
	assert.Contains(t, out, `fill="#9a6700"`)
}

func TestWrite_NoChanges(t *testing.T) {
	out := render(t, "same\n", "same\n", DefaultOptions())
	assert.Contains(t, out, "No changes")
	assert.NotContains(t, out, "<path ")
	assert.Contains(t, out, `<span class="hl-line">same</span>`)
}

func TestWrite_Empty(t *testing.T) {
	out := render(t, "", "", DefaultOptions())
	assert.Contains(t, out, `height="16"`)
}

func TestHeight(t *testing.T) {
	vm := viewmodel.Build("a\nb\n", "a\n", viewmodel.DefaultOptions())
	assert.Equal(t, 56.0, Height(vm, connector.DefaultMetrics))
	assert.Equal(t, 2.0, Height(vm, connector.Metrics{LineHeight: 1}))
}

func TestWrite_FunctionalColors(t *testing.T) {
	opts := DefaultOptions()
	opts.Dark = connector.StaticPalette{Added: "rgb(63, 185, 80)", Removed: "hsl(0 100% 50%)", Modified: "orange"}
	out := render(t, "a\n", "b\n", opts)

	assert.Contains(t, out, "--added: rgb(63, 185, 80); --removed: hsl(0 100% 50%); --modified: orange;")
	assert.NotContains(t, out, "ZgotmplZ")
	assert.Contains(t, out, `fill="orange"`)
}

func TestWrite_InvalidColor(t *testing.T) {
	opts := DefaultOptions()
	opts.Light.Added = "red;}body{display:none"
	var buf bytes.Buffer
	err := Write(&buf, viewmodel.Build("a\n", "b\n", viewmodel.DefaultOptions()), opts)
	require.EqualError(t, err, `page: light palette: invalid added color "red;}body{display:none"`)
	assert.Zero(t, buf.Len())
}

func TestWrite_CRLF(t *testing.T) {
	out := render(t, "a\r\nb\r\n", "a\r\nc\r\n", DefaultOptions())
	assert.NotContains(t, out, "\r")
	assert.Contains(t, out, `<span class="hl-line">a</span>`)
	assert.Contains(t, out, `<span class="hl-line hl-modified">`)
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="56"`)
}
