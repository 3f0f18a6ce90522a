package connector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSVG(t *testing.T) {
	rows := parseRows(t, "C1 C1", "R2 A2")
	shapes := Draw(Snapshot{Rows: rows, ViewportHeight: 100, Metrics: DefaultMetrics, Palette: StaticPalette{Modified: `#d29922`}})

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, shapes, 48, 100))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="100" viewBox="0 0 48 100" preserveAspectRatio="none">`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 3, strings.Count(out, "<path "))
	assert.Contains(t, out, `fill="#d29922" opacity="0.3"/>`)
	assert.Equal(t, 2, strings.Count(out, `stroke="#d29922" stroke-width="2" fill="none" opacity="0.8"/>`))
}

func TestWriteSVG_EscapesColor(t *testing.T) {
	shapes := []Shape{{Kind: KindFilledRegion, Path: curve(48, 0, 0), Color: `"><script>`, Opacity: FillOpacity}}
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, shapes, 48, 10))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestWriteSVG_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, nil, 48, 0))
	assert.Equal(t, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"48\" height=\"0\" viewBox=\"0 0 48 0\" preserveAspectRatio=\"none\">\n</svg>\n", buf.String())
}
