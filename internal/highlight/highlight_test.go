package highlight

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/codalotl/splitdiff/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hl(start, end int) viewmodel.Highlight {
	return viewmodel.Highlight{Start: start, End: end}
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#039;s&lt;/a&gt;", EscapeHTML(`<a href="x">Tom & Jerry's</a>`))
	assert.Equal(t, "&amp;amp;", EscapeHTML("&amp;"))
	assert.Equal(t, "plain", EscapeHTML("plain"))
	assert.Equal(t, "", EscapeHTML(""))
}

func TestClassify(t *testing.T) {
	removed := viewmodel.Slot{Kind: viewmodel.KindRemoved, LineNo: 1}
	added := viewmodel.Slot{Kind: viewmodel.KindAdded, LineNo: 1}
	context := viewmodel.Slot{Kind: viewmodel.KindContext, LineNo: 1}

	tests := []struct {
		name        string
		row         viewmodel.Row
		left, right LineClass
	}{
		{name: "modified", row: viewmodel.Row{Left: removed, Right: added}, left: LineModified, right: LineModified},
		{name: "removed", row: viewmodel.Row{Left: removed}, left: LineRemoved, right: LineNone},
		{name: "added", row: viewmodel.Row{Right: added}, left: LineNone, right: LineAdded},
		{name: "context", row: viewmodel.Row{Left: context, Right: context}, left: LineNone, right: LineNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.left, Classify(tt.row, viewmodel.SideLeft))
			assert.Equal(t, tt.right, Classify(tt.row, viewmodel.SideRight))
		})
	}
}

func TestRenderLine(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		highlights []viewmodel.Highlight
		side       viewmodel.Side
		want       string
	}{
		{name: "escaped inside highlight", content: "ab&c", highlights: []viewmodel.Highlight{hl(1, 3)}, side: viewmodel.SideLeft,
			want: `a<span class="hl-char-removed">b&amp;</span>c`},
		{name: "added side", content: "ab&c", highlights: []viewmodel.Highlight{hl(1, 3)}, side: viewmodel.SideRight,
			want: `a<span class="hl-char-added">b&amp;</span>c`},
		{name: "no highlights", content: "<x>", side: viewmodel.SideLeft, want: "&lt;x&gt;"},
		{name: "empty", content: "", side: viewmodel.SideLeft, want: ""},
		{name: "whole line", content: "abc", highlights: []viewmodel.Highlight{hl(0, 3)}, side: viewmodel.SideRight,
			want: `<span class="hl-char-added">abc</span>`},
		{name: "unsorted", content: "abcdef", highlights: []viewmodel.Highlight{hl(4, 5), hl(0, 1)}, side: viewmodel.SideLeft,
			want: `<span class="hl-char-removed">a</span>bcd<span class="hl-char-removed">e</span>f`},
		{name: "adjacent", content: "abcd", highlights: []viewmodel.Highlight{hl(0, 2), hl(2, 4)}, side: viewmodel.SideLeft,
			want: `<span class="hl-char-removed">ab</span><span class="hl-char-removed">cd</span>`},
		{name: "overlapping", content: "abcdef", highlights: []viewmodel.Highlight{hl(1, 4), hl(2, 5)}, side: viewmodel.SideLeft,
			want: `a<span class="hl-char-removed">bcd</span><span class="hl-char-removed">e</span>f`},
		{name: "contained", content: "abcdef", highlights: []viewmodel.Highlight{hl(1, 5), hl(2, 3)}, side: viewmodel.SideLeft,
			want: `a<span class="hl-char-removed">bcde</span>f`},
		{name: "past end", content: "abc", highlights: []viewmodel.Highlight{hl(2, 10), hl(5, 6)}, side: viewmodel.SideLeft,
			want: `ab<span class="hl-char-removed">c</span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderLine(tt.content, tt.highlights, tt.side))
		})
	}
}

// stripMarkup removes the span scaffolding RenderLine emits, leaving escaped text.
func stripMarkup(s string) string {
	for _, tag := range []string{`<span class="hl-char-removed">`, `<span class="hl-char-added">`, `</span>`} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}

func TestRenderLine_Properties(t *testing.T) {
	const alphabet = `ab<>&"' `
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(12)
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		content := sb.String()

		var hs []viewmodel.Highlight
		for i := rng.Intn(4); i > 0; i-- {
			start := rng.Intn(n + 1)
			hs = append(hs, hl(start, start+rng.Intn(4)))
		}
		side := viewmodel.Side(rng.Intn(2))

		out := RenderLine(content, hs, side)
		require.Equal(t, out, RenderLine(content, hs, side), "not idempotent")

		text := stripMarkup(out)
		require.NotContains(t, text, "<")
		require.NotContains(t, text, ">")
		require.NotContains(t, text, `"`)
		require.NotContains(t, text, "'")
		require.Equal(t, EscapeHTML(content), text, "content changed for %q %v", content, hs)
	}
}

func TestSegments(t *testing.T) {
	assert.Nil(t, Segments("", nil))
	assert.Equal(t, []Segment{{Text: "a"}, {Text: "b", Highlighted: true}, {Text: "c"}}, Segments("abc", []viewmodel.Highlight{hl(1, 2)}))

	// The input slice is left untouched.
	hs := []viewmodel.Highlight{hl(2, 3), hl(0, 1)}
	Segments("abc", hs)
	assert.Equal(t, []viewmodel.Highlight{hl(2, 3), hl(0, 1)}, hs)
}
