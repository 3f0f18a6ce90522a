package highlight

import (
	"testing"

	"github.com/codalotl/splitdiff/internal/viewmodel"
	"github.com/stretchr/testify/assert"
)

func TestRenderPane(t *testing.T) {
	m := viewmodel.Build("keep\nabc\ngone\n<end>", "keep\naxc\n<end>\nnew", viewmodel.DefaultOptions())

	left, hasDiff := RenderPane(m.OldLines, m.Rows, m.Highlights, viewmodel.SideLeft)
	assert.True(t, hasDiff)
	assert.Equal(t, `<span class="hl-line">keep</span>`+"\n"+
		`<span class="hl-line hl-modified">a<span class="hl-char-removed">b</span>c</span>`+"\n"+
		`<span class="hl-line hl-removed">gone</span>`+"\n"+
		`<span class="hl-line">&lt;end&gt;</span>`, left)

	right, hasDiff := RenderPane(m.NewLines, m.Rows, m.Highlights, viewmodel.SideRight)
	assert.True(t, hasDiff)
	assert.Equal(t, `<span class="hl-line">keep</span>`+"\n"+
		`<span class="hl-line hl-modified">a<span class="hl-char-added">x</span>c</span>`+"\n"+
		`<span class="hl-line">&lt;end&gt;</span>`+"\n"+
		`<span class="hl-line hl-added">new</span>`, right)
}

func TestRenderPane_NoDiff(t *testing.T) {
	m := viewmodel.Build("a\nb", "a\nb", viewmodel.DefaultOptions())
	out, hasDiff := RenderPane(m.OldLines, m.Rows, m.Highlights, viewmodel.SideLeft)
	assert.False(t, hasDiff)
	assert.Equal(t, `<span class="hl-line">a</span>`+"\n"+`<span class="hl-line">b</span>`, out)

	out, hasDiff = RenderPane(nil, nil, nil, viewmodel.SideRight)
	assert.False(t, hasDiff)
	assert.Empty(t, out)
}

func TestRenderPane_IgnoresStrayHighlights(t *testing.T) {
	rows := []viewmodel.Row{{
		Left:  viewmodel.Slot{Kind: viewmodel.KindRemoved, LineNo: 1, Content: "abc"},
		Right: viewmodel.Slot{Kind: viewmodel.KindAdded, LineNo: 1, Content: "abd"},
	}}
	highlights := []viewmodel.Highlight{
		{Row: 0, Side: viewmodel.SideRight, Start: 2, End: 3},
		{Row: 4, Side: viewmodel.SideRight, Start: 0, End: 1},
	}
	out, _ := RenderPane([]string{"abd"}, rows, highlights, viewmodel.SideRight)
	assert.Equal(t, `<span class="hl-line hl-modified">ab<span class="hl-char-added">d</span></span>`, out)
}

func TestLineNumbers(t *testing.T) {
	assert.Empty(t, LineNumbers(0))
	assert.Equal(t, `<div class="line-number">1</div><div class="line-number">2</div>`, LineNumbers(2))
}

func TestStats(t *testing.T) {
	m := viewmodel.Build("a\nb\nc", "a\nB\nd\ne", viewmodel.DefaultOptions())
	assert.Equal(t, `<span class="stat-removed">-2</span>`, Stats(m.Rows, viewmodel.SideLeft))
	assert.Equal(t, `<span class="stat-added">+3</span>`, Stats(m.Rows, viewmodel.SideRight))

	same := viewmodel.Build("a", "a", viewmodel.DefaultOptions())
	assert.Empty(t, Stats(same.Rows, viewmodel.SideLeft))
	assert.Empty(t, Stats(same.Rows, viewmodel.SideRight))
}
