package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(oldText, newText string) Model {
	return Build(oldText, newText, DefaultOptions())
}

func TestBuild_BothEmpty(t *testing.T) {
	m := build("", "")
	assert.Empty(t, m.OldLines)
	assert.Empty(t, m.NewLines)
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.Hunks)
}

func TestBuild_Identical(t *testing.T) {
	m := build("a\nb\nc", "a\nb\nc")
	require.Len(t, m.Rows, 3)
	for i, r := range m.Rows {
		assert.Equal(t, KindContext, r.Left.Kind)
		assert.Equal(t, KindContext, r.Right.Kind)
		assert.Equal(t, i+1, r.Left.LineNo)
		assert.Equal(t, i+1, r.Right.LineNo)
	}
	assert.Empty(t, m.Hunks)
	assert.Empty(t, m.Highlights)
}

func TestBuild_SingleInsert(t *testing.T) {
	m := build("a\nc", "a\nb\nc")
	require.Len(t, m.Hunks, 1)
	require.Len(t, m.Rows, 3)

	r := m.Rows[1]
	assert.Equal(t, Slot{}, r.Left)
	assert.Equal(t, Slot{Kind: KindAdded, LineNo: 2, Content: "b"}, r.Right)
	assert.Equal(t, Hunk{Top: 1, Bottom: 1, RightStart: 2, RightEnd: 2}, m.Hunks[0])
}

func TestBuild_SingleDelete(t *testing.T) {
	m := build("a\nb\nc", "a\nc")
	require.Len(t, m.Hunks, 1)
	require.Len(t, m.Rows, 3)

	r := m.Rows[1]
	assert.Equal(t, Slot{Kind: KindRemoved, LineNo: 2, Content: "b"}, r.Left)
	assert.Equal(t, KindBlank, r.Right.Kind)
	assert.Equal(t, Slot{Kind: KindContext, LineNo: 3, Content: "c"}, m.Rows[2].Left)
	assert.Equal(t, Slot{Kind: KindContext, LineNo: 2, Content: "c"}, m.Rows[2].Right)
}

func TestBuild_Modification(t *testing.T) {
	m := build("a\nold\nc", "a\nnew\nc")
	require.Len(t, m.Hunks, 1)
	require.Len(t, m.Rows, 3)

	r := m.Rows[1]
	require.True(t, r.IsModified())
	assert.Equal(t, "old", r.Left.Content)
	assert.Equal(t, "new", r.Right.Content)

	// Nothing in common, so the pair is below the similarity threshold.
	assert.Empty(t, m.Highlights)
}

func TestBuild_CRLF(t *testing.T) {
	m := build("a\r\nb\r\n", "a\r\nc\r\n")
	assert.Equal(t, []string{"a", "b"}, m.OldLines)
	assert.Equal(t, []string{"a", "c"}, m.NewLines)

	require.Len(t, m.Rows, 2)
	assert.Equal(t, "a", m.Rows[0].Left.Content)
	require.True(t, m.Rows[1].IsModified())
	assert.Equal(t, "b", m.Rows[1].Left.Content)
	assert.Equal(t, "c", m.Rows[1].Right.Content)
	assert.Equal(t, []Hunk{{Top: 1, Bottom: 1, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 2}}, m.Hunks)
}

func TestBuild_LineEndingOnlyChanges(t *testing.T) {
	tests := []struct {
		name, oldText, newText string
	}{
		{"newline added at end", "x", "x\n"},
		{"newline removed at end", "a\nx\n", "a\nx"},
		{"crlf to lf", "a\r\nb\r\n", "a\nb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(tt.oldText, tt.newText)
			require.NotEmpty(t, m.Rows)
			for _, r := range m.Rows {
				assert.Equal(t, KindContext, r.Left.Kind)
				assert.Equal(t, KindContext, r.Right.Kind)
				assert.Equal(t, r.Left.Content, r.Right.Content)
			}
			assert.Empty(t, m.Hunks)
			assert.Empty(t, m.Highlights)
		})
	}
}

func TestBuild_HunkSkipsLineEndingOnlyRows(t *testing.T) {
	m := build("x\ny", "X\ny\n")
	require.Len(t, m.Rows, 2)
	assert.True(t, m.Rows[0].IsModified())
	assert.Equal(t, KindContext, m.Rows[1].Left.Kind)
	assert.Equal(t, []Hunk{{Top: 0, Bottom: 0, LeftStart: 1, LeftEnd: 1, RightStart: 1, RightEnd: 1}}, m.Hunks)
}

func TestBuild_InlineHighlights(t *testing.T) {
	m := build("abc", "axc")
	require.Equal(t, []Highlight{
		{Row: 0, Side: SideLeft, Start: 1, End: 2},
		{Row: 0, Side: SideRight, Start: 1, End: 2},
	}, m.Highlights)
}

func TestBuild_SimilarityThreshold(t *testing.T) {
	m := Build("old", "new", Options{SimilarityThreshold: 0})
	require.Equal(t, []Highlight{
		{Row: 0, Side: SideLeft, Start: 0, End: 3},
		{Row: 0, Side: SideRight, Start: 0, End: 3},
	}, m.Highlights)
}

func TestBuild_UTF8Content(t *testing.T) {
	m := build("你好", "你坏")
	require.Len(t, m.Hunks, 1)
	require.Equal(t, []Highlight{
		{Row: 0, Side: SideLeft, Start: 3, End: 6},
		{Row: 0, Side: SideRight, Start: 3, End: 6},
	}, m.Highlights)
}

func TestBuild_MultipleHunks(t *testing.T) {
	m := build(
		"1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\n14\n15",
		"1\nA\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\nB\n15",
	)
	require.Len(t, m.Hunks, 2)
	assert.Equal(t, Hunk{Top: 1, Bottom: 1, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 2}, m.Hunks[0])
	assert.Equal(t, Hunk{Top: 13, Bottom: 13, LeftStart: 14, LeftEnd: 14, RightStart: 14, RightEnd: 14}, m.Hunks[1])
}

func TestBuild_OnlyInserts(t *testing.T) {
	m := build("", "a\nb")
	require.Len(t, m.Hunks, 1)
	require.Len(t, m.Rows, 2)
	for _, r := range m.Rows {
		assert.Equal(t, KindBlank, r.Left.Kind)
		assert.Equal(t, KindAdded, r.Right.Kind)
	}
}

func TestBuild_OnlyDeletes(t *testing.T) {
	m := build("a\nb", "")
	require.Len(t, m.Hunks, 1)
	require.Len(t, m.Rows, 2)
	for _, r := range m.Rows {
		assert.Equal(t, KindRemoved, r.Left.Kind)
		assert.Equal(t, KindBlank, r.Right.Kind)
	}
}

func TestBuild_UnevenReplacement(t *testing.T) {
	m := build("a\nb\nz", "a\nB\nC\nD\nz")
	require.Len(t, m.Rows, 5)

	assert.True(t, m.Rows[1].IsModified())
	assert.Equal(t, KindBlank, m.Rows[2].Left.Kind)
	assert.Equal(t, Slot{Kind: KindAdded, LineNo: 3, Content: "C"}, m.Rows[2].Right)
	assert.Equal(t, Slot{Kind: KindAdded, LineNo: 4, Content: "D"}, m.Rows[3].Right)
	assert.Equal(t, Hunk{Top: 1, Bottom: 3, LeftStart: 2, LeftEnd: 2, RightStart: 2, RightEnd: 4}, m.Hunks[0])
}

func TestBuild_LineNumbersAndValidity(t *testing.T) {
	inputs := [][2]string{
		{"a\nb\nc", "a\nx\nc"},
		{"a\nb\nc\n", "x\ny\n"},
		{"", "a\n"},
		{"one two three\nfour\n", "one 2 three\nfour\nfive\n"},
		{"a\r\nb\r\n", "a\nb\nc\n"},
		{"x", "y\nx\n"},
	}
	for _, in := range inputs {
		m := build(in[0], in[1])
		require.NoError(t, Validate(m.Rows, m.Highlights))
		for _, r := range m.Rows {
			if r.Left.Kind != KindBlank {
				assert.LessOrEqual(t, r.Left.LineNo, len(m.OldLines))
				assert.Equal(t, m.OldLines[r.Left.LineNo-1], r.Left.Content)
			}
			if r.Right.Kind != KindBlank {
				assert.LessOrEqual(t, r.Right.LineNo, len(m.NewLines))
				assert.Equal(t, m.NewLines[r.Right.LineNo-1], r.Right.Content)
			}
		}
	}
}

func TestModel_HighlightsFor(t *testing.T) {
	m := Model{
		Rows: []Row{{Index: 0, Left: Slot{Kind: KindRemoved, LineNo: 1, Content: "abcdef"}, Right: Slot{Kind: KindAdded, LineNo: 1, Content: "abcdef"}}},
		Highlights: []Highlight{
			{Row: 0, Side: SideLeft, Start: 4, End: 5},
			{Row: 0, Side: SideRight, Start: 0, End: 1},
			{Row: 0, Side: SideLeft, Start: 1, End: 2},
			{Row: 7, Side: SideLeft, Start: 0, End: 1},
		},
	}

	assert.Equal(t, []Highlight{
		{Row: 0, Side: SideLeft, Start: 1, End: 2},
		{Row: 0, Side: SideLeft, Start: 4, End: 5},
	}, m.HighlightsFor(0, SideLeft))
	assert.Len(t, m.HighlightsFor(0, SideRight), 1)
	assert.Nil(t, m.HighlightsFor(7, SideLeft))
	assert.Nil(t, m.HighlightsFor(-1, SideLeft))
}

func TestStats(t *testing.T) {
	m := build("a\nb\nc\n", "a\nB\nd\ne\n")
	removed, added := Stats(m.Rows)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 3, added)
}
