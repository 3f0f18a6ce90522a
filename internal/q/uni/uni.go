// Package uni measures and slices text by grapheme clusters and terminal cell widths.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Iterator iterates over the grapheme clusters of a string.
type Iterator struct {
	iter *graphemes.Iterator[string]
	cond *runewidth.Condition
}

// NewGraphemeIterator returns a new grapheme iterator for str. If opts is nil, locale is assumed to be non-East Asian.
func NewGraphemeIterator(str string, opts *Options) *Iterator {
	iter := graphemes.FromString(str)
	return &Iterator{iter: &iter, cond: conditionFromOptions(opts)}
}

func (iter *Iterator) Next() bool {
	return iter.iter.Next()
}

func (iter *Iterator) Value() string {
	return iter.iter.Value()
}

// Start returns the byte position of the current grapheme in the original string.
func (iter *Iterator) Start() int {
	return iter.iter.Start()
}

// End returns the byte position after the current grapheme. Allows looping over bytes [Start(), End()).
func (iter *Iterator) End() int {
	return iter.iter.End()
}

// TextWidth returns the cell width of the current grapheme.
func (iter *Iterator) TextWidth() int {
	return iter.cond.StringWidth(iter.iter.Value())
}

// SnapToGraphemes widens the byte range [start, end) of str so both ends fall on grapheme cluster boundaries: start moves back to the beginning of the cluster
// containing it, end moves forward to the end of the cluster containing end-1. Out-of-range values are clamped to [0, len(str)].
func SnapToGraphemes(str string, start, end int) (int, int) {
	start = max(0, min(start, len(str)))
	end = max(start, min(end, len(str)))

	snappedStart, snappedEnd := start, end
	iter := graphemes.FromString(str)
	for iter.Next() {
		s, e := iter.Start(), iter.End()
		if s <= start && start < e {
			snappedStart = s
		}
		if s < end && end < e {
			snappedEnd = e
		}
		if s >= end {
			break
		}
	}
	return snappedStart, snappedEnd
}

// Truncate returns the longest prefix of str made of whole grapheme clusters whose width does not exceed width, along with that prefix's width.
func Truncate(str string, width int, opts *Options) (string, int) {
	if width <= 0 {
		return "", 0
	}
	iter := NewGraphemeIterator(str, opts)
	used := 0
	for iter.Next() {
		w := iter.TextWidth()
		if used+w > width {
			return str[:iter.Start()], used
		}
		used += w
	}
	return str, used
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
