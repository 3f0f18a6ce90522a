// Package viewmodel defines the paired-line model of a two-pane diff and builds it from two documents.
//
// A Model is an ordered slice of Rows. Each Row has a left Slot (old document) and a right Slot (new document); a Slot has a Kind, a 1-based line number, and
// the line's content without its EOL. Unchanged lines are Context on both sides. A modified line is Removed on the left and Added on the right of the same Row.
// A line that exists on one side only is paired with a Blank slot on the other side. A Row is never Blank on both sides.
//
// Highlights mark the changed substrings of modified lines. They are byte ranges [Start, End) into the slot content on one Side, and they always fall on
// grapheme cluster boundaries.
//
// Build produces a Model from two texts using package diff. Validate checks the structural contract of rows and highlights that come from any other source.
package viewmodel
