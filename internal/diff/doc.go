// Package diff computes line and intra-line diffs between an "old" and a "new" string. It is the alignment engine that feeds the two-pane view model; it does not render
// anything itself.
//
// Representation: A Diff holds the complete OldText/NewText and an ordered slice of hunks that, when concatenated, reconstruct both sides. Each hunk has an Op:
//   - OpEqual: unchanged region (OldText == NewText)
//   - OpInsert: text present only in the new side (OldText == "")
//   - OpDelete: text present only in the old side (NewText == "")
//   - OpReplace: text changed on both sides
//
// For non-equal hunks, Lines holds per-line changes. Replacements pair the i-th deleted line with the i-th inserted line; leftovers become pure deletes or inserts.
// For non-equal lines, Spans holds intra-line segments.
//
// Invariants:
//   - concat(hunks.OldText) == Diff.OldText
//   - concat(hunks.NewText) == Diff.NewText
//   - If hunk.Op == OpEqual, hunk.Lines is nil; otherwise, concatenating the line texts equals the hunk text.
//   - If line.Op == OpEqual, line.Spans is nil; otherwise, concatenating the span texts equals the line text (allowing for an optional trailing '\n').
//
// Newlines: '\n' is the line separator. The last line may not end with '\n'; that fact is preserved in Lines. Spans never include '\n'.
//
//	d := diff.DiffText(oldText, newText)
//	for _, h := range d.Hunks {
//	    ...
//	}
package diff
