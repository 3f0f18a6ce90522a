package diff

import "strings"

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// Diff is a diff from old text to new text.
//
// Two documents with one edited paragraph and one inserted paragraph produce:
//   - Hunks[0]: OpEqual (the shared prefix).
//   - Hunks[1]: OpReplace (the edited paragraph; its Lines pair old and new lines).
//   - Hunks[2]: OpEqual (the lines between the edits).
//   - Hunks[3]: OpInsert (the inserted paragraph).
//   - Hunks[last]: OpEqual (the shared suffix).
//
// Invariants:
//   - concat(Hunks.OldText) == OldText
//   - concat(Hunks.NewText) == NewText
type Diff struct {
	OldText string     // Entire original text.
	NewText string     // Entire revised text.
	Hunks   []DiffHunk // Ordered hunks that cover the whole diff and reconstruct OldText/NewText.
}

// DiffHunk represents a contiguous group of lines. The \n character is part of the hunk and line (ex: if a hunk is in the middle of some text is removed, OldText for that hunk would
// be \n terminated).
//
// Operations:
//   - OpEqual: OldText == NewText
//   - OpInsert: OldText=="" && NewText!=""
//   - OpDelete: OldText!="" && NewText==""
//   - OpReplace: OldText != "" and NewText != ""
//
// Invariants:
//   - If OpEqual, Lines is nil. Otherwise,
//   - concat(Lines.OldText) == OldText
//   - concat(Lines.NewText) == NewText
type DiffHunk struct {
	Op      Op         // Operation for this hunk (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string     // Concatenation of old lines in this hunk; empty for inserts.
	NewText string     // Concatenation of new lines in this hunk; empty for deletes.
	Lines   []DiffLine // Per-line diffs when Op != OpEqual; nil when OpEqual.
}

// DiffLine is a diff on a single line. Each line usually ends with (and includes) \n, unless the input text to DiffText had no \n.
//
// Operations follow the pattern of DiffHunk.
//
// Invariants:
//   - If OpEqual, Spans is nil. Otherwise,
//   - concat(Spans.OldText) + \n? == OldText (\n? is an optional newline, since spans cannot contain \n, but lines usually do)
//   - concat(Spans.NewText) + \n? == NewText
type DiffLine struct {
	Op      Op         // Operation for this line (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string     // Entire old line (including trailing newline if present); empty for inserts.
	NewText string     // Entire new line (including trailing newline if present); empty for deletes.
	Spans   []DiffSpan // Intra-line segments when Op != OpEqual; nil when OpEqual. Spans never contain newlines.
}

// DiffSpan is a diff within a line. It MUST NOT contain any \n.
//
// Operations follow the pattern of DiffHunk.
//
// Spans are the source of the character highlights shown inside modified lines, so DiffText merges tiny equal runs between changes to keep highlights readable.
type DiffSpan struct {
	Op      Op     // Operation performed by this span (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string // Substring from the old line; empty for inserts.
	NewText string // Substring from the new line; empty for deletes.
}

// defaultEOL is the line separator.
const defaultEOL = "\n"

// String returns a short lowercase name for op.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "unknown"
}

// SplitLines splits text into lines without their line separators. A trailing separator does not start an extra empty line; "" has no lines.
func SplitLines(text string) []string {
	lines := splitPreserveEOL(text, defaultEOL)
	for i, ln := range lines {
		lines[i] = TrimEOL(ln)
	}
	return lines
}

// TrimEOL returns line without its trailing line separator, if any. "\r\n" counts as one separator; a "\r" not followed by "\n" is content.
func TrimEOL(line string) string {
	core, ok := trimEOL(line, defaultEOL)
	if ok {
		core = strings.TrimSuffix(core, "\r")
	}
	return core
}
