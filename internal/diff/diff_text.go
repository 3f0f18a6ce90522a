package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxSandwichedEqualLen is the longest equal run between two changes that gets folded into a single change span.
const maxSandwichedEqualLen = 8

// DiffText diffs oldText to newText, returning a Diff.
//
// Lines are diffed first; runs of deleted and inserted lines between two equal regions form one hunk. Within a hunk, deleted and inserted lines are paired in order
// (the i-th deletion with the i-th insertion) and each pair gets intra-line spans.
func DiffText(oldText, newText string) Diff {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	lineDiffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rOld, rNew, false))

	// Each rune of a line diff indexes lineArray.
	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			if idx := int(r); idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	var hunks []DiffHunk
	var dels, ins []string

	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		oldBlock := strings.Join(dels, "")
		newBlock := strings.Join(ins, "")
		hunks = append(hunks, DiffHunk{
			Op:      opFor(oldBlock, newBlock),
			OldText: oldBlock,
			NewText: newBlock,
			Lines:   buildDiffLines(dmp, dels, ins),
		})
		dels, ins = nil, nil
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if eq := decode(d.Text); len(eq) > 0 {
				text := strings.Join(eq, "")
				hunks = append(hunks, DiffHunk{Op: OpEqual, OldText: text, NewText: text})
			}
		case diffmatchpatch.DiffDelete:
			dels = append(dels, decode(d.Text)...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, decode(d.Text)...)
		}
	}
	flush()

	diff := Diff{OldText: oldText, NewText: newText, Hunks: hunks}
	if err := diff.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}
	return diff
}

// opFor returns the Op that describes replacing oldText with newText. Both empty is reported as OpEqual.
func opFor(oldText, newText string) Op {
	switch {
	case oldText != "" && newText != "":
		return OpReplace
	case oldText != "":
		return OpDelete
	case newText != "":
		return OpInsert
	}
	return OpEqual
}

// buildDiffLines pairs up deleted and inserted lines for min(len(deleteLines), len(insertLines)); leftovers are pure deletes/inserts.
func buildDiffLines(dmp *diffmatchpatch.DiffMatchPatch, deleteLines, insertLines []string) []DiffLine {
	n := min(len(deleteLines), len(insertLines))
	lines := make([]DiffLine, 0, len(deleteLines)+len(insertLines)-n)

	for i := 0; i < n; i++ {
		oldLine, newLine := deleteLines[i], insertLines[i]
		if oldLine == newLine {
			lines = append(lines, DiffLine{Op: OpEqual, OldText: oldLine, NewText: newLine})
			continue
		}
		spans := diffsToSpans(dmp.DiffMain(TrimEOL(oldLine), TrimEOL(newLine), false))
		lines = append(lines, DiffLine{Op: opFor(oldLine, newLine), OldText: oldLine, NewText: newLine, Spans: spans})
	}
	for _, oldLine := range deleteLines[n:] {
		var spans []DiffSpan
		if core := TrimEOL(oldLine); core != "" {
			spans = []DiffSpan{{Op: OpDelete, OldText: core}}
		}
		lines = append(lines, DiffLine{Op: OpDelete, OldText: oldLine, Spans: spans})
	}
	for _, newLine := range insertLines[n:] {
		var spans []DiffSpan
		if core := TrimEOL(newLine); core != "" {
			spans = []DiffSpan{{Op: OpInsert, NewText: core}}
		}
		lines = append(lines, DiffLine{Op: OpInsert, NewText: newLine, Spans: spans})
	}
	return lines
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for text != "" {
		idx := strings.Index(text, eol)
		if idx == -1 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}

// spanBuilder accumulates the old and new contributions of several spans into one.
type spanBuilder struct {
	old, new strings.Builder
}

func (b *spanBuilder) add(s DiffSpan) {
	// OpEqual contributes to both sides, same as a replacement.
	b.old.WriteString(s.OldText)
	b.new.WriteString(s.NewText)
}

// span returns the combined span, or false if nothing was added.
func (b *spanBuilder) span() (DiffSpan, bool) {
	oldText, newText := b.old.String(), b.new.String()
	op := opFor(oldText, newText)
	if op == OpEqual {
		return DiffSpan{}, false
	}
	return DiffSpan{Op: op, OldText: oldText, NewText: newText}, true
}

// combineSpans merges spans into a single non-equal span.
func combineSpans(spans ...DiffSpan) (DiffSpan, bool) {
	var b spanBuilder
	for _, s := range spans {
		b.add(s)
	}
	return b.span()
}

// diffsToSpans converts diffmatchpatch diffs to DiffSpan entries.
//
// Adjacent equals are coalesced, each run of non-equal diffs between two equals becomes a single span, and equal runs of at most maxSandwichedEqualLen bytes
// squeezed between two changes are folded into one change.
func diffsToSpans(diffs []diffmatchpatch.Diff) []DiffSpan {
	var spans []DiffSpan
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if n := len(spans); n > 0 && spans[n-1].Op == OpEqual {
				spans[n-1].OldText += d.Text
				spans[n-1].NewText += d.Text
				continue
			}
			spans = append(spans, DiffSpan{Op: OpEqual, OldText: d.Text, NewText: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, DiffSpan{Op: OpDelete, OldText: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, DiffSpan{Op: OpInsert, NewText: d.Text})
		}
	}
	if len(spans) == 0 {
		return spans
	}

	spans = collapseChangeRuns(spans)

	for {
		var changed bool
		spans, changed = foldSandwichedEquals(spans)
		if !changed {
			return spans
		}
	}
}

// collapseChangeRuns replaces every maximal run of non-equal spans with one span.
func collapseChangeRuns(spans []DiffSpan) []DiffSpan {
	var out []DiffSpan
	for i := 0; i < len(spans); {
		if spans[i].Op == OpEqual {
			out = append(out, spans[i])
			i++
			continue
		}
		j := i
		for j < len(spans) && spans[j].Op != OpEqual {
			j++
		}
		if s, ok := combineSpans(spans[i:j]...); ok {
			out = append(out, s)
		}
		i = j
	}
	return out
}

// foldSandwichedEquals merges [change][small equal][change] triplets, coalescing the result with a preceding change. It reports whether anything was merged.
func foldSandwichedEquals(spans []DiffSpan) ([]DiffSpan, bool) {
	var out []DiffSpan
	changed := false

	push := func(s DiffSpan) {
		if n := len(out); n > 0 && out[n-1].Op != OpEqual && s.Op != OpEqual {
			if merged, ok := combineSpans(out[n-1], s); ok {
				out[n-1] = merged
				return
			}
		}
		out = append(out, s)
	}

	for i := 0; i < len(spans); {
		if i+2 < len(spans) && spans[i].Op != OpEqual && spans[i+1].Op == OpEqual && spans[i+2].Op != OpEqual && len(spans[i+1].OldText) <= maxSandwichedEqualLen {
			if merged, ok := combineSpans(spans[i : i+3]...); ok {
				push(merged)
				changed = true
				i += 3
				continue
			}
		}
		push(spans[i])
		i++
	}
	return out, changed
}
