package viewmodel

import "fmt"

// Validate checks rows and highlights against the paired-line contract and returns an error describing the first violation:
//   - rows[i].Index == i
//   - no row is Blank on both sides
//   - the left side is never Added and the right side is never Removed
//   - non-Blank slots have LineNo >= 1; Blank slots have LineNo == 0 and no content
//   - highlights reference an existing row and a non-Blank side, with 0 <= Start < End <= len(content)
//
// The rendering packages tolerate violations of the highlight rules (they clamp or skip); Validate exists so producers other than Build can be checked at the
// boundary.
func Validate(rows []Row, highlights []Highlight) error {
	for i, r := range rows {
		if r.Index != i {
			return fmt.Errorf("row[%d]: index is %d", i, r.Index)
		}
		if r.Left.Kind == KindBlank && r.Right.Kind == KindBlank {
			return fmt.Errorf("row[%d]: blank on both sides", i)
		}
		if r.Left.Kind == KindAdded {
			return fmt.Errorf("row[%d]: left side cannot be added", i)
		}
		if r.Right.Kind == KindRemoved {
			return fmt.Errorf("row[%d]: right side cannot be removed", i)
		}
		for _, side := range []Side{SideLeft, SideRight} {
			if err := validateSlot(r.Slot(side)); err != nil {
				return fmt.Errorf("row[%d].%s: %w", i, side, err)
			}
		}
	}

	for i, h := range highlights {
		if h.Row < 0 || h.Row >= len(rows) {
			return fmt.Errorf("highlight[%d]: row %d out of range [0, %d)", i, h.Row, len(rows))
		}
		if h.Side != SideLeft && h.Side != SideRight {
			return fmt.Errorf("highlight[%d]: invalid side %d", i, h.Side)
		}
		slot := rows[h.Row].Slot(h.Side)
		if slot.Kind == KindBlank {
			return fmt.Errorf("highlight[%d]: row %d is blank on the %s side", i, h.Row, h.Side)
		}
		if h.Start < 0 || h.Start >= h.End || h.End > len(slot.Content) {
			return fmt.Errorf("highlight[%d]: range [%d, %d) invalid for content of length %d", i, h.Start, h.End, len(slot.Content))
		}
	}
	return nil
}

func validateSlot(s Slot) error {
	switch s.Kind {
	case KindBlank:
		if s.LineNo != 0 || s.Content != "" {
			return fmt.Errorf("blank slot has line %d and %d bytes of content", s.LineNo, len(s.Content))
		}
	case KindContext, KindRemoved, KindAdded:
		if s.LineNo < 1 {
			return fmt.Errorf("%s slot has line number %d", s.Kind, s.LineNo)
		}
	default:
		return fmt.Errorf("unknown kind %d", s.Kind)
	}
	return nil
}
