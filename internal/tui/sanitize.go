package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/codalotl/splitdiff/internal/q/uni"
)

const hexDigits = "0123456789ABCDEF"

// sanitize makes one line of document text safe to print in a single terminal row. col is the cell column s starts at; the column after s is returned
// so a line can be sanitized run by run.
//   - \t advances to the next multiple of tabWidth (tabWidth <= 0 means a single space).
//   - ASCII control characters, including \r and \n, become "\xXX".
//   - Invalid UTF-8 becomes U+FFFD.
func sanitize(s string, col, tabWidth int) (string, int) {
	if s == "" {
		return "", col
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('\uFFFD')
			col++
			i++
			continue
		}
		i += size

		switch {
		case r == '\t':
			n := 1
			if tabWidth > 0 {
				n = tabWidth - col%tabWidth
			}
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r < 0x20 || r == 0x7F:
			code := byte(r)
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[code>>4])
			b.WriteByte(hexDigits[code&0x0F])
			col += 4
		default:
			b.WriteRune(r)
			col += uni.TextWidth(string(r), nil)
		}
	}

	return b.String(), col
}
