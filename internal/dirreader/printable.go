package dirreader

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const replacementRune = '?'

// Printable strips terminal escape sequences from s and replaces any
// remaining control runes and invalid UTF-8 with '?'. File names and file
// contents pass through it before they reach the screen.
func Printable(s string) string {
	s = ansi.Strip(strings.ToValidUTF8(s, string(replacementRune)))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return replacementRune
		}
		return r
	}, s)
}
