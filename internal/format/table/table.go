// Package table lays out label/value rows in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Gap separates adjacent columns.
const Gap = "  "

// Format pads every cell to the widest cell of its column. Rows may be
// ragged; missing cells are treated as empty. Widths are measured in
// terminal cells, so wide runes and escape sequences line up.
func Format(rows [][]string) []string {
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(widths))
		for c := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c == len(widths)-1 {
				cells[c] = cell
				continue
			}
			cells[c] = cell + strings.Repeat(" ", widths[c]-ansi.StringWidth(cell))
		}
		out[i] = strings.Join(cells, Gap)
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}
