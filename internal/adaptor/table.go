package adaptor

import (
	"fmt"
	"io"
	"strings"

	"cinema-ticketing/pkg/utils"
)

type column struct {
	title string
	width int
}

// printTable renders rows as fixed-width columns separated by two spaces.
func printTable(w io.Writer, columns []column, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, col := range columns {
		header[i] = pad(col.title, col.width)
		rule[i] = strings.Repeat("-", col.width)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, "  "), " "))
	fmt.Fprintln(w, strings.Join(rule, "  "))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = pad(utils.Truncate(value, col.width), col.width)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
