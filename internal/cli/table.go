package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders an aligned box-drawing table. Every cell is stringified
// before rendering, so rows may hold any value type.
func Table(headers []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = text.FgHiCyan.Sprint(strings.ToUpper(h))
	}
	t.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = fmt.Sprintf("%v", cell)
		}
		t.AppendRow(r)
	}

	t.Render()
}
