package render

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"coldb/internal/engine"
)

type tableFormatter struct{}

func (tableFormatter) FormatResult(r engine.Result) (string, error) {
	var sb strings.Builder
	tbl := tablewriter.NewWriter(&sb)
	tbl.SetRowLine(true)
	if len(r.Header) > 0 {
		tbl.SetHeader(r.Header)
	}
	for _, row := range r.Rows {
		tbl.Append(row)
	}
	tbl.Render()
	return sb.String(), nil
}
