package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/sqlframe"
	"github.com/nao1215/sqlframe/domain/model"
)

// renderTable writes t to w in the given output format.
func renderTable(w io.Writer, t *sqlframe.Table, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	default:
		return renderPretty(w, t)
	}
}

func renderPretty(w io.Writer, t *sqlframe.Table) error {
	if t.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, 0, t.NumColumns())
	for _, col := range t.Header() {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows() {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = formatValue(v)
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.NumRows())
	return nil
}

// renderJSON writes an array of objects keyed by column label. With
// duplicate labels the rightmost column wins.
func renderJSON(w io.Writer, t *sqlframe.Table) error {
	results := make([]map[string]any, 0, t.NumRows())
	header := t.Header()
	for _, r := range t.Rows() {
		obj := make(map[string]any, len(header))
		for i, col := range header {
			v := r[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			obj[col] = v
		}
		results = append(results, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, t *sqlframe.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, r := range t.Rows() {
		record := make([]string, len(r))
		for i, v := range r {
			record[i] = model.FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return model.FormatCell(v)
}
