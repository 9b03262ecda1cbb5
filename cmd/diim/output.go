// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/diim/analysis"
	"github.com/katalvlaran/diim/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// render writes t in the given format.
func render(w io.Writer, format string, t analysis.Table) error {
	switch format {
	case config.OutputCSV:
		return renderCSV(w, t)
	case config.OutputJSON:
		return renderJSON(w, t)
	case config.OutputTable, "":
		return renderTable(w, t)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, t analysis.Table) error {
	rows := stringRows(t)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(t.Rows) && col < len(t.Rows[row]) {
				if _, isText := t.Rows[row][col].(string); !isText {
					return numberStyle
				}
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func renderCSV(w io.Writer, t analysis.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(stringRows(t)); err != nil {
		return err
	}
	return cw.Error()
}

func renderJSON(w io.Writer, t analysis.Table) error {
	records := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]any, len(row))
		for j, v := range row {
			key := strconv.Itoa(j)
			if j < len(t.Header) {
				key = t.Header[j]
			}
			// Repeated headers (i, j, max ...) get a group suffix.
			if _, dup := rec[key]; dup {
				key = fmt.Sprintf("%s_%d", key, j)
			}
			rec[key] = v
		}
		records[i] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"name": t.Name, "rows": records})
}

func stringRows(t analysis.Table) [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = formatCell(v)
		}
	}
	return out
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
