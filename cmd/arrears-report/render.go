package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"arrearscli/internal/arrears"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func renderReport(w io.Writer, report *arrears.Report, format string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(report.Columns.Headers()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle
			}
			return cellStyle.Align(lipgloss.Right)
		})
	for _, row := range report.Formatted {
		t.Row(row.Cells()...)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(report.Title), t.Render())
	return err
}
