package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV renders the report as CSV: one header row then one row per
// record. Warnings are appended as comment-style trailer rows.
func WriteCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(report.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	for _, warning := range report.Warnings {
		if err := writer.Write([]string{"# " + warning}); err != nil {
			return fmt.Errorf("write csv warning: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteText renders the report as a pipe-separated plain-text table with a
// title banner and a trailing warnings section.
func WriteText(w io.Writer, report Report) error {
	var b strings.Builder
	b.WriteString(report.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(report.Title)))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(report.Columns, " | "))
	b.WriteString("\n")
	for _, row := range report.Rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	if len(report.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, warning := range report.Warnings {
			b.WriteString("- ")
			b.WriteString(warning)
			b.WriteString("\n")
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}
