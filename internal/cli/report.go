// Package cli renders batch reports for the specprep command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fieldspec/specprep/internal/models"
)

// OutputFormat is the format for report output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteReport writes a batch report to w in the given format. Text mode
// prints one notice line per skip or failure, then a summary line.
func WriteReport(w io.Writer, report *models.BatchReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		writeReportText(w, report)
		return nil
	}
}

func writeReportText(w io.Writer, report *models.BatchReport) {
	for _, o := range report.Outcomes {
		WriteOutcome(w, o)
	}
	converted, skipped, failed := report.Counts()
	fmt.Fprintf(w, "%d converted, %d skipped, %d failed -> %s\n", converted, skipped, failed, report.OutputDir)
}

// WriteOutcome writes one per-file notice line to w.
func WriteOutcome(w io.Writer, o models.FileOutcome) {
	name := filepath.Base(o.Path)
	switch o.Status {
	case models.StatusSkipped:
		fmt.Fprintf(w, "Skipping %s: %s\n", name, o.Reason)
	case models.StatusFailed:
		fmt.Fprintf(w, "Error processing %s: %s\n", name, o.Err)
	default:
		fmt.Fprintf(w, "Converted %s -> %s (%d rows)\n", name, o.Output, o.Rows)
	}
}
