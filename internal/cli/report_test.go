package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fieldspec/specprep/internal/models"
)

func sampleReport() *models.BatchReport {
	return &models.BatchReport{
		InputDir:  "/data/raw",
		OutputDir: "/data/raw_processed",
		Outcomes: []models.FileOutcome{
			{Path: "/data/raw/a.fits", Status: models.StatusConverted, Output: "/data/raw_processed/a.csv", Rows: 128},
			{Path: "/data/raw/notes.md", Status: models.StatusSkipped, Reason: `unrecognized suffix ".md"`},
			{Path: "/data/raw/b.txt", Status: models.StatusFailed, Err: "join boundary not found in spectrum: x=1001"},
		},
	}
}

func TestWriteReport_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport(), OutputText); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Converted a.fits -> /data/raw_processed/a.csv (128 rows)",
		`Skipping notes.md: unrecognized suffix ".md"`,
		"Error processing b.txt: join boundary not found in spectrum: x=1001",
		"1 converted, 1 skipped, 1 failed -> /data/raw_processed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReport_json(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport(), OutputJSON); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	var decoded models.BatchReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Outcomes) != 3 {
		t.Errorf("decoded %d outcomes, want 3", len(decoded.Outcomes))
	}
	if decoded.Outcomes[2].Status != models.StatusFailed {
		t.Errorf("outcome 2 status = %s", decoded.Outcomes[2].Status)
	}
}
