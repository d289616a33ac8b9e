package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fieldspec/specprep/internal/models"
)

func testSpectrum() *models.Spectrum {
	return &models.Spectrum{Samples: []models.Sample{
		{X: 350, Y: 0.5},
		{X: 351.5, Y: 0.625},
	}}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := WriteCSV(path, testSpectrum()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "x,y\n350,0.5\n351.5,0.625\n"
	if string(data) != want {
		t.Errorf("csv content = %q, want %q", data, want)
	}

	// No temp files may survive a successful publish.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("stray temp file %s", e.Name())
		}
	}
}

func TestWriteCSV_overwritesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteCSV(path, testSpectrum()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Error("target not replaced")
	}
}

func TestWriteCSV_emptySpectrum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, &models.Spectrum{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "x,y\n" {
		t.Errorf("empty spectrum content = %q, want header only", data)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(path, testSpectrum()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(rows), rows)
	}
	if rows[0][0] != "x" || rows[0][1] != "y" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "350" || rows[1][1] != "0.5" {
		t.Errorf("first data row = %v", rows[1])
	}
}
