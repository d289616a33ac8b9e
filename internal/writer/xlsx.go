package writer

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/fieldspec/specprep/internal/models"
)

// SheetName is the worksheet spectra are written to.
const SheetName = "Spectrum"

// WriteXLSX writes s to path as a workbook with a single Spectrum sheet,
// header row x,y, one row per sample.
func WriteXLSX(path string, s *models.Spectrum) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{"x", "y"}); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, smp := range s.Samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{smp.X, smp.Y}); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
	}
	return publish(path, func(out *os.File) error {
		if _, err := f.WriteTo(out); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		return nil
	})
}
