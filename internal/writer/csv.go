package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fieldspec/specprep/internal/models"
)

// WriteCSV writes s to path as two columns under an "x,y" header, one row
// per sample, no index column.
func WriteCSV(path string, s *models.Spectrum) error {
	return publish(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write([]string{"x", "y"}); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		for _, smp := range s.Samples {
			rec := []string{
				strconv.FormatFloat(smp.X, 'g', -1, 64),
				strconv.FormatFloat(smp.Y, 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush csv: %w", err)
		}
		return nil
	})
}
