package reader

import (
	"errors"
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"github.com/fieldspec/specprep/internal/models"
)

// SCAM FITS products carry reflectance and wavelength in two separate
// binary-table extensions, located by EXTNAME.
const (
	spectraHDU     = "Spectra"
	reflectanceCol = "I_F_Atm"
	wavelengthHDU  = "Wavelength"
	wavelengthCol  = "Wavelength (um)"
)

var (
	// ErrExtensionNotFound is returned when a required named table extension
	// is absent from the FITS file.
	ErrExtensionNotFound = errors.New("fits: table extension not found")
	// ErrColumnNotFound is returned when a table extension lacks a required field.
	ErrColumnNotFound = errors.New("fits: column not found")
	// ErrColumnMismatch is returned when the wavelength and reflectance
	// columns differ in length. Mismatches are surfaced, never truncated.
	ErrColumnMismatch = errors.New("fits: wavelength and reflectance column lengths differ")
)

// ReadFITS loads a spectrum from a SCAM FITS product: X from the
// "Wavelength (um)" field of the Wavelength extension, Y from the "I_F_Atm"
// field of the Spectra extension, row order preserved. The source file is
// only ever read.
func ReadFITS(path string) (*models.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fits file: %w", err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("parse fits file: %w", err)
	}
	defer fits.Close()

	refl, err := tableColumn(fits, spectraHDU, reflectanceCol)
	if err != nil {
		return nil, err
	}
	wave, err := tableColumn(fits, wavelengthHDU, wavelengthCol)
	if err != nil {
		return nil, err
	}
	if len(wave) != len(refl) {
		return nil, fmt.Errorf("%w: %d wavelengths, %d reflectances", ErrColumnMismatch, len(wave), len(refl))
	}

	s := &models.Spectrum{Samples: make([]models.Sample, len(wave))}
	for i := range wave {
		s.Samples[i] = models.Sample{X: wave[i], Y: refl[i]}
	}
	return s, nil
}

// tableColumn reads every cell of the named field from the named table extension.
func tableColumn(f *fitsio.File, hduName, colName string) ([]float64, error) {
	tbl := tableByName(f, hduName)
	if tbl == nil {
		return nil, fmt.Errorf("%w: %q", ErrExtensionNotFound, hduName)
	}
	if !hasColumn(tbl, colName) {
		return nil, fmt.Errorf("%w: %q in extension %q", ErrColumnNotFound, colName, hduName)
	}
	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("fits: read %q rows: %w", hduName, err)
	}
	defer rows.Close()

	out := make([]float64, 0, tbl.NumRows())
	for rows.Next() {
		cell := make(map[string]interface{})
		if err := rows.Scan(&cell); err != nil {
			return nil, fmt.Errorf("fits: scan %q row: %w", hduName, err)
		}
		v, err := cellFloat(cell[colName])
		if err != nil {
			return nil, fmt.Errorf("fits: column %q: %w", colName, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fits: iterate %q rows: %w", hduName, err)
	}
	return out, nil
}

func tableByName(f *fitsio.File, name string) *fitsio.Table {
	for _, hdu := range f.HDUs() {
		tbl, ok := hdu.(*fitsio.Table)
		if !ok {
			continue
		}
		if tbl.Name() == name {
			return tbl
		}
	}
	return nil
}

func hasColumn(tbl *fitsio.Table, name string) bool {
	for _, col := range tbl.Cols() {
		if col.Name == name {
			return true
		}
	}
	return false
}

// cellFloat widens a scanned table cell to float64. Reflectance is typically
// stored as 32-bit floats, wavelength as 64-bit.
func cellFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported cell type %T", v)
	}
}
