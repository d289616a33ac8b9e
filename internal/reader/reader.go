// Package reader loads reflectance spectra from raw instrument files.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fieldspec/specprep/internal/models"
)

// Read loads the spectrum at path, dispatching on the filename suffix.
// ".fits" is read as a SCAM binary-table product, ".txt" as an ASD
// spectrometer export (including ".asd.txt"). joins and correctOffsets only
// apply to text spectra. Returns an error for unrecognized suffixes; batch
// callers should filter suffixes themselves to record a skip instead.
func Read(path string, correctOffsets bool, joins models.JoinSpec) (*models.Spectrum, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".fits":
		return ReadFITS(path)
	case ".txt":
		if correctOffsets {
			return ReadASDCorrected(path, joins)
		}
		return ReadASD(path)
	default:
		return nil, fmt.Errorf("unrecognized spectrum suffix %q", ext)
	}
}
