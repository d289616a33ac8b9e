package reader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fieldspec/specprep/internal/correct"
	"github.com/fieldspec/specprep/internal/models"
)

// ReadASD parses a tab-delimited ASD spectrometer export. Only lines
// containing a tab are data candidates; a candidate must split into exactly
// two float tokens to yield a sample. Everything else (instrument header,
// footer text, malformed rows) is silently skipped, in file order. ReadASD
// fails only on file-access or scan errors, never on malformed content.
func ReadASD(path string) (*models.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asd file: %w", err)
	}
	defer f.Close()

	s := &models.Spectrum{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if smp, ok := parseLine(sc.Text()); ok {
			s.Samples = append(s.Samples, smp)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan asd file: %w", err)
	}
	return s, nil
}

// ReadASDCorrected reads an ASD export and pipes it through the detector-join
// offset correction before returning it.
func ReadASDCorrected(path string, joins models.JoinSpec) (*models.Spectrum, error) {
	s, err := ReadASD(path)
	if err != nil {
		return nil, err
	}
	return correct.Apply(s, joins)
}

// parseLine returns the sample encoded on one data line. Lines without a tab,
// with a token count other than two, or with non-numeric tokens report ok=false.
func parseLine(line string) (models.Sample, bool) {
	if !strings.Contains(line, "\t") {
		return models.Sample{}, false
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return models.Sample{}, false
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return models.Sample{}, false
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Sample{}, false
	}
	return models.Sample{X: x, Y: y}, true
}
