// Package correct removes additive step discontinuities at detector joins.
//
// Field spectrometers that stitch several detectors into one spectrum leave a
// constant vertical jump where two detectors meet. Each detector segment is
// internally consistent, so the jump can be measured at the shared boundary
// and subtracted from the right-hand segment to re-align it with its
// neighbor's level.
package correct

import (
	"errors"
	"fmt"

	"github.com/fieldspec/specprep/internal/models"
)

// ErrBoundaryNotFound is returned when a join boundary X value has no exact
// match in the data. Lookups are exact; there is no nearest-neighbor fallback.
var ErrBoundaryNotFound = errors.New("join boundary not found in spectrum")

// Apply removes the two additive jumps bracketed by joins.Join1 and
// joins.Join2 and returns the corrected spectrum. The input is not modified.
//
// The first bias d1 = y(Join1.Right) - y(Join1.Left) is subtracted from every
// sample with Join1.Right <= X <= Join2.Left. The second bias is computed
// against the already-corrected level at Join2.Left, but its reference on the
// right, y(Join2.Right), comes from the original data; d2 is subtracted from
// every original sample with X > Join2.Left. Segment row order is preserved
// and no re-sort happens across segments, so the result is X-ordered only if
// the input was.
//
// Apply is not idempotent: biases are recomputed from the current data each
// call, so re-applying it to an already-flat spectrum subtracts zero, but
// re-applying it to data that still shows a jump shifts the segments again.
func Apply(s *models.Spectrum, joins models.JoinSpec) (*models.Spectrum, error) {
	y1, ok := s.YAt(joins.Join1.Left)
	if !ok {
		return nil, fmt.Errorf("%w: x=%v", ErrBoundaryNotFound, joins.Join1.Left)
	}
	y2, ok := s.YAt(joins.Join1.Right)
	if !ok {
		return nil, fmt.Errorf("%w: x=%v", ErrBoundaryNotFound, joins.Join1.Right)
	}
	d1 := y2 - y1

	merged := &models.Spectrum{Samples: make([]models.Sample, 0, len(s.Samples))}
	for _, smp := range s.Samples {
		if smp.X <= joins.Join1.Left {
			merged.Samples = append(merged.Samples, smp)
		}
	}
	for _, smp := range s.Samples {
		if smp.X >= joins.Join1.Right && smp.X <= joins.Join2.Left {
			merged.Samples = append(merged.Samples, models.Sample{X: smp.X, Y: smp.Y - d1})
		}
	}

	// y3 deliberately comes from the partially corrected series so the second
	// bias aligns the tail to the corrected level, while y4 reads the original.
	y3, ok := merged.YAt(joins.Join2.Left)
	if !ok {
		return nil, fmt.Errorf("%w: x=%v", ErrBoundaryNotFound, joins.Join2.Left)
	}
	y4, ok := s.YAt(joins.Join2.Right)
	if !ok {
		return nil, fmt.Errorf("%w: x=%v", ErrBoundaryNotFound, joins.Join2.Right)
	}
	d2 := y4 - y3

	for _, smp := range s.Samples {
		if smp.X > joins.Join2.Left {
			merged.Samples = append(merged.Samples, models.Sample{X: smp.X, Y: smp.Y - d2})
		}
	}
	return merged, nil
}
