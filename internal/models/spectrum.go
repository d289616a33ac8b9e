// Package models defines core data structures for spectra, detector joins, and batch outcomes.
package models

// Sample is one (wavelength, reflectance) pair. X carries whatever unit the
// source file tabulates (nanometres for ASD exports, micrometres for the
// derived FITS products); Y is a unitless reflectance-like quantity.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Spectrum is an ordered series of samples, in source-file row order.
// The offset-correction engine assumes X increases monotonically; that is
// not enforced here, and duplicate X values are kept as-is.
type Spectrum struct {
	Samples []Sample
}

// Len returns the number of samples.
func (s *Spectrum) Len() int { return len(s.Samples) }

// YAt returns the Y value of the first sample whose X equals x exactly,
// and whether such a sample exists. There is no nearest-neighbor fallback.
func (s *Spectrum) YAt(x float64) (float64, bool) {
	for _, smp := range s.Samples {
		if smp.X == x {
			return smp.Y, true
		}
	}
	return 0, false
}

// Join brackets one detector transition: Left is the last X of the left
// detector segment, Right the first X of the adjoining one.
type Join struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// JoinSpec holds the two transition brackets of a three-detector instrument.
// The correction engine assumes Join1.Left < Join1.Right <= Join2.Left < Join2.Right.
type JoinSpec struct {
	Join1 Join `json:"join1"`
	Join2 Join `json:"join2"`
}

// DefaultJoins returns the standard ASD detector transitions
// (VNIR/SWIR1 at 1000/1001 nm, SWIR1/SWIR2 at 1800/1801 nm).
func DefaultJoins() JoinSpec {
	return JoinSpec{
		Join1: Join{Left: 1000, Right: 1001},
		Join2: Join{Left: 1800, Right: 1801},
	}
}
