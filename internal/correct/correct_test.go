package correct

import (
	"errors"
	"testing"

	"github.com/fieldspec/specprep/internal/models"
)

func spectrum(pairs ...[2]float64) *models.Spectrum {
	s := &models.Spectrum{}
	for _, p := range pairs {
		s.Samples = append(s.Samples, models.Sample{X: p[0], Y: p[1]})
	}
	return s
}

func TestApply_twoJoins(t *testing.T) {
	in := spectrum(
		[2]float64{999, 1}, [2]float64{1000, 2}, [2]float64{1001, 5},
		[2]float64{1500, 5}, [2]float64{1800, 3}, [2]float64{1801, 10},
		[2]float64{2000, 10},
	)
	got, err := Apply(in, models.DefaultJoins())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := spectrum(
		[2]float64{999, 1}, [2]float64{1000, 2}, [2]float64{1001, 2},
		[2]float64{1500, 2}, [2]float64{1800, 0}, [2]float64{1801, 0},
		[2]float64{2000, 0},
	)
	if len(got.Samples) != len(want.Samples) {
		t.Fatalf("got %d samples, want %d", len(got.Samples), len(want.Samples))
	}
	for i := range want.Samples {
		if got.Samples[i] != want.Samples[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got.Samples[i], want.Samples[i])
		}
	}
}

func TestApply_inputUnmodified(t *testing.T) {
	in := spectrum(
		[2]float64{1000, 2}, [2]float64{1001, 5},
		[2]float64{1800, 3}, [2]float64{1801, 10},
	)
	if _, err := Apply(in, models.DefaultJoins()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if in.Samples[1].Y != 5 || in.Samples[3].Y != 10 {
		t.Errorf("input mutated: %+v", in.Samples)
	}
}

func TestApply_missingBoundary(t *testing.T) {
	// No sample at x=1001.
	in := spectrum(
		[2]float64{1000, 2}, [2]float64{1002, 5},
		[2]float64{1800, 3}, [2]float64{1801, 10},
	)
	_, err := Apply(in, models.DefaultJoins())
	if !errors.Is(err, ErrBoundaryNotFound) {
		t.Fatalf("err = %v, want ErrBoundaryNotFound", err)
	}
}

func TestApply_duplicateBoundaryUsesFirstMatch(t *testing.T) {
	in := spectrum(
		[2]float64{1000, 2}, [2]float64{1000, 9}, [2]float64{1001, 5},
		[2]float64{1800, 3}, [2]float64{1801, 10},
	)
	got, err := Apply(in, models.DefaultJoins())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// d1 = 5 - 2 (first x=1000 row), so x=1001 lands at 2.
	y, ok := got.YAt(1001)
	if !ok || y != 2 {
		t.Errorf("y(1001) = %v,%v, want 2,true", y, ok)
	}
}

func TestApply_recomputesBiasEachCall(t *testing.T) {
	in := spectrum(
		[2]float64{1000, 2}, [2]float64{1001, 5},
		[2]float64{1800, 5}, [2]float64{1801, 5},
	)
	once, err := Apply(in, models.DefaultJoins())
	if err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	// Corrected: y(1001)=2, y(1800)=2, y(1801) shifted by d2 = 5-2 = 3 -> 2.
	if y, _ := once.YAt(1801); y != 2 {
		t.Fatalf("after first pass y(1801) = %v, want 2", y)
	}
	twice, err := Apply(once, models.DefaultJoins())
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	// The corrected spectrum satisfies y(left) == y(right) at both joins, so
	// the recomputed biases are zero and a second pass changes nothing.
	for i := range once.Samples {
		if twice.Samples[i] != once.Samples[i] {
			t.Errorf("sample %d changed on second pass: %+v -> %+v", i, once.Samples[i], twice.Samples[i])
		}
	}

	// A spectrum that still shows a jump at a join is shifted again: the bias
	// is measured fresh from the data, not remembered.
	jumpy := spectrum(
		[2]float64{1000, 2}, [2]float64{1001, 3},
		[2]float64{1800, 3}, [2]float64{1801, 3},
	)
	shifted, err := Apply(jumpy, models.DefaultJoins())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if y, _ := shifted.YAt(1001); y != 2 {
		t.Errorf("fresh bias not applied: y(1001) = %v, want 2", y)
	}
}
