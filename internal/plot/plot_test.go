package plot

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const csvBody = "x,y\n350,0.5\n351,0.6\n352,0.7\n"

func TestLoad(t *testing.T) {
	xs, ys, err := Load(strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(xs) != 3 || len(ys) != 3 {
		t.Fatalf("got %d/%d values, want 3/3", len(xs), len(ys))
	}
	if xs[0] != 350 || ys[2] != 0.7 {
		t.Errorf("xs=%v ys=%v", xs, ys)
	}
}

func TestLoad_headerOnly(t *testing.T) {
	xs, ys, err := Load(strings.NewReader("x,y\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(xs) != 0 || len(ys) != 0 {
		t.Errorf("expected no samples, got %v/%v", xs, ys)
	}
}

func TestSummarize(t *testing.T) {
	xs := []float64{350, 351, 352}
	ys := []float64{0.5, 0.6, 0.7}
	s := Summarize(xs, ys)
	if s.Rows != 3 || s.XMin != 350 || s.XMax != 352 {
		t.Errorf("summary = %+v", s)
	}
	if s.YMin != 0.5 || s.YMax != 0.7 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.YMean-0.6) > 1e-12 {
		t.Errorf("YMean = %v, want 0.6", s.YMean)
	}
}

func TestSummarize_empty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.Rows != 0 || s.YMean != 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spectrum.png")
	xs := []float64{350, 351, 352}
	ys := []float64{0.5, 0.6, 0.7}
	if err := Render(xs, ys, "spectrum", out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty plot file")
	}
}

func TestRender_empty(t *testing.T) {
	if err := Render(nil, nil, "t", filepath.Join(t.TempDir(), "o.png")); err == nil {
		t.Fatal("expected an error for an empty series")
	}
}
