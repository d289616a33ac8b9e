// Package plot renders processed spectrum CSVs as line plots.
package plot

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"go-hep.org/x/hep/csvutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Load reads a two-column x,y CSV produced by the converter. The header row
// is skipped; every remaining row must hold two floats.
func Load(r io.Reader) (xs, ys []float64, err error) {
	tbl := &csvutil.Table{
		Reader: csv.NewReader(bufio.NewReader(r)),
	}
	defer tbl.Close()

	rows, err := tbl.ReadRows(1, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("read csv rows: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var x, y float64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, nil, fmt.Errorf("scan csv row %d: %w", n, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
		n++
	}
	if err := rows.Err(); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("iterate csv rows: %w", err)
	}
	return xs, ys, nil
}

// Render writes a PNG line plot of the spectrum to outPath.
func Render(xs, ys []float64, title, outPath string) error {
	if len(xs) == 0 {
		return fmt.Errorf("no samples to plot")
	}
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "wavelength"
	p.Y.Label.Text = "reflectance"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// Summary holds basic statistics of one spectrum.
type Summary struct {
	Rows  int
	XMin  float64
	XMax  float64
	YMin  float64
	YMax  float64
	YMean float64
}

// Summarize computes summary statistics over the series.
func Summarize(xs, ys []float64) Summary {
	s := Summary{Rows: len(xs)}
	if len(xs) == 0 {
		return s
	}
	s.XMin = floats.Min(xs)
	s.XMax = floats.Max(xs)
	s.YMin = floats.Min(ys)
	s.YMax = floats.Max(ys)
	s.YMean = stat.Mean(ys, nil)
	return s
}
