// Package convert batch-converts raw spectrum files into tabular outputs.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldspec/specprep/internal/models"
	"github.com/fieldspec/specprep/internal/reader"
	"github.com/fieldspec/specprep/internal/writer"
)

// Format selects the tabular output representation.
type Format string

const (
	// FormatCSV writes two-column CSV with an x,y header.
	FormatCSV Format = "csv"
	// FormatXLSX writes a single-sheet workbook with the same layout.
	FormatXLSX Format = "xlsx"
)

// Ext returns the output filename extension for the format, with leading dot.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".csv"
}

// DefaultOutputSuffix names the output directory next to the input directory
// when no explicit output directory is configured.
const DefaultOutputSuffix = "_processed"

// Options configure a Converter.
type Options struct {
	// OutputDir overrides the destination directory. When empty, outputs go to
	// a sibling of the input directory named "<input><OutputSuffix>".
	OutputDir string
	// OutputSuffix is the sibling-directory naming convention used when
	// OutputDir is empty. Empty means DefaultOutputSuffix.
	OutputSuffix string
	// Overwrite regenerates outputs whose target file already exists.
	Overwrite bool
	// CorrectOffsets applies detector-join offset correction to text spectra.
	CorrectOffsets bool
	// Joins are the correction boundaries used when CorrectOffsets is set.
	Joins  models.JoinSpec
	Format Format
}

// DefaultOptions returns the standard batch settings: CSV output, offset
// correction on, no overwrite, default ASD joins.
func DefaultOptions() Options {
	return Options{
		CorrectOffsets: true,
		Joins:          models.DefaultJoins(),
		Format:         FormatCSV,
	}
}

// Converter converts the raw spectrum files of a directory one at a time,
// isolating failures per file.
type Converter struct {
	opts   Options
	logger *zap.Logger // optional; when set, logs debug events
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets a logger for debug output (file converted, file skipped, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// New creates a converter with the given options.
func New(opts Options, copts ...Option) *Converter {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if opts.OutputSuffix == "" {
		opts.OutputSuffix = DefaultOutputSuffix
	}
	c := &Converter{opts: opts}
	for _, o := range copts {
		o(c)
	}
	return c
}

// OutputDirFor returns the destination directory for inputs under dir.
func (c *Converter) OutputDirFor(dir string) string {
	if c.opts.OutputDir != "" {
		return c.opts.OutputDir
	}
	clean := filepath.Clean(dir)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+c.opts.OutputSuffix)
}

// ConvertDirectory converts every recognized file directly inside dir
// (non-recursive) and reports a per-file outcome. A missing source directory
// or a failure to create the output directory is fatal; everything after that
// is isolated per file, so one bad spectrum never stops the batch.
func (c *Converter) ConvertDirectory(dir string) (*models.BatchReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	outDir := c.OutputDirFor(dir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	report := &models.BatchReport{InputDir: dir, OutputDir: outDir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		report.Outcomes = append(report.Outcomes, c.convertEntry(dir, outDir, entry.Name()))
	}
	return report, nil
}

// ConvertFile converts a single file into outDir, creating it if needed.
// An empty outDir places the output next to the file's directory using the
// same sibling convention as ConvertDirectory.
func (c *Converter) ConvertFile(path, outDir string) models.FileOutcome {
	dir := filepath.Dir(path)
	if outDir == "" {
		outDir = c.OutputDirFor(dir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return models.FileOutcome{
			Path:   path,
			Status: models.StatusFailed,
			Err:    fmt.Sprintf("create output directory: %v", err),
		}
	}
	return c.convertEntry(dir, outDir, filepath.Base(path))
}

func (c *Converter) convertEntry(dir, outDir, name string) models.FileOutcome {
	src := filepath.Join(dir, name)
	out := models.FileOutcome{Path: src}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".fits" && ext != ".txt" {
		out.Status = models.StatusSkipped
		out.Reason = fmt.Sprintf("unrecognized suffix %q", ext)
		c.debug("file skipped", zap.String("path", src), zap.String("reason", out.Reason))
		return out
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	target := filepath.Join(outDir, stem+c.opts.Format.Ext())
	out.Output = target
	if !c.opts.Overwrite {
		if _, err := os.Stat(target); err == nil {
			out.Status = models.StatusSkipped
			out.Reason = fmt.Sprintf("output %s already exists (use overwrite to regenerate)", filepath.Base(target))
			c.debug("file skipped", zap.String("path", src), zap.String("reason", out.Reason))
			return out
		}
	}

	s, err := reader.Read(src, c.opts.CorrectOffsets, c.opts.Joins)
	if err != nil {
		out.Status = models.StatusFailed
		out.Err = err.Error()
		c.debug("file failed", zap.String("path", src), zap.Error(err))
		return out
	}
	if err := c.write(target, s); err != nil {
		out.Status = models.StatusFailed
		out.Err = err.Error()
		c.debug("file failed", zap.String("path", src), zap.Error(err))
		return out
	}

	out.Status = models.StatusConverted
	out.Rows = s.Len()
	c.debug("file converted", zap.String("path", src), zap.String("output", target), zap.Int("rows", out.Rows))
	return out
}

func (c *Converter) write(target string, s *models.Spectrum) error {
	if c.opts.Format == FormatXLSX {
		return writer.WriteXLSX(target, s)
	}
	return writer.WriteCSV(target, s)
}

func (c *Converter) debug(msg string, fields ...zap.Field) {
	if c.logger != nil {
		c.logger.Debug(msg, fields...)
	}
}
