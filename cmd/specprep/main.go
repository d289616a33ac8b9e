// Package main is the specprep CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fieldspec/specprep/internal/cli"
	"github.com/fieldspec/specprep/internal/config"
	"github.com/fieldspec/specprep/internal/convert"
	"github.com/fieldspec/specprep/internal/models"
	"github.com/fieldspec/specprep/internal/plot"
	"github.com/fieldspec/specprep/internal/watcher"
	"github.com/fieldspec/specprep/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/specprep/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if neither
// exists the built-in defaults are used, so the tool runs config-free.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "convert":
		runConvert()
	case "watch":
		runWatch()
	case "plot":
		runPlot()
	case "version", "--version", "-v":
		fmt.Printf("specprep version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// convertFlags are the conversion settings shared by convert and watch.
type convertFlags struct {
	fs        *flag.FlagSet
	config    *string
	out       *string
	overwrite *bool
	correct   *bool
	join1     *string
	join2     *string
	format    *string
	debug     *bool
}

func newConvertFlags(name string) *convertFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &convertFlags{
		fs:        fs,
		config:    fs.String("config", defaultConfigPath, "config file path"),
		out:       fs.String("out", "", `output directory (default: sibling "<input>_processed")`),
		overwrite: fs.Bool("overwrite", false, "overwrite existing output files"),
		correct:   fs.Bool("correct", true, "apply detector-join offset correction to .txt spectra"),
		join1:     fs.String("join1", "", `first join boundary override as "left,right" (default 1000,1001)`),
		join2:     fs.String("join2", "", `second join boundary override as "left,right" (default 1800,1801)`),
		format:    fs.String("format", "", "output format: csv or xlsx (default csv)"),
		debug:     fs.Bool("debug", false, "enable debug logging"),
	}
}

// options merges config-file settings with explicitly set flags (flags win)
// into converter options.
func (cf *convertFlags) options(cfg *config.Config) (convert.Options, error) {
	set := map[string]bool{}
	cf.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := convert.Options{
		OutputDir:      cfg.Convert.OutputDir,
		OutputSuffix:   cfg.Convert.OutputDirSuffix,
		Overwrite:      cfg.Convert.Overwrite,
		CorrectOffsets: cfg.Convert.CorrectTxtOffsetsOrDefault(),
		Format:         convert.Format(cfg.Convert.Format),
	}
	joins, err := cfg.Joins.JoinSpec()
	if err != nil {
		return convert.Options{}, err
	}
	opts.Joins = joins

	if set["out"] {
		opts.OutputDir = *cf.out
	}
	if set["overwrite"] {
		opts.Overwrite = *cf.overwrite
	}
	if set["correct"] {
		opts.CorrectOffsets = *cf.correct
	}
	if set["format"] {
		opts.Format = convert.Format(*cf.format)
	}
	if opts.Format != convert.FormatCSV && opts.Format != convert.FormatXLSX {
		return convert.Options{}, fmt.Errorf("unknown format %q; use csv or xlsx", opts.Format)
	}
	if *cf.join1 != "" {
		j, err := parseJoinFlag(*cf.join1)
		if err != nil {
			return convert.Options{}, fmt.Errorf("bad -join1: %w", err)
		}
		opts.Joins.Join1 = j
	}
	if *cf.join2 != "" {
		j, err := parseJoinFlag(*cf.join2)
		if err != nil {
			return convert.Options{}, fmt.Errorf("bad -join2: %w", err)
		}
		opts.Joins.Join2 = j
	}
	return opts, nil
}

// parseJoinFlag parses a "left,right" boundary pair.
func parseJoinFlag(s string) (models.Join, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Join{}, fmt.Errorf("want two comma-separated values, got %q", s)
	}
	left, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Join{}, fmt.Errorf("bad left boundary %q", parts[0])
	}
	right, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Join{}, fmt.Errorf("bad right boundary %q", parts[1])
	}
	return models.Join{Left: left, Right: right}, nil
}

func runConvert() {
	cf := newConvertFlags("convert")
	outputFormat := cf.fs.String("output", "text", "report format: text or json")
	_ = cf.fs.Parse(os.Args[2:])
	if cf.fs.NArg() < 1 {
		fmt.Println("Usage: specprep convert [flags] <input-directory>")
		os.Exit(1)
	}
	dir := cf.fs.Arg(0)

	cfg, err := loadConfig(*cf.config)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cf.options(cfg)
	if err != nil {
		fmt.Printf("Bad conversion settings: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *cf.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	copts := []convert.Option{}
	if debugMode {
		copts = append(copts, convert.WithLogger(logger))
	}
	conv := convert.New(opts, copts...)

	report, err := conv.ConvertDirectory(dir)
	if err != nil {
		logger.Fatal("Conversion failed", zap.String("dir", dir), zap.Error(err))
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
	if err := cli.WriteReport(os.Stdout, report, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if _, _, failed := report.Counts(); failed > 0 {
		os.Exit(1)
	}
}

func runWatch() {
	cf := newConvertFlags("watch")
	_ = cf.fs.Parse(os.Args[2:])
	if cf.fs.NArg() < 1 {
		fmt.Println("Usage: specprep watch [flags] <input-directory>")
		os.Exit(1)
	}
	dir := cf.fs.Arg(0)

	cfg, err := loadConfig(*cf.config)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cf.options(cfg)
	if err != nil {
		fmt.Printf("Bad conversion settings: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *cf.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	copts := []convert.Option{}
	wopts := []watcher.Option{watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)}
	if debugMode {
		copts = append(copts, convert.WithLogger(logger))
		wopts = append(wopts, watcher.WithLogger(logger))
	}
	conv := convert.New(opts, copts...)
	outDir := conv.OutputDirFor(dir)

	w := watcher.New(dir, cfg.Convert.Extensions, func(path string) {
		cli.WriteOutcome(os.Stdout, conv.ConvertFile(path, outDir))
	}, wopts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.String("dir", dir), zap.Error(err))
	}
	defer w.Stop()
	w.SyncExisting()

	logger.Info("watching for spectra",
		zap.String("input", dir),
		zap.String("output", outDir),
	)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")
}

func runPlot() {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	out := fs.String("o", "", "output PNG path (default: <input stem>.png)")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: specprep plot [flags] <spectrum.csv>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	xs, ys, err := plot.Load(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	target := *out
	if target == "" {
		target = filepath.Join(filepath.Dir(path), stem+".png")
	}
	if err := plot.Render(xs, ys, stem, target); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to plot %s: %v\n", path, err)
		os.Exit(1)
	}

	s := plot.Summarize(xs, ys)
	fmt.Printf("%s: %d samples, x [%g, %g], y [%g, %g], mean y %.6g\n",
		filepath.Base(path), s.Rows, s.XMin, s.XMax, s.YMin, s.YMax, s.YMean)
	fmt.Printf("Plot written to %s\n", target)
}

func printUsage() {
	fmt.Println(`specprep - planetary-surface reflectance spectrum preprocessor

Usage:
  specprep convert [flags] <dir>   Convert raw .fits/.txt spectra to CSV/XLSX
  specprep watch [flags] <dir>     Convert spectra as they appear in a directory
  specprep plot [flags] <csv>      Plot a processed spectrum as PNG
  specprep version                 Show version
  specprep help                    Show this help

Convert/Watch Flags:
  --config string     Config file path (default: /usr/local/etc/specprep/config.yaml,
                      falling back to ./config.yaml, then built-in defaults)
  --out string        Output directory (default: sibling "<input>_processed")
  --overwrite         Overwrite existing output files (default: false)
  --correct           Apply detector-join offset correction to .txt spectra (default: true)
  --join1 string      First join boundary as "left,right" (default "1000,1001")
  --join2 string      Second join boundary as "left,right" (default "1800,1801")
  --format string     Output format: csv or xlsx (default: csv)
  --debug             Enable debug logging

Convert Flags:
  --output string     Report format: text or json (default: text)

Plot Flags:
  -o string           Output PNG path (default: next to the input CSV)

Examples:
  specprep convert ./field_campaign_day3
  specprep convert --overwrite --format xlsx ./field_campaign_day3
  specprep convert --join1 "970,971" --output json ./field_campaign_day3
  specprep convert --correct=false ./lab_references
  specprep watch ./incoming
  specprep plot ./field_campaign_day3_processed/site_a.csv`)
}
