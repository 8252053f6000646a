// binpack packs rectangles from a CSV, Excel or DXF file into a single
// container and writes the layout to the requested export formats.
//
// Usage:
//
//	binpack -in parts.csv -width 1200 -height 800 -sort -pdf layout.pdf
//	binpack -in parts.xlsx -preset "Plywood 2440x1220" -compare
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/BinPacker/internal/engine"
	"github.com/piwi3910/BinPacker/internal/export"
	"github.com/piwi3910/BinPacker/internal/importer"
	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/piwi3910/BinPacker/internal/project"
)

// options holds the parsed command line. Zero width or height and a nil
// sort keep the value from the preset or config file.
type options struct {
	width     float64
	height    float64
	preset    string
	heuristic string
	sort      *bool
	in        string
	pdf       string
	labels    string
	xlsx      string
	dxf       string
	dxfFree   bool
	compare   bool
	verbose   bool
	config    string
	presets   string
}

func main() {
	var opts options
	flag.Float64Var(&opts.width, "width", 0, "container width (overrides config and preset)")
	flag.Float64Var(&opts.height, "height", 0, "container height (overrides config and preset)")
	flag.StringVar(&opts.preset, "preset", "", "container preset name")
	flag.StringVar(&opts.heuristic, "heuristic", "", "placement heuristic: short-side or area")
	sortDesc := flag.Bool("sort", false, "pack largest rectangles first")
	flag.StringVar(&opts.in, "in", "", "input file (.csv, .xlsx or .dxf)")
	flag.StringVar(&opts.pdf, "pdf", "", "write a layout PDF to this path")
	flag.StringVar(&opts.labels, "labels", "", "write a label sheet PDF to this path")
	flag.StringVar(&opts.xlsx, "xlsx", "", "write an Excel report to this path")
	flag.StringVar(&opts.dxf, "dxf", "", "write a DXF drawing to this path")
	flag.BoolVar(&opts.dxfFree, "dxf-free", false, "include free rectangles in the DXF drawing")
	flag.BoolVar(&opts.compare, "compare", false, "compare every heuristic and ordering")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.StringVar(&opts.config, "config", project.DefaultConfigPath(), "config file")
	flag.StringVar(&opts.presets, "presets", project.DefaultPresetsPath(), "container presets file")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "sort" {
			opts.sort = sortDesc
		}
	})

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "binpack:", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	settings, err := resolveSettings(opts)
	if err != nil {
		return err
	}

	if opts.in == "" {
		return errors.New("no input file given, use -in")
	}
	result, err := load(opts.in)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		logger.Error(e)
	}
	if len(result.Requests) == 0 {
		return fmt.Errorf("no rectangles found in %s", opts.in)
	}

	if opts.compare {
		results, err := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), result.Requests)
		if err != nil {
			return err
		}
		printComparison(out, results)
		best := engine.BestResult(results)
		settings = results[best].Scenario.Settings
		fmt.Fprintf(out, "\nUsing %q\n\n", results[best].Scenario.Name)
	}

	layout, err := engine.Pack(settings, result.Requests)
	if err != nil {
		return err
	}
	printLayout(out, layout)

	return writeExports(opts, layout, out)
}

// resolveSettings layers the config file, the preset and explicit flags, in
// that order.
func resolveSettings(opts options) (model.PackSettings, error) {
	settings := model.DefaultSettings()

	cfg, err := project.LoadAppConfig(opts.config)
	if err != nil {
		return settings, err
	}
	cfg.ApplyToSettings(&settings)

	if opts.preset != "" {
		presets, err := project.LoadPresets(opts.presets)
		if err != nil {
			return settings, err
		}
		p := presets.FindByName(opts.preset)
		if p == nil {
			return settings, fmt.Errorf("unknown preset %q (available: %s)",
				opts.preset, strings.Join(presets.Names(), ", "))
		}
		p.ApplyToSettings(&settings)
	}

	if opts.width != 0 {
		settings.ContainerWidth = opts.width
	}
	if opts.height != 0 {
		settings.ContainerHeight = opts.height
	}
	if opts.sort != nil {
		settings.SortDescending = *opts.sort
	}

	if opts.heuristic != "" {
		h, err := model.ParseHeuristic(opts.heuristic)
		if err != nil {
			return settings, err
		}
		settings.Heuristic = h
	}
	return settings, nil
}

func load(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return importer.ImportCSV(path), nil
	case ".xlsx":
		return importer.ImportExcel(path), nil
	case ".dxf":
		return importer.ImportDXF(path), nil
	default:
		return importer.ImportResult{}, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

func printLayout(out io.Writer, layout model.Layout) {
	fmt.Fprintf(out, "Container %s, %s\n", layout.Container, layout.Heuristic)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLabel\tSize\tX\tY")
	for i, p := range layout.Placements {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%g\n", i+1, p.Request.Label, p.Request.Size(), p.X, p.Y)
	}
	tw.Flush()

	if len(layout.Unplaced) > 0 {
		fmt.Fprintf(out, "\nDid not fit (%d):\n", len(layout.Unplaced))
		for _, r := range layout.Unplaced {
			fmt.Fprintf(out, "  %s %s\n", r.Label, r.Size())
		}
	}

	fmt.Fprintf(out, "\nPlaced %d, unplaced %d, free rects %d, efficiency %.1f%%\n",
		len(layout.Placements), len(layout.Unplaced), len(layout.Free), layout.Efficiency())
}

func printComparison(out io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tPlaced\tUnplaced\tFree\tEfficiency")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f%%\n",
			r.Scenario.Name, r.PlacedCount, r.UnplacedCount, r.FreeRects, r.Efficiency)
	}
	tw.Flush()
}

func writeExports(opts options, layout model.Layout, out io.Writer) error {
	exports := []struct {
		path  string
		write func(string, model.Layout) error
	}{
		{opts.pdf, export.ExportPDF},
		{opts.labels, export.ExportLabels},
		{opts.xlsx, export.ExportExcel},
		{opts.dxf, func(path string, l model.Layout) error { return export.ExportDXF(path, l, opts.dxfFree) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, layout); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", e.path)
	}
	return nil
}
