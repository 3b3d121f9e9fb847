package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sidd-1337/druglevelmodelingapp/plotter"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func plotCmd(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	output := fs.String("output", "", "Output SVG file (required)")
	width := fs.Float64("width", 800, "Chart width in pixels")
	height := fs.Float64("height", 500, "Chart height in pixels")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel plot <results.json> [options]

Generate an SVG chart of both concentration tracks, with local extrema
marked when analysis is present.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  druglevel plot results.json --output plot.svg
  druglevel plot results.json --width 1200 --height 700 --output plot.svg
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	sol, err := res.Solution()
	if err != nil {
		return fmt.Errorf("reconstruct solution: %w", err)
	}

	drugName := res.Scenario.DrugName
	if drugName == "" {
		drugName = cfg.DrugName
	}
	unit := res.Scenario.Unit
	if unit == "" {
		unit = cfg.Unit
	}

	svg := plotter.PlotSolution(sol, res.Analysis, *width, *height, drugName, unit)

	dest := outPath(*output)
	if err := os.WriteFile(dest, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write SVG: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Plot written to %s\n", dest)
	return nil
}
