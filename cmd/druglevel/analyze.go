package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func analyzeCmd(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	output := fs.String("output", "", "Write updated results to file (default: print analysis)")
	window := fs.String("window", "", "Therapeutic window (format: floor-ceiling)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel analyze <results.json> [options]

Recompute analysis on saved simulation results: local extrema, peak
prominence, per-track statistics, and optional window excursions.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print analysis for saved results
  druglevel analyze results.json

  # Re-analyze with a therapeutic window and save
  druglevel analyze results.json --window 20-90 --output results.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	sol, err := res.Solution()
	if err != nil {
		return fmt.Errorf("reconstruct solution: %w", err)
	}

	analyzer := analysis.NewAnalyzer(sol)
	if *window != "" {
		floor, ceiling, err := parseWindow(*window)
		if err != nil {
			return fmt.Errorf("parse window: %w", err)
		}
		analyzer.WithWindow(floor, ceiling)
	}
	res.Analysis = analyzer.ComputeAll()

	if *output != "" {
		dest := outPath(*output)
		if err := results.WriteJSON(res, dest); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Analysis written to %s\n", dest)
		return nil
	}

	printAnalysis(res, sol)
	return nil
}

func printAnalysis(res *results.Results, sol *kinetics.Solution) {
	an := res.Analysis

	for _, track := range sol.Tracks() {
		fmt.Printf("Track %s:\n", track)
		fmt.Printf("  Maxima: %v\n", an.Maxima[track])
		fmt.Printf("  Minima: %v\n", an.Minima[track])
		if st, ok := an.Statistics[track]; ok {
			fmt.Printf("  Min: %.4f  Max: %.4f  Mean: %.4f  Median: %.4f  Std: %.4f\n",
				st.Min, st.Max, st.Mean, st.Median, st.Std)
		}
	}

	if len(an.Peaks) > 0 {
		fmt.Println("\nPeaks:")
		for _, p := range an.Peaks {
			fmt.Printf("  %s t=%d value=%.4f prominence=%.4f\n",
				p.Track, p.Time, p.Value, p.Prominence)
		}
	}
	if len(an.Troughs) > 0 {
		fmt.Println("\nTroughs:")
		for _, p := range an.Troughs {
			fmt.Printf("  %s t=%d value=%.4f prominence=%.4f\n",
				p.Track, p.Time, p.Value, p.Prominence)
		}
	}

	if an.Window != nil {
		fmt.Printf("\nWindow %.2f-%.2f:\n", an.Window.Floor, an.Window.Ceiling)
		if len(an.Excursions) == 0 {
			fmt.Println("  No excursions")
		}
		for _, e := range an.Excursions {
			fmt.Printf("  %s %s t=%d..%d extreme=%.4f\n",
				e.Track, e.Bound, e.Enter, e.Exit, e.Extreme)
		}
	}
}
