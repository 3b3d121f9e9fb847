package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func summaryCmd(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel summary <results.json>

Display quick summary of simulation results.

Examples:
  druglevel summary results.json
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

	// Print summary
	name := res.Scenario.DrugName
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Drug: %s\n", name)
	fmt.Printf("Status: %s\n", res.Metadata.Status)

	if res.Metadata.Error != "" {
		fmt.Printf("Error: %s\n", res.Metadata.Error)
		return nil
	}

	fmt.Printf("Engine: %s (%.3fs)\n", res.Metadata.Engine, res.Metadata.ComputeTime)
	fmt.Printf("Half-life: %.1f - %.1f hours\n",
		res.Scenario.HalfLifeMin, res.Scenario.HalfLifeMax)
	fmt.Printf("Duration: %d hours (%d points)\n",
		res.Scenario.Duration, res.Results.Summary.Points)

	if len(res.Scenario.Schedule) > 0 {
		hours := make([]int, 0, len(res.Scenario.Schedule))
		for h := range res.Scenario.Schedule {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		fmt.Println("\nDaily schedule:")
		for _, h := range hours {
			fmt.Printf("  %02d:00  %+.2f\n", h, res.Scenario.Schedule[h])
		}
	}

	fmt.Println("\nFinal concentrations:")
	tracks := make([]string, 0, len(res.Results.Summary.Final))
	for track := range res.Results.Summary.Final {
		tracks = append(tracks, track)
	}
	sort.Strings(tracks)
	for _, track := range tracks {
		fmt.Printf("  %s = %.4f\n", track, res.Results.Summary.Final[track])
	}

	if res.Analysis != nil {
		fmt.Printf("\nExtrema: %d peaks, %d troughs\n",
			len(res.Analysis.Peaks), len(res.Analysis.Troughs))
		if res.Analysis.Window != nil {
			fmt.Printf("Window %.1f-%.1f: %d excursions\n",
				res.Analysis.Window.Floor, res.Analysis.Window.Ceiling,
				len(res.Analysis.Excursions))
		}
	}

	return nil
}
