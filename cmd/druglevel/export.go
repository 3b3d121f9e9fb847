package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func exportCmd(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "Output CSV file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel export <results.json> [options]

Export the full-resolution timeseries as CSV with columns
time, conc_min, conc_max.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  druglevel export results.json --output timeseries.csv
  druglevel export results.json | head
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

	if *output == "" {
		return results.WriteCSVTo(res, os.Stdout)
	}

	dest := outPath(*output)
	if err := results.WriteCSV(res, dest); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	fmt.Fprintf(os.Stderr, "CSV written to %s\n", dest)
	return nil
}
