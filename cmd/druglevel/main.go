package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sidd-1337/druglevelmodelingapp/internal/config"
	"github.com/sidd-1337/druglevelmodelingapp/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger = logging.Setup(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run := map[string]func([]string) error{
		"simulate":    simulateCmd,
		"analyze":     analyzeCmd,
		"summary":     summaryCmd,
		"compare":     compareCmd,
		"plot":        plotCmd,
		"export":      exportCmd,
		"sweep":       sweepCmd,
		"sensitivity": sensitivityCmd,
		"forecast":    forecastCmd,
		"profiles":    profilesCmd,
	}

	switch command {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("druglevel version 1.0.0")
	default:
		handler, ok := run[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
		if err := handler(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// outPath resolves a user-supplied output filename against the
// configured output directory. Absolute paths pass through untouched.
func outPath(name string) string {
	if filepath.IsAbs(name) || cfg.OutputDir == "" || cfg.OutputDir == "." {
		return name
	}
	return filepath.Join(cfg.OutputDir, name)
}

// writeJSON writes any value as indented JSON.
func writeJSON(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`druglevel - drug concentration modelling tool

Usage:
  druglevel <command> [options]

Commands:
  simulate     Simulate concentration decay with optional redosing
  analyze      Recompute analysis on saved results
  summary      Display quick summary of results
  compare      Compare two simulation results
  plot         Generate SVG chart with extrema markers
  export       Export results timeseries as CSV
  sweep        Parameter sweep and optimization
  sensitivity  Rank parameters by impact on an outcome
  forecast     Predict threshold crossings over a horizon
  profiles     List and run built-in drug profiles
  help         Show this help message
  version      Show version information

Examples:
  # Run a simulation
  druglevel simulate --initial 100 --half-life 6.0-12.0 --duration 72 \
      --redose "8=50" --output results.json

  # Plot saved results
  druglevel plot results.json --output plot.svg

  # Find the dose that keeps troughs up without peak overshoot
  druglevel sweep --half-life 6.0-12.0 --dose "8=25:100:6" --objective maximize_trough

For command-specific help, run:
  druglevel <command> --help`)
}
