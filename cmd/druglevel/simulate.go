package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func simulateCmd(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	initial := fs.Float64("initial", 100.0, "Initial concentration")
	halfLife := fs.String("half-life", "6.0-12.0", "Half-life range in hours (format: min-max)")
	duration := fs.Int("duration", 72, "Simulation duration in hours")
	redose := fs.String("redose", "", "Daily redose schedule (format: hour=amount,hour=amount)")
	name := fs.String("name", "", "Drug name for labelling")
	unit := fs.String("unit", "", "Concentration unit for labelling")
	output := fs.String("output", "", "Output file for results (required)")
	analyze := fs.Bool("analyze", true, "Compute automatic analysis")
	window := fs.String("window", "", "Therapeutic window (format: floor-ceiling)")
	downsample := fs.Int("downsample", 0, "Target number of points for downsampled output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel simulate [options]

Simulate drug concentration decay over time, with two parallel tracks
for the low and high half-life estimates.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Single dose, no redosing
  druglevel simulate --initial 100 --half-life 6.0-12.0 --duration 72 \
      --output results.json

  # Redose 50 units daily at 08:00 and 25 at 20:00
  druglevel simulate --initial 100 --half-life 6.0-12.0 --duration 168 \
      --redose "8=50,20=25" --output results.json

  # Flag concentrations escaping the 20-90 therapeutic window
  druglevel simulate --initial 100 --half-life 4.0-6.0 --duration 48 \
      --window 20-90 --output results.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	prob, err := buildProblem(*initial, *halfLife, *duration, *redose)
	if err != nil {
		return err
	}

	drugName := *name
	if drugName == "" {
		drugName = cfg.DrugName
	}
	drugUnit := *unit
	if drugUnit == "" {
		drugUnit = cfg.Unit
	}
	target := *downsample
	if target == 0 {
		target = cfg.Downsample
	}

	logger.Debug().
		Float64("initial", prob.InitialConcentration).
		Float64("halfLifeMin", prob.HalfLifeMin).
		Float64("halfLifeMax", prob.HalfLifeMax).
		Int("duration", prob.Duration).
		Int("doses", len(prob.Schedule)).
		Msg("starting simulation")

	start := time.Now()
	sol := kinetics.Solve(prob)
	elapsed := time.Since(start).Seconds()

	builder := results.NewBuilder()
	builder.WithScenario(drugName, drugUnit, prob)
	builder.WithSolution(sol, "first-order", elapsed, target)

	res := builder.Build()

	if *analyze {
		analyzer := analysis.NewAnalyzer(sol)
		if *window != "" {
			floor, ceiling, err := parseWindow(*window)
			if err != nil {
				return fmt.Errorf("parse window: %w", err)
			}
			analyzer.WithWindow(floor, ceiling)
		}
		res.Analysis = analyzer.ComputeAll()
	}

	dest := outPath(*output)
	if err := results.WriteJSON(res, dest); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	// Print summary to stderr so it doesn't interfere with piping
	fmt.Fprintf(os.Stderr, "Simulation complete\n")
	fmt.Fprintf(os.Stderr, "  Duration: %d hours\n", prob.Duration)
	fmt.Fprintf(os.Stderr, "  Points: %d\n", res.Results.Summary.Points)
	fmt.Fprintf(os.Stderr, "  Compute time: %.3fs\n", elapsed)
	fmt.Fprintf(os.Stderr, "  Output: %s\n", dest)

	return nil
}

// buildProblem assembles and validates a simulation problem from flag
// values. All precondition checks happen here, before Solve runs.
func buildProblem(initial float64, halfLife string, duration int, redose string) (kinetics.Problem, error) {
	hlMin, hlMax, err := parseHalfLifeRange(halfLife)
	if err != nil {
		return kinetics.Problem{}, err
	}
	if err := validateScenario(initial, duration); err != nil {
		return kinetics.Problem{}, err
	}
	schedule, err := parseRedose(redose)
	if err != nil {
		return kinetics.Problem{}, err
	}
	return kinetics.Problem{
		InitialConcentration: initial,
		HalfLifeMin:          hlMin,
		HalfLifeMax:          hlMax,
		Schedule:             schedule,
		Duration:             duration,
	}, nil
}
