package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
	"github.com/sidd-1337/druglevelmodelingapp/sensitivity"
)

func sensitivityCmd(args []string) error {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	initial := fs.Float64("initial", 100.0, "Initial concentration")
	halfLife := fs.String("half-life", "6.0-12.0", "Half-life range in hours (format: min-max)")
	duration := fs.Int("duration", 72, "Simulation duration in hours")
	redose := fs.String("redose", "", "Daily redose schedule (format: hour=amount,...)")
	score := fs.String("score", "peak", "Outcome to score: peak, trough, or final")
	track := fs.String("track", kinetics.TrackMin, "Track to score (conc_min or conc_max)")
	delta := fs.Float64("delta", 0.1, "Relative perturbation size")
	output := fs.String("output", "", "Output JSON file (default: print ranking)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel sensitivity [options]

Perturb each scenario parameter and rank them by impact on an outcome.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Which parameter moves the worst-case trough the most?
  druglevel sensitivity --half-life 6.0-12.0 --redose "8=50" --score trough

  # Impact on the final concentration of the slow track
  druglevel sensitivity --score final --track conc_max --delta 0.05
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *track != kinetics.TrackMin && *track != kinetics.TrackMax {
		return fmt.Errorf("unknown track %q (expected %s or %s)",
			*track, kinetics.TrackMin, kinetics.TrackMax)
	}
	if *delta <= 0 {
		return fmt.Errorf("delta must be positive, got %g", *delta)
	}

	var scorer sensitivity.Scorer
	switch *score {
	case "peak":
		scorer = sensitivity.PeakScorer(*track)
	case "trough":
		scorer = sensitivity.TroughScorer(*track)
	case "final":
		scorer = sensitivity.FinalScorer(*track)
	default:
		return fmt.Errorf("unknown score %q (expected peak, trough, or final)", *score)
	}

	prob, err := buildProblem(*initial, *halfLife, *duration, *redose)
	if err != nil {
		return err
	}

	result := sensitivity.NewAnalyzer(prob, scorer).WithDelta(*delta).Analyze()

	if *output != "" {
		dest := outPath(*output)
		if err := writeJSON(result, dest); err != nil {
			return fmt.Errorf("write sensitivity results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Sensitivity results written to %s\n", dest)
		return nil
	}

	fmt.Printf("Baseline %s (%s): %.4f\n", *score, *track, result.Baseline)
	fmt.Printf("Perturbation: +%.0f%%\n\n", *delta*100)
	fmt.Println("Ranking by absolute impact:")
	for i, rp := range result.Ranking {
		fmt.Printf("  %d. %-14s %+.4f\n", i+1, rp.Name, rp.Impact)
	}

	return nil
}
