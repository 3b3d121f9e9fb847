package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sidd-1337/druglevelmodelingapp/forecast"
)

func forecastCmd(args []string) error {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	initial := fs.Float64("initial", 100.0, "Initial concentration")
	halfLife := fs.String("half-life", "6.0-12.0", "Half-life range in hours (format: min-max)")
	duration := fs.Int("duration", 72, "Scenario duration in hours")
	redose := fs.String("redose", "", "Daily redose schedule (format: hour=amount,...)")
	below := fs.Float64("below", 0, "Predict when concentration first drops below this level")
	above := fs.Float64("above", 0, "Predict when concentration first rises above this level")
	horizon := fs.Int("horizon", 0, "Forecast horizon in hours (default: max of duration and 168)")
	output := fs.String("output", "", "Output JSON file (default: print predictions)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel forecast [options]

Simulate a scenario forward and predict when each track first crosses
a threshold.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # When does the level drop below 5 under both half-life estimates?
  druglevel forecast --initial 100 --half-life 6.0-12.0 --below 5

  # Does daily redosing ever push the level above 150 within two weeks?
  druglevel forecast --redose "8=50" --above 150 --horizon 336
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *below == 0 && *above == 0 {
		fs.Usage()
		return fmt.Errorf("a threshold required (--below or --above)")
	}

	prob, err := buildProblem(*initial, *halfLife, *duration, *redose)
	if err != nil {
		return err
	}

	predictor := forecast.NewPredictor(prob)
	if *horizon > 0 {
		predictor.WithHorizon(*horizon)
	}

	type report struct {
		Horizon int                   `json:"horizon"`
		Below   []forecast.Prediction `json:"below,omitempty"`
		Above   []forecast.Prediction `json:"above,omitempty"`
	}
	out := report{Horizon: predictor.Horizon()}

	if *below != 0 {
		out.Below = predictor.PredictBelow(*below)
	}
	if *above != 0 {
		out.Above = predictor.PredictAbove(*above)
	}

	if *output != "" {
		dest := outPath(*output)
		if err := writeJSON(out, dest); err != nil {
			return fmt.Errorf("write forecast: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Forecast written to %s\n", dest)
		return nil
	}

	fmt.Printf("Horizon: %d hours\n", out.Horizon)
	printPredictions("below", *below, out.Below)
	printPredictions("above", *above, out.Above)

	return nil
}

func printPredictions(direction string, threshold float64, preds []forecast.Prediction) {
	if len(preds) == 0 {
		return
	}
	fmt.Printf("\nFirst crossing %s %.2f:\n", direction, threshold)
	for _, p := range preds {
		if p.Reached {
			fmt.Printf("  %s: t=%d (value %.4f)\n", p.Track, p.Time, p.Value)
		} else {
			fmt.Printf("  %s: not reached within horizon\n", p.Track)
		}
	}
}
