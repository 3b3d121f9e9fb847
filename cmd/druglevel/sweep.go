package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

// parameterSet is one variant's parameter assignment.
type parameterSet struct {
	id     int
	params map[string]float64 // "dose@H" or "initial"
}

func sweepCmd(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	initial := fs.Float64("initial", 100.0, "Initial concentration")
	halfLife := fs.String("half-life", "6.0-12.0", "Half-life range in hours (format: min-max)")
	duration := fs.Int("duration", 72, "Simulation duration in hours")
	redose := fs.String("redose", "", "Base daily redose schedule (format: hour=amount,...)")
	name := fs.String("name", "", "Drug name for labelling")
	output := fs.String("output", "sweep_results.json", "Output file for sweep results")
	objective := fs.String("objective", "minimize_peak", "Optimization objective")
	parallel := fs.Int("parallel", 4, "Number of parallel simulations")

	window := fs.String("window", "", "Therapeutic window (format: floor-ceiling)")

	doseSweep := fs.String("dose", "", "Sweep dose amounts: 'hour=min:max:count,...'")
	initialSweep := fs.String("initial-sweep", "", "Sweep initial concentration: 'min:max:count'")
	hlMinSweep := fs.String("half-life-min-sweep", "", "Sweep the low half-life bound: 'min:max:count'")
	hlMaxSweep := fs.String("half-life-max-sweep", "", "Sweep the high half-life bound: 'min:max:count'")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel sweep [options]

Run a parameter sweep over dose amounts or the initial concentration
and rank variants by an optimization objective.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Objectives:
  minimize_peak            Minimize the worst-case concentration peak
  maximize_trough          Keep the lowest trough on the fast track as high as possible
  minimize_band            Minimize the mean gap between the two tracks
  minimize_final           Minimize residual concentration at the end of the run
  maximize_time_in_window  Maximize hours inside the therapeutic window (needs --window)

Examples:
  # Find the morning dose with the highest trough coverage
  druglevel sweep --half-life 6.0-12.0 --dose "8=25:100:6" \
      --objective maximize_trough --output sweep.json

  # Sweep two dose hours at once
  druglevel sweep --dose "8=25:75:3,20=10:50:3" --output sweep.json

  # Sweep the loading dose
  druglevel sweep --initial-sweep "50:200:7" --objective minimize_peak

  # Which half-life pessimism keeps the level in the 20-90 window longest?
  druglevel sweep --half-life-min-sweep "4:8:5" --redose "8=50" \
      --window 20-90 --objective maximize_time_in_window
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *doseSweep == "" && *initialSweep == "" && *hlMinSweep == "" && *hlMaxSweep == "" {
		fs.Usage()
		return fmt.Errorf("at least one sweep axis required (--dose, --initial-sweep, --half-life-min-sweep, or --half-life-max-sweep)")
	}

	var win *analysis.Window
	if *window != "" {
		floor, ceiling, err := parseWindow(*window)
		if err != nil {
			return fmt.Errorf("parse window: %w", err)
		}
		win = &analysis.Window{Floor: floor, Ceiling: ceiling}
	}

	objectiveFunc, ok := results.Objectives[*objective]
	if !ok {
		known := make([]string, 0, len(results.Objectives))
		for k := range results.Objectives {
			known = append(known, k)
		}
		sort.Strings(known)
		return fmt.Errorf("unknown objective %q (known: %s)", *objective, strings.Join(known, ", "))
	}

	base, err := buildProblem(*initial, *halfLife, *duration, *redose)
	if err != nil {
		return err
	}

	// Expand sweep axes into named value lists
	var sweeps []results.ParameterSweep
	if *doseSweep != "" {
		for _, spec := range strings.Split(*doseSweep, ",") {
			axis, err := parseSweepSpec(spec)
			if err != nil {
				return fmt.Errorf("parse dose sweep: %w", err)
			}
			sweeps = append(sweeps, results.ParameterSweep{
				Name:   fmt.Sprintf("dose@%d", axis.Hour),
				Values: axis.Values,
				Min:    axis.Values[0],
				Max:    axis.Values[len(axis.Values)-1],
			})
		}
	}
	for _, axis := range []struct {
		spec string
		name string
	}{
		{*initialSweep, "initial"},
		{*hlMinSweep, "half_life_min"},
		{*hlMaxSweep, "half_life_max"},
	} {
		if axis.spec == "" {
			continue
		}
		values, err := parseSweepRange(axis.spec)
		if err != nil {
			return fmt.Errorf("parse %s sweep: %w", axis.name, err)
		}
		sweeps = append(sweeps, results.ParameterSweep{
			Name:   axis.name,
			Values: values,
			Min:    values[0],
			Max:    values[len(values)-1],
		})
	}

	combinations := generateCombinations(sweeps)

	fmt.Fprintf(os.Stderr, "Parameter sweep: %d variants\n", len(combinations))
	fmt.Fprintf(os.Stderr, "Objective: %s\n", *objective)
	fmt.Fprintf(os.Stderr, "Running simulations...\n")

	workers := *parallel
	if workers < 1 {
		workers = 1
	}

	variantChan := make(chan parameterSet, len(combinations))
	resultsChan := make(chan variantOutcome, len(combinations))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range variantChan {
				v, err := runVariant(base, params, *name, win, objectiveFunc)
				resultsChan <- variantOutcome{variant: v, err: err}
			}
		}()
	}

	for i, params := range combinations {
		params.id = i + 1
		variantChan <- params
	}
	close(variantChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var variants []results.VariantResult
	failures := 0
	completed := 0
	for out := range resultsChan {
		if out.err != nil {
			logger.Warn().Int("variant", out.variant.ID).Err(out.err).Msg("objective failed")
			failures++
		} else {
			variants = append(variants, out.variant)
		}
		completed++
		if completed%10 == 0 || completed == len(combinations) {
			fmt.Fprintf(os.Stderr, "\rCompleted: %d/%d", completed, len(combinations))
		}
	}
	fmt.Fprintf(os.Stderr, "\n")

	sweepResults := &results.SweepResults{
		Version:    results.SchemaVersion,
		DrugName:   *name,
		Objective:  *objective,
		Parameters: sweeps,
		Variants:   variants,
	}
	sweepResults.Rank()
	sweepResults.Summary.TotalVariants = len(combinations)
	sweepResults.Summary.SuccessCount = len(variants)
	sweepResults.Summary.FailureCount = failures

	dest := outPath(*output)
	if err := results.WriteSweepJSON(sweepResults, dest); err != nil {
		return fmt.Errorf("write sweep results: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Sweep complete\n")
	if sweepResults.Best != nil {
		fmt.Fprintf(os.Stderr, "  Best: variant %d (score %.4f) %v\n",
			sweepResults.Best.ID, sweepResults.Best.Score, sweepResults.Best.Parameters)
	}
	fmt.Fprintf(os.Stderr, "  Output: %s\n", dest)

	return nil
}

// variantOutcome pairs a variant with its objective evaluation error.
type variantOutcome struct {
	variant results.VariantResult
	err     error
}

// runVariant applies one parameter set to a copy of the base problem,
// simulates it, and scores the outcome. Swept half-life values must
// still form a valid range; combinations that break it fail here.
func runVariant(base kinetics.Problem, params parameterSet, drugName string, window *analysis.Window, objective results.ObjectiveFunc) (results.VariantResult, error) {
	variant := results.VariantResult{
		ID:         params.id,
		Parameters: params.params,
	}

	prob := base
	prob.Schedule = base.Schedule.Clone()

	for name, value := range params.params {
		switch name {
		case "initial":
			prob.InitialConcentration = value
			continue
		case "half_life_min":
			prob.HalfLifeMin = value
			continue
		case "half_life_max":
			prob.HalfLifeMax = value
			continue
		}
		var hour int
		if _, err := fmt.Sscanf(name, "dose@%d", &hour); err == nil {
			prob.Schedule[hour] = value
		}
	}

	if prob.HalfLifeMin <= 0 || prob.HalfLifeMin >= prob.HalfLifeMax {
		return variant, fmt.Errorf("half-life range must satisfy 0 < min < max, got %g-%g",
			prob.HalfLifeMin, prob.HalfLifeMax)
	}

	start := time.Now()
	sol := kinetics.Solve(prob)
	elapsed := time.Since(start).Seconds()

	builder := results.NewBuilder()
	builder.WithScenario(drugName, "", prob)
	builder.WithSolution(sol, "first-order", elapsed, cfg.Downsample)
	res := builder.Build()

	analyzer := analysis.NewAnalyzer(sol)
	if window != nil {
		analyzer.WithWindow(window.Floor, window.Ceiling)
	}
	res.Analysis = analyzer.ComputeAll()

	variant.Metrics = results.ComputeMetrics(res)

	score, err := objective(res)
	if err != nil {
		return variant, err
	}
	variant.Score = score
	return variant, nil
}

// generateCombinations builds the cartesian product over all sweep axes.
func generateCombinations(sweeps []results.ParameterSweep) []parameterSet {
	combos := []parameterSet{{params: map[string]float64{}}}
	for _, sweep := range sweeps {
		var next []parameterSet
		for _, combo := range combos {
			for _, value := range sweep.Values {
				params := make(map[string]float64, len(combo.params)+1)
				for k, v := range combo.params {
					params[k] = v
				}
				params[sweep.Name] = value
				next = append(next, parameterSet{params: params})
			}
		}
		combos = next
	}
	return combos
}
