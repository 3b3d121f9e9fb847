package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func compareCmd(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: druglevel compare <baseline.json> <variant.json>

Compare two simulation results and show differences.

Examples:
  druglevel compare baseline.json variant.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("two results files required")
	}

	baseline, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read baseline: %w", err)
	}

	variant, err := results.ReadJSON(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("read variant: %w", err)
	}

	fmt.Println("=== Comparison ===")
	fmt.Printf("Baseline: %s\n", scenarioLabel(baseline))
	fmt.Printf("Variant:  %s\n\n", scenarioLabel(variant))

	if baseline.Analysis != nil && variant.Analysis != nil {
		if len(baseline.Analysis.Peaks) > 0 || len(variant.Analysis.Peaks) > 0 {
			fmt.Println("Highest peaks:")
			comparePeaks(baseline.Analysis.Peaks, variant.Analysis.Peaks)
			fmt.Println()
		}
	}

	fmt.Println("Final concentrations:")
	compareFinal(baseline.Results.Summary.Final, variant.Results.Summary.Final)

	fmt.Println("\nParameter differences:")
	compareScenarios(baseline, variant)

	return nil
}

func scenarioLabel(r *results.Results) string {
	name := r.Scenario.DrugName
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s (%.1f-%.1fh, %dh)",
		name, r.Scenario.HalfLifeMin, r.Scenario.HalfLifeMax, r.Scenario.Duration)
}

func comparePeaks(basePeaks, varPeaks []analysis.Peak) {
	tracks := make(map[string]bool)
	baseMap := make(map[string][]analysis.Peak)
	varMap := make(map[string][]analysis.Peak)

	for _, p := range basePeaks {
		baseMap[p.Track] = append(baseMap[p.Track], p)
		tracks[p.Track] = true
	}
	for _, p := range varPeaks {
		varMap[p.Track] = append(varMap[p.Track], p)
		tracks[p.Track] = true
	}

	names := make([]string, 0, len(tracks))
	for t := range tracks {
		names = append(names, t)
	}
	sort.Strings(names)

	for _, track := range names {
		basePeak := findMaxPeak(baseMap[track])
		varPeak := findMaxPeak(varMap[track])
		if basePeak == nil || varPeak == nil {
			continue
		}

		valueDiff := varPeak.Value - basePeak.Value
		valuePct := 0.0
		if basePeak.Value != 0 {
			valuePct = (valueDiff / basePeak.Value) * 100
		}
		timeDiff := varPeak.Time - basePeak.Time

		fmt.Printf("  %s:\n", track)
		fmt.Printf("    Baseline: %.2f at t=%d\n", basePeak.Value, basePeak.Time)
		fmt.Printf("    Variant:  %.2f at t=%d\n", varPeak.Value, varPeak.Time)
		fmt.Printf("    Change:   %+.2f (%+.1f%%), ", valueDiff, valuePct)
		if timeDiff > 0 {
			fmt.Printf("%dh later\n", timeDiff)
		} else if timeDiff < 0 {
			fmt.Printf("%dh earlier\n", -timeDiff)
		} else {
			fmt.Println("same time")
		}
	}
}

func findMaxPeak(peaks []analysis.Peak) *analysis.Peak {
	if len(peaks) == 0 {
		return nil
	}
	maxPeak := &peaks[0]
	for i := range peaks {
		if peaks[i].Value > maxPeak.Value {
			maxPeak = &peaks[i]
		}
	}
	return maxPeak
}

func compareFinal(base, variant map[string]float64) {
	tracks := make([]string, 0, len(base))
	for t := range base {
		tracks = append(tracks, t)
	}
	sort.Strings(tracks)

	for _, track := range tracks {
		bv := base[track]
		vv, ok := variant[track]
		if !ok {
			fmt.Printf("  %s: %.4f (missing in variant)\n", track, bv)
			continue
		}
		diff := vv - bv
		fmt.Printf("  %s: %.4f -> %.4f (%+.4f)\n", track, bv, vv, diff)
	}
}

func compareScenarios(base, variant *results.Results) {
	changed := false

	if base.Scenario.InitialConcentration != variant.Scenario.InitialConcentration {
		fmt.Printf("  initial: %.2f -> %.2f\n",
			base.Scenario.InitialConcentration, variant.Scenario.InitialConcentration)
		changed = true
	}
	if base.Scenario.HalfLifeMin != variant.Scenario.HalfLifeMin {
		fmt.Printf("  half_life_min: %.2f -> %.2f\n",
			base.Scenario.HalfLifeMin, variant.Scenario.HalfLifeMin)
		changed = true
	}
	if base.Scenario.HalfLifeMax != variant.Scenario.HalfLifeMax {
		fmt.Printf("  half_life_max: %.2f -> %.2f\n",
			base.Scenario.HalfLifeMax, variant.Scenario.HalfLifeMax)
		changed = true
	}
	if base.Scenario.Duration != variant.Scenario.Duration {
		fmt.Printf("  duration: %d -> %d\n",
			base.Scenario.Duration, variant.Scenario.Duration)
		changed = true
	}

	hours := make(map[int]bool)
	for h := range base.Scenario.Schedule {
		hours[h] = true
	}
	for h := range variant.Scenario.Schedule {
		hours[h] = true
	}
	sorted := make([]int, 0, len(hours))
	for h := range hours {
		sorted = append(sorted, h)
	}
	sort.Ints(sorted)
	for _, h := range sorted {
		bv, bok := base.Scenario.Schedule[h]
		vv, vok := variant.Scenario.Schedule[h]
		switch {
		case bok && !vok:
			fmt.Printf("  dose@%d: %.2f -> (removed)\n", h, bv)
			changed = true
		case !bok && vok:
			fmt.Printf("  dose@%d: (none) -> %.2f\n", h, vv)
			changed = true
		case bv != vv:
			fmt.Printf("  dose@%d: %.2f -> %.2f\n", h, bv, vv)
			changed = true
		}
	}

	if !changed {
		fmt.Println("  (none)")
	}
}
