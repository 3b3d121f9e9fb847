package results

import (
	"fmt"
	"math"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// SweepResults contains results from a parameter sweep.
type SweepResults struct {
	Version    string           `json:"version"`
	DrugName   string           `json:"drugName,omitempty"`
	Objective  string           `json:"objective"`
	Parameters []ParameterSweep `json:"parameters"`
	Variants   []VariantResult  `json:"variants"`
	Best       *VariantResult   `json:"best,omitempty"`
	Worst      *VariantResult   `json:"worst,omitempty"`
	Summary    SweepSummary     `json:"summary"`
}

// ParameterSweep describes one swept parameter. Names follow the
// scenario fields: "initial", "half_life_min", "half_life_max", or
// "dose@H" for the dose amount at hour H.
type ParameterSweep struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
}

// VariantResult contains results for one parameter combination.
type VariantResult struct {
	ID          int                `json:"id"`
	Parameters  map[string]float64 `json:"parameters"`
	Metrics     Metrics            `json:"metrics"`
	Score       float64            `json:"score"`
	Rank        int                `json:"rank"`
	ResultsFile string             `json:"resultsFile,omitempty"`
}

// Metrics contains key metrics extracted from one variant run.
type Metrics struct {
	Cmax         float64            `json:"cmax"`                   // highest value across both tracks
	Cmin         float64            `json:"cmin"`                   // lowest value across both tracks
	MeanBand     float64            `json:"meanBand"`               // mean conc_max - conc_min gap
	PeakCount    int                `json:"peakCount"`              // local maxima across both tracks
	TroughCount  int                `json:"troughCount"`            // local minima across both tracks
	TimeInWindow int                `json:"timeInWindow,omitempty"` // in-window samples, both tracks; set when a window was analyzed
	Final        map[string]float64 `json:"final"`
	ComputeTime  float64            `json:"computeTime"`
}

// SweepSummary provides an overview of the sweep.
type SweepSummary struct {
	TotalVariants int     `json:"totalVariants"`
	SuccessCount  int     `json:"successCount"`
	FailureCount  int     `json:"failureCount"`
	BestScore     float64 `json:"bestScore"`
	WorstScore    float64 `json:"worstScore"`
	ScoreRange    float64 `json:"scoreRange"`
}

// ObjectiveFunc evaluates how good a variant is (lower is better).
type ObjectiveFunc func(*Results) (float64, error)

// Objectives maps objective names to evaluation functions.
var Objectives = map[string]ObjectiveFunc{
	// Lowest exposure peak: keeps the worst-case Cmax down.
	"minimize_peak": func(r *Results) (float64, error) {
		stats, err := trackStats(r)
		if err != nil {
			return 0, err
		}
		return math.Max(stats[kinetics.TrackMin].Max, stats[kinetics.TrackMax].Max), nil
	},

	// Highest trough on the fast-elimination track: guards against
	// sub-therapeutic gaps under the pessimistic half-life.
	"maximize_trough": func(r *Results) (float64, error) {
		stats, err := trackStats(r)
		if err != nil {
			return 0, err
		}
		return -stats[kinetics.TrackMin].Min, nil
	},

	// Narrowest uncertainty band between the two tracks.
	"minimize_band": func(r *Results) (float64, error) {
		sol, err := r.Solution()
		if err != nil {
			return 0, err
		}
		sum := 0.0
		for i := range sol.T {
			sum += sol.ConcMax[i] - sol.ConcMin[i]
		}
		return sum / float64(len(sol.T)), nil
	},

	// Lowest residual concentration at the end of the run.
	"minimize_final": func(r *Results) (float64, error) {
		sum := 0.0
		for _, v := range r.Results.Summary.Final {
			sum += v
		}
		return sum, nil
	},

	// Most hours spent inside the therapeutic window, both tracks
	// counted. Requires an analysis computed with a window.
	"maximize_time_in_window": func(r *Results) (float64, error) {
		if r.Analysis == nil || r.Analysis.Window == nil {
			return 0, fmt.Errorf("maximize_time_in_window requires analysis with a window")
		}
		sol, err := r.Solution()
		if err != nil {
			return 0, err
		}
		return -float64(timeInWindow(sol, *r.Analysis.Window)), nil
	},
}

// timeInWindow counts samples whose value lies inside the window,
// summed over both tracks.
func timeInWindow(sol *kinetics.Solution, w analysis.Window) int {
	in := 0
	for _, track := range sol.Tracks() {
		for _, v := range sol.Series(track) {
			if v >= w.Floor && v <= w.Ceiling {
				in++
			}
		}
	}
	return in
}

func trackStats(r *Results) (map[string]statLike, error) {
	if r.Analysis == nil || len(r.Analysis.Statistics) == 0 {
		return nil, fmt.Errorf("no analysis statistics available")
	}
	out := make(map[string]statLike, len(r.Analysis.Statistics))
	for track, s := range r.Analysis.Statistics {
		out[track] = statLike{Min: s.Min, Max: s.Max}
	}
	return out, nil
}

type statLike struct {
	Min float64
	Max float64
}

// ComputeMetrics extracts variant metrics from an analyzed results
// document.
func ComputeMetrics(r *Results) Metrics {
	m := Metrics{
		Final:       r.Results.Summary.Final,
		ComputeTime: r.Metadata.ComputeTime,
	}

	if r.Analysis != nil {
		first := true
		for _, s := range r.Analysis.Statistics {
			if first {
				m.Cmax = s.Max
				m.Cmin = s.Min
				first = false
				continue
			}
			m.Cmax = math.Max(m.Cmax, s.Max)
			m.Cmin = math.Min(m.Cmin, s.Min)
		}
		for _, idx := range r.Analysis.Maxima {
			m.PeakCount += len(idx)
		}
		for _, idx := range r.Analysis.Minima {
			m.TroughCount += len(idx)
		}
	}

	if sol, err := r.Solution(); err == nil && len(sol.T) > 0 {
		sum := 0.0
		for i := range sol.T {
			sum += sol.ConcMax[i] - sol.ConcMin[i]
		}
		m.MeanBand = sum / float64(len(sol.T))

		if r.Analysis != nil && r.Analysis.Window != nil {
			m.TimeInWindow = timeInWindow(sol, *r.Analysis.Window)
		}
	}

	return m
}

// Rank orders variants by ascending score, assigns ranks, and fills in
// Best, Worst and the summary. Variants is modified in place.
func (s *SweepResults) Rank() {
	sort.Slice(s.Variants, func(i, j int) bool {
		return s.Variants[i].Score < s.Variants[j].Score
	})
	for i := range s.Variants {
		s.Variants[i].Rank = i + 1
	}

	s.Summary.TotalVariants = len(s.Variants)
	if len(s.Variants) == 0 {
		return
	}

	s.Best = &s.Variants[0]
	s.Worst = &s.Variants[len(s.Variants)-1]
	s.Summary.BestScore = s.Best.Score
	s.Summary.WorstScore = s.Worst.Score
	s.Summary.ScoreRange = s.Worst.Score - s.Best.Score
}

// SweepValues expands a min:max:count specification into count evenly
// spaced values, inclusive of both bounds.
func SweepValues(min, max float64, count int) []float64 {
	if count <= 1 {
		return []float64{min}
	}
	values := make([]float64, count)
	step := (max - min) / float64(count-1)
	for i := range values {
		values[i] = min + float64(i)*step
	}
	return values
}

// WriteSweepJSON writes sweep results to a JSON file.
func WriteSweepJSON(s *SweepResults, filename string) error {
	return writeJSONFile(s, filename)
}
