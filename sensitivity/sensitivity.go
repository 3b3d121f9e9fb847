// Package sensitivity analyzes how simulation outcomes change when
// scenario parameters are perturbed: half-life bounds, initial
// concentration, and each scheduled dose amount.
package sensitivity

import (
	"fmt"
	"math"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// Scorer evaluates a simulation result and returns a score.
type Scorer func(sol *kinetics.Solution) float64

// PeakScorer returns the highest value of a track.
func PeakScorer(track string) Scorer {
	return func(sol *kinetics.Solution) float64 {
		data := sol.Series(track)
		if len(data) == 0 {
			return 0
		}
		max := data[0]
		for _, v := range data {
			if v > max {
				max = v
			}
		}
		return max
	}
}

// TroughScorer returns the lowest value of a track.
func TroughScorer(track string) Scorer {
	return func(sol *kinetics.Solution) float64 {
		data := sol.Series(track)
		if len(data) == 0 {
			return 0
		}
		min := data[0]
		for _, v := range data {
			if v < min {
				min = v
			}
		}
		return min
	}
}

// FinalScorer returns the last value of a track.
func FinalScorer(track string) Scorer {
	return func(sol *kinetics.Solution) float64 {
		data := sol.Series(track)
		if len(data) == 0 {
			return 0
		}
		return data[len(data)-1]
	}
}

// RankedParam is a parameter and its impact on the score.
type RankedParam struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

// Result holds the result of a sensitivity analysis.
type Result struct {
	Baseline float64            `json:"baseline"` // score with original parameters
	Scores   map[string]float64 `json:"scores"`   // score when each parameter is perturbed
	Impact   map[string]float64 `json:"impact"`   // change from baseline (score - baseline)
	Ranking  []RankedParam      `json:"ranking"`  // parameters sorted by absolute impact
}

// Analyzer performs perturbation analysis on a simulation problem.
type Analyzer struct {
	prob   kinetics.Problem
	delta  float64
	scorer Scorer
}

// NewAnalyzer creates an analyzer with a 10% relative perturbation.
func NewAnalyzer(prob kinetics.Problem, scorer Scorer) *Analyzer {
	return &Analyzer{
		prob:   prob,
		delta:  0.1,
		scorer: scorer,
	}
}

// WithDelta sets the relative perturbation applied to each parameter.
func (a *Analyzer) WithDelta(delta float64) *Analyzer {
	a.delta = delta
	return a
}

// Analyze scores the baseline, then rescores with each parameter scaled
// by (1 + delta) in isolation.
func (a *Analyzer) Analyze() *Result {
	result := &Result{
		Scores: make(map[string]float64),
		Impact: make(map[string]float64),
	}
	result.Baseline = a.scorer(kinetics.Solve(a.prob))

	score := func(name string, prob kinetics.Problem) {
		s := a.scorer(kinetics.Solve(prob))
		result.Scores[name] = s
		result.Impact[name] = s - result.Baseline
	}

	prob := a.prob
	prob.HalfLifeMin = a.prob.HalfLifeMin * (1 + a.delta)
	score("half_life_min", prob)

	prob = a.prob
	prob.HalfLifeMax = a.prob.HalfLifeMax * (1 + a.delta)
	score("half_life_max", prob)

	prob = a.prob
	prob.InitialConcentration = a.prob.InitialConcentration * (1 + a.delta)
	score("initial", prob)

	for hour := range a.prob.Schedule {
		prob = a.prob
		prob.Schedule = a.prob.Schedule.Clone()
		prob.Schedule[hour] *= 1 + a.delta
		score(fmt.Sprintf("dose@%d", hour), prob)
	}

	for name, impact := range result.Impact {
		result.Ranking = append(result.Ranking, RankedParam{Name: name, Impact: impact})
	}
	sort.Slice(result.Ranking, func(i, j int) bool {
		ai, aj := math.Abs(result.Ranking[i].Impact), math.Abs(result.Ranking[j].Impact)
		if ai == aj {
			return result.Ranking[i].Name < result.Ranking[j].Name
		}
		return ai > aj
	})

	return result
}
