// Package kinetics simulates drug concentration over time under
// first-order elimination, with optional daily-cyclic redosing.
//
// The simulator tracks two concentration series in parallel, one per
// half-life bound, so callers can render an uncertainty band around the
// elimination rate. Both series receive the same scheduled doses.
//
// The package is total over its numeric inputs and defines no errors:
// HalfLifeMin < HalfLifeMax, strictly positive half-lives, positive
// duration and non-negative initial concentration are caller
// preconditions. Violating them is never rejected here; the arithmetic
// simply propagates, so a reversed half-life range silently swaps the
// meaning of the two output tracks. Callers that accept user input must
// validate before calling.
package kinetics

import "math"

// Track labels for the two concentration series in a Solution.
const (
	TrackMin = "conc_min" // fastest elimination (lower half-life bound)
	TrackMax = "conc_max" // slowest elimination (upper half-life bound)
)

// Problem describes one simulation run.
type Problem struct {
	InitialConcentration float64
	HalfLifeMin          float64
	HalfLifeMax          float64
	Schedule             Schedule
	Duration             int // whole time units; the series spans 0..Duration inclusive
}

// Solution holds the simulated concentration series.
// All three slices have length Duration+1 and T[k] == k.
type Solution struct {
	T       []int
	ConcMin []float64
	ConcMax []float64
}

// DecayFactor returns the multiplicative attenuation 0.5^(dt/halfLife)
// applied across a time delta dt.
func DecayFactor(dt, halfLife float64) float64 {
	return math.Pow(0.5, dt/halfLife)
}

// Solve runs the simulation for prob.
//
// Index 0 of both series carries the initial concentration unchanged;
// scheduled doses only apply from index 1 onward, so an hour-0 entry
// first fires at time 24. A negative duration is treated as 0 and
// yields the single-point series.
func Solve(prob Problem) *Solution {
	duration := prob.Duration
	if duration < 0 {
		duration = 0
	}

	sol := &Solution{
		T:       make([]int, duration+1),
		ConcMin: make([]float64, duration+1),
		ConcMax: make([]float64, duration+1),
	}
	for i := range sol.T {
		sol.T[i] = i
	}
	sol.ConcMin[0] = prob.InitialConcentration
	sol.ConcMax[0] = prob.InitialConcentration

	for i := 1; i <= duration; i++ {
		// Step-1 axis, but compute the delta from the axis itself so a
		// non-uniform axis would decay correctly.
		dt := float64(sol.T[i] - sol.T[i-1])

		sol.ConcMin[i] = sol.ConcMin[i-1] * DecayFactor(dt, prob.HalfLifeMin)
		sol.ConcMax[i] = sol.ConcMax[i-1] * DecayFactor(dt, prob.HalfLifeMax)

		// Redosing is keyed by wall-clock hour of day, not elapsed time
		// since the last dose: an entry at hour 8 fires at 8, 32, 56, ...
		if dose, ok := prob.Schedule[sol.T[i]%24]; ok {
			sol.ConcMin[i] += dose
			sol.ConcMax[i] += dose
		}
	}

	return sol
}

// Simulate is the flat-argument form of Solve.
// It returns the time axis and the two concentration series, aligned
// and each of length duration+1.
func Simulate(initial, halfLifeMin, halfLifeMax float64, schedule Schedule, duration int) ([]int, []float64, []float64) {
	sol := Solve(Problem{
		InitialConcentration: initial,
		HalfLifeMin:          halfLifeMin,
		HalfLifeMax:          halfLifeMax,
		Schedule:             schedule,
		Duration:             duration,
	})
	return sol.T, sol.ConcMin, sol.ConcMax
}

// Series returns the concentration series for a track label.
// Unknown labels return nil.
func (s *Solution) Series(track string) []float64 {
	switch track {
	case TrackMin:
		return s.ConcMin
	case TrackMax:
		return s.ConcMax
	default:
		return nil
	}
}

// Tracks returns the track labels in a fixed order.
func (s *Solution) Tracks() []string {
	return []string{TrackMin, TrackMax}
}

// Times returns the time axis converted to float64, for plotting and
// downsampling code that works on real-valued axes.
func (s *Solution) Times() []float64 {
	out := make([]float64, len(s.T))
	for i, t := range s.T {
		out[i] = float64(t)
	}
	return out
}

// Final returns the last value of each track.
func (s *Solution) Final() map[string]float64 {
	if len(s.T) == 0 {
		return nil
	}
	last := len(s.T) - 1
	return map[string]float64{
		TrackMin: s.ConcMin[last],
		TrackMax: s.ConcMax[last],
	}
}
