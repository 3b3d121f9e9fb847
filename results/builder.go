package results

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// ErrNoTimeseries is returned when a results file carries no
// full-resolution series to reconstruct a solution from.
var ErrNoTimeseries = fmt.Errorf("results: no full-resolution timeseries")

// Builder helps construct Results from simulation output.
type Builder struct {
	results Results
}

// NewBuilder creates a results builder with a fresh run id.
func NewBuilder() *Builder {
	return &Builder{
		results: Results{
			Version: SchemaVersion,
			Metadata: Metadata{
				RunID:     uuid.New().String(),
				Timestamp: time.Now(),
			},
		},
	}
}

// WithScenario records the simulation inputs.
func (b *Builder) WithScenario(drugName, unit string, prob kinetics.Problem) *Builder {
	b.results.Scenario = Scenario{
		DrugName:             drugName,
		Unit:                 unit,
		InitialConcentration: prob.InitialConcentration,
		HalfLifeMin:          prob.HalfLifeMin,
		HalfLifeMax:          prob.HalfLifeMax,
		Duration:             prob.Duration,
		Schedule:             map[int]float64(prob.Schedule.Clone()),
	}
	return b
}

// WithSolution processes simulator output.
func (b *Builder) WithSolution(sol *kinetics.Solution, engine string, computeTime float64, downsampleTarget int) *Builder {
	b.results.Metadata.Engine = engine
	b.results.Metadata.Status = "success"
	b.results.Metadata.ComputeTime = computeTime

	b.results.Results.Summary = Summary{
		Points:    len(sol.T),
		FinalTime: sol.T[len(sol.T)-1],
		Final:     sol.Final(),
	}

	timeFull := sol.Times()
	timeDown := downsample(timeFull, downsampleTarget)

	b.results.Results.Timeseries = Timeseries{
		Time: TimeData{
			Full:        timeFull,
			Downsampled: timeDown,
		},
		Tracks: make(map[string]SeriesData),
	}

	for _, track := range sol.Tracks() {
		full := sol.Series(track)
		b.results.Results.Timeseries.Tracks[track] = SeriesData{
			Full:        full,
			Downsampled: downsampleAligned(timeFull, full, timeDown),
		}
	}

	return b
}

// WithAnalysis attaches computed analysis.
func (b *Builder) WithAnalysis(an *analysis.Analysis) *Builder {
	b.results.Analysis = an
	return b
}

// WithError sets error status.
func (b *Builder) WithError(err error) *Builder {
	b.results.Metadata.Status = "error"
	b.results.Metadata.Error = err.Error()
	return b
}

// Build returns the constructed Results.
func (b *Builder) Build() *Results {
	return &b.results
}

// Problem reconstructs the simulation inputs recorded in the scenario.
func (r *Results) Problem() kinetics.Problem {
	schedule := make(kinetics.Schedule, len(r.Scenario.Schedule))
	for h, a := range r.Scenario.Schedule {
		schedule[h] = a
	}
	return kinetics.Problem{
		InitialConcentration: r.Scenario.InitialConcentration,
		HalfLifeMin:          r.Scenario.HalfLifeMin,
		HalfLifeMax:          r.Scenario.HalfLifeMax,
		Schedule:             schedule,
		Duration:             r.Scenario.Duration,
	}
}

// Solution reconstructs the full-resolution solution from a results
// document, so analyze/plot/export can run on saved files.
func (r *Results) Solution() (*kinetics.Solution, error) {
	timeFull := r.Results.Timeseries.Time.Full
	if len(timeFull) == 0 {
		return nil, ErrNoTimeseries
	}

	sol := &kinetics.Solution{T: make([]int, len(timeFull))}
	for i, t := range timeFull {
		sol.T[i] = int(t)
	}

	for _, track := range []string{kinetics.TrackMin, kinetics.TrackMax} {
		data, ok := r.Results.Timeseries.Tracks[track]
		if !ok || len(data.Full) != len(timeFull) {
			return nil, fmt.Errorf("results: track %s missing or misaligned: %w", track, ErrNoTimeseries)
		}
		switch track {
		case kinetics.TrackMin:
			sol.ConcMin = data.Full
		case kinetics.TrackMax:
			sol.ConcMax = data.Full
		}
	}

	return sol, nil
}

// downsample reduces data to approximately targetPoints.
func downsample(data []float64, targetPoints int) []float64 {
	if targetPoints < 2 || len(data) <= targetPoints {
		return data
	}

	result := make([]float64, targetPoints)
	result[0] = data[0]
	result[targetPoints-1] = data[len(data)-1]

	step := float64(len(data)-1) / float64(targetPoints-1)
	for i := 1; i < targetPoints-1; i++ {
		idx := int(math.Round(float64(i) * step))
		result[i] = data[idx]
	}

	return result
}

// downsampleAligned downsamples varData to match the downsampled time axis.
func downsampleAligned(timeFull, varData, timeDown []float64) []float64 {
	result := make([]float64, len(timeDown))
	for i, target := range timeDown {
		result[i] = varData[findClosestIndex(timeFull, target)]
	}
	return result
}

// findClosestIndex finds the index of the value closest to target.
func findClosestIndex(data []float64, target float64) int {
	if len(data) == 0 {
		return 0
	}

	minDist := math.Abs(data[0] - target)
	minIdx := 0
	for i := 1; i < len(data); i++ {
		if dist := math.Abs(data[i] - target); dist < minDist {
			minDist = dist
			minIdx = i
		}
	}
	return minIdx
}
