// Package results defines the structured output format for simulation
// runs and its JSON/CSV serialization.
package results

import (
	"time"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
)

const SchemaVersion = "1.0.0"

// Results contains complete simulation output.
type Results struct {
	Version  string             `json:"version"`
	Metadata Metadata           `json:"metadata"`
	Scenario Scenario           `json:"scenario"`
	Results  Data               `json:"results"`
	Analysis *analysis.Analysis `json:"analysis,omitempty"`
}

// Metadata contains run execution information.
type Metadata struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"timestamp"`
	Engine      string    `json:"engine"`
	Status      string    `json:"status"` // success, error
	Error       string    `json:"error,omitempty"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// Scenario records the simulation inputs for provenance.
type Scenario struct {
	DrugName             string          `json:"drugName,omitempty"`
	Unit                 string          `json:"unit,omitempty"`
	InitialConcentration float64         `json:"initialConcentration"`
	HalfLifeMin          float64         `json:"halfLifeMin"`
	HalfLifeMax          float64         `json:"halfLifeMax"`
	Duration             int             `json:"duration"`
	Schedule             map[int]float64 `json:"schedule,omitempty"`
}

// Data contains the simulation results.
type Data struct {
	Summary    Summary    `json:"summary"`
	Timeseries Timeseries `json:"timeseries"`
}

// Summary provides a quick overview.
type Summary struct {
	Points    int                `json:"points"`
	FinalTime int                `json:"finalTime"`
	Final     map[string]float64 `json:"final"`
}

// Timeseries holds the time axis and both concentration tracks at full
// and downsampled resolution.
type Timeseries struct {
	Time   TimeData              `json:"time"`
	Tracks map[string]SeriesData `json:"tracks"`
}

// TimeData holds the time axis at both resolutions. Full is always
// retained so a solution can be reconstructed from a results file.
type TimeData struct {
	Full        []float64 `json:"full"`
	Downsampled []float64 `json:"downsampled"`
}

// SeriesData holds one track at both resolutions.
type SeriesData struct {
	Full        []float64 `json:"full"`
	Downsampled []float64 `json:"downsampled"`
}
