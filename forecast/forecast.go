// Package forecast predicts threshold crossings by simulating a
// scenario forward over an extended horizon: when a concentration track
// first falls below a floor or rises above a ceiling.
package forecast

import (
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// DefaultHorizon is one week of hourly steps.
const DefaultHorizon = 7 * 24

// Prediction reports the first threshold crossing of one track.
type Prediction struct {
	Track   string  `json:"track"`
	Reached bool    `json:"reached"`
	Time    int     `json:"time"`
	Value   float64 `json:"value"`
}

// Predictor simulates a scenario over a horizon and scans for
// threshold crossings.
type Predictor struct {
	prob    kinetics.Problem
	horizon int
}

// NewPredictor creates a predictor for the scenario. The horizon
// defaults to the scenario duration or one week, whichever is longer.
func NewPredictor(prob kinetics.Problem) *Predictor {
	horizon := prob.Duration
	if horizon < DefaultHorizon {
		horizon = DefaultHorizon
	}
	return &Predictor{prob: prob, horizon: horizon}
}

// WithHorizon overrides the simulation horizon in time units.
func (p *Predictor) WithHorizon(horizon int) *Predictor {
	p.horizon = horizon
	return p
}

// Horizon returns the effective simulation horizon.
func (p *Predictor) Horizon() int {
	return p.horizon
}

// PredictBelow reports, per track, the first time at or after 1 where
// the concentration drops below floor. Index 0 is excluded: it carries
// the initial value, not a simulated one.
func (p *Predictor) PredictBelow(floor float64) []Prediction {
	return p.scan(func(v float64) bool { return v < floor })
}

// PredictAbove reports, per track, the first time at or after 1 where
// the concentration exceeds ceiling.
func (p *Predictor) PredictAbove(ceiling float64) []Prediction {
	return p.scan(func(v float64) bool { return v > ceiling })
}

func (p *Predictor) scan(hit func(float64) bool) []Prediction {
	prob := p.prob
	prob.Duration = p.horizon
	sol := kinetics.Solve(prob)

	out := make([]Prediction, 0, 2)
	for _, track := range sol.Tracks() {
		pred := Prediction{Track: track}
		data := sol.Series(track)
		for i := 1; i < len(data); i++ {
			if hit(data[i]) {
				pred.Reached = true
				pred.Time = sol.T[i]
				pred.Value = data[i]
				break
			}
		}
		out = append(out, pred)
	}
	return out
}
