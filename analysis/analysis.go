package analysis

import (
	"math"
	"sort"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// Peak is a local maximum or minimum of one concentration track.
type Peak struct {
	Track      string  `json:"track"`
	Time       int     `json:"time"`
	Value      float64 `json:"value"`
	Prominence float64 `json:"prominence,omitempty"`
}

// Stat is a statistical summary of one track.
type Stat struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// Window is a therapeutic concentration range.
type Window struct {
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
}

// Excursion bounds where a track left the therapeutic window.
const (
	BoundFloor   = "floor"
	BoundCeiling = "ceiling"
)

// Excursion records a contiguous run of points outside the window.
// Enter and Exit are the first and last indices of the run, inclusive.
// Extreme is the worst value observed during the run.
type Excursion struct {
	Track   string  `json:"track"`
	Bound   string  `json:"bound"`
	Enter   int     `json:"enter"`
	Exit    int     `json:"exit"`
	Extreme float64 `json:"extreme"`
}

// Analysis contains the computed insights for a solution.
type Analysis struct {
	Minima     map[string][]int `json:"minima"`
	Maxima     map[string][]int `json:"maxima"`
	Peaks      []Peak           `json:"peaks,omitempty"`
	Troughs    []Peak           `json:"troughs,omitempty"`
	Statistics map[string]Stat  `json:"statistics,omitempty"`
	Window     *Window          `json:"window,omitempty"`
	Excursions []Excursion      `json:"excursions,omitempty"`
}

// Analyzer computes insights from a kinetics solution.
type Analyzer struct {
	sol    *kinetics.Solution
	window *Window
}

// NewAnalyzer creates an analyzer for a solution.
func NewAnalyzer(sol *kinetics.Solution) *Analyzer {
	return &Analyzer{sol: sol}
}

// WithWindow sets a therapeutic window for excursion detection.
func (a *Analyzer) WithWindow(floor, ceiling float64) *Analyzer {
	a.window = &Window{Floor: floor, Ceiling: ceiling}
	return a
}

// ComputeAll runs every analysis for both tracks.
func (a *Analyzer) ComputeAll() *Analysis {
	analysis := &Analysis{
		Minima:     make(map[string][]int),
		Maxima:     make(map[string][]int),
		Statistics: make(map[string]Stat),
		Window:     a.window,
	}

	for _, track := range a.sol.Tracks() {
		data := a.sol.Series(track)

		minima, maxima := FindExtrema(data)
		analysis.Minima[track] = minima
		analysis.Maxima[track] = maxima

		for _, i := range maxima {
			analysis.Peaks = append(analysis.Peaks, Peak{
				Track:      track,
				Time:       a.sol.T[i],
				Value:      data[i],
				Prominence: prominence(data, i),
			})
		}
		for _, i := range minima {
			analysis.Troughs = append(analysis.Troughs, Peak{
				Track:      track,
				Time:       a.sol.T[i],
				Value:      data[i],
				Prominence: troughProminence(data, i),
			})
		}

		analysis.Statistics[track] = computeStats(data)

		if a.window != nil {
			analysis.Excursions = append(analysis.Excursions, findExcursions(track, data, *a.window)...)
		}
	}

	return analysis
}

// prominence is the height of a maximum above the higher of the lowest
// values found on each side of it.
func prominence(data []float64, i int) float64 {
	leftMin := data[i-1]
	for j := i - 2; j >= 0; j-- {
		if data[j] < leftMin {
			leftMin = data[j]
		}
	}
	rightMin := data[i+1]
	for j := i + 2; j < len(data); j++ {
		if data[j] < rightMin {
			rightMin = data[j]
		}
	}
	return data[i] - math.Max(leftMin, rightMin)
}

// troughProminence is the depth of a minimum below the lower of the
// highest values found on each side of it.
func troughProminence(data []float64, i int) float64 {
	leftMax := data[i-1]
	for j := i - 2; j >= 0; j-- {
		if data[j] > leftMax {
			leftMax = data[j]
		}
	}
	rightMax := data[i+1]
	for j := i + 2; j < len(data); j++ {
		if data[j] > rightMax {
			rightMax = data[j]
		}
	}
	return math.Min(leftMax, rightMax) - data[i]
}

func findExcursions(track string, data []float64, w Window) []Excursion {
	var out []Excursion

	flush := func(e *Excursion) {
		if e.Enter >= 0 {
			out = append(out, *e)
		}
		e.Enter = -1
	}

	below := Excursion{Track: track, Bound: BoundFloor, Enter: -1}
	above := Excursion{Track: track, Bound: BoundCeiling, Enter: -1}

	for i, v := range data {
		if v < w.Floor {
			if below.Enter < 0 {
				below.Enter = i
				below.Extreme = v
			}
			below.Exit = i
			if v < below.Extreme {
				below.Extreme = v
			}
		} else {
			flush(&below)
		}

		if v > w.Ceiling {
			if above.Enter < 0 {
				above.Enter = i
				above.Extreme = v
			}
			above.Exit = i
			if v > above.Extreme {
				above.Extreme = v
			}
		} else {
			flush(&above)
		}
	}
	flush(&below)
	flush(&above)

	return out
}

func computeStats(data []float64) Stat {
	if len(data) == 0 {
		return Stat{}
	}

	min := data[0]
	max := data[0]
	sum := 0.0
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(data))

	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}
	std := math.Sqrt(sumSq / float64(len(data)))

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Stat{Min: min, Max: max, Mean: mean, Median: median, Std: std}
}
