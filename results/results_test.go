package results

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

func buildTestResults(t *testing.T) *Results {
	t.Helper()
	prob := kinetics.Problem{
		InitialConcentration: 100.0,
		HalfLifeMin:          6.0,
		HalfLifeMax:          12.0,
		Schedule:             kinetics.Schedule{8: 50.0},
		Duration:             72,
	}
	sol := kinetics.Solve(prob)
	an := analysis.NewAnalyzer(sol).ComputeAll()

	return NewBuilder().
		WithScenario("Medication", "mg/L", prob).
		WithSolution(sol, "kinetics", 0.001, 20).
		WithAnalysis(an).
		Build()
}

func TestBuilder(t *testing.T) {
	res := buildTestResults(t)

	if res.Version != SchemaVersion {
		t.Errorf("Expected version %s, got %s", SchemaVersion, res.Version)
	}
	if res.Metadata.RunID == "" {
		t.Error("Expected a run id")
	}
	if res.Metadata.Status != "success" {
		t.Errorf("Expected status success, got %s", res.Metadata.Status)
	}
	if res.Scenario.DrugName != "Medication" || res.Scenario.Unit != "mg/L" {
		t.Errorf("Scenario labels not recorded: %+v", res.Scenario)
	}
	if res.Scenario.Schedule[8] != 50.0 {
		t.Errorf("Expected schedule recorded, got %v", res.Scenario.Schedule)
	}
	if res.Results.Summary.Points != 73 || res.Results.Summary.FinalTime != 72 {
		t.Errorf("Unexpected summary: %+v", res.Results.Summary)
	}
	if len(res.Results.Timeseries.Time.Full) != 73 {
		t.Errorf("Expected full time axis retained, got %d points", len(res.Results.Timeseries.Time.Full))
	}
	if len(res.Results.Timeseries.Time.Downsampled) != 20 {
		t.Errorf("Expected 20 downsampled points, got %d", len(res.Results.Timeseries.Time.Downsampled))
	}
	for _, track := range []string{kinetics.TrackMin, kinetics.TrackMax} {
		data, ok := res.Results.Timeseries.Tracks[track]
		if !ok {
			t.Fatalf("Track %s missing", track)
		}
		if len(data.Full) != 73 || len(data.Downsampled) != 20 {
			t.Errorf("Track %s: got %d full / %d downsampled points", track, len(data.Full), len(data.Downsampled))
		}
	}
	if res.Analysis == nil || len(res.Analysis.Peaks) == 0 {
		t.Error("Expected analysis attached")
	}
}

func TestBuilderRunIDsUnique(t *testing.T) {
	a := NewBuilder().Build()
	b := NewBuilder().Build()
	if a.Metadata.RunID == b.Metadata.RunID {
		t.Error("Expected distinct run ids")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := buildTestResults(t)
	path := filepath.Join(t.TempDir(), "results.json")

	if err := WriteJSON(res, path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	loaded, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if loaded.Metadata.RunID != res.Metadata.RunID {
		t.Errorf("Run id changed in round trip: %s vs %s", loaded.Metadata.RunID, res.Metadata.RunID)
	}
	if loaded.Scenario.Schedule[8] != 50.0 {
		t.Errorf("Schedule lost in round trip: %v", loaded.Scenario.Schedule)
	}

	orig := res.Results.Timeseries.Tracks[kinetics.TrackMin].Full
	got := loaded.Results.Timeseries.Tracks[kinetics.TrackMin].Full
	if len(got) != len(orig) {
		t.Fatalf("Series length changed: %d vs %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i] != orig[i] {
			t.Fatalf("Series value changed at %d: %g vs %g", i, got[i], orig[i])
		}
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	if _, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSolutionRoundTrip(t *testing.T) {
	res := buildTestResults(t)

	sol, err := res.Solution()
	if err != nil {
		t.Fatalf("Solution failed: %v", err)
	}
	if len(sol.T) != 73 || sol.T[72] != 72 {
		t.Errorf("Reconstructed axis wrong: %d points", len(sol.T))
	}
	if sol.ConcMin[0] != 100.0 || sol.ConcMax[0] != 100.0 {
		t.Errorf("Reconstructed initial values wrong: %g, %g", sol.ConcMin[0], sol.ConcMax[0])
	}

	empty := &Results{}
	if _, err := empty.Solution(); err == nil {
		t.Error("Expected error for results without timeseries")
	}
}

func TestProblemRoundTrip(t *testing.T) {
	res := buildTestResults(t)
	prob := res.Problem()

	if prob.HalfLifeMin != 6.0 || prob.HalfLifeMax != 12.0 || prob.Duration != 72 {
		t.Errorf("Problem not reconstructed: %+v", prob)
	}
	if prob.Schedule[8] != 50.0 {
		t.Errorf("Schedule not reconstructed: %v", prob.Schedule)
	}
}

func TestWriteCSV(t *testing.T) {
	res := buildTestResults(t)

	var buf bytes.Buffer
	if err := WriteCSVTo(res, &buf); err != nil {
		t.Fatalf("WriteCSVTo failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 74 {
		t.Fatalf("Expected header + 73 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,conc_min,conc_max" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,100,100") {
		t.Errorf("Unexpected first row: %s", lines[1])
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(res, path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected CSV file written: %v", err)
	}
}

func TestDownsample(t *testing.T) {
	data := make([]float64, 101)
	for i := range data {
		data[i] = float64(i)
	}

	down := downsample(data, 11)
	if len(down) != 11 {
		t.Fatalf("Expected 11 points, got %d", len(down))
	}
	if down[0] != 0 || down[10] != 100 {
		t.Errorf("Endpoints not preserved: %v", down)
	}

	short := []float64{1, 2, 3}
	if got := downsample(short, 10); len(got) != 3 {
		t.Errorf("Expected short data unchanged, got %d points", len(got))
	}
	if got := downsample(data, 0); len(got) != 101 {
		t.Errorf("Expected degenerate target to keep data, got %d points", len(got))
	}
}

func TestObjectives(t *testing.T) {
	res := buildTestResults(t)

	peak, err := Objectives["minimize_peak"](res)
	if err != nil {
		t.Fatalf("minimize_peak failed: %v", err)
	}
	if peak < 100.0 {
		t.Errorf("Expected Cmax of at least the initial concentration, got %g", peak)
	}

	trough, err := Objectives["maximize_trough"](res)
	if err != nil {
		t.Fatalf("maximize_trough failed: %v", err)
	}
	if trough >= 0 {
		t.Errorf("Expected negated trough score, got %g", trough)
	}

	band, err := Objectives["minimize_band"](res)
	if err != nil {
		t.Fatalf("minimize_band failed: %v", err)
	}
	if band <= 0 {
		t.Errorf("Expected positive mean band for distinct half-lives, got %g", band)
	}

	final, err := Objectives["minimize_final"](res)
	if err != nil {
		t.Fatalf("minimize_final failed: %v", err)
	}
	want := res.Results.Summary.Final[kinetics.TrackMin] + res.Results.Summary.Final[kinetics.TrackMax]
	if math.Abs(final-want) > 1e-12 {
		t.Errorf("Expected final sum %g, got %g", want, final)
	}

	// Objectives that need analysis fail cleanly without it.
	bare := buildTestResults(t)
	bare.Analysis = nil
	if _, err := Objectives["minimize_peak"](bare); err == nil {
		t.Error("Expected error without analysis")
	}
}

// windowedResults simulates a pure 6-12 h decay from 100 over six
// hours and analyzes it against an 80-100 window. The fast track stays
// in window through t=1 (89.09 at t=1, 79.37 at t=2), the slow track
// through t=3 (84.09 at t=3, 79.37 at t=4): 2 + 4 = 6 samples in.
func windowedResults(t *testing.T) *Results {
	t.Helper()
	prob := kinetics.Problem{
		InitialConcentration: 100.0,
		HalfLifeMin:          6.0,
		HalfLifeMax:          12.0,
		Duration:             6,
	}
	sol := kinetics.Solve(prob)
	an := analysis.NewAnalyzer(sol).WithWindow(80, 100).ComputeAll()

	return NewBuilder().
		WithScenario("Medication", "mg/L", prob).
		WithSolution(sol, "kinetics", 0.001, 20).
		WithAnalysis(an).
		Build()
}

func TestObjectiveTimeInWindow(t *testing.T) {
	res := windowedResults(t)

	score, err := Objectives["maximize_time_in_window"](res)
	if err != nil {
		t.Fatalf("maximize_time_in_window failed: %v", err)
	}
	if score != -6 {
		t.Errorf("Expected score -6 for 6 in-window samples, got %g", score)
	}
}

func TestObjectiveTimeInWindowRequiresWindow(t *testing.T) {
	// Analysis present but computed without a window.
	res := buildTestResults(t)
	if _, err := Objectives["maximize_time_in_window"](res); err == nil {
		t.Error("Expected error for analysis without a window")
	}

	res.Analysis = nil
	if _, err := Objectives["maximize_time_in_window"](res); err == nil {
		t.Error("Expected error without analysis")
	}
}

func TestComputeMetricsTimeInWindow(t *testing.T) {
	m := ComputeMetrics(windowedResults(t))
	if m.TimeInWindow != 6 {
		t.Errorf("Expected 6 in-window samples, got %d", m.TimeInWindow)
	}

	// Without a window the metric stays zero.
	m = ComputeMetrics(buildTestResults(t))
	if m.TimeInWindow != 0 {
		t.Errorf("Expected zero time in window without a window, got %d", m.TimeInWindow)
	}
}

func TestComputeMetrics(t *testing.T) {
	res := buildTestResults(t)
	m := ComputeMetrics(res)

	if m.Cmax < m.Cmin {
		t.Errorf("Cmax %g below Cmin %g", m.Cmax, m.Cmin)
	}
	if m.PeakCount != 6 || m.TroughCount != 4 {
		t.Errorf("Expected 6 peaks / 4 troughs across tracks, got %d / %d", m.PeakCount, m.TroughCount)
	}
	if m.MeanBand <= 0 {
		t.Errorf("Expected positive mean band, got %g", m.MeanBand)
	}
}

func TestSweepValues(t *testing.T) {
	vals := SweepValues(1, 3, 5)
	want := []float64{1, 1.5, 2, 2.5, 3}
	if len(vals) != 5 {
		t.Fatalf("Expected 5 values, got %d", len(vals))
	}
	for i := range want {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("Expected %v, got %v", want, vals)
			break
		}
	}

	if got := SweepValues(2, 9, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("Expected single min value, got %v", got)
	}
}

func TestSweepRank(t *testing.T) {
	s := &SweepResults{
		Variants: []VariantResult{
			{ID: 0, Score: 3.0},
			{ID: 1, Score: 1.0},
			{ID: 2, Score: 2.0},
		},
	}
	s.Rank()

	if s.Variants[0].ID != 1 || s.Variants[0].Rank != 1 {
		t.Errorf("Expected variant 1 ranked first, got %+v", s.Variants[0])
	}
	if s.Best == nil || s.Best.ID != 1 {
		t.Errorf("Expected best variant 1, got %+v", s.Best)
	}
	if s.Worst == nil || s.Worst.ID != 0 {
		t.Errorf("Expected worst variant 0, got %+v", s.Worst)
	}
	if s.Summary.ScoreRange != 2.0 {
		t.Errorf("Expected score range 2, got %g", s.Summary.ScoreRange)
	}

	empty := &SweepResults{}
	empty.Rank()
	if empty.Best != nil || empty.Summary.TotalVariants != 0 {
		t.Errorf("Expected empty sweep to rank cleanly: %+v", empty.Summary)
	}
}
