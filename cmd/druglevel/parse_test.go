package main

import (
	"fmt"
	"testing"

	"github.com/sidd-1337/druglevelmodelingapp/results"
)

func TestParseHalfLifeRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		min     float64
		max     float64
		wantErr bool
	}{
		{"basic", "6.0-12.0", 6.0, 12.0, false},
		{"integers", "4-6", 4.0, 6.0, false},
		{"spaces", " 6.0 - 12.0 ", 6.0, 12.0, false},
		{"missing separator", "6.0", 0, 0, true},
		{"empty", "", 0, 0, true},
		{"zero min", "0-12", 0, 0, true},
		{"negative", "-6-12", 0, 0, true},
		{"equal", "6-6", 0, 0, true},
		{"reversed", "12-6", 0, 0, true},
		{"not a number", "abc-12", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := parseHalfLifeRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if min != tt.min || max != tt.max {
				t.Errorf("Expected %g-%g, got %g-%g", tt.min, tt.max, min, max)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	floor, ceiling, err := parseWindow("20-90")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if floor != 20 || ceiling != 90 {
		t.Errorf("Expected 20-90, got %g-%g", floor, ceiling)
	}

	// Zero floor is allowed for a window
	floor, ceiling, err = parseWindow("0-50")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if floor != 0 || ceiling != 50 {
		t.Errorf("Expected 0-50, got %g-%g", floor, ceiling)
	}

	for _, input := range []string{"90-20", "20-20", "20", "", "a-b"} {
		if _, _, err := parseWindow(input); err == nil {
			t.Errorf("Expected error for %q, got none", input)
		}
	}
}

func TestParseRedose(t *testing.T) {
	schedule, err := parseRedose("8=50,20=25")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(schedule) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(schedule))
	}
	if schedule[8] != 50 {
		t.Errorf("Expected 50 at hour 8, got %g", schedule[8])
	}
	if schedule[20] != 25 {
		t.Errorf("Expected 25 at hour 20, got %g", schedule[20])
	}
}

func TestParseRedoseEmpty(t *testing.T) {
	schedule, err := parseRedose("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(schedule) != 0 {
		t.Errorf("Expected empty schedule, got %d entries", len(schedule))
	}
}

func TestParseRedoseLastWins(t *testing.T) {
	schedule, err := parseRedose("8=50,8=75")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if schedule[8] != 75 {
		t.Errorf("Expected last amount 75 at hour 8, got %g", schedule[8])
	}
}

func TestParseRedoseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"hour too large", "24=50"},
		{"negative hour", "-1=50"},
		{"negative amount", "8=-10"},
		{"missing value", "8="},
		{"missing key", "=50"},
		{"no separator", "850"},
		{"not a number", "8=abc"},
		{"fractional hour", "8.5=50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRedose(tt.input); err == nil {
				t.Errorf("Expected error for %q, got none", tt.input)
			}
		})
	}
}

func TestParseKeyValue(t *testing.T) {
	key, value, err := parseKeyValue(" dose = 50 ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "dose" || value != "50" {
		t.Errorf("Expected dose=50, got %s=%s", key, value)
	}

	for _, input := range []string{"dose", "=50", "dose=", ""} {
		if _, _, err := parseKeyValue(input); err == nil {
			t.Errorf("Expected error for %q, got none", input)
		}
	}
}

func TestParseSweepSpec(t *testing.T) {
	axis, err := parseSweepSpec("8=25:100:6")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if axis.Hour != 8 {
		t.Errorf("Expected hour 8, got %d", axis.Hour)
	}
	if len(axis.Values) != 6 {
		t.Fatalf("Expected 6 values, got %d", len(axis.Values))
	}
	if axis.Values[0] != 25 || axis.Values[5] != 100 {
		t.Errorf("Expected endpoints 25 and 100, got %g and %g",
			axis.Values[0], axis.Values[5])
	}
}

func TestParseSweepSpecInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad hour", "24=25:100:6"},
		{"missing count", "8=25:100"},
		{"zero count", "8=25:100:0"},
		{"reversed range", "8=100:25:6"},
		{"negative min", "8=-10:100:6"},
		{"not a number", "8=a:100:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSweepSpec(tt.input); err == nil {
				t.Errorf("Expected error for %q, got none", tt.input)
			}
		})
	}
}

func TestParseSweepRangeSingleValue(t *testing.T) {
	values, err := parseSweepRange("50:200:1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(values) != 1 || values[0] != 50 {
		t.Errorf("Expected [50], got %v", values)
	}
}

func TestBuildProblem(t *testing.T) {
	prob, err := buildProblem(100, "6.0-12.0", 72, "8=50")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if prob.InitialConcentration != 100 {
		t.Errorf("Expected initial 100, got %g", prob.InitialConcentration)
	}
	if prob.HalfLifeMin != 6 || prob.HalfLifeMax != 12 {
		t.Errorf("Expected half-lives 6 and 12, got %g and %g",
			prob.HalfLifeMin, prob.HalfLifeMax)
	}
	if prob.Duration != 72 {
		t.Errorf("Expected duration 72, got %d", prob.Duration)
	}
	if prob.Schedule[8] != 50 {
		t.Errorf("Expected dose 50 at hour 8, got %g", prob.Schedule[8])
	}
}

func TestBuildProblemInvalid(t *testing.T) {
	if _, err := buildProblem(-1, "6-12", 72, ""); err == nil {
		t.Error("Expected error for negative initial concentration")
	}
	if _, err := buildProblem(100, "6-12", 0, ""); err == nil {
		t.Error("Expected error for zero duration")
	}
	if _, err := buildProblem(100, "12-6", 72, ""); err == nil {
		t.Error("Expected error for reversed half-life range")
	}
	if _, err := buildProblem(100, "6-12", 72, "25=50"); err == nil {
		t.Error("Expected error for out-of-range redose hour")
	}
}

func TestGenerateCombinations(t *testing.T) {
	combos := generateCombinations(nil)
	if len(combos) != 1 {
		t.Fatalf("Expected 1 empty combination, got %d", len(combos))
	}
	if len(combos[0].params) != 0 {
		t.Errorf("Expected no parameters, got %v", combos[0].params)
	}
}

func TestGenerateCombinationsCartesian(t *testing.T) {
	sweeps := []results.ParameterSweep{
		{Name: "dose@8", Values: []float64{25, 50, 75}},
		{Name: "initial", Values: []float64{100, 200}},
	}

	combos := generateCombinations(sweeps)
	if len(combos) != 6 {
		t.Fatalf("Expected 6 combinations, got %d", len(combos))
	}

	seen := make(map[string]bool)
	for _, combo := range combos {
		if len(combo.params) != 2 {
			t.Errorf("Expected 2 parameters per combination, got %v", combo.params)
		}
		key := fmt.Sprintf("%g/%g", combo.params["dose@8"], combo.params["initial"])
		if seen[key] {
			t.Errorf("Duplicate combination: %s", key)
		}
		seen[key] = true
	}
}
