package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
	"github.com/sidd-1337/druglevelmodelingapp/results"
)

// parseHalfLifeRange parses a "min-max" half-life pair such as "6.0-12.0".
// Both halves must be positive and min must be strictly less than max.
func parseHalfLifeRange(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid half-life range %q (expected min-max, e.g. 6.0-12.0)", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid half-life %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid half-life %q: %w", parts[1], err)
	}
	if lo <= 0 || hi <= 0 {
		return 0, 0, fmt.Errorf("half-lives must be positive, got %g-%g", lo, hi)
	}
	if lo >= hi {
		return 0, 0, fmt.Errorf("half-life range must satisfy min < max, got %g-%g", lo, hi)
	}
	return lo, hi, nil
}

// parseWindow parses a "floor-ceiling" therapeutic window such as
// "20-90". The floor may be zero; the ceiling must exceed the floor.
func parseWindow(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid window %q (expected floor-ceiling, e.g. 20-90)", s)
	}
	floor, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window floor %q: %w", parts[0], err)
	}
	ceiling, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window ceiling %q: %w", parts[1], err)
	}
	if floor < 0 || ceiling <= floor {
		return 0, 0, fmt.Errorf("window must satisfy 0 <= floor < ceiling, got %g-%g", floor, ceiling)
	}
	return floor, ceiling, nil
}

// parseRedose parses a redose schedule like "8=50,20=25" into hour/amount
// pairs. Hours must fall in [0,23]; amounts must be non-negative. Repeated
// hours keep the last amount given.
func parseRedose(s string) (kinetics.Schedule, error) {
	if strings.TrimSpace(s) == "" {
		return kinetics.Schedule{}, nil
	}
	var entries []kinetics.Entry
	for _, pair := range strings.Split(s, ",") {
		key, value, err := parseKeyValue(pair)
		if err != nil {
			return nil, err
		}
		hour, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid redose hour %q: %w", key, err)
		}
		if hour < 0 || hour > 23 {
			return nil, fmt.Errorf("redose hour must be in [0,23], got %d", hour)
		}
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid redose amount %q: %w", value, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("redose amount must be non-negative, got %g", amount)
		}
		entries = append(entries, kinetics.Entry{Hour: hour, Amount: amount})
	}
	return kinetics.NewSchedule(entries), nil
}

// parseKeyValue splits a "key=value" token.
func parseKeyValue(s string) (string, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid key=value pair: %q", s)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" || value == "" {
		return "", "", fmt.Errorf("invalid key=value pair: %q", s)
	}
	return key, value, nil
}

// sweepAxis describes one swept dose hour: the hour and the amounts to try.
type sweepAxis struct {
	Hour   int
	Values []float64
}

// parseSweepSpec parses a dose sweep spec "hour=min:max:count", e.g.
// "8=25:100:6" sweeps the hour-8 dose over six evenly spaced amounts.
func parseSweepSpec(s string) (sweepAxis, error) {
	key, value, err := parseKeyValue(s)
	if err != nil {
		return sweepAxis{}, err
	}
	hour, err := strconv.Atoi(key)
	if err != nil {
		return sweepAxis{}, fmt.Errorf("invalid sweep hour %q: %w", key, err)
	}
	if hour < 0 || hour > 23 {
		return sweepAxis{}, fmt.Errorf("sweep hour must be in [0,23], got %d", hour)
	}
	values, err := parseSweepRange(value)
	if err != nil {
		return sweepAxis{}, err
	}
	return sweepAxis{Hour: hour, Values: values}, nil
}

// parseSweepRange expands a "min:max:count" spec into evenly spaced
// values.
func parseSweepRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid sweep range %q (expected min:max:count)", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep max %q: %w", parts[1], err)
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid sweep count %q: %w", parts[2], err)
	}
	if count < 1 {
		return nil, fmt.Errorf("sweep count must be at least 1, got %d", count)
	}
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("sweep range must satisfy 0 <= min <= max, got %g:%g", lo, hi)
	}
	return results.SweepValues(lo, hi, count), nil
}

// validateScenario enforces the simulation preconditions before any
// concentrations are computed.
func validateScenario(initial float64, duration int) error {
	if initial < 0 {
		return fmt.Errorf("initial concentration must be non-negative, got %g", initial)
	}
	if duration < 1 {
		return fmt.Errorf("duration must be at least 1 hour, got %d", duration)
	}
	return nil
}
