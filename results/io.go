package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// WriteJSON writes results to a JSON file.
func WriteJSON(results *Results, filename string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// ReadJSON reads results from a JSON file.
func ReadJSON(filename string) (*Results, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &results, nil
}

// ToJSON converts results to a JSON string.
func ToJSON(results *Results) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON parses results from a JSON string.
func FromJSON(jsonStr string) (*Results, error) {
	var results Results
	if err := json.Unmarshal([]byte(jsonStr), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func writeJSONFile(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// WriteCSV writes the full-resolution series to a CSV file with a
// time,conc_min,conc_max header.
func WriteCSV(results *Results, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	return WriteCSVTo(results, f)
}

// WriteCSVTo writes the full-resolution series to w.
func WriteCSVTo(results *Results, w io.Writer) error {
	sol, err := results.Solution()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", kinetics.TrackMin, kinetics.TrackMax}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range sol.T {
		row := []string{
			strconv.Itoa(t),
			strconv.FormatFloat(sol.ConcMin[i], 'g', -1, 64),
			strconv.FormatFloat(sol.ConcMax[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
