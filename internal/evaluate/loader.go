package evaluate

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadLabels reads string labels from path. The format follows the
// file extension: a ".json" file holds a JSON array, a ".csv" file
// holds one label per row in the first column, and anything else is
// read as one label per line. Blank lines are skipped.
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var labels []string
		if err := json.Unmarshal(data, &labels); err != nil {
			return nil, fmt.Errorf("parse JSON labels from %s: %w", path, err)
		}
		return labels, nil
	case ".csv":
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse CSV labels from %s: %w", path, err)
		}
		labels := make([]string, 0, len(records))
		for _, rec := range records {
			if len(rec) > 0 && rec[0] != "" {
				labels = append(labels, rec[0])
			}
		}
		return labels, nil
	default:
		var labels []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				labels = append(labels, line)
			}
		}
		return labels, nil
	}
}

// LoadValues reads numeric values from path using the same formats as
// LoadLabels. A non-numeric first CSV row is treated as a header and
// skipped.
func LoadValues(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var values []float64
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse JSON values from %s: %w", path, err)
		}
		return values, nil
	case ".csv":
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("parse CSV values from %s: %w", path, err)
		}
		var values []float64
		for i, rec := range records {
			if len(rec) == 0 || rec[0] == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
			if err != nil {
				if i == 0 {
					continue // header row
				}
				return nil, fmt.Errorf("parse value %q in %s: %w", rec[0], path, err)
			}
			values = append(values, v)
		}
		return values, nil
	default:
		var values []float64
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q in %s: %w", line, path, err)
			}
			values = append(values, v)
		}
		return values, nil
	}
}
