// Package export writes computed electron spectra to interchange
// formats (CSV, JSON) and renders publication plots.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ChenxiSSS/FG21SimPlus/internal/storage"
)

type ExportData struct {
	Meta     storage.RunMetadata `json:"meta"`
	Points   int                 `json:"points"`
	Gamma    []float64           `json:"gamma"`
	Spectrum []float64           `json:"spectrum"`
}

func ExportJSON(path string, meta *storage.RunMetadata, gamma, spectrum []float64) error {
	data := ExportData{
		Meta:     *meta,
		Points:   len(gamma),
		Gamma:    gamma,
		Spectrum: spectrum,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(meta *storage.RunMetadata, gamma, spectrum []float64) error {
	data := ExportData{
		Meta:     *meta,
		Points:   len(gamma),
		Gamma:    gamma,
		Spectrum: spectrum,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(path string, gamma, spectrum []float64) error {
	if len(gamma) != len(spectrum) {
		return fmt.Errorf("gamma and spectrum lengths differ: %d vs %d", len(gamma), len(spectrum))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"gamma", "density"}); err != nil {
		return err
	}
	for i := range gamma {
		row := []string{
			strconv.FormatFloat(gamma[i], 'e', 8, 64),
			strconv.FormatFloat(spectrum[i], 'e', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
