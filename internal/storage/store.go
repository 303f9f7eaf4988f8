package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ChenxiSSS/FG21SimPlus/internal/halo"
)

// Store persists halo runs under a base directory, one subdirectory per
// run holding metadata.json and spectrum.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string      `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Params        halo.Params `json:"params"`
	Config        halo.Config `json:"config"`
	AgeMerger     float64     `json:"age_merger"`
	AgeObs        float64     `json:"age_obs"`
	RadiusHalo    float64     `json:"radius_halo"`
	MagneticField float64     `json:"magnetic_field"`
}

func (s *Store) Save(h *halo.RadioHalo, spectrum []float64) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// The timestamp alone collides when runs are saved back to back
	// (batch mode); claim the run directory with an exclusive Mkdir and
	// bump a suffix until one is free.
	base := fmt.Sprintf("halo_%d", time.Now().Unix())
	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Params:        h.Params(),
		Config:        h.Configuration(),
		AgeMerger:     h.AgeMerger(),
		AgeObs:        h.AgeObs(),
		RadiusHalo:    h.RadiusHalo(),
		MagneticField: h.MagneticField(),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSpectrumCSV(filepath.Join(runDir, "spectrum.csv"), h.Gamma(), spectrum); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSpectrumCSV(path string, gamma, spectrum []float64) error {
	if len(gamma) != len(spectrum) {
		return fmt.Errorf("spectrum length %d does not match grid length %d", len(spectrum), len(gamma))
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

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSpectrum reads back the gamma grid and electron density columns of
// a stored run.
func (s *Store) LoadSpectrum(runID string) ([]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "spectrum.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	gamma := make([]float64, 0, len(records)-1)
	spectrum := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		g, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		n, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		gamma = append(gamma, g)
		spectrum = append(spectrum, n)
	}

	return gamma, spectrum, nil
}
