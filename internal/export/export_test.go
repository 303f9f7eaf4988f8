package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChenxiSSS/FG21SimPlus/internal/storage"
)

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.csv")
	gamma := []float64{1, 10, 100}
	spectrum := []float64{1e-8, 1e-10, 1e-12}

	if err := ExportCSV(path, gamma, spectrum); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "gamma" || records[0][1] != "density" {
		t.Errorf("unexpected header: %v", records[0])
	}
}

func TestExportCSVLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.csv")
	if err := ExportCSV(path, []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	meta := &storage.RunMetadata{ID: "halo_1"}
	gamma := []float64{1, 10}
	spectrum := []float64{2e-9, 3e-11}

	if err := ExportJSON(path, meta, gamma, spectrum); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Meta.ID != "halo_1" {
		t.Errorf("expected id halo_1, got %q", got.Meta.ID)
	}
	if got.Points != 2 || len(got.Gamma) != 2 || len(got.Spectrum) != 2 {
		t.Error("exported arrays truncated")
	}
}

func TestPlotSpectrum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")
	gamma := []float64{1, 10, 100, 1000}
	spectrum := []float64{1e-8, 1e-10, 1e-12, 1e-14}

	if err := PlotSpectrum(path, "test halo", gamma, spectrum); err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestPlotSpectrumRejectsAllNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")
	if err := PlotSpectrum(path, "t", []float64{1, 2}, []float64{0, -1}); err == nil {
		t.Error("expected error when no positive points remain")
	}
}
