package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Halo.InjectionIndex <= 2 {
		t.Error("default injection index must exceed 2")
	}
	if cfg.Halo.TimeStep <= 0 {
		t.Error("time step should be positive")
	}
	if cfg.Halo.GammaMin >= cfg.Halo.GammaMax {
		t.Error("gamma bounds should be ordered")
	}
	if cfg.Cosmology.H0 <= 0 {
		t.Error("H0 should be positive")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("halo:\n  beta_turb: 0.5\n  gamma_np: 64\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Halo.BetaTurb != 0.5 {
		t.Errorf("beta_turb = %g, want 0.5", cfg.Halo.BetaTurb)
	}
	if cfg.Halo.GammaNp != 64 {
		t.Errorf("gamma_np = %d, want 64", cfg.Halo.GammaNp)
	}
	// untouched fields keep their defaults
	if cfg.Halo.EtaE != DefaultEtaE {
		t.Errorf("eta_e = %g, want default %g", cfg.Halo.EtaE, DefaultEtaE)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Halo.GammaNp = 123
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Halo.GammaNp != 123 {
		t.Errorf("round trip lost gamma_np: got %d", got.Halo.GammaNp)
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("fast") == nil {
		t.Fatal("expected fast preset")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if len(ListPresets()) < 2 {
		t.Error("expected at least two presets")
	}
}

func TestLoadHaloList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "halos.yaml")
	body := []byte(`halos:
  - m_obs: 1.2e15
    z_obs: 0.1
    m_main: 8.0e14
    m_sub: 3.0e14
    z_merger: 0.3
  - m_obs: 8.0e14
    z_obs: 0.2
    m_main: 5.0e14
    m_sub: 2.0e14
    z_merger: 0.4
`)
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	halos, err := LoadHaloList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(halos) != 2 {
		t.Fatalf("expected 2 halos, got %d", len(halos))
	}
	if halos[0].MObs != 1.2e15 || halos[1].ZMerger != 0.4 {
		t.Error("halo list fields not parsed")
	}
}

func TestLoadHaloListEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "halos.yaml")
	if err := os.WriteFile(path, []byte("halos: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHaloList(path); err == nil {
		t.Error("expected error for empty halo list")
	}
}
