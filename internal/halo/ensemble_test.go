package halo

import (
	"context"
	"errors"
	"testing"

	"github.com/ChenxiSSS/FG21SimPlus/internal/cosmo"
)

func TestEnsembleRun(t *testing.T) {
	halos := []Params{
		{MObs: 1.2e15, ZObs: 0.1, MMain: 8e14, MSub: 3e14, ZMerger: 0.3},
		{MObs: 8e14, ZObs: 0.2, MMain: 5e14, MSub: 2e14, ZMerger: 0.4},
		{MObs: 2e15, ZObs: 0.05, MMain: 1.2e15, MSub: 6e14, ZMerger: 0.25},
	}

	e := NewEnsemble(testConfig(), cosmo.Default(), 2)
	results, err := e.Run(context.Background(), halos)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(halos) {
		t.Fatalf("expected %d results, got %d", len(halos), len(results))
	}

	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("halo %d failed: %v", i, r.Err)
		}
		if r.Params != halos[i] {
			t.Errorf("result %d not aligned with input", i)
		}
		if len(r.Spectrum) == 0 || len(r.Gamma) != len(r.Spectrum) {
			t.Errorf("result %d: malformed spectrum", i)
		}
		// the worker's instance is handed back so callers can persist
		// derived quantities without rebuilding the halo
		if r.Halo == nil {
			t.Fatalf("result %d: missing halo instance", i)
		}
		if r.Halo.Params() != halos[i] {
			t.Errorf("result %d: halo built from wrong params", i)
		}
	}
}

func TestEnsembleRecordsPerHaloFailure(t *testing.T) {
	halos := []Params{
		{MObs: 1.2e15, ZObs: 0.1, MMain: 8e14, MSub: 3e14, ZMerger: 0.3},
		{MObs: 1.2e15, ZObs: 0.1, MMain: 8e14, MSub: -1, ZMerger: 0.3}, // invalid
	}

	e := NewEnsemble(testConfig(), cosmo.Default(), 0)
	results, err := e.Run(context.Background(), halos)
	if err != nil {
		t.Fatal(err)
	}

	if results[0].Err != nil {
		t.Errorf("valid halo failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrBadParams) {
		t.Errorf("expected ErrBadParams for invalid halo, got %v", results[1].Err)
	}
	if results[1].Spectrum != nil {
		t.Error("failed halo should carry no spectrum")
	}
	if results[1].Halo != nil {
		t.Error("failed construction should carry no halo instance")
	}
}

func TestEnsembleCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEnsemble(testConfig(), cosmo.Default(), 1)
	_, err := e.Run(ctx, []Params{
		{MObs: 1.2e15, ZObs: 0.1, MMain: 8e14, MSub: 3e14, ZMerger: 0.3},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
