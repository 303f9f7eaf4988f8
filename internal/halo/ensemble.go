package halo

import (
	"context"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ChenxiSSS/FG21SimPlus/internal/cosmo"
)

// Result is the outcome of one halo computation within an ensemble.
// Err is set when that halo failed; the remaining halos are computed
// regardless, and the caller decides whether to abort or skip.
type Result struct {
	Params   Params
	Gamma    []float64
	Spectrum []float64
	Err      error

	// Halo is the instance the worker built, with all derived
	// quantities already computed; nil when construction failed.
	Halo *RadioHalo
}

// Ensemble computes many independent halos concurrently. Each worker
// owns its RadioHalo and solver instance; no state is shared.
type Ensemble struct {
	cfg     Config
	cosmo   *cosmo.Cosmology
	workers int
}

// NewEnsemble returns an ensemble runner with at most workers
// concurrent computations; workers <= 0 means GOMAXPROCS.
func NewEnsemble(cfg Config, c *cosmo.Cosmology, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{cfg: cfg, cosmo: c, workers: workers}
}

// Run computes the electron spectrum of every halo. The returned slice
// is aligned with the input; per-halo failures are recorded in the
// Result. Run itself only fails when the context is canceled.
func (e *Ensemble) Run(ctx context.Context, halos []Params) ([]*Result, error) {
	results := make([]*Result, len(halos))
	sem := make(chan struct{}, e.workers)

	var wg sync.WaitGroup
	for i, p := range halos {
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		default:
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, p Params) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = e.runOne(p)
		}(i, p)
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return results, ctx.Err()
	default:
	}
	return results, nil
}

func (e *Ensemble) runOne(p Params) *Result {
	res := &Result{Params: p}

	h, err := New(p, e.cfg, e.cosmo)
	if err != nil {
		res.Err = err
		return res
	}
	res.Halo = h

	spec, err := h.ComputeSpectrum()
	if err != nil {
		logrus.WithError(err).WithField("m_obs", p.MObs).
			Warn("halo computation failed")
		res.Err = err
		return res
	}

	res.Gamma = append([]float64(nil), h.Gamma()...)
	res.Spectrum = spec
	return res
}
