// Package halo models the giant radio halo generated by a cluster
// merger: it translates the merger parameters into the injection,
// diffusion and advection coefficients of the Fokker-Planck transport
// equation and evolves the relativistic electron spectrum from the
// merger epoch to the observation epoch.
//
// The physical model follows the statistical magneto-turbulent picture
// of Cassano & Brunetti (2005): electrons are injected at a constant
// rate with a power-law spectrum, reaccelerated by merger-driven
// turbulence during the sub-cluster crossing, and cooled by
// synchrotron/inverse-Compton and Coulomb/ionization losses.
package halo

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ChenxiSSS/FG21SimPlus/internal/cluster"
	"github.com/ChenxiSSS/FG21SimPlus/internal/cosmo"
	"github.com/ChenxiSSS/FG21SimPlus/internal/fokkerplanck"
	"github.com/ChenxiSSS/FG21SimPlus/internal/units"
)

const (
	// tauAccRef is the reference turbulent acceleration timescale from
	// transit-time damping resonance (Brunetti & Lazarian 2011). [Gyr]
	tauAccRef = 0.1

	// tauAccMax effectively disables acceleration outside the merger
	// crossing window while keeping the diffusion coefficient finite;
	// a zero diffusion coefficient makes the equation unstable. [Gyr]
	tauAccMax = 100.0
)

// Params identifies one cluster merger.
type Params struct {
	// MObs is the cluster virial mass at the observation time. [Msun]
	MObs float64 `yaml:"m_obs"`
	// ZObs is the observation redshift.
	ZObs float64 `yaml:"z_obs"`
	// MMain and MSub are the main and sub cluster masses before the
	// merger. [Msun]
	MMain float64 `yaml:"m_main"`
	MSub  float64 `yaml:"m_sub"`
	// ZMerger is the redshift at which the merger begins.
	ZMerger float64 `yaml:"z_merger"`
}

// Config carries the numeric options of the halo model.
type Config struct {
	// BetaTurb is the turbulence acceleration efficiency.
	BetaTurb float64 `yaml:"beta_turb"`
	// EtaE is the fraction of the cluster thermal energy injected into
	// relativistic electrons over the cluster age.
	EtaE float64 `yaml:"eta_e"`
	// GammaMin, GammaMax bound the Lorentz-factor grid.
	GammaMin float64 `yaml:"gamma_min"`
	GammaMax float64 `yaml:"gamma_max"`
	// GammaNp is the number of active grid points; BufferNp the number
	// of guard points on each side.
	GammaNp  int `yaml:"gamma_np"`
	BufferNp int `yaml:"buffer_np"`
	// TimeStep is the solver step size. [Gyr]
	TimeStep float64 `yaml:"time_step"`
	// InjectionIndex is the power-law index s of the injected
	// electron spectrum; must exceed 2.
	InjectionIndex float64 `yaml:"injection_index"`
}

// RadioHalo evolves the relativistic electron spectrum of one merger.
// All derived quantities are fixed at construction; the coefficient
// methods are pure functions of (gamma, t) so independent halos may be
// computed concurrently, each with its own RadioHalo.
type RadioHalo struct {
	params Params
	cfg    Config
	cosmo  *cosmo.Cosmology

	solver *fokkerplanck.Solver

	ageObs     float64 // cosmic age at z_obs [Gyr]
	ageMerger  float64 // cosmic age at z_merger [Gyr]
	timeCross  float64 // merger crossing time [Gyr]
	radiusHalo float64 // [kpc]

	// Ke, the constant injection rate from the energy-budget closure.
	// [cm^-3 Gyr^-1]
	injectionRate float64
}

// New validates the merger parameters and model options, derives the
// injection-rate constant and builds the transport solver.
func New(p Params, cfg Config, c *cosmo.Cosmology) (*RadioHalo, error) {
	if p.MObs <= 0 || p.MMain <= 0 || p.MSub <= 0 {
		return nil, fmt.Errorf("%w: masses must be positive", ErrBadParams)
	}
	if p.ZObs < 0 || p.ZMerger <= p.ZObs {
		return nil, fmt.Errorf("%w: need z_merger > z_obs >= 0, got %g <= %g",
			ErrBadParams, p.ZMerger, p.ZObs)
	}
	if cfg.InjectionIndex <= 2 {
		return nil, fmt.Errorf("%w: got s=%g", ErrBadInjectionIndex,
			cfg.InjectionIndex)
	}
	if cfg.BetaTurb <= 0 || cfg.EtaE <= 0 {
		return nil, fmt.Errorf("%w: beta_turb=%g eta_e=%g must be positive",
			ErrBadParams, cfg.BetaTurb, cfg.EtaE)
	}

	h := &RadioHalo{
		params:    p,
		cfg:       cfg,
		cosmo:     c,
		ageObs:    c.Age(p.ZObs),
		ageMerger: c.Age(p.ZMerger),
		timeCross: cluster.TimeCrossing(c, p.MMain, p.MSub, p.ZMerger),
	}
	h.radiusHalo = cluster.RadiusHalo(c, p.MMain+p.MSub, p.ZMerger)

	rate, err := h.deriveInjectionRate()
	if err != nil {
		return nil, err
	}
	h.injectionRate = rate

	solver, err := fokkerplanck.NewSolver(
		cfg.GammaMin, cfg.GammaMax, cfg.GammaNp, cfg.BufferNp, cfg.TimeStep,
		h.Advection, h.Diffusion,
		func(gamma, t float64) float64 { return h.InjectionRate(gamma) })
	if err != nil {
		return nil, err
	}
	h.solver = solver
	return h, nil
}

// deriveInjectionRate solves the energy-budget closure for the
// injection constant Ke: the energy injected into relativistic
// electrons over the cluster age, confined to the halo volume, equals
// a fraction eta_e of the cluster thermal energy over the virial
// volume (Cassano & Brunetti 2005, Eqs. 31-33):
//
//	Ke = (s-2) * eta_e * e_th * gamma_min^(s-2) * (R_vir/R_halo)^3
//	     / (me*c^2 * t_age)
func (h *RadioHalo) deriveInjectionRate() (float64, error) {
	s := h.cfg.InjectionIndex
	rVir := cluster.RadiusVirial(h.cosmo, h.params.MObs, h.params.ZObs)
	if rVir <= 0 || h.radiusHalo <= 0 {
		return 0, fmt.Errorf("%w: R_vir=%g R_halo=%g kpc", ErrBadGeometry,
			rVir, h.radiusHalo)
	}
	eTh := cluster.DensityEnergyThermal(h.cosmo, h.params.MObs, h.params.ZObs)
	ratio := rVir / h.radiusHalo
	ke := (s - 2) * h.cfg.EtaE * eTh * math.Pow(h.cfg.GammaMin, s-2) *
		ratio * ratio * ratio / (units.Mec2 * h.ageObs)
	return ke, nil
}

// Gamma returns the Lorentz factors of the active grid points.
func (h *RadioHalo) Gamma() []float64 { return h.solver.Grid().Active() }

// Params returns the merger parameters the halo was built from.
func (h *RadioHalo) Params() Params { return h.params }

// Configuration returns the solver configuration in effect.
func (h *RadioHalo) Configuration() Config { return h.cfg }

// AgeObs is the cosmic age at the observation redshift. [Gyr]
func (h *RadioHalo) AgeObs() float64 { return h.ageObs }

// AgeMerger is the cosmic age at the merger redshift. [Gyr]
func (h *RadioHalo) AgeMerger() float64 { return h.ageMerger }

// TimeCrossing is the sub-cluster crossing time, the window during
// which turbulent acceleration operates. [Gyr]
func (h *RadioHalo) TimeCrossing() float64 { return h.timeCross }

// RadiusHalo is the radius of the simulated halo. [kpc]
func (h *RadioHalo) RadiusHalo() float64 { return h.radiusHalo }

// MagneticField is the field strength at the observed cluster mass. [uG]
func (h *RadioHalo) MagneticField() float64 {
	return cluster.MagneticField(h.params.MObs)
}

// SetObserver forwards a per-step observer to the underlying solver.
func (h *RadioHalo) SetObserver(obs fokkerplanck.StepObserver) {
	h.solver.SetObserver(obs)
}

// Mass is the main cluster mass at cosmic time t, growing linearly
// from (age_merger, M_main) to (age_obs, M_obs). Extrapolation outside
// that window is permitted but not validated. [Msun]
func (h *RadioHalo) Mass(t float64) float64 {
	rate := (h.params.MObs - h.params.MMain) / (h.ageObs - h.ageMerger)
	return h.params.MMain + rate*(t-h.ageMerger)
}

// TauAcceleration is the systematic turbulent acceleration timescale
// at cosmic time t. It switches discontinuously at the end of the
// merger crossing window; no smoothed transition is intended. [Gyr]
func (h *RadioHalo) TauAcceleration(t float64) float64 {
	if t > h.ageMerger+h.timeCross {
		return tauAccMax
	}
	return tauAccRef / h.cfg.BetaTurb
}

// InjectionRate is the electron injection term Qe(gamma) = Ke *
// gamma^-s. The rate is constant in time. [cm^-3 Gyr^-1]
func (h *RadioHalo) InjectionRate(gamma float64) float64 {
	return h.injectionRate * math.Pow(gamma, -h.cfg.InjectionIndex)
}

// Diffusion is the momentum diffusion coefficient from turbulent
// reacceleration, D = gamma^2 / (4 tau_acc) (Donnert 2013, Eq. 15).
// [Gyr^-1]
func (h *RadioHalo) Diffusion(gamma, t float64) float64 {
	return gamma * gamma / (4 * h.TauAcceleration(t))
}

// Advection is the generalized cooling function: the sum of the
// ionization and radiative loss rates minus the systematic drift
// equivalent of the diffusion term (the discretization couples
// advection and diffusion through a single transport operator).
// [Gyr^-1]
func (h *RadioHalo) Advection(gamma, t float64) float64 {
	return math.Abs(h.lossIonization(gamma, t)) +
		math.Abs(h.lossRadiative(gamma, t)) -
		2*h.Diffusion(gamma, t)/gamma
}

// lossIonization is the energy loss rate through ionization and
// Coulomb collisions (Sarazin 1999, Eq. 9). [Gyr^-1]
func (h *RadioHalo) lossIonization(gamma, t float64) float64 {
	z := h.cosmo.Redshift(t)
	mass := h.Mass(t)
	nth := cluster.DensityNumberThermal(h.cosmo, mass, z)
	coef := -1.20e-12 * units.Gyr2s
	return coef * nth * (1 + math.Log(gamma/nth)/75)
}

// lossRadiative is the energy loss rate through synchrotron emission
// and inverse-Compton scattering off CMB photons (Sarazin 1999,
// Eqs. 6-7). [Gyr^-1]
func (h *RadioHalo) lossRadiative(gamma, t float64) float64 {
	z := h.cosmo.Redshift(t)
	b := cluster.MagneticField(h.Mass(t))
	zp1 := 1 + z
	coef := -1.37e-20 * units.Gyr2s
	return coef * gamma * gamma * ((b/3.25)*(b/3.25) + zp1*zp1*zp1*zp1)
}

// InitialSpectrum is the default starting spectrum: the constantly
// injected electrons accumulated from the beginning of the universe
// until cosmic time t. [cm^-3]
func (h *RadioHalo) InitialSpectrum(t float64) []float64 {
	gamma := h.Gamma()
	n0 := make([]float64, len(gamma))
	for i, g := range gamma {
		n0[i] = h.InjectionRate(g) * t
	}
	return n0
}

// ComputeSpectrum evolves the electron spectrum from the merger epoch
// to the observation epoch, starting from the accumulated injection.
// [cm^-3]
func (h *RadioHalo) ComputeSpectrum() ([]float64, error) {
	return h.ComputeSpectrumBetween(h.params.ZMerger, h.params.ZObs, nil)
}

// ComputeSpectrumBetween evolves the spectrum from zBegin to zEnd.
// n0 may be nil, meaning the injection accumulated until zBegin.
func (h *RadioHalo) ComputeSpectrumBetween(zBegin, zEnd float64, n0 []float64) ([]float64, error) {
	tstart := h.cosmo.Age(zBegin)
	tstop := h.cosmo.Age(zEnd)
	if n0 == nil {
		n0 = h.InitialSpectrum(tstart)
	}

	logrus.WithFields(logrus.Fields{
		"m_obs":    h.params.MObs,
		"z_merger": zBegin,
		"z_obs":    zEnd,
		"tstart":   fmt.Sprintf("%.3f", tstart),
		"tstop":    fmt.Sprintf("%.3f", tstop),
	}).Debug("solving electron spectrum evolution")

	spec, err := h.solver.Solve(n0, tstart, tstop)
	if err != nil {
		return nil, fmt.Errorf("halo (M_obs=%.3g, z_obs=%.3g): %w",
			h.params.MObs, h.params.ZObs, err)
	}
	return spec, nil
}
