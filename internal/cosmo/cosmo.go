// Package cosmo provides the flat ΛCDM cosmology helpers needed by the
// cluster merger model: cosmic age at a redshift, its inverse, and the
// critical density of the universe.
package cosmo

import (
	"math"

	"github.com/ChenxiSSS/FG21SimPlus/internal/units"
)

// Cosmology is a flat ΛCDM cosmology (Omega_m + Omega_Lambda = 1).
// The zero value is not usable; construct with New.
type Cosmology struct {
	// H0 is the Hubble constant. [km/s/Mpc]
	H0 float64
	// OmegaM is the matter density parameter at z=0.
	OmegaM float64
}

// New returns a flat ΛCDM cosmology with the given Hubble constant
// [km/s/Mpc] and matter density parameter.
func New(h0, omegaM float64) *Cosmology {
	return &Cosmology{H0: h0, OmegaM: omegaM}
}

// Default returns the cosmology adopted throughout the simulations
// (H0 = 71 km/s/Mpc, Omega_m = 0.27).
func Default() *Cosmology {
	return New(71.0, 0.27)
}

// OmegaLambda is the dark energy density parameter (flatness).
func (c *Cosmology) OmegaLambda() float64 {
	return 1.0 - c.OmegaM
}

// E is the dimensionless Hubble parameter E(z) = H(z)/H0.
func (c *Cosmology) E(z float64) float64 {
	zp1 := 1.0 + z
	return math.Sqrt(c.OmegaM*zp1*zp1*zp1 + c.OmegaLambda())
}

// HubbleTime is 1/H0. [Gyr]
func (c *Cosmology) HubbleTime() float64 {
	// 1/H0 [s] = Mpc2cm / (H0 * 1e5)
	return units.Mpc2cm / (c.H0 * units.Km2cm) * units.S2Gyr
}

// Age is the cosmic age at redshift z, from the closed form valid for
// a flat matter+Λ universe. [Gyr]
func (c *Cosmology) Age(z float64) float64 {
	oL := c.OmegaLambda()
	x := math.Sqrt(oL/c.OmegaM) * math.Pow(1.0+z, -1.5)
	return (2.0 / 3.0) * c.HubbleTime() / math.Sqrt(oL) * math.Asinh(x)
}

// Redshift inverts Age: the redshift at which the universe has the
// given age [Gyr]. The age must be positive.
func (c *Cosmology) Redshift(t float64) float64 {
	oL := c.OmegaLambda()
	a := (2.0 / 3.0) * c.HubbleTime() / math.Sqrt(oL)
	s := math.Sinh(t / a)
	return math.Pow(oL/c.OmegaM, 1.0/3.0)*math.Pow(s, -2.0/3.0) - 1.0
}

// H returns the Hubble parameter at redshift z. [1/s]
func (c *Cosmology) H(z float64) float64 {
	return c.H0 * units.Km2cm / units.Mpc2cm * c.E(z)
}

// DensityCritical is the critical density of the universe at
// redshift z. [g/cm^3]
func (c *Cosmology) DensityCritical(z float64) float64 {
	h := c.H(z)
	return 3.0 * h * h / (8.0 * math.Pi * units.G)
}
