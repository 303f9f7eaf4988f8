// Package cluster derives the physical properties of a merging galaxy
// cluster from its mass and redshift: virial and halo radii, magnetic
// field strength, thermal gas density and energy, and the merger
// crossing time. These feed the transport coefficients of the radio
// halo model.
package cluster

import (
	"math"

	"github.com/ChenxiSSS/FG21SimPlus/internal/cosmo"
	"github.com/ChenxiSSS/FG21SimPlus/internal/units"
)

const (
	// OverdensityVirial defines the virial radius as enclosing a mean
	// density of this multiple of the critical density.
	OverdensityVirial = 200.0

	// FracGasMass is the hot gas mass fraction of the cluster.
	FracGasMass = 0.1

	// FracRadiusHalo scales the radio halo radius from the virial
	// radius of the merged system.
	FracRadiusHalo = 0.5

	// Magnetic field scaling B = BMean * (M / MMean)^BIndex, following
	// the mass scaling of Cassano et al. 2012.
	BMean  = 1.9     // [uG]
	MMean  = 1.6e15  // [Msun]
	BIndex = 0.6
)

// RadiusVirial is the virial radius of a cluster of the given mass
// [Msun] at redshift z. [kpc]
func RadiusVirial(c *cosmo.Cosmology, mass, z float64) float64 {
	rho := OverdensityVirial * c.DensityCritical(z) // [g/cm^3]
	r := math.Cbrt(3.0 * mass * units.Msun2g / (4.0 * math.Pi * rho))
	return r * units.Cm2kpc
}

// RadiusHalo is the radius of the radio halo hosted by a cluster of
// the given (merged) mass [Msun] at redshift z. [kpc]
func RadiusHalo(c *cosmo.Cosmology, mass, z float64) float64 {
	return FracRadiusHalo * RadiusVirial(c, mass, z)
}

// MagneticField is the mean magnetic field strength of a cluster of
// the given mass [Msun]. [uG]
func MagneticField(mass float64) float64 {
	return BMean * math.Pow(mass/MMean, BIndex)
}

// KTVirial is the virial temperature of the cluster gas. [keV]
func KTVirial(c *cosmo.Cosmology, mass, z float64) float64 {
	rvir := RadiusVirial(c, mass, z) * units.Kpc2cm // [cm]
	kT := units.Mu * units.AMU * units.G * mass * units.Msun2g / (2.0 * rvir)
	return kT * units.Erg2keV
}

// DensityNumberThermal is the number density of thermal electrons in
// the intracluster medium, assuming the gas uniformly fills the virial
// volume. [cm^-3]
func DensityNumberThermal(c *cosmo.Cosmology, mass, z float64) float64 {
	rvir := RadiusVirial(c, mass, z) * units.Kpc2cm // [cm]
	volume := (4.0 * math.Pi / 3.0) * rvir * rvir * rvir
	mGas := FracGasMass * mass * units.Msun2g
	return mGas / (units.MuElectron * units.AMU * volume)
}

// DensityEnergyThermal is the thermal energy density of the
// intracluster medium. [erg/cm^3]
func DensityEnergyThermal(c *cosmo.Cosmology, mass, z float64) float64 {
	ne := DensityNumberThermal(c, mass, z)
	// total particle density from the electron density
	nth := ne * units.MuElectron / units.Mu
	kT := KTVirial(c, mass, z) * units.KeV2erg
	return 1.5 * nth * kT
}

// TimeCrossing is the time for the sub-cluster to cross the main
// cluster during a merger at redshift z, approximating the merging
// time during which turbulent acceleration operates. [Gyr]
func TimeCrossing(c *cosmo.Cosmology, mMain, mSub, z float64) float64 {
	rMain := RadiusVirial(c, mMain, z) * units.Kpc2cm // [cm]
	// free-fall impact velocity at the virial radius
	v := math.Sqrt(2.0 * units.G * (mMain + mSub) * units.Msun2g / rMain)
	return 2.0 * rMain / v * units.S2Gyr
}
