// Package units holds commonly used CGS constants and unit conversion
// factors. Conversion factors are precomputed and stored as plain
// constants so hot loops never pay for a units library.
package units

// Physical constants in the CGS unit system.
const (
	// C is the speed of light. [cm/s]
	C = 2.99792458e10

	// G is the gravitational constant. [cm^3 g^-1 s^-2]
	G = 6.67430e-8

	// AMU is the atomic mass unit. [g]
	AMU = 1.66053906660e-24

	// MElectron is the electron mass. [g]
	MElectron = 9.1093837015e-28

	// Mec2 is the electron rest-mass energy. [erg]
	Mec2 = MElectron * C * C

	// Mu is the mean molecular weight of the intracluster medium.
	// Ettori et al. 2013, SSRv, 177, 119, Eq.(6)
	Mu = 0.6

	// MuElectron is the mean molecular weight per free electron.
	MuElectron = 1.155
)

// Unit conversions.
const (
	// Mass
	Msun2g = 1.98892e33
	G2Msun = 1.0 / Msun2g

	// Time
	Gyr2s = 3.15576e16
	S2Gyr = 1.0 / Gyr2s

	// Length
	Kpc2cm = 3.0856775814913673e21
	Cm2kpc = 1.0 / Kpc2cm
	Mpc2cm = 1e3 * Kpc2cm
	Km2cm  = 1e5

	// Energy
	KeV2erg = 1.602176634e-9
	Erg2keV = 1.0 / KeV2erg
)
