package cosmo

import (
	"math"
	"testing"
)

func TestAgeAtZero(t *testing.T) {
	c := Default()
	age := c.Age(0)
	// ~13.6 Gyr for H0=71, Om=0.27
	if age < 13.0 || age > 14.2 {
		t.Errorf("age at z=0 out of range: got %.3f Gyr", age)
	}
}

func TestAgeDecreasesWithRedshift(t *testing.T) {
	c := Default()
	prev := c.Age(0)
	for _, z := range []float64{0.1, 0.5, 1.0, 2.0, 5.0} {
		age := c.Age(z)
		if age >= prev {
			t.Errorf("age not decreasing at z=%.1f: %.3f >= %.3f", z, age, prev)
		}
		prev = age
	}
}

func TestRedshiftInvertsAge(t *testing.T) {
	c := Default()
	for _, z := range []float64{0.0, 0.1, 0.3, 1.0, 3.0} {
		got := c.Redshift(c.Age(z))
		if math.Abs(got-z) > 1e-10 {
			t.Errorf("round trip failed at z=%.2f: got %.12f", z, got)
		}
	}
}

func TestDensityCritical(t *testing.T) {
	c := Default()
	rho0 := c.DensityCritical(0)
	// ~9.5e-30 g/cm^3 for H0=71
	if rho0 < 8e-30 || rho0 > 1.1e-29 {
		t.Errorf("critical density at z=0 out of range: got %.3e", rho0)
	}
	if c.DensityCritical(1) <= rho0 {
		t.Error("critical density should increase with redshift")
	}
}

func TestE(t *testing.T) {
	c := Default()
	if math.Abs(c.E(0)-1.0) > 1e-12 {
		t.Errorf("E(0) = %.6f, want 1", c.E(0))
	}
	if c.E(1) <= 1 {
		t.Error("E(z) should exceed 1 at z>0")
	}
}
