package field

import (
	"math"
	"testing"
)

func TestUniformField(t *testing.T) {
	f := &UniformField{Bz: 2.5}
	pts := [][3]float64{{1, 0, 0}, {2, 1.2, 0.3}}
	if err := f.SetPointsCyl(pts); err != nil {
		t.Fatalf("SetPointsCyl: %v", err)
	}
	b := f.BRef()
	if len(b) != 2 {
		t.Fatalf("BRef len = %d, want 2", len(b))
	}
	for i, v := range b {
		if v != ([3]float64{0, 0, 2.5}) {
			t.Errorf("BRef[%d] = %v, want (0,0,2.5)", i, v)
		}
	}
	abs := f.AbsBRef()
	for i, v := range abs {
		if v != 2.5 {
			t.Errorf("AbsBRef[%d] = %v, want 2.5", i, v)
		}
	}
	for _, g := range f.GradAbsBRef() {
		if g != ([3]float64{0, 0, 0}) {
			t.Errorf("GradAbsBRef = %v, want zero", g)
		}
	}
}

func TestAnalyticBoozerFieldDerivativesMatchFiniteDifference(t *testing.T) {
	f := &AnalyticBoozerField{
		Psi0Val: 0.9, B0: 1.3, EpsTheta: 0.15, EpsZeta: 0.05,
		G0: 1.1, DGds: 0.2, I0: 0.05, DIds: 0.01,
		Iota0: 0.4, DIotaDs: -0.1, Khat: 0.3,
	}

	s, theta, zeta := 0.4, 0.7, 1.1
	h := 1e-6

	check := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-5 {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	f.SetPoints([][3]float64{{s, theta, zeta}})
	deriv := f.ModBDerivsRef()[0]

	f.SetPoints([][3]float64{{s + h, theta, zeta}, {s - h, theta, zeta}})
	m := f.ModBRef()
	check("dmodB/ds", deriv[0], (m[0]-m[1])/(2*h))

	f.SetPoints([][3]float64{{s, theta + h, zeta}, {s, theta - h, zeta}})
	m = f.ModBRef()
	check("dmodB/dtheta", deriv[1], (m[0]-m[1])/(2*h))

	f.SetPoints([][3]float64{{s, theta, zeta + h}, {s, theta, zeta - h}})
	m = f.ModBRef()
	check("dmodB/dzeta", deriv[2], (m[0]-m[1])/(2*h))

	f.SetPoints([][3]float64{{s, theta, zeta}})
	kderiv := f.KDerivsRef()[0]

	f.SetPoints([][3]float64{{s, theta + h, zeta}, {s, theta - h, zeta}})
	k := f.KRef()
	check("dK/dtheta", kderiv[0], (k[0]-k[1])/(2*h))

	f.SetPoints([][3]float64{{s, theta, zeta + h}, {s, theta, zeta - h}})
	k = f.KRef()
	check("dK/dzeta", kderiv[1], (k[0]-k[1])/(2*h))
}

func TestAnalyticBoozerFieldVacuumHasZeroK(t *testing.T) {
	f := &AnalyticBoozerField{B0: 1, Iota0: 0.3, G0: 1}
	f.SetPoints([][3]float64{{0.5, 0.3, 0.9}})
	if k := f.KRef()[0]; k != 0 {
		t.Errorf("K = %v, want 0 with Khat unset", k)
	}
	if kd := f.KDerivsRef()[0]; kd != ([2]float64{0, 0}) {
		t.Errorf("KDerivs = %v, want zero", kd)
	}
}
