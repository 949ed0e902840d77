package rhs

import (
	"math"
	"testing"

	"fltrace/internal/chart"
	"fltrace/internal/dynamo"
	"fltrace/internal/field"
)

func TestFieldLineUniformField(t *testing.T) {
	r := &FieldLine{Field: &field.UniformField{Bz: 1.7}}
	dydt := r.Derive(dynamo.State{1, 2, 3}, nil, 0)
	if dydt[0] != 0 || dydt[1] != 0 || dydt[2] != 1.7 {
		t.Errorf("dydt = %v, want (0,0,1.7)", dydt)
	}
}

func TestFullOrbitLorentzForce(t *testing.T) {
	r := &FullOrbit{Field: &field.UniformField{Bz: 2}, Mass: 1, Charge: 1}
	dydt := r.Derive(dynamo.State{1, 0, 0, 0, 3, 0}, nil, 0)
	if dydt[0] != 0 || dydt[1] != 3 || dydt[2] != 0 {
		t.Fatalf("velocity components wrong: %v", dydt)
	}
	// q/m * v x B with v=(0,3,0), B=(0,0,2) -> (6, 0, 0)
	if math.Abs(dydt[3]-6) > 1e-12 || math.Abs(dydt[4]) > 1e-12 || math.Abs(dydt[5]) > 1e-12 {
		t.Errorf("acceleration = (%v,%v,%v), want (6,0,0)", dydt[3], dydt[4], dydt[5])
	}
}

func TestGCVacuumBoozerZeroVparHasNoSpatialDrift(t *testing.T) {
	f := AnalyticBoozerFieldFixture()
	r := &GCVacuumBoozer{Field: f, Mass: 1, Charge: 1, Mu: 0, Axis: chart.Direct}
	dydt := r.Derive(dynamo.State{0.3, 0.4, 0, 0}, nil, 0)
	if dydt[0] != 0 || dydt[1] != 0 || dydt[2] != 0 {
		t.Errorf("spatial derivatives = %v, want zero when vpar=0 and mu=0", dydt[:3])
	}
	if dydt[3] != 0 {
		t.Errorf("dvpar/dt = %v, want 0 when mu=0", dydt[3])
	}
}

func TestGCVacuumBoozerChartsAgreeOnSdotThetadot(t *testing.T) {
	f := AnalyticBoozerFieldFixture()
	s, theta, zeta, vpar := 0.36, 0.8, 0.2, 0.05

	direct := &GCVacuumBoozer{Field: f, Mass: 1, Charge: 1, Mu: 1e-3, Axis: chart.Direct}
	dDirect := direct.Derive(dynamo.State{s, theta, zeta, vpar}, nil, 0)

	y0, y1 := chart.FromCanonical(chart.LinearRegularized, s, theta)
	lin := &GCVacuumBoozer{Field: f, Mass: 1, Charge: 1, Mu: 1e-3, Axis: chart.LinearRegularized}
	dLin := lin.Derive(dynamo.State{y0, y1, zeta, vpar}, nil, 0)

	gotS, gotTheta := chart.ToCanonical(chart.LinearRegularized, y0+1e-6*dLin[0], y1+1e-6*dLin[1])
	wantS, wantTheta := s+1e-6*dDirect[0], theta+1e-6*dDirect[1]
	if math.Abs(gotS-wantS) > 1e-9 || math.Abs(gotTheta-wantTheta) > 1e-9 {
		t.Errorf("chart mismatch: got (%v,%v) want (%v,%v)", gotS, gotTheta, wantS, wantTheta)
	}
	if dDirect[2] != dLin[2] || dDirect[3] != dLin[3] {
		t.Errorf("zeta/vpar derivatives should be chart-independent: %v vs %v", dDirect, dLin)
	}
}

func AnalyticBoozerFieldFixture() *field.AnalyticBoozerField {
	return &field.AnalyticBoozerField{
		Psi0Val: 0.8, B0: 1.2, EpsTheta: 0.1, EpsZeta: 0.03,
		G0: 1.0, DGds: 0.05, I0: 0.02, DIds: 0.01,
		Iota0: 0.45, DIotaDs: -0.08, Khat: 0.2,
	}
}

func TestGCNoKBoozerAndGCBoozerAgreeWhenKZero(t *testing.T) {
	f := &field.AnalyticBoozerField{
		Psi0Val: 0.8, B0: 1.2, EpsTheta: 0.1, EpsZeta: 0.03,
		G0: 1.0, DGds: 0.05, I0: 0.02, DIds: 0.01,
		Iota0: 0.45, DIotaDs: -0.08, Khat: 0,
	}
	noK := &GCNoKBoozer{Field: f, Mass: 1, Charge: 1, Mu: 1e-3, Axis: chart.Direct}
	full := &GCBoozer{Field: f, Mass: 1, Charge: 1, Mu: 1e-3, Axis: chart.Direct}

	state := dynamo.State{0.3, 0.6, 0.1, 0.07}
	a := noK.Derive(state, nil, 0)
	b := full.Derive(state, nil, 0)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			t.Errorf("component %d: noK=%v full=%v differ with K=0", i, a[i], b[i])
		}
	}
}
