package diagnostics

import (
	"testing"

	"fltrace/internal/chart"
	"fltrace/internal/field"
	"fltrace/internal/trace"
)

func TestGuidingCenterEnergyDriftIsSmallForVacuumTrace(t *testing.T) {
	f := &field.AnalyticBoozerField{Psi0Val: 0.9, B0: 1.2, EpsTheta: 0.2, G0: 1, Iota0: 0.4}
	path, _, err := trace.GCBoozer(f, trace.ModeVacuum, 0.3, 0.1, 0, 0.15, 0, trace.Params{
		Mass: 1, Charge: 1, Mu: 0.02,
		Tmax: 10, Dt: 0.02, DtMax: 0.2, AbsTol: 1e-11, RelTol: 1e-11,
		Axis: chart.Direct,
	})
	if err != nil {
		t.Fatalf("GCBoozer: %v", err)
	}

	metric := &GuidingCenterEnergyDrift{Field: f, Mass: 1, Mu: 0.02}
	for _, s := range path {
		metric.Observe(s.Y, nil, s.T)
	}
	if metric.Value() > 1e-6 {
		t.Errorf("energy drift = %v, want < 1e-6 for a static vacuum field", metric.Value())
	}
}

func TestFullOrbitEnergyDriftIsSmallInUniformField(t *testing.T) {
	f := &field.UniformField{Bz: 1.5}
	path, _, err := trace.FullOrbit(f, [3]float64{1, 0, 0}, [3]float64{0, 0.5, 0.1}, trace.Params{
		Mass: 1, Charge: 1,
		Tmax: 5, Dt: 0.01, DtMax: 0.05, AbsTol: 1e-11, RelTol: 1e-11,
	})
	if err != nil {
		t.Fatalf("FullOrbit: %v", err)
	}

	metric := &FullOrbitEnergyDrift{Mass: 1}
	for _, s := range path {
		metric.Observe(s.Y, nil, s.T)
	}
	if metric.Value() > 1e-6 {
		t.Errorf("energy drift = %v, want < 1e-6 in a static field", metric.Value())
	}
}
