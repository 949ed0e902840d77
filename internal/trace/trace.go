// Package trace exposes the entry points a caller actually drives: one
// function per tracing mode, each responsible for turning a handful of
// physical parameters into the right RHS variant and a integrate.Solve
// call. Unlike the RHS and integrate packages, this layer knows about
// "vacuum vs. noK vs. full" and chart selection so callers don't have to.
package trace

import (
	"fmt"
	"math"

	"fltrace/internal/chart"
	"fltrace/internal/dynamo"
	"fltrace/internal/field"
	"fltrace/internal/integrate"
	"fltrace/internal/rhs"
	"fltrace/internal/stopcrit"
)

// Mode selects which physics model a Boozer-coordinate guiding-center
// trace uses.
type Mode int

const (
	ModeVacuum Mode = iota
	ModeNoK
	ModeFull
)

func (m Mode) String() string {
	switch m {
	case ModeVacuum:
		return "vacuum"
	case ModeNoK:
		return "noK"
	case ModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// Params bundles the physical and numerical parameters shared by every
// tracing mode. Not every field is relevant to every mode; unused fields
// are ignored.
type Params struct {
	Mass   float64
	Charge float64
	// Mu is the caller-supplied magnetic moment. It is used as given for
	// perturbed guiding-center traces; non-perturbed guiding-center
	// traces instead derive it from the vtotal passed to the entry point
	// (see MuFromPitch), falling back to Mu only when vtotal is zero.
	Mu float64

	Tmax, Dt, DtMax float64
	AbsTol, RelTol  float64

	Phis             []integrate.PhiPlane
	Vpars            []float64
	StoppingCriteria []stopcrit.Criterion
	PhisStop         bool
	VparsStop        bool
	ForgetExactPath  bool

	Axis chart.Axis

	// Perturbation, if non-nil, switches a Boozer guiding-center trace to
	// its perturbed (5-state) variant.
	Perturbation *rhs.Perturbation
}

func (p Params) options() integrate.Options {
	return integrate.Options{
		Tmax: p.Tmax, Dt: p.Dt, DtMax: p.DtMax,
		AbsTol: p.AbsTol, RelTol: p.RelTol,
		Phis: p.Phis, Vpars: p.Vpars,
		StoppingCriteria: p.StoppingCriteria,
		PhisStop:         p.PhisStop,
		VparsStop:        p.VparsStop,
		ForgetExactPath:  p.ForgetExactPath,
	}
}

// cylOf converts a Cartesian point to the (r, phi, z) cylindrical form a
// CartesianField expects from SetPointsCyl.
func cylOf(x, y, z float64) [3]float64 {
	phi := math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return [3]float64{math.Hypot(x, y), phi, z}
}

// cartesianAbsBAndRadius reads |B| at x0 and returns it alongside x0's
// cylindrical radius, for sizing dtmax = r0*pi/(2*vtotal) per a trace's
// initial point. ok is false if the field evaluator rejected the point.
func cartesianAbsBAndRadius(f field.CartesianField, x0 [3]float64) (absB, r0 float64, ok bool) {
	r0 = math.Hypot(x0[0], x0[1])
	if err := f.SetPointsCyl([][3]float64{cylOf(x0[0], x0[1], x0[2])}); err != nil {
		return 0, r0, false
	}
	b := f.AbsBRef()
	if len(b) == 0 {
		return 0, r0, false
	}
	return b[0], r0, true
}

// capDtMax sizes the integrator's step ceiling: the spec's derived value
// unless the caller supplied a smaller one of their own.
func capDtMax(callerDtMax, derivedDtMax float64) float64 {
	if callerDtMax > 0 && callerDtMax < derivedDtMax {
		return callerDtMax
	}
	return derivedDtMax
}

// FieldLine traces a magnetic field line from x0 (Cartesian). Per the field
// line convention, vtotal in the dtmax formula is replaced by |B| at x0.
func FieldLine(f field.CartesianField, x0 [3]float64, p Params) ([]integrate.Sample, []integrate.Hit, error) {
	r := &rhs.FieldLine{Field: f}
	opt := p.options()
	if absB, r0, ok := cartesianAbsBAndRadius(f, x0); ok && absB > 0 {
		opt.DtMax = capDtMax(p.DtMax, r0*math.Pi/(2*absB))
	}
	return integrate.Solve(r, dynamo.State{x0[0], x0[1], x0[2]}, opt)
}

// FullOrbit traces the full Lorentz-force orbit of a charged particle from
// position x0 and velocity v0 (both Cartesian).
func FullOrbit(f field.CartesianField, x0, v0 [3]float64, p Params) ([]integrate.Sample, []integrate.Hit, error) {
	r := &rhs.FullOrbit{Field: f, Mass: p.Mass, Charge: p.Charge}
	opt := p.options()
	vtotal := math.Sqrt(v0[0]*v0[0] + v0[1]*v0[1] + v0[2]*v0[2])
	if _, r0, ok := cartesianAbsBAndRadius(f, x0); ok && vtotal > 0 {
		opt.DtMax = capDtMax(p.DtMax, r0*math.Pi/(2*vtotal))
	}
	y0 := dynamo.State{x0[0], x0[1], x0[2], v0[0], v0[1], v0[2]}
	return integrate.Solve(r, y0, opt)
}

// GCVacuumCartesian traces the guiding-center approximation of a particle
// in vacuum, advancing in Cartesian coordinates. This variant has no noK
// or full-field counterpart: the original library restricts
// Cartesian-coordinate guiding-center tracing to vacuum fields, since a
// finite-beta equilibrium's currents are only available in Boozer form.
//
// vtotal is the particle's total speed; when positive it both sizes dtmax
// from the field at x0 and derives mu from vperp^2 = vtotal^2 - vpar0^2,
// overriding p.Mu. A zero vtotal leaves dtmax and mu exactly as a caller
// supplies them in p.
func GCVacuumCartesian(f field.CartesianField, x0 [3]float64, vpar0, vtotal float64, p Params) ([]integrate.Sample, []integrate.Hit, error) {
	opt := p.options()
	mu := p.Mu
	if absB, r0, ok := cartesianAbsBAndRadius(f, x0); ok && vtotal > 0 {
		opt.DtMax = capDtMax(p.DtMax, r0*math.Pi/(2*vtotal))
		if absB > 0 {
			mu = MuFromPitch(absB, vtotal, vpar0/vtotal)
		}
	}
	r := &rhs.GCVacuumCartesian{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: mu}
	y0 := dynamo.State{x0[0], x0[1], x0[2], vpar0}
	return integrate.Solve(r, y0, opt)
}

// GCBoozer traces the guiding-center approximation in Boozer coordinates,
// dispatching on mode. s0, theta0 are canonical coordinates; they are
// converted to p.Axis's chart representation before integration.
//
// vtotal is the particle's total speed; when positive it sizes dtmax from
// G/|B| at the initial point and, for non-perturbed modes, derives mu from
// vperp^2 = vtotal^2 - vpar0^2 (perturbed traces always take mu from p.Mu,
// per spec). A zero vtotal leaves dtmax and mu exactly as p supplies them.
func GCBoozer(f field.BoozerField, mode Mode, s0, theta0, zeta0, vpar0, vtotal float64, p Params) ([]integrate.Sample, []integrate.Hit, error) {
	y0Chart, y1Chart := chart.FromCanonical(p.Axis, s0, theta0)

	opt := p.options()
	mu := p.Mu
	if err := f.SetPoints([][3]float64{{s0, theta0, zeta0}}); err == nil {
		modBs, Gs := f.ModBRef(), f.GRef()
		if len(modBs) > 0 && len(Gs) > 0 && modBs[0] > 0 && vtotal > 0 {
			modB, G := modBs[0], Gs[0]
			opt.DtMax = capDtMax(p.DtMax, (G/modB)*math.Pi/(2*vtotal))
			if p.Perturbation == nil {
				mu = MuFromPitch(modB, vtotal, vpar0/vtotal)
			}
		}
	}

	if p.Perturbation != nil {
		y0 := dynamo.State{y0Chart, y1Chart, zeta0, vpar0, 0}
		switch mode {
		case ModeVacuum:
			r := &rhs.GCVacuumBoozerPerturbed{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: p.Mu, Axis: p.Axis, Perturbation: *p.Perturbation}
			return integrate.Solve(r, y0, opt)
		case ModeNoK:
			r := &rhs.GCNoKBoozerPerturbed{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: p.Mu, Axis: p.Axis, Perturbation: *p.Perturbation}
			return integrate.Solve(r, y0, opt)
		default:
			return nil, nil, fmt.Errorf("trace: perturbed guiding-center tracing supports vacuum and noK modes only, got %s", mode)
		}
	}

	y0 := dynamo.State{y0Chart, y1Chart, zeta0, vpar0}
	switch mode {
	case ModeVacuum:
		r := &rhs.GCVacuumBoozer{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: mu, Axis: p.Axis}
		return integrate.Solve(r, y0, opt)
	case ModeNoK:
		r := &rhs.GCNoKBoozer{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: mu, Axis: p.Axis}
		return integrate.Solve(r, y0, opt)
	case ModeFull:
		r := &rhs.GCBoozer{Field: f, Mass: p.Mass, Charge: p.Charge, Mu: mu, Axis: p.Axis}
		return integrate.Solve(r, y0, opt)
	default:
		return nil, nil, fmt.Errorf("trace: unsupported guiding-center mode %s", mode)
	}
}

// MuFromPitch derives the magnetic moment mu = v_perp^2 / (2*|B|) for a
// particle of total speed v at pitch angle (v_par/v) = pitch, evaluated in
// the field at the given point.
func MuFromPitch(absB, v, pitch float64) float64 {
	vpar := pitch * v
	vperp2 := v*v - vpar*vpar
	return vperp2 / (2 * absB)
}
