// Package rhs implements the right-hand sides consumed by the adaptive
// integrator: field-line, full-orbit and guiding-center variants in both
// Cartesian and Boozer flux coordinates. Each type implements
// dynamo.System so the same stepper drives all of them; tracing has no
// control input, so ControlDim is always zero and u is ignored.
package rhs

import (
	"math"

	"fltrace/internal/chart"
	"fltrace/internal/dynamo"
	"fltrace/internal/field"
)

// AxisChart reports the coordinate chart an RHS advances its first two
// state components in, for variants defined over Boozer coordinates. RHS
// variants that advance Cartesian coordinates ignore this.
type AxisChart interface {
	Chart() chart.Axis
}

func cylFromXYZ(x, y, z float64) [3]float64 {
	phi := math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return [3]float64{math.Hypot(x, y), phi, z}
}

// FieldLine advances (x, y, z) along the field direction: dr/dt = B(r).
type FieldLine struct {
	Field field.CartesianField
}

func (r *FieldLine) StateDim() int   { return 3 }
func (r *FieldLine) ControlDim() int { return 0 }

func (r *FieldLine) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	p := cylFromXYZ(x[0], x[1], x[2])
	if err := r.Field.SetPointsCyl([][3]float64{p}); err != nil {
		return dynamo.State{math.NaN(), math.NaN(), math.NaN()}
	}
	b := r.Field.BRef()[0]
	return dynamo.State{b[0], b[1], b[2]}
}

// FullOrbit advances (x, y, z, vx, vy, vz) under the Lorentz force with no
// electric field: m*dv/dt = q*v x B.
type FullOrbit struct {
	Field  field.CartesianField
	Mass   float64
	Charge float64
}

func (r *FullOrbit) StateDim() int   { return 6 }
func (r *FullOrbit) ControlDim() int { return 0 }

func (r *FullOrbit) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	px, py, pz := x[0], x[1], x[2]
	vx, vy, vz := x[3], x[4], x[5]
	p := cylFromXYZ(px, py, pz)
	if err := r.Field.SetPointsCyl([][3]float64{p}); err != nil {
		return make(dynamo.State, 6)
	}
	b := r.Field.BRef()[0]
	qoverm := r.Charge / r.Mass
	return dynamo.State{
		vx, vy, vz,
		qoverm * (vy*b[2] - vz*b[1]),
		qoverm * (vz*b[0] - vx*b[2]),
		qoverm * (vx*b[1] - vy*b[0]),
	}
}

// GCVacuumCartesian advances (x, y, z, vpar) for the guiding-center
// approximation of a particle in vacuum, in Cartesian coordinates.
type GCVacuumCartesian struct {
	Field  field.CartesianField
	Mass   float64
	Charge float64
	Mu     float64
}

func (r *GCVacuumCartesian) StateDim() int   { return 4 }
func (r *GCVacuumCartesian) ControlDim() int { return 0 }

func (r *GCVacuumCartesian) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	px, py, pz, vpar := x[0], x[1], x[2], x[3]
	p := cylFromXYZ(px, py, pz)
	if err := r.Field.SetPointsCyl([][3]float64{p}); err != nil {
		return make(dynamo.State, 4)
	}
	b := r.Field.BRef()[0]
	gradAbsB := r.Field.GradAbsBRef()[0]
	absB := r.Field.AbsBRef()[0]

	bCrossGrad := [3]float64{
		b[1]*gradAbsB[2] - b[2]*gradAbsB[1],
		b[2]*gradAbsB[0] - b[0]*gradAbsB[2],
		b[0]*gradAbsB[1] - b[1]*gradAbsB[0],
	}
	vperp2 := 2 * r.Mu * absB
	fak1 := vpar / absB
	fak2 := (r.Mass / (r.Charge * absB * absB * absB)) * (0.5*vperp2 + vpar*vpar)

	bDotGrad := b[0]*gradAbsB[0] + b[1]*gradAbsB[1] + b[2]*gradAbsB[2]
	return dynamo.State{
		fak1*b[0] + fak2*bCrossGrad[0],
		fak1*b[1] + fak2*bCrossGrad[1],
		fak1*b[2] + fak2*bCrossGrad[2],
		-r.Mu * bDotGrad / absB,
	}
}

// boozerPoint converts the leading two state components to (s, theta)
// under the given chart and returns the canonical Boozer evaluation point.
func boozerPoint(y0, y1, zeta float64, a chart.Axis) (s, theta float64, pt [3]float64) {
	s, theta = chart.ToCanonical(a, y0, y1)
	return s, theta, [3]float64{s, theta, zeta}
}

// packChartDerivs writes dy0/dt, dy1/dt into dydt[0:2] given sdot, thetadot
// expressed in canonical coordinates.
func packChartDerivs(dydt dynamo.State, a chart.Axis, s, theta, sdot, thetadot float64) {
	dydt[0], dydt[1] = chart.Jacobian(a, s, theta, sdot, thetadot)
}

// GCVacuumBoozer advances (y0, y1, zeta, vpar) for the guiding-center
// approximation of a particle in vacuum, in Boozer flux coordinates. y0/y1
// carry (s, theta) expressed under Axis.
type GCVacuumBoozer struct {
	Field  field.BoozerField
	Mass   float64
	Charge float64
	Mu     float64
	Axis   chart.Axis
}

func (r *GCVacuumBoozer) StateDim() int    { return 4 }
func (r *GCVacuumBoozer) ControlDim() int  { return 0 }
func (r *GCVacuumBoozer) Chart() chart.Axis { return r.Axis }

func (r *GCVacuumBoozer) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vpar := x[3]
	s, theta, pt := boozerPoint(x[0], x[1], x[2], r.Axis)
	if err := r.Field.SetPoints([][3]float64{pt}); err != nil {
		return make(dynamo.State, 4)
	}
	psi0 := r.Field.Psi0()
	modB := r.Field.ModBRef()[0]
	G := r.Field.GRef()[0]
	iota := r.Field.IotaRef()[0]
	d := r.Field.ModBDerivsRef()[0]
	dmodBds, dmodBdtheta, dmodBdzeta := d[0], d[1], d[2]

	fak1 := r.Mass*vpar*vpar/modB + r.Mass*r.Mu
	sdot := -dmodBdtheta * fak1 / (r.Charge * psi0)
	tdot := dmodBds*fak1/(r.Charge*psi0) + iota*vpar*modB/G

	dydt := make(dynamo.State, 4)
	packChartDerivs(dydt, r.Axis, s, theta, sdot, tdot)
	dydt[2] = vpar * modB / G
	dydt[3] = -(iota*dmodBdtheta + dmodBdzeta) * r.Mu * modB / G
	return dydt
}

// GCNoKBoozer advances (y0, y1, zeta, vpar) for the guiding-center
// approximation with nonzero I but K taken to be zero.
type GCNoKBoozer struct {
	Field  field.BoozerField
	Mass   float64
	Charge float64
	Mu     float64
	Axis   chart.Axis
}

func (r *GCNoKBoozer) StateDim() int    { return 4 }
func (r *GCNoKBoozer) ControlDim() int  { return 0 }
func (r *GCNoKBoozer) Chart() chart.Axis { return r.Axis }

func (r *GCNoKBoozer) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vpar := x[3]
	s, theta, pt := boozerPoint(x[0], x[1], x[2], r.Axis)
	if err := r.Field.SetPoints([][3]float64{pt}); err != nil {
		return make(dynamo.State, 4)
	}
	psi0 := r.Field.Psi0()
	modB := r.Field.ModBRef()[0]
	G := r.Field.GRef()[0]
	I := r.Field.IRef()[0]
	dGdpsi := r.Field.DGdsRef()[0] / psi0
	dIdpsi := r.Field.DIdsRef()[0] / psi0
	iota := r.Field.IotaRef()[0]
	d := r.Field.ModBDerivsRef()[0]
	dmodBdpsi, dmodBdtheta, dmodBdzeta := d[0]/psi0, d[1], d[2]

	fak1 := r.Mass*vpar*vpar/modB + r.Mass*r.Mu
	D := ((r.Charge+r.Mass*vpar*dIdpsi/modB)*G - (-r.Charge*iota+r.Mass*vpar*dGdpsi/modB)*I) / iota

	sdot := (I*dmodBdzeta - G*dmodBdtheta) * fak1 / (D * iota * psi0)
	tdot := (G*dmodBdpsi*fak1 - (-r.Charge*iota+r.Mass*vpar*dGdpsi/modB)*vpar*modB) / (D * iota)

	dydt := make(dynamo.State, 4)
	packChartDerivs(dydt, r.Axis, s, theta, sdot, tdot)
	dydt[2] = ((r.Charge+r.Mass*vpar*dIdpsi/modB)*vpar*modB - dmodBdpsi*fak1*I) / (D * iota)
	dydt[3] = -(r.Mu / vpar) * (dmodBdpsi*sdot*psi0 + dmodBdtheta*tdot + dmodBdzeta*dydt[2])
	return dydt
}

// GCBoozer advances (y0, y1, zeta, vpar) for the full guiding-center
// approximation, including the K term.
type GCBoozer struct {
	Field  field.BoozerField
	Mass   float64
	Charge float64
	Mu     float64
	Axis   chart.Axis
}

func (r *GCBoozer) StateDim() int    { return 4 }
func (r *GCBoozer) ControlDim() int  { return 0 }
func (r *GCBoozer) Chart() chart.Axis { return r.Axis }

func (r *GCBoozer) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vpar := x[3]
	s, theta, pt := boozerPoint(x[0], x[1], x[2], r.Axis)
	if err := r.Field.SetPoints([][3]float64{pt}); err != nil {
		return make(dynamo.State, 4)
	}
	psi0 := r.Field.Psi0()
	modB := r.Field.ModBRef()[0]
	K := r.Field.KRef()[0]
	kd := r.Field.KDerivsRef()[0]
	dKdtheta, dKdzeta := kd[0], kd[1]
	G := r.Field.GRef()[0]
	I := r.Field.IRef()[0]
	dGdpsi := r.Field.DGdsRef()[0] / psi0
	dIdpsi := r.Field.DIdsRef()[0] / psi0
	iota := r.Field.IotaRef()[0]
	d := r.Field.ModBDerivsRef()[0]
	dmodBdpsi, dmodBdtheta, dmodBdzeta := d[0]/psi0, d[1], d[2]

	fak1 := r.Mass*vpar*vpar/modB + r.Mass*r.Mu
	C := -r.Mass*vpar*(dKdzeta-dGdpsi)/modB - r.Charge*iota
	F := -r.Mass*vpar*(dKdtheta-dIdpsi)/modB + r.Charge
	D := (F*G - C*I) / iota

	sdot := (I*dmodBdzeta - G*dmodBdtheta) * fak1 / (D * iota * psi0)
	tdot := (G*dmodBdpsi*fak1 - C*vpar*modB - K*fak1*dmodBdzeta) / (D * iota)

	dydt := make(dynamo.State, 4)
	packChartDerivs(dydt, r.Axis, s, theta, sdot, tdot)
	dydt[2] = (F*vpar*modB - dmodBdpsi*fak1*I + K*fak1*dmodBdtheta) / (D * iota)
	dydt[3] = -(r.Mu / vpar) * (dmodBdpsi*sdot*psi0 + dmodBdtheta*tdot + dmodBdzeta*dydt[2])
	return dydt
}
