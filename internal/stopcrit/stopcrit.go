// Package stopcrit implements the stopping-criterion predicates the
// integrator consults after every accepted step. All criteria share the
// same polymorphic Test signature so the step loop can hold a plain slice
// of them and stop at whichever fires first.
package stopcrit

import "math"

// Criterion is satisfied by every stopping-criterion variant.
//
// sOrX, thetaOrY and zetaOrZ carry whatever coordinates the trace actually
// advances in: canonical (s, theta, zeta) for flux-coordinate traces, or
// Cartesian (x, y, z) for field-line/full-orbit/GC-vacuum traces. vpar is
// unused by traces that have no parallel velocity component.
type Criterion interface {
	Test(iter int, dt, t, sOrX, thetaOrY, zetaOrZ, vpar float64) bool
}

// Iteration fires once the step counter exceeds N.
type Iteration struct {
	N int
}

func (c *Iteration) Test(iter int, dt, t, sOrX, thetaOrY, zetaOrZ, vpar float64) bool {
	return iter > c.N
}

// MaxToroidalFlux fires when s exceeds SMax.
type MaxToroidalFlux struct {
	SMax float64
}

func (c *MaxToroidalFlux) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	return s > c.SMax
}

// MinToroidalFlux fires when s falls below SMin.
type MinToroidalFlux struct {
	SMin float64
}

func (c *MinToroidalFlux) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	return s < c.SMin
}

// ToroidalTransit fires after N toroidal transits. With Absolute set, N
// bounds |zeta|/2pi directly; otherwise it bounds the accumulated angular
// distance traveled, which keeps counting transits even if the particle
// later drifts back toward zeta=0.
type ToroidalTransit struct {
	N        int
	Absolute bool

	started     bool
	prevZeta    float64
	accumulated float64
}

func (c *ToroidalTransit) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	if c.Absolute {
		return math.Abs(zeta)/(2*math.Pi) >= float64(c.N)
	}
	if !c.started {
		c.prevZeta = zeta
		c.started = true
		return false
	}
	c.accumulated += math.Abs(zeta - c.prevZeta)
	c.prevZeta = zeta
	return c.accumulated/(2*math.Pi) >= float64(c.N)
}

// Vpar fires when the parallel velocity magnitude drops below Threshold.
type Vpar struct {
	Threshold float64
}

func (c *Vpar) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	return math.Abs(vpar) < c.Threshold
}

// Zeta fires when zeta crosses a multiple of Period. Unlike the event
// Phi-plane machinery in the integrator, this is a coarse one-shot check
// used as a cheap transit bound when no interpolated crossing time is
// needed.
type Zeta struct {
	Period float64

	started  bool
	prevZeta float64
}

func (c *Zeta) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	if c.Period == 0 {
		return false
	}
	if !c.started {
		c.prevZeta = zeta
		c.started = true
		return false
	}
	crossed := math.Floor(c.prevZeta/c.Period) != math.Floor(zeta/c.Period)
	c.prevZeta = zeta
	return crossed
}

// LevelsetField evaluates a scalar level-set function at a point given in
// whatever coordinates the enclosing trace uses.
type LevelsetField interface {
	Evaluate(p0, p1, p2 float64) float64
}

// Levelset fires when the sampled level-set interpolant is negative at the
// current position.
type Levelset struct {
	Field LevelsetField
}

func (c *Levelset) Test(iter int, dt, t, sOrX, thetaOrY, zetaOrZ, vpar float64) bool {
	return c.Field.Evaluate(sOrX, thetaOrY, zetaOrZ) < 0
}

// StepSize fires when the accepted step size underflows Floor, guarding
// against an adaptive stepper grinding to a halt near a coordinate
// singularity or a field evaluation failure.
type StepSize struct {
	Floor float64
}

func (c *StepSize) Test(iter int, dt, t, s, theta, zeta, vpar float64) bool {
	return dt < c.Floor
}
