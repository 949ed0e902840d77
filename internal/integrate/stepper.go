// Package integrate drives the Dormand-Prince adaptive stepper used by
// every tracing mode, plus the dense-output event machinery that scans
// each accepted step for v-parallel-plane and (possibly rotating)
// Phi-plane crossings.
package integrate

import (
	"math"

	"fltrace/internal/dynamo"
)

// Dormand-Prince RK5(4) coefficients, shared with the teacher's adaptive
// stepper; kept here rather than imported so the dense-output extension
// below can reuse k1 and k7 without reworking the existing stepper's
// calling convention.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// stepResult carries everything the driver and its dense-output extension
// need from one accepted step.
type stepResult struct {
	yNew     dynamo.State
	k1, k7   dynamo.State // derivative at t and at t+dt, for Hermite interpolation
	dt       float64      // size of the step actually taken, after any shrinking
	dtNext   float64
	accepted bool
}

// dopri5Step attempts one adaptive step starting from (x, t) with trial
// size dt, retrying with a shrunk step until the local error estimate
// satisfies tol. Returns the accepted step and the size to try next.
func dopri5Step(sys dynamo.System, x dynamo.State, t, dt, dtMax, absTol, relTol float64) stepResult {
	n := len(x)
	const safety = 0.9
	const minScale = 0.2
	const maxScale = 5.0
	const maxAttempts = 50

	k1 := sys.Derive(x, nil, t)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		x2 := addScaled(x, dt, []dynamo.State{k1}, []float64{b21})
		k2 := sys.Derive(x2, nil, t+a2*dt)

		x3 := addScaled(x, dt, []dynamo.State{k1, k2}, []float64{b31, b32})
		k3 := sys.Derive(x3, nil, t+a3*dt)

		x4 := addScaled(x, dt, []dynamo.State{k1, k2, k3}, []float64{b41, b42, b43})
		k4 := sys.Derive(x4, nil, t+a4*dt)

		x5 := addScaled(x, dt, []dynamo.State{k1, k2, k3, k4}, []float64{b51, b52, b53, b54})
		k5 := sys.Derive(x5, nil, t+a5*dt)

		x6 := addScaled(x, dt, []dynamo.State{k1, k2, k3, k4, k5}, []float64{b61, b62, b63, b64, b65})
		k6 := sys.Derive(x6, nil, t+dt)

		xNew := addScaled(x, dt, []dynamo.State{k1, k3, k4, k5, k6}, []float64{c1, c3, c4, c5, c6})
		k7 := sys.Derive(xNew, nil, t+dt)

		errMax := 0.0
		if !xNew.IsValid() {
			errMax = math.Inf(1)
		} else {
			for i := 0; i < n; i++ {
				errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
				scale := absTol + relTol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
				if scale == 0 {
					scale = absTol
				}
				errMax = math.Max(errMax, math.Abs(errEst)/scale)
			}
		}

		if math.IsInf(errMax, 1) {
			dt *= minScale
			continue
		}

		if errMax <= 1 || dt < 1e-14 {
			var dtNext float64
			if errMax > 0 {
				dtNext = dt * math.Min(maxScale, math.Max(minScale, safety*math.Pow(errMax, -0.2)))
			} else {
				dtNext = dt * maxScale
			}
			if dtNext > dtMax {
				dtNext = dtMax
			}
			return stepResult{yNew: xNew, k1: k1, k7: k7, dt: dt, dtNext: dtNext, accepted: true}
		}

		dt *= math.Max(minScale, safety*math.Pow(errMax, -0.25))
	}
	return stepResult{accepted: false}
}

// addScaled computes x + dt*sum(coeffs[i] * ks[i]), one Butcher-tableau row.
func addScaled(x dynamo.State, dt float64, ks []dynamo.State, coeffs []float64) dynamo.State {
	n := len(x)
	out := make(dynamo.State, n)
	copy(out, x)
	for i, k := range ks {
		coeff := coeffs[i]
		for j := 0; j < n; j++ {
			out[j] += dt * coeff * k[j]
		}
	}
	return out
}

// denseSegment is a cubic Hermite continuous extension over one accepted
// step, built from the endpoint states and derivatives. The original
// tracer uses boost::odeint's built-in dense output for its dopri5
// stepper; that polynomial isn't reproducible here without the toolchain
// to check it against, so event root-bracketing instead uses the
// classical two-point Hermite cubic, which matches value and slope at both
// endpoints and is third-order accurate, lower than the fifth-order step
// itself; it is the standard substitute when a solver's own dense output
// is unavailable.
type denseSegment struct {
	tLo, tHi   float64
	yLo, yHi   dynamo.State
	fLo, fHi   dynamo.State
}

func newDenseSegment(tLo, tHi float64, yLo, yHi, fLo, fHi dynamo.State) denseSegment {
	return denseSegment{tLo: tLo, tHi: tHi, yLo: yLo, yHi: yHi, fLo: fLo, fHi: fHi}
}

func (d denseSegment) At(t float64) dynamo.State {
	h := d.tHi - d.tLo
	if h == 0 {
		return d.yLo
	}
	s := (t - d.tLo) / h
	s2, s3 := s*s, s*s*s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	n := len(d.yLo)
	out := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		out[i] = h00*d.yLo[i] + h10*h*d.fLo[i] + h01*d.yHi[i] + h11*h*d.fHi[i]
	}
	return out
}
