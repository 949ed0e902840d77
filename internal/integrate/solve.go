package integrate

import (
	"math"

	"fltrace/internal/chart"
	"fltrace/internal/dynamo"
	"fltrace/internal/phase"
	"fltrace/internal/stopcrit"
)

// chartAware is implemented by RHS variants whose leading two state
// components are a regularized chart over (s, theta) rather than raw
// Cartesian (x, y); detecting it lets the driver canonicalize samples and
// pick the right crossing variable (zeta vs. an atan2 phi) without the
// caller having to say so twice.
type chartAware interface {
	Chart() chart.Axis
}

// PhiPlane is a (possibly rotating) toroidal-angle plane to detect
// crossings of: Phi - Omega*t = phi (mod 2*pi).
type PhiPlane struct {
	Phi   float64
	Omega float64
}

// HitKind distinguishes the three kinds of entries the driver can append
// to the hits slice.
type HitKind int

const (
	HitVpar HitKind = iota
	HitPhi
	HitStop
)

// Sample is one row of the kept trajectory, in canonical coordinates
// (s, theta, zeta, vpar, ...) or (x, y, z, ...) depending on the RHS.
type Sample struct {
	T float64
	Y dynamo.State
}

// Hit is one detected event: a v-parallel-plane crossing, a Phi-plane
// crossing, or a stopping criterion firing.
type Hit struct {
	T     float64
	Kind  HitKind
	Index int
	Y     dynamo.State
}

// Options configures one call to Solve.
type Options struct {
	Tmax, Dt, DtMax  float64
	AbsTol, RelTol   float64
	Phis             []PhiPlane
	Vpars            []float64
	StoppingCriteria []stopcrit.Criterion
	PhisStop         bool
	VparsStop        bool
	// ForgetExactPath keeps only the initial and final samples of the
	// accepted path (still recording every event hit), trading path resolution for
	// memory on long traces where only crossings matter.
	ForgetExactPath bool
}

// canonicalize converts a raw integrator state into the coordinates a
// caller should see: (s, theta, ...) for chart-aware RHS variants, or the
// state unchanged otherwise.
func canonicalize(y dynamo.State, axis chart.Axis, isChart bool) dynamo.State {
	if !isChart {
		return y
	}
	out := y.Clone()
	out[0], out[1] = chart.ToCanonical(axis, y[0], y[1])
	return out
}

// phiValue returns the crossing variable used for Phi-plane detection:
// the raw zeta state component for chart-aware (Boozer) traces, or the
// branch-lifted atan2(y,x) angle for Cartesian traces.
func phiValue(y dynamo.State, isChart bool, ref float64) float64 {
	if isChart {
		return y[2]
	}
	return phase.Lift(y[0], y[1], ref)
}

// Solve advances sys from y0 at t=0 to t=tmax (or until a stopping
// criterion or a stop-on-hit plane fires), returning the kept trajectory
// samples and every detected event, in the order they occur.
func Solve(sys dynamo.System, y0 dynamo.State, opt Options) ([]Sample, []Hit, error) {
	axis := chart.Direct
	isChart := false
	if ca, ok := sys.(chartAware); ok {
		axis, isChart = ca.Chart(), true
	}

	hasZeta := len(y0) > 2
	hasVpar := len(y0) > 3

	var path []Sample
	var hits []Hit

	y := y0.Clone()
	t := 0.0
	dt := opt.Dt
	if dt <= 0 {
		dt = opt.DtMax / 10
	}

	keep := func(t float64, y dynamo.State) Sample {
		return Sample{T: t, Y: canonicalize(y, axis, isChart)}
	}

	var phiLast float64
	var vparLast float64
	var tLast float64
	if hasZeta {
		if isChart {
			phiLast = y[2]
		} else {
			phiLast = phase.Lift(y[0], y[1], math.Pi)
		}
	}
	if hasVpar {
		vparLast = y[3]
	}

	iter := 0
	stop := false

	for t < opt.Tmax && !stop {
		if !opt.ForgetExactPath || t == 0 {
			path = append(path, keep(t, y))
		}

		if dt > opt.DtMax {
			dt = opt.DtMax
		}
		if t+dt > opt.Tmax {
			dt = opt.Tmax - t
		}

		res := dopri5Step(sys, y, t, dt, opt.DtMax, opt.AbsTol, opt.RelTol)
		if !res.accepted {
			return path, hits, errStepFailed{t: t, dt: dt}
		}
		iter++

		tLo, tHi := t, t+res.dt
		seg := newDenseSegment(tLo, tHi, y, res.yNew, res.k1, res.k7)

		yNew := res.yNew
		t = tHi
		dt = res.dtNext

		var phiCurrent, vparCurrent float64
		if hasZeta {
			if isChart {
				phiCurrent = yNew[2]
			} else {
				phiCurrent = phase.Lift(yNew[0], yNew[1], phiLast)
			}
		}
		if hasVpar {
			vparCurrent = yNew[3]
		}

		absTol := opt.AbsTol
		if absTol <= 0 {
			absTol = 1e-10
		}
		rootTol := absTol
		const rootMaxIter = 200

		// v-parallel-plane crossings.
		if hasVpar {
			for i, vTarget := range opt.Vpars {
				dLast := vparLast - vTarget
				dCur := vparCurrent - vTarget
				if dLast != 0 && dCur != 0 && sign(dLast) != sign(dCur) {
					rootfun := func(tt float64) float64 { return seg.At(tt)[3] - vTarget }
					troot := brent(rootfun, tLo, tHi, dLast, dCur, rootTol, rootMaxIter)
					yHit := seg.At(troot)
					hits = append(hits, Hit{T: troot, Kind: HitVpar, Index: i, Y: canonicalize(yHit, axis, isChart)})
					if opt.VparsStop {
						path = append(path, keep(troot, yHit))
						stop = true
						break
					}
				}
			}
		}

		// Phi-plane crossings (possibly rotating via Omega). Scanned
		// unconditionally, even when the v-parallel scan above already
		// fired: every scan runs every step, in v-parallel -> Phi ->
		// stopping-criteria order, and only the scan whose own crossing
		// carries a *_stop flag sets stop.
		if hasZeta {
			for i, plane := range opt.Phis {
				phaseLast := phiLast - plane.Omega*tLast
				phaseCurrent := phiCurrent - plane.Omega*t
				if tLast != 0 && math.Floor((phaseLast-plane.Phi)/(2*math.Pi)) != math.Floor((phaseCurrent-plane.Phi)/(2*math.Pi)) {
					fak := math.Round(((phaseLast+phaseCurrent)/2 - plane.Phi) / (2 * math.Pi))
					phaseShift := fak*2*math.Pi + plane.Phi
					rootfun := func(tt float64) float64 {
						yy := seg.At(tt)
						return phiValue(yy, isChart, phiLast) - plane.Omega*tt - phaseShift
					}
					troot := brent(rootfun, tLo, tHi, phaseLast-phaseShift, phaseCurrent-phaseShift, rootTol, rootMaxIter)
					yHit := seg.At(troot)
					hits = append(hits, Hit{T: troot, Kind: HitPhi, Index: i, Y: canonicalize(yHit, axis, isChart)})
					if opt.PhisStop {
						path = append(path, keep(troot, yHit))
						stop = true
						break
					}
				}
			}
		}

		// Extra stopping criteria, scanned unconditionally for the same
		// reason as the Phi-plane scan above.
		{
			kept := canonicalize(yNew, axis, isChart)
			var s0, s1, s2, vpar float64
			if len(kept) > 0 {
				s0 = kept[0]
			}
			if len(kept) > 1 {
				s1 = kept[1]
			}
			if len(kept) > 2 {
				s2 = kept[2]
			}
			if len(kept) > 3 {
				vpar = kept[3]
			}
			for i, c := range opt.StoppingCriteria {
				if c != nil && c.Test(iter, tHi-tLo, t, s0, s1, s2, vpar) {
					hits = append(hits, Hit{T: t, Kind: HitStop, Index: i, Y: kept})
					path = append(path, keep(t, yNew))
					stop = true
					break
				}
			}
		}

		y = yNew
		tLast = t
		phiLast = phiCurrent
		vparLast = vparCurrent
	}

	if !stop {
		path = append(path, keep(opt.Tmax, y))
	}
	return path, hits, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

type errStepFailed struct {
	t, dt float64
}

func (e errStepFailed) Error() string {
	return "integrate: step failed to converge"
}
