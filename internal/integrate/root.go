package integrate

import "math"

// brent finds a root of f within the bracket [a, b], where fa=f(a) and
// fb=f(b) are supplied because the caller already evaluated them while
// detecting the sign change. The pack has no bracketed root-finder
// (boost::math::tools::toms748_solve has no Go ecosystem equivalent in the
// examples), so event refinement uses Brent's method, the standard
// general-purpose substitute with the same superlinear convergence and
// guaranteed-bracket robustness that toms748 offers.
func brent(f func(float64) float64, a, b, fa, fb, tol float64, maxIter int) float64 {
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b
		}
		var s float64
		if fa != fc && fb != fc {
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := math.Min(a, c), math.Max(a, c)
		condBisect := s < lo || s > hi ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol)

		if condBisect {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d, c, fc = c, b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b
}
