package field

import "math"

// UniformField is a closed-form CartesianField with a constant field
// Bz*zhat. It has no spatial dependence, so GradAbsB is identically zero;
// it exists mainly to drive the simplest field-line and full-orbit
// end-to-end scenarios without needing an external field implementation.
type UniformField struct {
	Bz float64

	n int
}

func (f *UniformField) SetPointsCyl(points [][3]float64) error {
	f.n = len(points)
	return nil
}

func (f *UniformField) BRef() [][3]float64 {
	out := make([][3]float64, f.n)
	for i := range out {
		out[i] = [3]float64{0, 0, f.Bz}
	}
	return out
}

func (f *UniformField) AbsBRef() []float64 {
	out := make([]float64, f.n)
	for i := range out {
		out[i] = math.Abs(f.Bz)
	}
	return out
}

func (f *UniformField) GradAbsBRef() [][3]float64 {
	return make([][3]float64, f.n)
}

// AnalyticBoozerField is a closed-form BoozerField used for tests and for
// the CLI demo. It is not a physical equilibrium; it is a deliberately
// simple model chosen so that every partial derivative the guiding-center
// RHS variants need can be written down directly rather than approximated,
// which keeps conservation and chart-equivalence tests exact.
//
//	modB(s,theta,zeta) = B0 * (1 + epsTheta*s*cos(theta) + epsZeta*s*sin(zeta))
//	G(s)     = G0 + dGds*s
//	I(s)     = I0 + dIds*s
//	iota(s)  = Iota0 + dIotaDs*s
//	K(s,theta,zeta) = Khat*s*sin(theta-zeta)
type AnalyticBoozerField struct {
	Psi0Val  float64
	B0       float64
	EpsTheta float64
	EpsZeta  float64
	G0       float64
	DGds     float64
	I0       float64
	DIds     float64
	Iota0    float64
	DIotaDs  float64
	Khat     float64

	pts [][3]float64
}

func (f *AnalyticBoozerField) SetPoints(points [][3]float64) error {
	f.pts = append(f.pts[:0], points...)
	return nil
}

func (f *AnalyticBoozerField) Psi0() float64 { return f.Psi0Val }

func (f *AnalyticBoozerField) modBAt(s, theta, zeta float64) float64 {
	return f.B0 * (1 + f.EpsTheta*s*math.Cos(theta) + f.EpsZeta*s*math.Sin(zeta))
}

func (f *AnalyticBoozerField) ModBRef() []float64 {
	out := make([]float64, len(f.pts))
	for i, p := range f.pts {
		out[i] = f.modBAt(p[0], p[1], p[2])
	}
	return out
}

func (f *AnalyticBoozerField) GRef() []float64 {
	out := make([]float64, len(f.pts))
	for i, p := range f.pts {
		out[i] = f.G0 + f.DGds*p[0]
	}
	return out
}

func (f *AnalyticBoozerField) IRef() []float64 {
	out := make([]float64, len(f.pts))
	for i, p := range f.pts {
		out[i] = f.I0 + f.DIds*p[0]
	}
	return out
}

func (f *AnalyticBoozerField) KRef() []float64 {
	out := make([]float64, len(f.pts))
	for i, p := range f.pts {
		out[i] = f.Khat * p[0] * math.Sin(p[1]-p[2])
	}
	return out
}

func (f *AnalyticBoozerField) IotaRef() []float64 {
	out := make([]float64, len(f.pts))
	for i, p := range f.pts {
		out[i] = f.Iota0 + f.DIotaDs*p[0]
	}
	return out
}

func (f *AnalyticBoozerField) DGdsRef() []float64 {
	out := make([]float64, len(f.pts))
	for i := range out {
		out[i] = f.DGds
	}
	return out
}

func (f *AnalyticBoozerField) DIdsRef() []float64 {
	out := make([]float64, len(f.pts))
	for i := range out {
		out[i] = f.DIds
	}
	return out
}

func (f *AnalyticBoozerField) DIotaDsRef() []float64 {
	out := make([]float64, len(f.pts))
	for i := range out {
		out[i] = f.DIotaDs
	}
	return out
}

func (f *AnalyticBoozerField) ModBDerivsRef() [][3]float64 {
	out := make([][3]float64, len(f.pts))
	for i, p := range f.pts {
		s, theta, zeta := p[0], p[1], p[2]
		out[i] = [3]float64{
			f.B0 * (f.EpsTheta*math.Cos(theta) + f.EpsZeta*math.Sin(zeta)),
			f.B0 * (-f.EpsTheta * s * math.Sin(theta)),
			f.B0 * (f.EpsZeta * s * math.Cos(zeta)),
		}
	}
	return out
}

func (f *AnalyticBoozerField) KDerivsRef() [][2]float64 {
	out := make([][2]float64, len(f.pts))
	for i, p := range f.pts {
		s, theta, zeta := p[0], p[1], p[2]
		c := f.Khat * s * math.Cos(theta-zeta)
		out[i] = [2]float64{c, -c}
	}
	return out
}
