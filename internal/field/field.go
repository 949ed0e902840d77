// Package field declares the contracts the tracer consumes from an
// externally owned magnetic field evaluator. Construction, caching policy,
// Biot-Savart or surface machinery behind an implementation are out of
// scope here: the tracer only ever calls SetPoints (or SetPointsCyl) and
// then reads back scalars and vectors at the points just set.
package field

// CartesianField is the contract for field-line, full-orbit, and
// guiding-center-vacuum-Cartesian RHS evaluation, which work in cylindrical
// (r, phi, z) points.
type CartesianField interface {
	// SetPointsCyl caches the field at the given cylindrical points
	// (r, phi, z) per row for the subsequent *_Ref calls.
	SetPointsCyl(points [][3]float64) error

	// BRef returns the Cartesian B field (Bx, By, Bz) per point, in the
	// order points were last set.
	BRef() [][3]float64
	// AbsBRef returns |B| per point.
	AbsBRef() []float64
	// GradAbsBRef returns the Cartesian gradient of |B| per point.
	GradAbsBRef() [][3]float64
}

// BoozerField is the contract for guiding-center Boozer RHS evaluation,
// which works in Boozer flux coordinates (s, theta, zeta) points.
type BoozerField interface {
	// SetPoints caches the field at the given (s, theta, zeta) points for
	// the subsequent *_Ref calls.
	SetPoints(points [][3]float64) error

	// Psi0 is the toroidal flux at the plasma edge; a normalization
	// constant, not point-indexed.
	Psi0() float64

	ModBRef() []float64
	GRef() []float64
	IRef() []float64
	KRef() []float64
	IotaRef() []float64
	DGdsRef() []float64
	DIdsRef() []float64
	DIotaDsRef() []float64
	// ModBDerivsRef returns (d|B|/ds, d|B|/dtheta, d|B|/dzeta) per point.
	ModBDerivsRef() [][3]float64
	// KDerivsRef returns (dK/dtheta, dK/dzeta) per point.
	KDerivsRef() [][2]float64
}
