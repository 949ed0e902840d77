package rhs

import (
	"math"

	"fltrace/internal/chart"
	"fltrace/internal/dynamo"
	"fltrace/internal/field"
)

// Perturbation describes a single-mode electrostatic perturbation
// Phi(theta, zeta, t) = Phihat * sin(m*theta - n*zeta + omega*t + phase).
type Perturbation struct {
	Phihat float64
	Omega  float64
	M      int
	N      int
	Phase  float64
}

func (p Perturbation) eval(theta, zeta, time float64) (phi, phidot, dphidtheta, dphidzeta float64) {
	arg := float64(p.M)*theta - float64(p.N)*zeta + p.Omega*time + p.Phase
	phi = p.Phihat * math.Sin(arg)
	phidot = p.Phihat * p.Omega * math.Cos(arg)
	dphidtheta = phidot * float64(p.M) / p.Omega
	dphidzeta = -phidot * float64(p.N) / p.Omega
	return
}

// GCVacuumBoozerPerturbed advances (y0, y1, zeta, vpar, time) for the
// vacuum guiding-center approximation perturbed by a single electrostatic
// mode. Time is carried as a state component because the perturbation is
// explicitly time dependent.
type GCVacuumBoozerPerturbed struct {
	Field        field.BoozerField
	Mass         float64
	Charge       float64
	Mu           float64
	Axis         chart.Axis
	Perturbation Perturbation
}

func (r *GCVacuumBoozerPerturbed) StateDim() int    { return 5 }
func (r *GCVacuumBoozerPerturbed) ControlDim() int  { return 0 }
func (r *GCVacuumBoozerPerturbed) Chart() chart.Axis { return r.Axis }

func (r *GCVacuumBoozerPerturbed) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vpar := x[3]
	time := x[4]
	s, theta, pt := boozerPoint(x[0], x[1], x[2], r.Axis)
	if err := r.Field.SetPoints([][3]float64{pt}); err != nil {
		return make(dynamo.State, 5)
	}
	psi0 := r.Field.Psi0()
	modB := r.Field.ModBRef()[0]
	G := r.Field.GRef()[0]
	iota := r.Field.IotaRef()[0]
	diotadpsi := r.Field.DIotaDsRef()[0] / psi0
	d := r.Field.ModBDerivsRef()[0]
	dmodBdpsi, dmodBdtheta, dmodBdzeta := d[0]/psi0, d[1], d[2]

	m, q, mu := r.Mass, r.Charge, r.Mu
	zeta := x[2]
	phi, phidot, dphidtheta, dphidzeta := r.Perturbation.eval(theta, zeta, time)
	dphidpsi := 0.0

	mnMinusIota := iota*float64(r.Perturbation.M) - float64(r.Perturbation.N)
	alphadot := -phidot * mnMinusIota / (r.Perturbation.Omega * G)
	dalphadtheta := -dphidtheta * mnMinusIota / (r.Perturbation.Omega * G)
	dalphadzeta := -dphidzeta * mnMinusIota / (r.Perturbation.Omega * G)
	_ = dalphadzeta
	dalphadpsi := -dphidpsi*mnMinusIota/(r.Perturbation.Omega*G) -
		phi*(diotadpsi*float64(r.Perturbation.M))/(r.Perturbation.Omega*G)

	fak1 := m*vpar*vpar/modB + m*mu

	sdot := (-dmodBdtheta*fak1/q + dalphadtheta*modB*vpar - dphidtheta) / psi0
	tdot := dmodBdpsi*fak1/q + (iota-dalphadpsi*G)*vpar*modB/G + dphidpsi

	dydt := make(dynamo.State, 5)
	packChartDerivs(dydt, r.Axis, s, theta, sdot, tdot)
	dydt[2] = vpar * modB / G
	dydt[3] = -modB/(G*m)*(m*mu*(dmodBdzeta+dalphadtheta*dmodBdpsi*G+dmodBdtheta*(iota-dalphadpsi*G))+
		q*(alphadot*G+dalphadtheta*G*dphidpsi+(iota-dalphadpsi*G)*dphidtheta+dphidzeta)) +
		vpar/modB*(dmodBdtheta*dphidpsi-dmodBdpsi*dphidtheta)
	dydt[4] = 1
	return dydt
}

// GCNoKBoozerPerturbed advances (y0, y1, zeta, vpar, time) for the K=0
// guiding-center approximation perturbed by a single electrostatic mode.
type GCNoKBoozerPerturbed struct {
	Field        field.BoozerField
	Mass         float64
	Charge       float64
	Mu           float64
	Axis         chart.Axis
	Perturbation Perturbation
}

func (r *GCNoKBoozerPerturbed) StateDim() int    { return 5 }
func (r *GCNoKBoozerPerturbed) ControlDim() int  { return 0 }
func (r *GCNoKBoozerPerturbed) Chart() chart.Axis { return r.Axis }

func (r *GCNoKBoozerPerturbed) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	vpar := x[3]
	time := x[4]
	s, theta, pt := boozerPoint(x[0], x[1], x[2], r.Axis)
	if err := r.Field.SetPoints([][3]float64{pt}); err != nil {
		return make(dynamo.State, 5)
	}
	psi0 := r.Field.Psi0()
	modB := r.Field.ModBRef()[0]
	G := r.Field.GRef()[0]
	I := r.Field.IRef()[0]
	dGdpsi := r.Field.DGdsRef()[0] / psi0
	dIdpsi := r.Field.DIdsRef()[0] / psi0
	iota := r.Field.IotaRef()[0]
	diotadpsi := r.Field.DIotaDsRef()[0] / psi0
	d := r.Field.ModBDerivsRef()[0]
	dmodBdpsi, dmodBdtheta, dmodBdzeta := d[0]/psi0, d[1], d[2]

	m, q, mu := r.Mass, r.Charge, r.Mu
	zeta := x[2]
	phi, phidot, dphidtheta, dphidzeta := r.Perturbation.eval(theta, zeta, time)
	dphidpsi := 0.0

	GiotaI := G + iota*I
	mnMinusIota := iota*float64(r.Perturbation.M) - float64(r.Perturbation.N)
	omega := r.Perturbation.Omega
	alphadot := -phidot * mnMinusIota / (omega * GiotaI)
	dalphadtheta := -dphidtheta * mnMinusIota / (omega * GiotaI)
	dalphadzeta := -dphidzeta * mnMinusIota / (omega * GiotaI)
	dalphadpsi := -dphidpsi*mnMinusIota/(omega*GiotaI) -
		(phi/omega)*(diotadpsi*float64(r.Perturbation.M)/GiotaI-
			mnMinusIota/(GiotaI*GiotaI)*(dGdpsi+diotadpsi*I+iota*dIdpsi))

	fak1 := m*vpar*vpar/modB + m*mu
	alpha := -phi * mnMinusIota / (omega * GiotaI)
	denom := q*(G+I*(-alpha*dGdpsi+iota)+alpha*G*dIdpsi) + m*vpar/modB*(-dGdpsi*I+G*dIdpsi)

	sdot := (-G*dphidtheta*q + I*dphidzeta*q + modB*q*vpar*(dalphadtheta*G-dalphadzeta*I) +
		(-dmodBdtheta*G+dmodBdzeta*I)*fak1) / (denom * psi0)
	tdot := (G*q*dphidpsi + modB*q*vpar*(-dalphadpsi*G-alpha*dGdpsi+iota) - dGdpsi*m*vpar*vpar +
		dmodBdpsi*G*fak1) / denom

	dydt := make(dynamo.State, 5)
	packChartDerivs(dydt, r.Axis, s, theta, sdot, tdot)
	dydt[2] = (-I*(dmodBdpsi*m*mu+dphidpsi*q) + modB*q*vpar*(1+dalphadpsi*I+alpha*dIdpsi) +
		m*vpar*vpar/modB*(modB*dIdpsi-dmodBdpsi*I)) / denom
	dydt[3] = (modB*q/m*(-m*mu*(dmodBdzeta*(1+dalphadpsi*I+alpha*dIdpsi)+
		dmodBdpsi*(dalphadtheta*G-dalphadzeta*I)+dmodBdtheta*(iota-alpha*dGdpsi-dalphadpsi*G))-
		q*(alphadot*(G+I*(iota-alpha*dGdpsi)+alpha*G*dIdpsi)+
			(dalphadtheta*G-dalphadzeta*I)*dphidpsi+
			(iota-alpha*dGdpsi-dalphadpsi*G)*dphidtheta+
			(1+alpha*dIdpsi+dalphadpsi*I)*dphidzeta))+
		q*vpar/modB*((dmodBdtheta*G-dmodBdzeta*I)*dphidpsi+dmodBdpsi*(I*dphidzeta-G*dphidtheta))+
		vpar*(m*mu*(dmodBdtheta*dGdpsi-dmodBdzeta*dIdpsi)+
			q*(alphadot*(dGdpsi*I-G*dIdpsi)+dGdpsi*dphidtheta-dIdpsi*dphidzeta))) / denom
	dydt[4] = 1
	return dydt
}
