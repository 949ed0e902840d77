package stopcrit

import "testing"

func TestIteration(t *testing.T) {
	c := &Iteration{N: 5}
	for i := 0; i <= 5; i++ {
		if c.Test(i, 0, 0, 0, 0, 0, 0) {
			t.Errorf("iter %d: fired early", i)
		}
	}
	if !c.Test(6, 0, 0, 0, 0, 0, 0) {
		t.Error("iter 6: expected fire")
	}
}

func TestMaxMinFlux(t *testing.T) {
	max := &MaxToroidalFlux{SMax: 1.0}
	if max.Test(0, 0, 0, 0.9, 0, 0, 0) {
		t.Error("should not fire below SMax")
	}
	if !max.Test(0, 0, 0, 1.1, 0, 0, 0) {
		t.Error("should fire above SMax")
	}

	min := &MinToroidalFlux{SMin: 0.1}
	if min.Test(0, 0, 0, 0.2, 0, 0, 0) {
		t.Error("should not fire above SMin")
	}
	if !min.Test(0, 0, 0, 0.05, 0, 0, 0) {
		t.Error("should fire below SMin")
	}
}

func TestVpar(t *testing.T) {
	c := &Vpar{Threshold: 1e-3}
	if c.Test(0, 0, 0, 0, 0, 0, 0.5) {
		t.Error("should not fire for large vpar")
	}
	if !c.Test(0, 0, 0, 0, 0, 0, 1e-4) {
		t.Error("should fire for small vpar")
	}
}

func TestStepSize(t *testing.T) {
	c := &StepSize{Floor: 1e-8}
	if c.Test(0, 1e-6, 0, 0, 0, 0, 0) {
		t.Error("should not fire for dt above floor")
	}
	if !c.Test(0, 1e-9, 0, 0, 0, 0, 0) {
		t.Error("should fire for dt below floor")
	}
}

func TestToroidalTransitAbsolute(t *testing.T) {
	c := &ToroidalTransit{N: 2, Absolute: true}
	twoPi := 6.283185307179586
	if c.Test(0, 0, 0, 0, 0, 1.9*twoPi, 0) {
		t.Error("should not fire before 2 transits")
	}
	if !c.Test(0, 0, 0, 0, 0, 2.1*twoPi, 0) {
		t.Error("should fire after 2 transits")
	}
}

func TestToroidalTransitAccumulated(t *testing.T) {
	twoPi := 6.283185307179586
	c := &ToroidalTransit{N: 1}
	c.Test(0, 0, 0, 0, 0, 0, 0) // seed
	if c.Test(0, 0, 0, 0, 0, 0.5*twoPi, 0) {
		t.Error("should not fire after half a transit")
	}
	if !c.Test(0, 0, 0, 0, 0, twoPi, 0) {
		t.Error("should fire after a full transit's worth of accumulated travel")
	}
}

type fakeLevelset struct{ v float64 }

func (f fakeLevelset) Evaluate(p0, p1, p2 float64) float64 { return f.v }

func TestLevelset(t *testing.T) {
	c := &Levelset{Field: fakeLevelset{v: 0.5}}
	if c.Test(0, 0, 0, 0, 0, 0, 0) {
		t.Error("should not fire when level-set is positive")
	}
	c2 := &Levelset{Field: fakeLevelset{v: -0.5}}
	if !c2.Test(0, 0, 0, 0, 0, 0, 0) {
		t.Error("should fire when level-set is negative")
	}
}
