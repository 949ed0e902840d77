package config

// Presets mirror the end-to-end scenarios a complete tracing library
// needs a quick start for: a field-line trace, a full-orbit trace, and
// guiding-center traces in each Boozer variant.
var Presets = map[string]*Config{
	"fieldline_uniform": {
		Mode: "fieldline", Field: "uniform", Axis: "direct",
		Mass: 1, Charge: 1,
		Tmax: 50, Dt: 1e-3, DtMax: 0.5, AbsTol: 1e-9, RelTol: 1e-9,
		FieldParams:   FieldConfig{Bz: 1},
		InitState:     InitStateConfig{X: 1},
		MaxIterations: 100000,
	},
	"fullorbit_uniform": {
		Mode: "fullorbit", Field: "uniform", Axis: "direct",
		Mass: 1, Charge: 1,
		Tmax: 20, Dt: 1e-4, DtMax: 0.05, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams:   FieldConfig{Bz: 1},
		InitState:     InitStateConfig{X: 1, VY: 0.3, VZ: 0.05},
		MaxIterations: 200000,
	},
	"gc_vacuum_cartesian": {
		Mode: "gc_vacuum_cartesian", Field: "uniform", Axis: "direct",
		Mass: 1, Charge: 1,
		Tmax: 50, Dt: 1e-3, DtMax: 0.2, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams:   FieldConfig{Bz: 1},
		InitState:     InitStateConfig{X: 1, Vpar: 0.2, Vtotal: 0.25},
		MaxIterations: 100000,
	},
	"gc_boozer_vacuum": {
		Mode: "gc_boozer", Field: "analytic_boozer", Axis: "direct", Boozer: "vacuum",
		Mass: 1, Charge: 1,
		Tmax: 200, Dt: 1e-3, DtMax: 0.2, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams: FieldConfig{Psi0: 0.9, B0: 1.2, EpsTheta: 0.15, G0: 1.0, Iota0: 0.42},
		InitState:   InitStateConfig{S: 0.3, Theta: 0.1, Vpar: 0.15, Vtotal: 0.2},
		Phis:        []PhiPlaneConfig{{Phi: 0, Omega: 0}},
		MaxIterations: 100000,
	},
	"gc_boozer_nok": {
		Mode: "gc_boozer", Field: "analytic_boozer", Axis: "linear", Boozer: "nok",
		Mass: 1, Charge: 1,
		Tmax: 200, Dt: 1e-3, DtMax: 0.2, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams: FieldConfig{Psi0: 0.9, B0: 1.2, EpsTheta: 0.15, G0: 1.0, I0: 0.05, Iota0: 0.42},
		InitState:   InitStateConfig{S: 0.3, Theta: 0.1, Vpar: 0.15, Vtotal: 0.2},
		MaxIterations: 100000,
	},
	"gc_boozer_full": {
		Mode: "gc_boozer", Field: "analytic_boozer", Axis: "sqrt", Boozer: "full",
		Mass: 1, Charge: 1,
		Tmax: 200, Dt: 1e-3, DtMax: 0.2, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams: FieldConfig{Psi0: 0.9, B0: 1.2, EpsTheta: 0.15, G0: 1.0, I0: 0.05, Iota0: 0.42, Khat: 0.2},
		InitState:   InitStateConfig{S: 0.3, Theta: 0.1, Vpar: 0.15, Vtotal: 0.2},
		MaxIterations: 100000,
	},
	"gc_boozer_perturbed": {
		Mode: "gc_boozer", Field: "analytic_boozer", Axis: "direct", Boozer: "nok",
		Mass: 1, Charge: 1, Mu: 1e-3,
		Tmax: 200, Dt: 1e-3, DtMax: 0.2, AbsTol: 1e-10, RelTol: 1e-10,
		FieldParams:   FieldConfig{Psi0: 0.9, B0: 1.2, EpsTheta: 0.15, G0: 1.0, I0: 0.05, Iota0: 0.42},
		InitState:     InitStateConfig{S: 0.3, Theta: 0.1, Vpar: 0.15},
		Perturbation:  &PerturbationConfig{Phihat: 1e-4, Omega: 1.0, M: 1, N: 0},
		MaxIterations: 100000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
