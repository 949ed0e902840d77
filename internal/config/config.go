// Package config loads a trace run's parameters from YAML, the way the
// teacher's simulation config layer loads a dynamical-system run: a
// plain struct with yaml tags, sane zero-value defaults, and a small
// table of named presets for quick starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt     = 1e-4
	DefaultDtMax  = 1e-2
	DefaultTmax   = 100.0
	DefaultAbsTol = 1e-9
	DefaultRelTol = 1e-9
)

// Config is the top-level trace run description loaded from a YAML file.
type Config struct {
	Mode   string `yaml:"mode"`           // fieldline, fullorbit, gc_vacuum_cartesian, gc_boozer
	Field  string `yaml:"field"`          // uniform, analytic_boozer
	Axis   string `yaml:"axis"`           // direct, sqrt, linear
	Boozer string `yaml:"boozer_variant"` // vacuum, nok, full

	Mass   float64 `yaml:"mass"`
	Charge float64 `yaml:"charge"`
	Mu     float64 `yaml:"mu"`

	Tmax   float64 `yaml:"tmax"`
	Dt     float64 `yaml:"dt"`
	DtMax  float64 `yaml:"dt_max"`
	AbsTol float64 `yaml:"abstol"`
	RelTol float64 `yaml:"reltol"`

	InitState   InitStateConfig `yaml:"init_state"`
	FieldParams FieldConfig     `yaml:"field_params"`

	Phis            []PhiPlaneConfig `yaml:"phis"`
	Vpars           []float64        `yaml:"vpars"`
	PhisStop        bool             `yaml:"phis_stop"`
	VparsStop       bool             `yaml:"vpars_stop"`
	ForgetExactPath bool             `yaml:"forget_exact_path"`
	MaxIterations   int              `yaml:"max_iterations"`
	MaxToroidalFlux float64          `yaml:"max_toroidal_flux"`
	MinToroidalFlux float64          `yaml:"min_toroidal_flux"`

	Perturbation *PerturbationConfig `yaml:"perturbation"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`

	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	VZ float64 `yaml:"vz"`

	S     float64 `yaml:"s"`
	Theta float64 `yaml:"theta"`
	Zeta  float64 `yaml:"zeta"`
	Vpar  float64 `yaml:"vpar"`

	// Vtotal is the particle's total speed, used by gc_vacuum_cartesian and
	// gc_boozer to size dtmax from the field at the initial point and, for
	// non-perturbed traces, to derive mu from vperp^2 = vtotal^2 - vpar^2.
	// Zero means "not supplied": dtmax falls back to dt_max and mu falls
	// back to the mu field above.
	Vtotal float64 `yaml:"vtotal"`
}

type FieldConfig struct {
	Bz       float64 `yaml:"bz"`
	Psi0     float64 `yaml:"psi0"`
	B0       float64 `yaml:"b0"`
	EpsTheta float64 `yaml:"eps_theta"`
	EpsZeta  float64 `yaml:"eps_zeta"`
	G0       float64 `yaml:"g0"`
	DGds     float64 `yaml:"dgds"`
	I0       float64 `yaml:"i0"`
	DIds     float64 `yaml:"dids"`
	Iota0    float64 `yaml:"iota0"`
	DIotaDs  float64 `yaml:"diotads"`
	Khat     float64 `yaml:"khat"`
}

type PhiPlaneConfig struct {
	Phi   float64 `yaml:"phi"`
	Omega float64 `yaml:"omega"`
}

type PerturbationConfig struct {
	Phihat float64 `yaml:"phihat"`
	Omega  float64 `yaml:"omega"`
	M      int     `yaml:"m"`
	N      int     `yaml:"n"`
	Phase  float64 `yaml:"phase"`
}

// DefaultConfig returns a runnable field-line trace in a uniform field,
// matching the simplest end-to-end scenario.
func DefaultConfig() *Config {
	return &Config{
		Mode:   "fieldline",
		Field:  "uniform",
		Axis:   "direct",
		Boozer: "vacuum",
		Mass:   1, Charge: 1,
		Tmax: DefaultTmax, Dt: DefaultDt, DtMax: DefaultDtMax,
		AbsTol: DefaultAbsTol, RelTol: DefaultRelTol,
		FieldParams:   FieldConfig{Bz: 1},
		InitState:     InitStateConfig{X: 1},
		MaxIterations: 100000,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
