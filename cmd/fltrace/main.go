// Command fltrace runs particle and field-line traces from a YAML config
// or a named preset, and reports the result to the terminal, mirroring
// the teacher's dynsim CLI: a cobra root command, a handful of
// subcommands, a persistent data directory flag, and zap for structured
// logging of anything that isn't meant for the report itself.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fltrace/internal/chart"
	"fltrace/internal/config"
	"fltrace/internal/diagnostics"
	"fltrace/internal/field"
	"fltrace/internal/integrate"
	"fltrace/internal/report"
	"fltrace/internal/rhs"
	"fltrace/internal/storage"
	"fltrace/internal/stopcrit"
	"fltrace/internal/trace"
)

var (
	dataDir    string
	configFile string
	presetName string
	svgPath    string
	logger     *zap.Logger
)

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fltrace: logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "fltrace",
		Short: "guiding-center and field-line tracing for Boozer-coordinate equilibria",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fltrace", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a trace from a config file or preset",
		RunE:  runTrace,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "use a named preset configuration")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the Poincare section to this SVG file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("initializing data directory: %w", err)
	}

	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	params := buildParams(cfg)

	logger.Info("starting trace",
		zap.String("mode", cfg.Mode),
		zap.String("field", cfg.Field),
		zap.Float64("tmax", cfg.Tmax),
	)

	start := time.Now()
	path, hits, err := runMode(cfg, f, params)
	if err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("trace finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("samples", len(path)),
		zap.Int("hits", len(hits)),
	)

	observeDiagnostics(cfg, f, path)

	runID, err := st.Save(cfg.Mode, cfg.Tmax, path, hits, time.Now())
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	fmt.Println(report.Summary(cfg.Mode, path, hits))
	fmt.Println(report.Poincare(hits, 48, 16, "poincare section"))
	fmt.Printf("run id: %s\n", runID)

	if svgPath != "" {
		svg := report.PoincareSVG(hits, 640, 480, "#00ff88")
		if svg == "" {
			logger.Warn("no Phi-plane crossings to render", zap.String("svg", svgPath))
		} else if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	switch {
	case configFile != "":
		return config.Load(configFile)
	case presetName != "":
		cfg := config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, config.ListPresets())
		}
		return cfg, nil
	default:
		return config.DefaultConfig(), nil
	}
}

func buildField(cfg *config.Config) (interface{}, error) {
	switch cfg.Field {
	case "uniform":
		return &field.UniformField{Bz: cfg.FieldParams.Bz}, nil
	case "analytic_boozer":
		fp := cfg.FieldParams
		return &field.AnalyticBoozerField{
			Psi0Val: fp.Psi0, B0: fp.B0,
			EpsTheta: fp.EpsTheta, EpsZeta: fp.EpsZeta,
			G0: fp.G0, DGds: fp.DGds,
			I0: fp.I0, DIds: fp.DIds,
			Iota0: fp.Iota0, DIotaDs: fp.DIotaDs,
			Khat: fp.Khat,
		}, nil
	default:
		return nil, fmt.Errorf("unknown field type %q", cfg.Field)
	}
}

func parseAxis(s string) chart.Axis {
	switch s {
	case "sqrt":
		return chart.SqrtRegularized
	case "linear":
		return chart.LinearRegularized
	default:
		return chart.Direct
	}
}

func buildParams(cfg *config.Config) trace.Params {
	var criteria []stopcrit.Criterion
	if cfg.MaxIterations > 0 {
		criteria = append(criteria, &stopcrit.Iteration{N: cfg.MaxIterations})
	}
	if cfg.MaxToroidalFlux > 0 {
		criteria = append(criteria, &stopcrit.MaxToroidalFlux{SMax: cfg.MaxToroidalFlux})
	}
	if cfg.MinToroidalFlux > 0 {
		criteria = append(criteria, &stopcrit.MinToroidalFlux{SMin: cfg.MinToroidalFlux})
	}

	phis := make([]integrate.PhiPlane, len(cfg.Phis))
	for i, p := range cfg.Phis {
		phis[i] = integrate.PhiPlane{Phi: p.Phi, Omega: p.Omega}
	}

	var pert *rhs.Perturbation
	if cfg.Perturbation != nil {
		pert = &rhs.Perturbation{
			Phihat: cfg.Perturbation.Phihat, Omega: cfg.Perturbation.Omega,
			M: cfg.Perturbation.M, N: cfg.Perturbation.N, Phase: cfg.Perturbation.Phase,
		}
	}

	return trace.Params{
		Mass: cfg.Mass, Charge: cfg.Charge, Mu: cfg.Mu,
		Tmax: cfg.Tmax, Dt: cfg.Dt, DtMax: cfg.DtMax,
		AbsTol: cfg.AbsTol, RelTol: cfg.RelTol,
		Phis: phis, Vpars: cfg.Vpars,
		StoppingCriteria: criteria,
		PhisStop:         cfg.PhisStop,
		VparsStop:        cfg.VparsStop,
		ForgetExactPath:  cfg.ForgetExactPath,
		Axis:             parseAxis(cfg.Axis),
		Perturbation:     pert,
	}
}

func runMode(cfg *config.Config, f interface{}, p trace.Params) ([]integrate.Sample, []integrate.Hit, error) {
	init := cfg.InitState
	switch cfg.Mode {
	case "fieldline":
		cf, ok := f.(field.CartesianField)
		if !ok {
			return nil, nil, fmt.Errorf("fieldline mode requires a Cartesian field")
		}
		return trace.FieldLine(cf, [3]float64{init.X, init.Y, init.Z}, p)
	case "fullorbit":
		cf, ok := f.(field.CartesianField)
		if !ok {
			return nil, nil, fmt.Errorf("fullorbit mode requires a Cartesian field")
		}
		return trace.FullOrbit(cf, [3]float64{init.X, init.Y, init.Z}, [3]float64{init.VX, init.VY, init.VZ}, p)
	case "gc_vacuum_cartesian":
		cf, ok := f.(field.CartesianField)
		if !ok {
			return nil, nil, fmt.Errorf("gc_vacuum_cartesian mode requires a Cartesian field")
		}
		return trace.GCVacuumCartesian(cf, [3]float64{init.X, init.Y, init.Z}, init.Vpar, init.Vtotal, p)
	case "gc_boozer":
		bf, ok := f.(field.BoozerField)
		if !ok {
			return nil, nil, fmt.Errorf("gc_boozer mode requires a Boozer field")
		}
		mode, err := parseBoozerMode(cfg.Boozer)
		if err != nil {
			return nil, nil, err
		}
		return trace.GCBoozer(bf, mode, init.S, init.Theta, init.Zeta, init.Vpar, init.Vtotal, p)
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func parseBoozerMode(s string) (trace.Mode, error) {
	switch s {
	case "vacuum", "":
		return trace.ModeVacuum, nil
	case "nok":
		return trace.ModeNoK, nil
	case "full":
		return trace.ModeFull, nil
	default:
		return 0, fmt.Errorf("unknown boozer variant %q", s)
	}
}

func observeDiagnostics(cfg *config.Config, f interface{}, path []integrate.Sample) {
	switch cfg.Mode {
	case "fullorbit":
		d := &diagnostics.FullOrbitEnergyDrift{Mass: cfg.Mass}
		for _, s := range path {
			d.Observe(s.Y, nil, s.T)
		}
		logger.Info("energy drift", zap.String("metric", d.Name()), zap.Float64("value", d.Value()))
	case "gc_boozer":
		bf, ok := f.(field.BoozerField)
		if !ok {
			return
		}
		mu := cfg.Mu
		init := cfg.InitState
		if cfg.Perturbation == nil && init.Vtotal > 0 {
			if err := bf.SetPoints([][3]float64{{init.S, init.Theta, init.Zeta}}); err == nil {
				if modB := bf.ModBRef(); len(modB) > 0 && modB[0] > 0 {
					mu = trace.MuFromPitch(modB[0], init.Vtotal, init.Vpar/init.Vtotal)
				}
			}
		}
		d := &diagnostics.GuidingCenterEnergyDrift{Field: bf, Mass: cfg.Mass, Mu: mu}
		for _, s := range path {
			d.Observe(s.Y, nil, s.T)
		}
		logger.Info("energy drift", zap.String("metric", d.Name()), zap.Float64("value", d.Value()))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tTMAX\tSAMPLES\tHITS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4g\t%d\t%d\n",
			run.ID, run.Mode, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Tmax, run.Samples, run.Hits)
	}
	return w.Flush()
}
