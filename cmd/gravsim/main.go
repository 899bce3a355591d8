package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/bench"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/galaxy"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

const keyLogLevel = "log_level"

var (
	configFile string
	preset     string
	live       bool
	trace      bool

	benchBodies  int
	benchSteps   int
	benchWorkers string
	benchRepeat  int
	benchAppend  bool

	plotProgram string
	plotBodies  int

	force bool

	v   = config.NewViper()
	log zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gravsim",
		Short:         "direct n-body gravity benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(v.GetString(keyLogLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	if err := v.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation and record its timing",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&preset, "preset", "", "start from a preset configuration")
	runCmd.Flags().BoolVar(&live, "live", false, "show live progress")
	runCmd.Flags().BoolVar(&trace, "trace", false, "record per-step diagnostics and plot kinetic energy")
	runCmd.Flags().String("program", config.DefaultProgram, "program name written to the timing log")
	bind(runCmd, config.KeyProgram, "program")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the engine across worker counts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchBodies, "bodies", 4096, "number of bodies")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 5, "steps per run")
	benchCmd.Flags().Bool("fast", false, "use the fast kernel")
	benchCmd.Flags().String("log-file", config.DefaultLogFile, "timing log path")
	benchCmd.Flags().StringVar(&benchWorkers, "workers", "1,2,4,0", "comma-separated worker counts (0 = all CPUs)")
	benchCmd.Flags().IntVar(&benchRepeat, "repeat", 3, "runs per worker count")
	benchCmd.Flags().BoolVar(&benchAppend, "append", false, "append mean timings to the log file")
	bind(benchCmd, config.KeyFastMath, "fast")
	bind(benchCmd, config.KeyLogFile, "log-file")

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "list recorded timings",
		Args:  cobra.NoArgs,
		RunE:  listTimings,
	}
	logCmd.Flags().String("log-file", config.DefaultLogFile, "timing log path")
	bind(logCmd, config.KeyLogFile, "log-file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot recorded timings",
		Args:  cobra.NoArgs,
		RunE:  plotTimings,
	}
	plotCmd.Flags().String("log-file", config.DefaultLogFile, "timing log path")
	plotCmd.Flags().StringVar(&plotProgram, "program", "", "only records of this program")
	plotCmd.Flags().IntVar(&plotBodies, "bodies", 0, "only records with this body count")
	bind(plotCmd, config.KeyLogFile, "log-file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tSTEPS\tWORKERS\tFAST")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%v\n", name, p.Bodies, p.Steps, workersLabel(p.Workers), p.FastMath)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, benchCmd, logCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusFailed.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().Int("steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int("workers", 0, "worker goroutines (0 = all CPUs)")
	cmd.Flags().Bool("fast", false, "use the fast kernel")
	cmd.Flags().Bool("validate", false, "stop when a body turns NaN or Inf")
	cmd.Flags().String("log-file", config.DefaultLogFile, "timing log path")

	bind(cmd, config.KeyBodies, "bodies")
	bind(cmd, config.KeySteps, "steps")
	bind(cmd, config.KeyWorkers, "workers")
	bind(cmd, config.KeyFastMath, "fast")
	bind(cmd, config.KeyValidate, "validate")
	bind(cmd, config.KeyLogFile, "log-file")
}

// bind ties a viper key to a flag once the command is chosen, so that
// several commands can share a key.
func bind(cmd *cobra.Command, key, flag string) {
	prev := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		if err := v.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
			return err
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

func setupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

// loadConfig resolves the run configuration: defaults, then preset, then
// config file, then GRAVSIM_* variables and changed flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	config.ApplyOverrides(v, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := galaxy.Initialize(cfg.Bodies, cfg.Params())
	if err != nil {
		return err
	}

	eng := sim.New(cfg.EngineConfig())
	defer eng.Close()

	var (
		set    metrics.Set
		energy *metrics.KineticEnergy
		stable *metrics.Stability
	)
	if trace {
		energy = metrics.NewKineticEnergy()
		stable = metrics.NewStability()
		set = metrics.Set{
			energy,
			stable,
			metrics.NewEnergyDrift(cfg.Params()),
			metrics.NewNetMomentum(),
			metrics.NewCentroidShift(),
		}
		eng.AddObserver(set)
	}

	log.Info().
		Int("bodies", cfg.Bodies).
		Int("steps", cfg.Steps).
		Int("workers", dynamo.EffectiveWorkers(cfg.Bodies, cfg.Workers)).
		Str("kernel", eng.Kernel().Name()).
		Msg("starting run")

	var elapsed time.Duration
	if live {
		elapsed, err = runLive(eng, g, cfg.Steps)
	} else {
		start := time.Now()
		err = eng.Run(g, cfg.Steps)
		elapsed = time.Since(start)
	}

	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		log.Error().Int("step", simErr.Step).Int("body", simErr.Body).Msg("state became invalid")
	}
	if err != nil {
		return err
	}

	summary := viz.Summary{
		Program: cfg.Program,
		Bodies:  cfg.Bodies,
		Steps:   cfg.Steps,
		Workers: eng.Workers(),
		Kernel:  eng.Kernel().Name(),
		Elapsed: elapsed,
	}
	if trace {
		summary.Metrics = set.Values()
	}
	fmt.Println(viz.RenderSummary(summary))

	if trace {
		fmt.Println(viz.PlotSeries(energy.Series(), "kinetic energy per step"))
		if bad := stable.FirstInvalidStep(); bad >= 0 {
			log.Warn().Int("step", bad).Msg("non-finite state observed")
		}
	}

	fmt.Println(viz.RecordLine(cfg.Program, cfg.Bodies, elapsed))

	rec := storage.Record{
		Program: cfg.Program,
		Bodies:  cfg.Bodies,
		Elapsed: elapsed,
		Workers: eng.Workers(),
	}
	if err := storage.New(cfg.LogFile).Append(rec); err != nil {
		return fmt.Errorf("failed to append timing: %w", err)
	}
	log.Debug().Str("file", cfg.LogFile).Msg("timing recorded")
	return nil
}

// runLive runs the engine on its own goroutine while a bubbletea program
// shows progress. Leaving the view does not stop the run.
func runLive(eng *sim.Engine, g *galaxy.Galaxy, steps int) (time.Duration, error) {
	prog := tea.NewProgram(viz.NewProgress("gravsim", steps), tea.WithOutput(os.Stderr))
	eng.AddObserver(viz.NewTracker(prog))

	var elapsed time.Duration
	errc := make(chan error, 1)
	go func() {
		start := time.Now()
		err := eng.Run(g, steps)
		elapsed = time.Since(start)
		prog.Send(viz.DoneMsg{Err: err, Elapsed: elapsed})
		errc <- err
	}()

	final, err := prog.Run()
	if err != nil {
		log.Warn().Err(err).Msg("progress view stopped")
	} else if p, ok := final.(*viz.Progress); ok && p.Detached() {
		log.Info().Int("step", p.Steps()).Msg("left progress view, run continues")
	}
	err = <-errc
	return elapsed, err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Bodies, cfg.Steps = benchBodies, benchSteps
	workers, err := bench.ParseWorkers(benchWorkers)
	if err != nil {
		return err
	}

	log.Info().
		Int("bodies", cfg.Bodies).
		Int("steps", cfg.Steps).
		Ints("workers", workers).
		Int("repeat", benchRepeat).
		Msg("starting bench")

	results, err := bench.Run(bench.Options{
		Bodies:  cfg.Bodies,
		Steps:   cfg.Steps,
		Params:  cfg.Params(),
		Fast:    cfg.FastMath,
		Workers: workers,
		Repeat:  benchRepeat,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tMEAN\tSTDDEV\tSPEEDUP\tMAX REL ERR")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%v\t%v\t%.2fx\t%.3g\n",
			workersLabel(r.Workers),
			r.Mean.Round(time.Millisecond),
			r.StdDev.Round(time.Millisecond),
			r.Speedup,
			r.MaxRelErr)
	}
	w.Flush()

	if !benchAppend {
		return nil
	}
	tl := storage.New(cfg.LogFile)
	for _, r := range results {
		rec := storage.Record{
			Program: cfg.Program,
			Bodies:  cfg.Bodies,
			Elapsed: r.Mean,
			Workers: dynamo.EffectiveWorkers(cfg.Bodies, r.Workers),
		}
		if err := tl.Append(rec); err != nil {
			return fmt.Errorf("failed to append timing: %w", err)
		}
	}
	log.Info().Str("file", tl.Path()).Int("records", len(results)).Msg("timings appended")
	return nil
}

func listTimings(cmd *cobra.Command, args []string) error {
	tl := storage.New(logFile())
	records, err := tl.Records()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("no timings in %s\n", tl.Path())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROGRAM\tBODIES\tELAPSED\tWORKERS")
	for _, r := range records {
		workers := "-"
		if r.Workers > 0 {
			workers = fmt.Sprint(r.Workers)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", r.Program, r.Bodies, r.Elapsed, workers)
	}
	return w.Flush()
}

func plotTimings(cmd *cobra.Command, args []string) error {
	tl := storage.New(logFile())
	records, err := tl.Records()
	if err != nil {
		return err
	}
	records = storage.Filter(records, plotProgram, plotBodies)
	if len(records) == 0 {
		return fmt.Errorf("no matching timings in %s", tl.Path())
	}
	fmt.Println(viz.PlotTimings(records, fmt.Sprintf("elapsed ms, %d records", len(records))))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "gravsim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// logFile resolves the timing log path from the config file and overrides.
func logFile() string {
	cfg := config.DefaultConfig()
	if configFile != "" {
		if fileCfg, err := config.Load(configFile); err == nil {
			cfg = fileCfg
		} else {
			log.Warn().Err(err).Msg("ignoring config file")
		}
	}
	config.ApplyOverrides(v, cfg)
	return cfg.LogFile
}

func workersLabel(n int) string {
	if n <= 0 {
		return fmt.Sprintf("all (%d)", dynamo.ResolveWorkers(n))
	}
	return fmt.Sprint(n)
}
