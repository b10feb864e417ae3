package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dshills/astar-go/problems"
	"github.com/dshills/astar-go/search"
	"github.com/dshills/astar-go/search/emit"
	"github.com/dshills/astar-go/search/store"
)

// cli carries flag values shared by all commands.
type cli struct {
	configFile string
	flags      Config
	logLevel   string

	historyProblem string
	historyLimit   int
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "astar",
		Short:         "Solve state-space search problems with A*",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&c.flags.Archive, "archive", "", "Report archive: memory, sqlite:<path> or mysql:<dsn>")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&c.flags.JSON, "json", false, "Write output (and progress events) as JSON")

	solveCmd := &cobra.Command{
		Use:   "solve [problem] [initial-state]",
		Short: "Run A* on a registered problem",
		Long: `Run A* on a registered problem and print the solution path.

The problem defaults to ` + problems.Default + `. The initial state is a JSON
literal in the problem's format; a malformed literal falls back to the
problem's built-in initial state.`,
		Args: cobra.MaximumNArgs(2),
		RunE: c.runSolve,
	}
	solveCmd.Flags().BoolVarP(&c.flags.Verbose, "verbose", "v", false, "Print progress (open size, closed size, expansions) while searching")
	solveCmd.Flags().IntVar(&c.flags.MaxExpansions, "max-expansions", 0, fmt.Sprintf("Expansion budget; 0 keeps the configured value (default %d), see --unbounded", defaultMaxExpansions))
	solveCmd.Flags().BoolVar(&c.flags.Unbounded, "unbounded", false, "Run without an expansion budget")
	solveCmd.Flags().IntVar(&c.flags.ProgressEvery, "progress-every", 0, "Print progress every N expansions when verbose")
	solveCmd.Flags().BoolVar(&c.flags.InvariantChecks, "invariant-checks", false, "Verify engine invariants after every pop")
	solveCmd.Flags().BoolVar(&c.flags.Metrics, "metrics", false, "Print Prometheus metrics after the run")
	solveCmd.Flags().BoolVar(&c.flags.Trace, "trace", false, "Write OpenTelemetry spans for search events to stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered problems",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived search reports, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.runHistory,
	}
	historyCmd.Flags().StringVar(&c.historyProblem, "problem", "", "Only show reports for this problem")
	historyCmd.Flags().IntVar(&c.historyLimit, "limit", 20, "Maximum number of reports; 0 for all")

	rootCmd.AddCommand(solveCmd, listCmd, historyCmd)
	return rootCmd
}

// config resolves defaults, the config file and command-line flags, in
// increasing precedence.
func (c *cli) config() (*Config, error) {
	cfg := DefaultConfig()
	if c.configFile != "" {
		loaded, err := LoadConfig(c.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	flags := c.flags
	flags.LogLevel = c.logLevel
	cfg.Merge(&flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func (c *cli) runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name := cfg.Problem
	literal := ""
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		literal = args[1]
	}

	problems.RegisterBuiltins()
	solver, err := problems.Build(name, literal)
	if err != nil {
		if solver == nil {
			if errors.Is(err, problems.ErrUnknownProblem) {
				return fmt.Errorf("%w (known problems: %s)", err, strings.Join(problems.Names(), ", "))
			}
			return err
		}
		logger.Warn("using the default initial state", "problem", solver.Name(), "error", err)
	}

	emitters := []emit.Emitter{emit.NewSlogEmitter(logger)}
	if cfg.Verbose {
		emitters = append(emitters, emit.NewLogEmitter(out, cfg.JSON))
	}

	if cfg.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("trace shutdown failed", "error", err)
			}
		}()
		emitters = append(emitters, emit.NewOTelEmitterFromProvider(tp, "astar"))
	}

	opts := []search.Option{
		search.WithMaxExpansions(cfg.Budget()),
		search.WithInvariantChecks(cfg.InvariantChecks),
		search.WithProgressEvery(cfg.ProgressEvery),
		search.WithEmitter(emit.NewMultiEmitter(emitters...)),
	}

	var registry *prometheus.Registry
	if cfg.Metrics {
		registry = prometheus.NewRegistry()
		opts = append(opts, search.WithMetrics(search.NewPrometheusMetrics(registry)))
	}

	outcome, solveErr := solver.Solve(ctx, opts...)

	budgetExceeded := errors.Is(solveErr, search.ErrMaxExpansionsExceeded)
	if solveErr == nil || budgetExceeded {
		if err := printOutcome(out, outcome, cfg.JSON, budgetExceeded); err != nil {
			return err
		}
	}
	if registry != nil {
		if err := printMetrics(out, registry); err != nil {
			logger.Error("failed to print metrics", "error", err)
		}
	}

	if cfg.Archive != "" && outcome.RunID != "" {
		if err := archiveOutcome(ctx, cfg.Archive, outcome); err != nil {
			logger.Error("failed to archive report", "run_id", outcome.RunID, "error", err)
		} else {
			logger.Info("report archived", "run_id", outcome.RunID, "archive", cfg.Archive)
		}
	}

	return solveErr
}

func archiveOutcome(ctx context.Context, setting string, outcome problems.Outcome) error {
	archive, err := openArchive(setting)
	if err != nil {
		return err
	}
	defer archive.Close()

	return archive.SaveReport(ctx, outcome.Report())
}

func (c *cli) runList(cmd *cobra.Command, _ []string) error {
	problems.RegisterBuiltins()
	return printProblems(cmd.OutOrStdout(), problems.List())
}

func (c *cli) runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if cfg.Archive == "" {
		return errors.New("history needs an archive: pass --archive or set archive in the config file")
	}
	if cfg.Archive == "memory" {
		return errors.New("history needs a persistent archive (sqlite:<path> or mysql:<dsn>); the memory archive only lives for one solve")
	}
	if c.historyLimit < 0 {
		return fmt.Errorf("invalid limit %d", c.historyLimit)
	}

	archive, err := openArchive(cfg.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reports, err := archive.ListReports(ctx, store.Filter{Problem: c.historyProblem, Limit: c.historyLimit})
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	return printHistory(cmd.OutOrStdout(), reports, cfg.JSON)
}
