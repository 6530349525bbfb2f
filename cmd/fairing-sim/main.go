// Command fairing-sim runs fairing controllers over a craft file.
//
// The craft is loaded, every fairing is initialised as if the vessel had
// just been placed on the launch pad, and the requested decouple and destroy
// actions are replayed in order.
//
// Usage:
//
//	fairing-sim [flags] <craft.yaml>
//
// Flags:
//
//	-config string      Base fairing configuration (YAML or legacy module block)
//	-trace string       Write a CBOR event trace to this file
//	-report string      Write a JSON run report to this file
//	-decouple string    Comma-separated part IDs to decouple
//	-destroy string     Comma-separated part IDs to destroy
//	-interactive        Enter the interactive shell after the actions
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Initialise and show which parts are shielded
//	fairing-sim rocket.yaml
//
//	# Fire the upper fairing and keep a trace
//	fairing-sim -decouple fairing1 -trace run.flog rocket.yaml
//
//	# Explore interactively with debug output
//	fairing-sim -interactive -log-level debug rocket.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kwcargobay/fairing-go/cmd/fairing-sim/interactive"
	"github.com/kwcargobay/fairing-go/internal/sim"
	"github.com/kwcargobay/fairing-go/pkg/fairing"
	"github.com/kwcargobay/fairing-go/pkg/log"
	"github.com/kwcargobay/fairing-go/pkg/persistence"
)

// Config holds the command-line configuration.
type Config struct {
	ConfigFile  string
	TraceFile   string
	ReportFile  string
	Decouple    string
	Destroy     string
	Interactive bool
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Base fairing configuration (YAML or legacy module block)")
	flag.StringVar(&config.TraceFile, "trace", "", "Write a CBOR event trace to this file")
	flag.StringVar(&config.ReportFile, "report", "", "Write a JSON run report to this file")
	flag.StringVar(&config.Decouple, "decouple", "", "Comma-separated part IDs to decouple")
	flag.StringVar(&config.Destroy, "destroy", "", "Comma-separated part IDs to destroy")
	flag.BoolVar(&config.Interactive, "interactive", false, "Enter the interactive shell after the actions")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: craft file path required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(craftPath string) error {
	var store *persistence.ReportStore
	if config.ReportFile != "" {
		store = persistence.NewReportStore(config.ReportFile)
	}

	var shell *interactive.Shell
	var logOut io.Writer = os.Stderr
	if config.Interactive {
		var err error
		shell, err = interactive.New(store)
		if err != nil {
			return err
		}
		logOut = shell.Stderr()
	}
	logger := setupLogging(logOut, config.LogLevel)
	baseline := loadBaseline(store, logger)

	opts := sim.DefaultOptions()
	opts.Logger = logger

	if config.ConfigFile != "" {
		cfg, err := fairing.LoadConfig(config.ConfigFile)
		if err != nil {
			return err
		}
		opts.Config = cfg
	}

	// Trace events are mirrored to the operational log at debug level.
	traces := []log.Logger{log.NewSlogAdapter(logger)}
	if config.TraceFile != "" {
		fileLogger, err := log.NewFileLogger(config.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to create trace logger: %w", err)
		}
		defer func() {
			fileLogger.Close()
			written, dropped := fileLogger.Stats()
			if dropped > 0 {
				logger.Warn("trace events lost", slog.String("file", config.TraceFile), slog.Int("dropped", dropped))
			}
			logger.Debug("trace closed", slog.Int("events", written))
		}()
		traces = append(traces, fileLogger)
		logger.Info("tracing", slog.String("file", config.TraceFile))
	}
	opts.Trace = log.NewMultiLogger(traces...)

	s, err := sim.Load(craftPath, opts)
	if err != nil {
		return err
	}
	// Unloading the vessel tears down every fairing module.
	defer s.Close()

	if err := s.StartAll(); err != nil {
		return err
	}
	interactive.PrintStatus(os.Stdout, s.Report())

	actions := false
	for _, id := range splitIDs(config.Decouple) {
		actions = true
		if err := s.Decouple(id); err != nil {
			logger.Error("decouple failed", slog.String("part", id), slog.Any("error", err))
		}
	}
	for _, id := range splitIDs(config.Destroy) {
		actions = true
		if err := s.DestroyPart(id); err != nil {
			logger.Error("destroy failed", slog.String("part", id), slog.Any("error", err))
		}
	}
	if actions {
		interactive.PrintStatus(os.Stdout, s.Report())
	}

	if shell != nil {
		shell.Attach(s)
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		shell.Run(ctx, cancel)
	}

	if baseline != nil {
		fmt.Fprintf(os.Stdout, "Changes since %s:\n", store.Path())
		interactive.PrintChanges(os.Stdout, persistence.CompareShielding(baseline, s.Report()))
	}

	if store != nil {
		if err := store.Save(s.Report()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("report written", slog.String("file", store.Path()))
	}
	return nil
}

// loadBaseline returns the report left by a previous run, or nil when
// there is none or it cannot be used.
func loadBaseline(store *persistence.ReportStore, logger *slog.Logger) *persistence.RunReport {
	if store == nil {
		return nil
	}
	prev, err := store.Load()
	if err != nil {
		logger.Warn("ignoring previous report", slog.String("file", store.Path()), slog.Any("error", err))
		return nil
	}
	return prev
}

func setupLogging(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func splitIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
