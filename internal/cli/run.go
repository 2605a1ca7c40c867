// Package cli parses the querydesk command line and wires configuration,
// logging, metrics and the engine into a controller, then runs either the
// terminal front end or a one-shot query.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/querydesk"
	"github.com/nao1215/querydesk/config"
	"github.com/nao1215/querydesk/engine"
	"github.com/nao1215/querydesk/internal/logging"
	"github.com/nao1215/querydesk/internal/metrics"
	"github.com/nao1215/querydesk/internal/tui"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UIFunc runs the interactive front end until the user quits.
type UIFunc func(ctx context.Context, controller *querydesk.Controller, opts tui.Options) error

// Options carries the process environment into Run.
type Options struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	// UI defaults to tui.Run.
	UI UIFunc
}

type flags struct {
	configPath   string
	exportConfig string
	engine       string
	file         string
	query        string
	version      bool
}

// Run executes querydesk with args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	ui := opts.UI
	if ui == nil {
		ui = tui.Run
	}

	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if f.version {
		_, _ = fmt.Fprintf(stdout, "querydesk %s\n", firstNonEmpty(opts.Version, "dev"))
		return ExitOK
	}
	if f.query != "" && f.file == "" {
		_, _ = fmt.Fprintln(stderr, "-query requires -file")
		return ExitUsage
	}
	if f.engine != "" && !isEngineName(f.engine) {
		_, _ = fmt.Fprintf(stderr, "unknown engine %q: must be one of %s\n", f.engine, strings.Join(engine.Names(), ", "))
		return ExitUsage
	}

	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return ExitFailure
	}
	if f.engine != "" {
		cfg.Engine = strings.ToLower(strings.TrimSpace(f.engine))
	}

	if f.exportConfig != "" {
		if err := config.Export(f.exportConfig, cfg); err != nil {
			_, _ = fmt.Fprintf(stderr, "failed to export config: %v\n", err)
			return ExitFailure
		}
		_, _ = fmt.Fprintf(stdout, "wrote %s\n", f.exportConfig)
		return ExitOK
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to set up logging: %v\n", err)
		return ExitFailure
	}
	defer func() {
		if err := closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "failed to close log: %v\n", err)
		}
	}()

	eng, err := engine.New(cfg.Engine)
	if err != nil {
		logger.Error("engine unavailable", slog.String("engine", cfg.Engine), slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return ExitFailure
	}

	// Validated by config.Load; DefaultConfig is always valid.
	timeout, _ := cfg.Timeout()
	recorder := metrics.NewRecorder()
	controller := querydesk.NewController(eng,
		querydesk.WithLogger(logger),
		querydesk.WithRecorder(recorder),
		querydesk.WithQueryTimeout(timeout),
	)
	logger.Info("querydesk started",
		slog.String("engine", eng.Name()),
		slog.Int("column_width", cfg.ColumnWidth),
		slog.Duration("query_timeout", timeout),
	)

	var code int
	if f.query != "" {
		code = runOnce(ctx, controller, f.file, f.query, stdout, stderr)
	} else {
		code = ExitOK
		err := ui(ctx, controller, tui.Options{ColumnWidth: cfg.ColumnWidth, InitialFile: f.file})
		if err != nil {
			logger.Error("terminal ui stopped", slog.Any("error", err))
			_, _ = fmt.Fprintf(stderr, "%v\n", err)
			code = ExitFailure
		}
	}

	if cfg.MetricsFile != "" {
		if err := recorder.WriteFile(cfg.MetricsFile); err != nil {
			logger.Error("metrics not written", slog.Any("error", err))
			_, _ = fmt.Fprintf(stderr, "%v\n", err)
			code = ExitFailure
		}
	}
	return code
}

// runOnce loads path, runs sqlText and prints the result to stdout.
func runOnce(ctx context.Context, controller *querydesk.Controller, path, sqlText string, stdout, stderr io.Writer) int {
	if n := controller.Load(ctx, path); n.Level == querydesk.NoticeError {
		_, _ = fmt.Fprintln(stderr, n.Message)
		return ExitFailure
	}

	grid := querydesk.NewTextGrid()
	if n := controller.RunQuery(ctx, sqlText, grid); !n.IsZero() {
		_, _ = fmt.Fprintln(stderr, n.Message)
		return ExitFailure
	}
	if _, err := grid.WriteTo(stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to write result: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("querydesk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { writeUsage(fs, stderr) }

	fs.StringVar(&f.configPath, "config", "", "HCL configuration file")
	fs.StringVar(&f.exportConfig, "export-config", "", "write the effective configuration to this file and exit")
	fs.StringVar(&f.engine, "engine", "", "query engine: "+strings.Join(engine.Names(), " or ")+" (overrides config)")
	fs.StringVar(&f.file, "file", "", "file to load at startup")
	fs.StringVar(&f.query, "query", "", "run this query against -file, print the result and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected argument %q\n\n", fs.Arg(0))
		writeUsage(fs, stderr)
		return f, errors.New("unexpected arguments")
	}
	return f, nil
}

func writeUsage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: querydesk [flags]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Without -query the interactive terminal UI starts.")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

func isEngineName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range engine.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
