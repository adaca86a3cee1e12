// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ifppc/internal/ast"
	"ifppc/internal/compiler"
	"ifppc/internal/config"
	"ifppc/internal/emit"
	"ifppc/internal/errors"
	"ifppc/internal/metrics"
	"ifppc/internal/parser"
	"ifppc/internal/watch"
)

// compileConfig holds configuration for the compile command.
type compileConfig struct {
	output      string
	watchMode   bool
	metricsAddr string
	trace       bool
	printAST    bool
	logFormat   string
}

const defaultLogFormat = "text"

// NewCompileCmd creates the compile subcommand.
func NewCompileCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "compile <file.filter>",
		Short: "Compile an item filter source file into a flat native filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&cfg.output, "output", "o", "", "output path (default: stdout)")
	cmd.Flags().BoolVar(&cfg.watchMode, "watch", false, "recompile on source changes")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "prometheus metrics HTTP address (empty = disabled)")
	cmd.Flags().BoolVar(&cfg.trace, "trace", false, "print a line per rule as it is flattened")
	cmd.Flags().BoolVar(&cfg.printAST, "print-ast", false, "print the parsed source tree to stderr before compiling")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", defaultLogFormat, "log format (json or text)")

	return cmd
}

func runCompile(ctx context.Context, cfg *compileConfig, path string) error {
	if err := setupLogging(cfg.logFormat); err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	cset, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config %q: %w", configFile, err)
	}

	var metricsServer *metrics.Server
	if cfg.metricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.metricsAddr)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
		slog.Info("metrics server listening", "addr", metricsServer.Addr())
	}

	compileOnce := func() error {
		return compileFile(path, cfg, metricsServer)
	}

	if !cfg.watchMode && !cset.Watch.Enabled {
		return compileOnce()
	}

	debounce := time.Duration(cset.Watch.DebounceMillis) * time.Millisecond
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("watching for changes", "path", path, "debounce", debounce)
	return watch.Run(watchCtx, path, debounce, func() {
		if err := compileOnce(); err != nil {
			slog.Error("compile failed", "error", err)
		}
	})
}

// compileFile runs one parse-compile-emit cycle against path, writing the
// native filter to cfg.output (or stdout) and recording metrics if a
// metrics server was configured.
func compileFile(path string, cfg *compileConfig, metricsServer *metrics.Server) error {
	start := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	f, perrs := parser.ParseString(path, string(source))
	if len(perrs) > 0 {
		reportErrors(path, string(source), perrs)
		recordFailure(metricsServer, start)
		return fmt.Errorf("parsing %s: %d error(s)", path, len(perrs))
	}

	if cfg.printAST {
		fmt.Fprint(os.Stderr, ast.Print(f))
	}

	opts := compiler.Options{}
	if cfg.trace {
		opts.Trace = os.Stderr
	}

	result, cerrs := compiler.New(opts).Compile(f)
	if len(result.Warnings) > 0 {
		reportErrors(path, string(source), result.Warnings)
	}
	if len(cerrs) > 0 {
		reportErrors(path, string(source), cerrs)
		recordFailure(metricsServer, start)
		return fmt.Errorf("compiling %s: %d error(s)", path, len(cerrs))
	}

	out := os.Stdout
	if cfg.output != "" {
		file, err := os.Create(cfg.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", cfg.output, err)
		}
		defer file.Close()
		out = file
	}

	if err := emit.Write(out, result.Rules); err != nil {
		recordFailure(metricsServer, start)
		return fmt.Errorf("emit native filter: %w", err)
	}

	if metricsServer != nil {
		metricsServer.Metrics().RecordCompile(time.Since(start), true, len(result.Rules), result.UselessPruned)
	}

	slog.Info("compiled filter",
		"path", path,
		"rules", len(result.Rules),
		"warnings", len(result.Warnings),
		"duration", time.Since(start),
	)
	return nil
}

func recordFailure(metricsServer *metrics.Server, start time.Time) {
	if metricsServer != nil {
		metricsServer.Metrics().RecordCompile(time.Since(start), false, 0, 0)
	}
}

func reportErrors(path, source string, errs []errors.CompilerError) {
	reporter := errors.NewErrorReporter(path, source)
	fmt.Fprint(os.Stderr, reporter.FormatAll(errs))
}

func setupLogging(format string) error {
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "text":
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return fmt.Errorf("invalid log format %q: must be 'json' or 'text'", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
