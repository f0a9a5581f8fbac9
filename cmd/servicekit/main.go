package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/servicekit/pkg/config"
	"github.com/dmitrymomot/servicekit/pkg/logger"
	"github.com/dmitrymomot/servicekit/pkg/status"
	"github.com/dmitrymomot/servicekit/pkg/supervisor"
	"github.com/dmitrymomot/servicekit/pkg/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "servicekit:", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	// Flags override environment settings.
	configFile := flag.String("config", env.ConfigFile, "path of the config file to load (JSON or YAML)")
	source := flag.String("source", "", "inline config document; takes precedence over -config")
	interval := flag.Duration("interval", env.CheckInterval, "pause between service checks")
	httpAddr := flag.String("http", env.HTTPAddr, "listen address of the HTTP status surface (empty disables)")
	logLevel := flag.String("log-level", env.LogLevel, "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", env.LogFormat, "log format: json, text")
	logFile := flag.String("log-file", env.LogFile, "mirror log records into this file as well as stdout")
	traceValidation := flag.Bool("trace-validation", env.TraceValidation, "log every config validation step at debug level")
	flag.Parse()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(*logLevel)),
		logger.WithFormat(logger.ParseFormat(*logFormat)),
		logger.WithService("servicekit"),
	)
	logger.SetAsDefault(log)

	var loadOpts []config.LoadOption
	if *traceValidation {
		loadOpts = append(loadOpts, config.WithTrace(trace.NewLogger(log)))
	}

	var cfg config.Config
	if *source != "" {
		cfg, err = config.FromYAML([]byte(*source), loadOpts...)
	} else {
		cfg, err = config.FromFile(*configFile, loadOpts...)
	}
	if err != nil {
		return err
	}
	if len(cfg.Services) == 0 {
		log.Warn("no services configured")
	}
	if *interval <= 0 {
		*interval = 5 * time.Second
	}

	if *logFile != "" {
		// CleanLogs truncates the previous run's file, otherwise append.
		mode := os.O_APPEND
		if cfg.CleanLogs {
			mode = os.O_TRUNC
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|mode, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", *logFile, err)
		}
		defer f.Close()

		log = logger.New(
			logger.WithLevel(logger.ParseLevel(*logLevel)),
			logger.WithFormat(logger.ParseFormat(*logFormat)),
			logger.WithService("servicekit"),
			logger.WithOutput(io.MultiWriter(os.Stdout, f)),
		)
		logger.SetAsDefault(log)
	}

	manager := supervisor.New(cfg,
		supervisor.WithInterval(*interval),
		supervisor.WithLogger(log),
		supervisor.WithSpawner(supervisor.NewLogSpawner(log)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(manager.Run(ctx))
	if *httpAddr != "" {
		g.Go(func() error {
			return status.Serve(ctx, *httpAddr, status.NewHandler(manager), log)
		})
	}
	g.Go(func() error {
		// periodic status report, mirroring the per-round check cadence
		ticker := time.NewTicker(*interval * 10)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				manager.LogStatus()
			}
		}
	})

	log.Info("servicekit running",
		slog.String("config", *configFile),
		slog.Int("services", len(cfg.Services)))
	return g.Wait()
}
