// Package main provides the entry point for certserve.
//
// certserve is a loopback HTTPS static file server that provisions
// its own self-signed certificate on first run.
//
// @design DS-0501
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/certserve-go/internal/infra/buildinfo"
	"github.com/yndnr/certserve-go/internal/infra/certgen"
	"github.com/yndnr/certserve-go/internal/infra/confloader"
	"github.com/yndnr/certserve-go/internal/infra/shutdown"
	"github.com/yndnr/certserve-go/internal/infra/tlsmaterial"
	"github.com/yndnr/certserve-go/internal/server/config"
	"github.com/yndnr/certserve-go/internal/server/httpserver"
	"github.com/yndnr/certserve-go/internal/telemetry/logger"
	"github.com/yndnr/certserve-go/internal/telemetry/metric"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newApp creates the CLI application. Every flag has a default, so
// running with no arguments starts the server with built-in behavior.
func newApp() *cli.App {
	return &cli.App{
		Name:    "certserve",
		Usage:   "serve the current directory over HTTPS with a self-provisioned certificate",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file (YAML)",
				EnvVars: []string{"CERTSERVE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "bind address",
				Value: config.DefaultHTTPSAddr,
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "document root",
				Value: config.DefaultRoot,
			},
			&cli.StringFlag{
				Name:  "cert",
				Usage: "certificate file path",
				Value: config.DefaultCertFile,
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "private key file path",
				Value: config.DefaultKeyFile,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
				Value: config.DefaultLogLevel,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: json, text",
				Value: config.DefaultLogFormat,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "bind address for the Prometheus endpoint (empty = disabled)",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger := initLogger(cfg)
	logger.SetDefault(log)

	log.Info("starting certserve",
		"version", buildinfo.Version,
		"addr", cfg.Server.HTTP.Addr,
		"root", cfg.Serve.Root)

	// Provision the certificate before anything binds. A generation
	// failure is fatal; the server never starts.
	created, err := certgen.Ensure(certgen.Options{
		CertFile:   cfg.TLS.CertFile,
		KeyFile:    cfg.TLS.KeyFile,
		CommonName: cfg.TLS.CommonName,
		Validity:   time.Duration(cfg.TLS.ValidityDays) * 24 * time.Hour,
		KeyBits:    cfg.TLS.KeyBits,
	})
	if err != nil {
		return fmt.Errorf("provision certificate: %w", err)
	}
	if created {
		log.Info("certificate generated",
			"cert_file", cfg.TLS.CertFile,
			"key_file", cfg.TLS.KeyFile,
			"common_name", cfg.TLS.CommonName,
			"validity_days", cfg.TLS.ValidityDays)
	} else {
		log.Info("certificate files already exist",
			"cert_file", cfg.TLS.CertFile,
			"key_file", cfg.TLS.KeyFile)
	}

	tlsConfig, err := tlsmaterial.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return fmt.Errorf("load TLS material: %w", err)
	}

	metrics := metric.NewRegistry()

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Root:      cfg.Serve.Root,
		Listing:   cfg.Serve.Listing,
		RateLimit: cfg.Serve.RateLimit,
		Logger:    slogLogger,
		Metrics:   metrics,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router, tlsConfig)
	if err := httpServer.Listen(); err != nil {
		return err
	}

	shutdownHandler := shutdown.NewHandler(10 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTPS server")
		return httpServer.Shutdown(ctx)
	})

	if err := startMetrics(cfg, metrics, log, shutdownHandler); err != nil {
		return err
	}

	if c.IsSet("config") {
		if err := watchConfig(c.String("config"), slogLogger, shutdownHandler); err != nil {
			log.Warn("configuration watcher unavailable", "error", err)
		}
	}

	go func() {
		if err := httpServer.Serve(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTPS server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	log.Info("server running",
		"url", "https://"+httpServer.Addr().String()+"/",
		"note", "clients must trust the self-signed certificate")

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}

// loadConfig merges defaults, config file, environment and flags.
func loadConfig(c *cli.Context) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if c.IsSet("config") {
		opts = append(opts, confloader.WithConfigFile(c.String("config")))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Explicit flags override everything.
	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"addr":         "server.http.addr",
		"root":         "serve.root",
		"cert":         "tls.cert_file",
		"key":          "tls.key_file",
		"log-level":    "log.level",
		"log-format":   "log.format",
		"metrics-addr": "telemetry.metrics_addr",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and a *slog.Logger for components
// that log through log/slog directly.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger) {
	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	}

	log, err := logger.New(logCfg)
	if err != nil {
		// New only fails on exotic configs; fall back to defaults.
		log, _ = logger.New(logger.DefaultConfig())
	}

	return log, logger.NewSlog(logCfg)
}

// startMetrics starts the optional plain-HTTP Prometheus listener.
func startMetrics(cfg *config.ServerConfig, metrics *metric.Registry, log logger.Logger, sh *shutdown.Handler) error {
	if cfg.Telemetry.MetricsAddr == "" {
		return nil
	}

	ln, err := net.Listen("tcp", cfg.Telemetry.MetricsAddr)
	if err != nil {
		return fmt.Errorf("bind metrics listener %s: %w", cfg.Telemetry.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Handler: mux}

	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down metrics listener")
		return srv.Shutdown(ctx)
	})

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error("metrics listener error", "error", err)
		}
	}()

	log.Info("metrics listening", "addr", ln.Addr().String())
	return nil
}

// watchConfig applies log-level changes from the config file at
// runtime. Everything else requires a restart, which is logged.
func watchConfig(path string, slogLogger *slog.Logger, sh *shutdown.Handler) error {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slogLogger))
	if err != nil {
		return err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return err
	}

	watcher.OnChange(func(changed string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(path))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			slogLogger.Warn("ignoring config change", "error", err)
			return
		}

		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			slogLogger.Info("log level changed", "level", cfg.Log.Level)
		}
		slogLogger.Info("configuration file changed, restart required for listener/TLS changes",
			"file", changed)
	})

	sh.OnShutdown(func(ctx context.Context) error {
		return watcher.Stop()
	})

	watcher.StartAsync()
	return nil
}
