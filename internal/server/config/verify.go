// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyServe(&cfg.Serve); err != nil {
		return err
	}
	if err := verifyTLS(&cfg.TLS); err != nil {
		return err
	}
	if err := verifyTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr is not a valid host:port: %w", err)
	}
	return nil
}

func verifyServe(cfg *ServeSection) error {
	if cfg.Root == "" {
		return errors.New("serve.root is required")
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("serve.root: %w", err)
	}
	if !info.IsDir() {
		return errors.New("serve.root must be a directory")
	}

	if cfg.RateLimit < 0 {
		return errors.New("serve.rate_limit must not be negative")
	}
	return nil
}

func verifyTLS(cfg *TLSSection) error {
	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return errors.New("tls.cert_file and tls.key_file are required")
	}
	if cfg.KeyBits < 2048 {
		return errors.New("tls.key_bits must be at least 2048")
	}
	if cfg.ValidityDays < 1 {
		return errors.New("tls.validity_days must be at least 1")
	}
	return nil
}

func verifyTelemetry(cfg *TelemetrySection) error {
	if cfg.MetricsAddr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
		return fmt.Errorf("telemetry.metrics_addr is not a valid host:port: %w", err)
	}
	return nil
}
