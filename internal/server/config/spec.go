// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for certserve.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Serve     ServeSection     `koanf:"serve"`
	TLS       TLSSection       `koanf:"tls"`
	Telemetry TelemetrySection `koanf:"telemetry"`
	Log       LogSection       `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTPS listener.
type HTTPConfig struct {
	// Addr is the TCP bind address. Loopback by default so the
	// server is never reachable from outside the machine.
	Addr string `koanf:"addr"`
}

// ServeSection configures static file serving.
type ServeSection struct {
	// Root is the document root served over HTTPS.
	Root string `koanf:"root"`

	// Listing enables generated directory listings for
	// directories without an index file.
	Listing bool `koanf:"listing"`

	// RateLimit is the per-client request limit (requests/second).
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// TLSSection configures certificate material and provisioning.
type TLSSection struct {
	// CertFile is the path of the PEM-encoded certificate.
	CertFile string `koanf:"cert_file"`

	// KeyFile is the path of the PEM-encoded private key.
	KeyFile string `koanf:"key_file"`

	// CommonName is the subject common name for a generated certificate.
	CommonName string `koanf:"common_name"`

	// ValidityDays is the validity window for a generated certificate.
	ValidityDays int `koanf:"validity_days"`

	// KeyBits is the RSA key size for a generated key.
	KeyBits int `koanf:"key_bits"`
}

// TelemetrySection configures observability endpoints.
type TelemetrySection struct {
	// MetricsAddr is the bind address for the plain-HTTP Prometheus
	// endpoint. Empty disables the metrics listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
