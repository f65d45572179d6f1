// Package config defines the server configuration structure.
package config

// Default configuration values.
//
// The HTTPS port is a fixed non-privileged port so the server
// never needs elevated privileges to bind.
const (
	DefaultHTTPSAddr = "127.0.0.1:8443"

	DefaultRoot    = "."
	DefaultListing = true

	DefaultCertFile     = "server.crt"
	DefaultKeyFile      = "server.key"
	DefaultCommonName   = "localhost"
	DefaultValidityDays = 365
	DefaultKeyBits      = 2048

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPSAddr,
			},
		},
		Serve: ServeSection{
			Root:    DefaultRoot,
			Listing: DefaultListing,
		},
		TLS: TLSSection{
			CertFile:     DefaultCertFile,
			KeyFile:      DefaultKeyFile,
			CommonName:   DefaultCommonName,
			ValidityDays: DefaultValidityDays,
			KeyBits:      DefaultKeyBits,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
