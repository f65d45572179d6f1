// Package tlsmaterial loads PEM certificate material into TLS configs.
//
// It handles the server-side keypair for the HTTPS listener and the
// client-side trust pool used when a client wants to verify the
// server's self-signed certificate instead of skipping verification.
package tlsmaterial

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoCertsFound is returned when no certificates are found in a PEM file.
	ErrNoCertsFound = errors.New("tlsmaterial: no certificates found in PEM file")
)

// ServerConfig builds a server-side TLS config from a PEM certificate
// and private key file.
//
// Loading is strict: a missing file, corrupt PEM, or a key that does
// not pair with the certificate all fail here, before the listener
// ever accepts a connection.
func ServerConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsmaterial: load key pair: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// LoadCertificate parses the first CERTIFICATE block from a PEM file.
func LoadCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlsmaterial: read cert file %s: %w", path, err)
	}

	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("tlsmaterial: parse certificate: %w", err)
		}
		return cert, nil
	}

	return nil, ErrNoCertsFound
}

// ClientPool builds a certificate pool trusting only the certificates
// in the given PEM file.
func ClientPool(certFile string) (*x509.CertPool, error) {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("tlsmaterial: read cert file %s: %w", certFile, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, ErrNoCertsFound
	}
	return pool, nil
}

// ClientConfig builds a client-side TLS config that trusts the server's
// certificate file. Used by tests and local tooling talking to a
// certserve instance.
func ClientConfig(certFile string) (*tls.Config, error) {
	pool, err := ClientPool(certFile)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
