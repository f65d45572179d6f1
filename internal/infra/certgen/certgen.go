// Package certgen provisions the self-signed TLS certificate.
//
// It replaces the usual `openssl req -x509 -newkey rsa:2048 ...`
// invocation with an in-process call to crypto/x509, avoiding a
// runtime dependency on an external binary being on PATH.
//
// @design DS-0201
package certgen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

// Options controls certificate generation.
type Options struct {
	// CertFile is the output path for the PEM-encoded certificate.
	CertFile string

	// KeyFile is the output path for the PEM-encoded RSA private key.
	// The key is written unencrypted with 0600 permissions.
	KeyFile string

	// CommonName is the certificate subject common name. It is also
	// added as a DNS SAN, alongside the loopback IP addresses.
	CommonName string

	// Validity is the certificate validity window from generation time.
	Validity time.Duration

	// KeyBits is the RSA key size.
	KeyBits int
}

// DefaultOptions returns options matching the built-in defaults:
// server.crt/server.key next to the process, RSA-2048, CN=localhost,
// valid for 365 days.
func DefaultOptions() Options {
	return Options{
		CertFile:   "server.crt",
		KeyFile:    "server.key",
		CommonName: "localhost",
		Validity:   365 * 24 * time.Hour,
		KeyBits:    2048,
	}
}

// Ensure makes sure a certificate/key pair exists at the configured paths.
//
// If regular files exist at both paths they are trusted as-is: no expiry
// check, no check that the key matches the certificate. An on-disk pair
// that is stale or mismatched surfaces later, when the TLS material is
// loaded at server startup. If either file is missing, both are generated.
//
// Returns true if a new pair was generated.
func Ensure(opts Options) (bool, error) {
	if isRegularFile(opts.CertFile) && isRegularFile(opts.KeyFile) {
		return false, nil
	}

	if err := Generate(opts); err != nil {
		return false, err
	}
	return true, nil
}

// Generate creates a self-signed certificate and private key, overwriting
// any existing files at the configured paths.
func Generate(opts Options) error {
	priv, err := rsa.GenerateKey(rand.Reader, opts.KeyBits)
	if err != nil {
		return fmt.Errorf("certgen: generate RSA key: %w", err)
	}

	serial, err := randomSerial()
	if err != nil {
		return fmt.Errorf("certgen: generate serial: %w", err)
	}

	notBefore := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: opts.CommonName,
		},
		NotBefore: notBefore,
		NotAfter:  notBefore.Add(opts.Validity),

		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,

		DNSNames:    []string{opts.CommonName},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}

	// Self-signed: the template is both subject and issuer.
	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return fmt.Errorf("certgen: create certificate: %w", err)
	}

	keyBlock := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	}
	if err := writePEM(opts.KeyFile, keyBlock, 0600); err != nil {
		return fmt.Errorf("certgen: write key file: %w", err)
	}

	certBlock := &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: derBytes,
	}
	if err := writePEM(opts.CertFile, certBlock, 0644); err != nil {
		// Don't leave a key without its certificate behind.
		os.Remove(opts.KeyFile)
		return fmt.Errorf("certgen: write cert file: %w", err)
	}

	return nil
}

// isRegularFile reports whether path names an existing regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// randomSerial returns a random 128-bit certificate serial number.
func randomSerial() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	return rand.Int(rand.Reader, limit)
}

// writePEM writes a single PEM block to path via a temporary file and
// rename, so a crash mid-write never leaves a truncated PEM behind.
func writePEM(path string, block *pem.Block, mode os.FileMode) error {
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if err := pem.Encode(f, block); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
