// Package certgen provisions self-signed TLS material for certserve.
//
// The provisioner runs once at startup, before the server binds:
//
//   - Fast path: both files already exist, nothing is touched
//   - Otherwise: generate an RSA key and a self-signed X.509
//     certificate and write both as PEM files
//
// An existing pair is trusted on existence alone. Validity and
// key/certificate pairing are checked only implicitly, when the
// server loads the material at startup.
//
// Generation is attempted exactly once per run; a failure is fatal
// and the server never starts.
//
// @design DS-0201
package certgen
