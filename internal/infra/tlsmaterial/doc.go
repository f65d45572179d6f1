// Package tlsmaterial loads PEM certificate material into TLS configs.
//
// Responsibilities:
//
//   - Server keypair loading (cert chain + private key) into a
//     *tls.Config with TLS 1.2 as the floor
//   - Certificate inspection (first CERTIFICATE block of a PEM file)
//   - Client trust pools for the self-signed server certificate
//
// All load failures are returned to the caller; at server startup
// they are fatal before the first accept.
//
// @design DS-0202
package tlsmaterial
