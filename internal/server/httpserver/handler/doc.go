// Package handler implements the static file handler for certserve.
//
// The handler maps request paths onto the document root:
//
//   - Regular file: streamed with a content type inferred from the
//     file extension
//   - Directory: generated listing of immediate entries (or 404 when
//     listings are disabled and no index.html exists)
//   - Nothing: 404
//
// Methods other than GET and HEAD return 405. The exact listing
// markup is whatever net/http generates; only the functional
// behavior is part of the contract.
//
// @design DS-0301
package handler
