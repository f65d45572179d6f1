// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: files, environment variables, flag maps
//   - YAML configuration files
//   - Watch Support: callbacks on config file changes
//   - Type Safety: unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Default values
//
// @design DS-0403
package confloader
