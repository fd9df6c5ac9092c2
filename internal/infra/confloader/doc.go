// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Environment variables
//  2. Configuration file (YAML)
//  3. Default values
//
// The watcher notifies registered callbacks when the configuration file
// changes on disk, which the server uses for log-level hot reload.
package confloader
