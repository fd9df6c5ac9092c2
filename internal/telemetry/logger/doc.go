// Package logger provides structured logging for Strand.
//
// This package wraps log/slog:
//
//   - logger.go: handler configuration and the package-wide default
//   - context.go: context-aware logging with connection IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation for per-connection tracing
package logger
