// Package command turns one decoded RESP value into a typed, validated
// command.
//
// The package knows nothing about sockets or storage: its only input is
// the request envelope (a RESP array of bulk strings) and its only output
// is a Command variant or a request-level error suitable for reporting to
// the client as a simple error.
package command
