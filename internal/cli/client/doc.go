// Package client provides the wire client used by strand-cli and
// strand-bench to talk to a Strand server over TCP.
//
// A Client owns one connection. Do sends a command as an array of bulk
// strings and blocks until the full reply has been decoded, buffering
// partial reads as needed.
package client
