// Package repl provides the interactive mode for strand-cli.
//
// The loop reads one command per line, tokenizes it with shell-style
// quoting, sends it to the server, and prints the rendered reply.
// History is kept in memory and persisted to ~/.strand/history.
package repl
