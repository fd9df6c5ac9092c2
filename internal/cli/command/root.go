// Package command provides CLI command definitions for strand-cli.
package command

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/strandkv/strand/internal/cli/client"
	"github.com/strandkv/strand/internal/cli/repl"
	"github.com/strandkv/strand/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "strand-cli",
		Usage:   "Strand key-value store client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
		},
		// No subcommand drops into the interactive loop.
		Action: func(c *cli.Context) error {
			cl := dial(c)
			defer cl.Close()
			return repl.New(cl).Run()
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Strand server address",
			EnvVars: []string{"STRAND_SERVER"},
			Value:   "localhost:6379",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Per-request timeout",
			Value:   5 * time.Second,
		},
	}
}

// dial builds a client from the global flags.
func dial(c *cli.Context) *client.Client {
	return client.New(c.String("server"), client.WithTimeout(c.Duration("timeout")))
}
